package integrationtest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	infra_postgres_match "github.com/humanbelnik/moviematch/internal/infra/postgres/match"
	infra_postgres_movie "github.com/humanbelnik/moviematch/internal/infra/postgres/movie"
	infra_postgres_vote "github.com/humanbelnik/moviematch/internal/infra/postgres/vote"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_match "github.com/humanbelnik/moviematch/internal/usecase/match"
	usecase_movie "github.com/humanbelnik/moviematch/internal/usecase/movie"
	usecase_vote "github.com/humanbelnik/moviematch/internal/usecase/vote"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type UsecaseVoteIntegrationSuite struct {
	suite.Suite
}

type recordingDispatcher struct {
	mu      sync.Mutex
	matches []model.Match
}

func (d *recordingDispatcher) DispatchMatch(_ context.Context, m model.Match) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.matches = append(d.matches, m)
	return nil
}

func (s *UsecaseVoteIntegrationSuite) TestIntegrationConsensus(t provider.T) {
	pgConn := getDB(t)
	ctx := context.Background()

	movies := infra_postgres_movie.New(pgConn)
	movieID := uuid.New()
	stored, err := movies.Store(ctx, model.MovieMeta{
		ID:          movieID,
		KinopoiskID: int(time.Now().UnixNano()%1_000_000_000) + 1,
		Title:       "Интерстеллар",
		Year:        2014,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)
	require.True(t, stored)

	dispatcher := &recordingDispatcher{}
	matchRepository := infra_postgres_match.New(pgConn)
	uc := usecase_vote.New(
		infra_postgres_vote.New(pgConn),
		matchRepository,
		usecase_movie.New(movies),
		dispatcher,
	)
	matches := usecase_match.New(matchRepository)

	group := freshUsers(3)
	// Submitted out of order on purpose: the group is one set however it is listed.
	reversed := []model.UserID{group[2], group[1], group[0]}

	var matchID uuid.UUID
	for i, voter := range group {
		result, err := uc.Submit(ctx, voter, movieID, reversed, model.DecisionLike)
		require.NoError(t, err)
		if i < len(group)-1 {
			assert.Nil(t, result.Match)
			continue
		}
		require.NotNil(t, result.Match)
		assert.Equal(t, model.Participants(group), result.Match.Participants)
		matchID = result.Match.ID
	}

	// A repeated like returns the existing match without dispatching again.
	again, err := uc.Submit(ctx, group[0], movieID, group, model.DecisionLike)
	require.NoError(t, err)
	require.NotNil(t, again.Match)
	assert.Equal(t, matchID, again.Match.ID)

	found, err := matches.ByGroup(ctx, reversed)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Len(t, dispatcher.matches, 1)

	status, err := uc.Status(ctx, movieID, group)
	require.NoError(t, err)
	assert.Equal(t, 3, status.Likes)
	assert.True(t, status.MatchReady)
}

func TestVoteIntegrationSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseVoteIntegrationSuite))
}
