package infra_postgres_vote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type VoteInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db     *sqlx.DB
	mock   sqlmock.Sqlmock
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return &resources{
		db:     sqlxDB,
		mock:   mock,
		driver: New(sqlxDB),
		ctx:    context.Background(),
	}
}

var voteColumns = []string{"id", "voter_id", "movie_id", "participants", "decision", "voted_at"}

func validVote() model.Vote {
	return model.Vote{
		ID:           uuid.New(),
		VoterID:      222,
		MovieID:      uuid.New(),
		Participants: model.Participants{111, 222, 333},
		Decision:     model.DecisionLike,
		VotedAt:      time.Date(2025, 12, 6, 14, 0, 0, 0, time.UTC),
	}
}

func (s *VoteInfraUnitSuite) TestUpsert(t provider.T) {
	t.Parallel()

	t.Run("Should store vote with canonical key", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		v := validVote()

		r.mock.ExpectQuery("INSERT INTO votes").
			WithArgs(v.ID, int64(222), v.MovieID, pq.Int64Array{111, 222, 333}, "111,222,333", "like", v.VotedAt).
			WillReturnRows(sqlmock.NewRows(voteColumns).
				AddRow(v.ID.String(), int64(222), v.MovieID.String(), "{111,222,333}", "like", v.VotedAt))

		stored, err := r.driver.Upsert(r.ctx, v)

		require.NoError(t, err)
		assert.Equal(t, v, stored)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should return existing row id on repeat", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		v := validVote()
		existingID := uuid.New()

		r.mock.ExpectQuery("ON CONFLICT \\(voter_id, movie_id, participants_key\\)").
			WillReturnRows(sqlmock.NewRows(voteColumns).
				AddRow(existingID.String(), int64(222), v.MovieID.String(), "{111,222,333}", "dislike", v.VotedAt))

		stored, err := r.driver.Upsert(r.ctx, v)

		require.NoError(t, err)
		assert.Equal(t, existingID, stored.ID)
		assert.Equal(t, model.DecisionDislike, stored.Decision)
	})

	t.Run("Should pass through database failure", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		failure := errors.New("connection reset")
		r.mock.ExpectQuery("INSERT INTO votes").WillReturnError(failure)

		_, err := r.driver.Upsert(r.ctx, validVote())

		assert.ErrorIs(t, err, failure)
	})
}

func (s *VoteInfraUnitSuite) TestLikeVoters(t provider.T) {
	t.Parallel()

	t.Run("Should return distinct likers", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		movieID := uuid.New()

		r.mock.ExpectQuery("SELECT DISTINCT voter_id FROM votes").
			WithArgs(movieID, "111,222", "like").
			WillReturnRows(sqlmock.NewRows([]string{"voter_id"}).AddRow(int64(111)).AddRow(int64(222)))

		voters, err := r.driver.LikeVoters(r.ctx, movieID, "111,222")

		require.NoError(t, err)
		assert.Equal(t, []model.UserID{111, 222}, voters)
	})

	t.Run("Should return empty slice without likes", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		r.mock.ExpectQuery("SELECT DISTINCT voter_id FROM votes").
			WillReturnRows(sqlmock.NewRows([]string{"voter_id"}))

		voters, err := r.driver.LikeVoters(r.ctx, uuid.New(), "1,2")

		require.NoError(t, err)
		assert.Empty(t, voters)
	})
}

func (s *VoteInfraUnitSuite) TestByVoter(t provider.T) {
	r := initResources(t)
	v := validVote()

	r.mock.ExpectQuery("SELECT (.+) FROM votes WHERE voter_id = \\$1").
		WithArgs(int64(222), 20, 40).
		WillReturnRows(sqlmock.NewRows(voteColumns).
			AddRow(v.ID.String(), int64(222), v.MovieID.String(), "{333,111,222}", "like", v.VotedAt))

	votes, err := r.driver.ByVoter(r.ctx, 222, 20, 40)

	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, model.Participants{111, 222, 333}, votes[0].Participants)
}

func (s *VoteInfraUnitSuite) TestByGroup(t provider.T) {
	r := initResources(t)
	v := validVote()

	r.mock.ExpectQuery("SELECT (.+) FROM votes WHERE movie_id = \\$1 AND participants_key = \\$2").
		WithArgs(v.MovieID, "111,222,333").
		WillReturnRows(sqlmock.NewRows(voteColumns).
			AddRow(v.ID.String(), int64(222), v.MovieID.String(), "{111,222,333}", "like", v.VotedAt).
			AddRow(uuid.New().String(), int64(111), v.MovieID.String(), "{111,222,333}", "dislike", v.VotedAt))

	votes, err := r.driver.ByGroup(r.ctx, v.MovieID, "111,222,333")

	require.NoError(t, err)
	assert.Len(t, votes, 2)
	assert.Equal(t, model.DecisionDislike, votes[1].Decision)
}

func TestVoteInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(VoteInfraUnitSuite))
}
