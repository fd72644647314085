package http_match

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	mocks "github.com/humanbelnik/moviematch/internal/delivery/http/match/mocks"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_match "github.com/humanbelnik/moviematch/internal/usecase/match"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MatchControllerUnitSuite struct {
	suite.Suite
}

type resources struct {
	matches *mocks.MatchService
	movies  *mocks.MovieLookup
	engine  *gin.Engine
}

func initResources(t provider.T, withMovies bool) *resources {
	gin.SetMode(gin.TestMode)
	r := &resources{
		matches: mocks.NewMatchService(t),
		movies:  mocks.NewMovieLookup(t),
		engine:  gin.New(),
	}
	var opts []ControllerOption
	if withMovies {
		opts = append(opts, WithMovies(r.movies))
	}
	New(r.matches, opts...).RegisterRoutes(r.engine.Group("/api/v1"))
	return r
}

func (r *resources) get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

var (
	movieID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	matchID = uuid.MustParse("0b9f3d1e-0000-4000-8000-000000000001")
)

func storedMatch() model.Match {
	return model.Match{
		ID:           matchID,
		MovieID:      movieID,
		Participants: model.Participants{111, 222, 333},
		MatchedAt:    time.Date(2025, 12, 6, 14, 0, 0, 0, time.UTC),
	}
}

func (s *MatchControllerUnitSuite) TestByGroup(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		query        string
		setupMocks   func(r *resources)
		expectedCode int
		expectedLen  int
	}{
		{
			name:  "Should list group matches",
			query: "participants=333,111,222",
			setupMocks: func(r *resources) {
				r.matches.On("ByGroup", mock.Anything, []model.UserID{111, 222, 333}).
					Return([]model.Match{storedMatch()}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:         "Should reject malformed participants",
			query:        "participants=111,abc",
			setupMocks:   func(r *resources) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "Should map empty group to 400",
			query: "participants=",
			setupMocks: func(r *resources) {
				r.matches.On("ByGroup", mock.Anything, mock.Anything).
					Return(nil, usecase_match.ErrInvalidGroup).Once()
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "Should hide internal failure",
			query: "participants=111,222",
			setupMocks: func(r *resources) {
				r.matches.On("ByGroup", mock.Anything, mock.Anything).
					Return(nil, errors.Join(model.ErrInternal, errors.New("pq: connection refused"))).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t, false)
			tc.setupMocks(r)

			w := r.get("/api/v1/matches/group?" + tc.query)

			require.Equal(t, tc.expectedCode, w.Code)
			if tc.expectedCode == http.StatusOK {
				var resp []http_common.MatchDTO
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Len(t, resp, tc.expectedLen)
			}
			if tc.expectedCode == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "pq:")
			}
		})
	}
}

func (s *MatchControllerUnitSuite) TestByID(t provider.T) {
	t.Parallel()

	t.Run("Should embed movie", func(t provider.T) {
		t.Parallel()
		r := initResources(t, true)
		r.matches.On("ByID", mock.Anything, matchID).Return(storedMatch(), nil).Once()
		r.movies.On("ByID", mock.Anything, movieID).Return(model.MovieMeta{ID: movieID, Title: "Интерстеллар"}, nil).Once()

		w := r.get("/api/v1/matches/" + matchID.String())

		require.Equal(t, http.StatusOK, w.Code)
		var resp http_common.MatchDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Movie)
		assert.Equal(t, "Интерстеллар", resp.Movie.Title)
		assert.Equal(t, []int64{111, 222, 333}, resp.GroupParticipants)
	})

	t.Run("Should omit movie that failed to load", func(t provider.T) {
		t.Parallel()
		r := initResources(t, true)
		r.matches.On("ByID", mock.Anything, matchID).Return(storedMatch(), nil).Once()
		r.movies.On("ByID", mock.Anything, movieID).Return(model.MovieMeta{}, errors.New("cache down")).Once()

		w := r.get("/api/v1/matches/" + matchID.String())

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), `"movie"`)
	})

	t.Run("Should answer 404 for unknown match", func(t provider.T) {
		t.Parallel()
		r := initResources(t, false)
		r.matches.On("ByID", mock.Anything, matchID).Return(model.Match{}, usecase_match.ErrMatchNotFound).Once()

		w := r.get("/api/v1/matches/" + matchID.String())

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Should reject malformed id", func(t provider.T) {
		t.Parallel()
		r := initResources(t, false)

		w := r.get("/api/v1/matches/not-a-uuid")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func (s *MatchControllerUnitSuite) TestForUser(t provider.T) {
	t.Parallel()

	t.Run("Should look up movie once per distinct film", func(t provider.T) {
		t.Parallel()
		r := initResources(t, true)
		second := storedMatch()
		second.ID = uuid.New()
		second.Participants = model.Participants{111, 444}
		r.matches.On("ForUser", mock.Anything, model.UserID(111), 10, 20).
			Return([]model.Match{storedMatch(), second}, nil).Once()
		r.movies.On("ByID", mock.Anything, movieID).Return(model.MovieMeta{ID: movieID}, nil).Once()

		w := r.get("/api/v1/matches/user/111?limit=10&offset=20")

		require.Equal(t, http.StatusOK, w.Code)
		var resp []http_common.MatchDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
	})

	t.Run("Should reject non positive id", func(t provider.T) {
		t.Parallel()
		r := initResources(t, false)

		w := r.get("/api/v1/matches/user/0")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMatchControllerUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MatchControllerUnitSuite))
}
