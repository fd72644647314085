package infra_postgres_movie

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_movie "github.com/humanbelnik/moviematch/internal/usecase/movie"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovieInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db         *sqlx.DB
	mock       sqlmock.Sqlmock
	repository *Repository
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return &resources{
		db:         sqlxDB,
		mock:       mock,
		repository: New(sqlxDB),
		ctx:        context.Background(),
	}
}

var columns = []string{
	"id", "kinopoisk_id", "title", "title_original", "year", "genre",
	"poster_link", "description", "rating", "is_active", "created_at",
}

type MovieMetaBuilder struct {
	mm model.MovieMeta
}

func NewMovieMetaBuilder() *MovieMetaBuilder {
	return &MovieMetaBuilder{
		mm: model.MovieMeta{
			ID:            uuid.New(),
			KinopoiskID:   435,
			Title:         "Зеленая миля",
			TitleOriginal: "The Green Mile",
			Year:          1999,
			Genre:         "драма",
			PosterLink:    "https://kinopoiskapiunofficial.tech/images/posters/kp/435.jpg",
			Description:   "Пол Эджкомб, начальник блока смертников.",
			Rating:        9.1,
			IsActive:      true,
			CreatedAt:     time.Date(2025, 9, 25, 12, 0, 0, 0, time.UTC),
		},
	}
}

func (b *MovieMetaBuilder) Build() model.MovieMeta {
	return b.mm
}

func row(mm model.MovieMeta) []driver.Value {
	return []driver.Value{
		mm.ID.String(), mm.KinopoiskID, mm.Title, mm.TitleOriginal, mm.Year, mm.Genre,
		mm.PosterLink, mm.Description, mm.Rating, mm.IsActive, mm.CreatedAt,
	}
}

func (s *MovieInfraUnitSuite) TestByID(t provider.T) {
	t.Parallel()

	t.Run("Should load movie", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		mm := NewMovieMetaBuilder().Build()
		r.mock.ExpectQuery("SELECT (.+) FROM movies WHERE id = \\$1").
			WithArgs(mm.ID).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(row(mm)...))

		got, err := r.repository.ByID(r.ctx, mm.ID)

		require.NoError(t, err)
		assert.Equal(t, mm, got)
	})

	t.Run("Should report missing movie", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		r.mock.ExpectQuery("SELECT (.+) FROM movies").WillReturnError(sql.ErrNoRows)

		_, err := r.repository.ByID(r.ctx, uuid.New())

		assert.ErrorIs(t, err, usecase_movie.ErrMovieNotFound)
	})
}

func (s *MovieInfraUnitSuite) TestRandom(t provider.T) {
	r := initResources(t)
	mm := NewMovieMetaBuilder().Build()
	r.mock.ExpectQuery("WHERE is_active ORDER BY random\\(\\) LIMIT 1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(row(mm)...))

	got, err := r.repository.Random(r.ctx)

	require.NoError(t, err)
	assert.Equal(t, mm.ID, got.ID)
}

func (s *MovieInfraUnitSuite) TestStore(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		affected int64
		expected bool
	}{
		{name: "Should report inserted movie", affected: 1, expected: true},
		{name: "Should report known kinopoisk id", affected: 0, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			r.mock.ExpectExec("INSERT INTO movies (.+) ON CONFLICT \\(kinopoisk_id\\) DO NOTHING").
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			stored, err := r.repository.Store(r.ctx, NewMovieMetaBuilder().Build())

			require.NoError(t, err)
			assert.Equal(t, tc.expected, stored)
		})
	}
}

func (s *MovieInfraUnitSuite) TestUpdate(t provider.T) {
	t.Parallel()

	t.Run("Should report missing movie", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		r.mock.ExpectExec("UPDATE movies").WillReturnResult(sqlmock.NewResult(0, 0))

		err := r.repository.Update(r.ctx, NewMovieMetaBuilder().Build())

		assert.ErrorIs(t, err, usecase_movie.ErrMovieNotFound)
	})

	t.Run("Should wrap database failure", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		failure := errors.New("deadlock")
		r.mock.ExpectExec("UPDATE movies").WillReturnError(failure)

		err := r.repository.Update(r.ctx, NewMovieMetaBuilder().Build())

		assert.ErrorIs(t, err, failure)
	})
}

func (s *MovieInfraUnitSuite) TestExists(t provider.T) {
	r := initResources(t)
	id := uuid.New()
	r.mock.ExpectQuery("SELECT EXISTS").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := r.repository.Exists(r.ctx, id)

	require.NoError(t, err)
	assert.True(t, ok)
}

func (s *MovieInfraUnitSuite) TestIncomplete(t provider.T) {
	r := initResources(t)
	mm := NewMovieMetaBuilder().Build()
	mm.Description = ""
	r.mock.ExpectQuery("WHERE poster_link NOT LIKE 'http%' OR description = ''").
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(row(mm)...))

	movies, err := r.repository.Incomplete(r.ctx, 100)

	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.True(t, movies[0].Incomplete())
}

func (s *MovieInfraUnitSuite) TestDeleteOldest(t provider.T) {
	r := initResources(t)
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	r.mock.ExpectQuery("DELETE FROM movies (.+) NOT EXISTS \\(SELECT 1 FROM matches").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(ids[0].String()).AddRow(ids[1].String()))

	removed, err := r.repository.DeleteOldest(r.ctx, 2)

	require.NoError(t, err)
	assert.Equal(t, ids, removed)
}

func (s *MovieInfraUnitSuite) TestCountActive(t provider.T) {
	r := initResources(t)
	r.mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM movies WHERE is_active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := r.repository.CountActive(r.ctx)

	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestMovieInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MovieInfraUnitSuite))
}
