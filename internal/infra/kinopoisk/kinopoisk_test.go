package infra_kinopoisk

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/humanbelnik/moviematch/internal/config"
	usecase_movie "github.com/humanbelnik/moviematch/internal/usecase/movie"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type KinopoiskClientUnitSuite struct {
	suite.Suite
}

const filmJSON = `{
	"kinopoiskId": 301,
	"nameRu": "Матрица",
	"nameOriginal": "The Matrix",
	"year": 1999,
	"posterUrl": "https://kinopoiskapiunofficial.tech/images/posters/kp/301.jpg",
	"description": "Жизнь Томаса Андерсона разделена на две части.",
	"ratingKinopoisk": 8.5,
	"genres": [{"genre": "фантастика"}, {"genre": "боевик"}]
}`

func newClient(t provider.T, h http.HandlerFunc) *Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.Kinopoisk{
		APIKey:    "secret",
		BaseURL:   srv.URL + "/api/",
		Timeout:   time.Second,
		RateLimit: 1000,
	}, slog.Default())
}

func (s *KinopoiskClientUnitSuite) TestFilm(t provider.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2.2/films/301", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-KEY"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(filmJSON))
	})

	mm, err := client.Film(context.Background(), 301)

	require.NoError(t, err)
	assert.Equal(t, 301, mm.KinopoiskID)
	assert.Equal(t, "Матрица", mm.Title)
	assert.Equal(t, "The Matrix", mm.TitleOriginal)
	assert.Equal(t, 1999, mm.Year)
	assert.Equal(t, "фантастика, боевик", mm.Genre)
	assert.Equal(t, 8.5, mm.Rating)
	assert.Equal(t, "https://kinopoiskapiunofficial.tech/images/posters/kp/301.jpg", mm.PosterLink)
	assert.NotEmpty(t, mm.Description)
}

func (s *KinopoiskClientUnitSuite) TestFilmFallbacks(t provider.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"nameEn": "Heat", "shortDescription": "Short.", "ratingImdb": 8.3, "posterUrlPreview": "https://x/p.jpg"}`))
	})

	mm, err := client.Film(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, mm.KinopoiskID)
	assert.Equal(t, "Heat", mm.Title)
	assert.Empty(t, mm.TitleOriginal)
	assert.Equal(t, "Short.", mm.Description)
	assert.Equal(t, 8.3, mm.Rating)
	assert.Equal(t, "https://x/p.jpg", mm.PosterLink)
	assert.Zero(t, mm.Year)
}

func (s *KinopoiskClientUnitSuite) TestFilmNotFound(t provider.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Film(context.Background(), 999999)

	assert.ErrorIs(t, err, usecase_movie.ErrMovieNotFound)
}

func (s *KinopoiskClientUnitSuite) TestNotFoundKeepsBreakerClosed(t provider.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	for range 10 {
		_, err := client.Film(context.Background(), 1)
		assert.ErrorIs(t, err, usecase_movie.ErrMovieNotFound)
	}
	assert.Equal(t, int32(10), calls.Load())
}

func (s *KinopoiskClientUnitSuite) TestOutageReportsUnavailableSource(t provider.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for range 5 {
		_, err := client.Film(context.Background(), 1)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, usecase_movie.ErrSourceUnavailable)
	}

	_, err := client.Film(context.Background(), 1)

	assert.ErrorIs(t, err, usecase_movie.ErrSourceUnavailable)
	assert.Equal(t, int32(5), calls.Load())
}

func (s *KinopoiskClientUnitSuite) TestPopular(t provider.T) {
	t.Parallel()

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2.2/films/collections", r.URL.Path)
		assert.Equal(t, "TOP_POPULAR_MOVIES", r.URL.Query().Get("type"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"total": 3, "totalPages": 35, "items": [{"kinopoiskId": 435}, {"kinopoiskId": 0}, {"kinopoiskId": 448}]}`))
	})

	ids, pages, err := client.Popular(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, []int{435, 448}, ids)
	assert.Equal(t, 35, pages)
}

func (s *KinopoiskClientUnitSuite) TestPoster(t provider.T) {
	t.Parallel()

	png := []byte("\x89PNG\r\n\x1a\n0000")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("X-API-KEY"))
		_, _ = w.Write(png)
	}))
	t.Cleanup(srv.Close)
	client := New(config.Kinopoisk{BaseURL: "http://unused", Timeout: time.Second, RateLimit: 1000}, slog.Default())

	poster, err := client.Poster(context.Background(), srv.URL+"/images/posters/kp/301")

	require.NoError(t, err)
	assert.Equal(t, "301.jpg", poster.Filename)
	assert.Equal(t, "image/png", poster.ContentType)
	assert.Equal(t, png, poster.Content)
}

func (s *KinopoiskClientUnitSuite) TestPosterRejectsRelativeLink(t provider.T) {
	client := New(config.Kinopoisk{BaseURL: "http://unused", Timeout: time.Second, RateLimit: 1000}, slog.Default())

	_, err := client.Poster(context.Background(), "posters/301.jpg")

	assert.Error(t, err)
}

func TestKinopoiskClientUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(KinopoiskClientUnitSuite))
}
