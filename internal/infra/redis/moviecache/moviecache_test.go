package infra_redis_moviecache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovieCacheInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	server *miniredis.Miniredis
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &resources{
		server: server,
		driver: New(client, "movie", time.Hour),
		ctx:    context.Background(),
	}
}

func validMovie() model.MovieMeta {
	return model.MovieMeta{
		ID:          uuid.New(),
		KinopoiskID: 448,
		Title:       "Форрест Гамп",
		Year:        1994,
		Genre:       "драма",
		PosterLink:  "https://kinopoiskapiunofficial.tech/images/posters/kp/448.jpg",
		Rating:      8.9,
		IsActive:    true,
		CreatedAt:   time.Date(2025, 9, 25, 12, 0, 0, 0, time.UTC),
	}
}

func (s *MovieCacheInfraUnitSuite) TestSetGet(t provider.T) {
	r := initResources(t)
	mm := validMovie()

	require.NoError(t, r.driver.Set(r.ctx, mm))

	got, ok, err := r.driver.Get(r.ctx, mm.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mm, got)
	assert.Equal(t, time.Hour, r.server.TTL("movie:"+mm.ID.String()))
}

func (s *MovieCacheInfraUnitSuite) TestMiss(t provider.T) {
	r := initResources(t)

	_, ok, err := r.driver.Get(r.ctx, uuid.New())

	require.NoError(t, err)
	assert.False(t, ok)
}

func (s *MovieCacheInfraUnitSuite) TestExpiry(t provider.T) {
	r := initResources(t)
	mm := validMovie()
	require.NoError(t, r.driver.Set(r.ctx, mm))

	r.server.FastForward(time.Hour + time.Second)

	_, ok, err := r.driver.Get(r.ctx, mm.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func (s *MovieCacheInfraUnitSuite) TestDelete(t provider.T) {
	r := initResources(t)
	mm := validMovie()
	require.NoError(t, r.driver.Set(r.ctx, mm))

	require.NoError(t, r.driver.Delete(r.ctx, mm.ID))

	_, ok, err := r.driver.Get(r.ctx, mm.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func (s *MovieCacheInfraUnitSuite) TestCorruptEntry(t provider.T) {
	r := initResources(t)
	id := uuid.New()
	require.NoError(t, r.server.Set("movie:"+id.String(), "{not json"))

	_, _, err := r.driver.Get(r.ctx, id)

	assert.Error(t, err)
}

func TestMovieCacheInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MovieCacheInfraUnitSuite))
}
