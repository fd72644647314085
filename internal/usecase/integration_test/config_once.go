package integrationtest

import (
	"math/rand/v2"
	"os"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"github.com/humanbelnik/moviematch/internal/config"
	infra_pg_init "github.com/humanbelnik/moviematch/internal/infra/postgres/init"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/stretchr/testify/require"
)

var (
	cfg     *config.Config
	cfgOnce sync.Once

	db     *sqlx.DB
	dbOnce sync.Once
)

func getConfig() *config.Config {
	cfgOnce.Do(func() {
		cfg = config.FromEnv()
	})
	return cfg
}

// getDB connects to the Postgres named by DB_* variables. The suites skip
// unless INTEGRATION is set.
func getDB(t provider.T) *sqlx.DB {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("INTEGRATION is not set")
	}
	dbOnce.Do(func() {
		db = infra_pg_init.MustEstablishConn(getConfig().Postgres)
	})
	return db
}

func newRedis(t provider.T) *redis.Client {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// freshUsers returns n telegram ids unlikely to collide with earlier runs.
func freshUsers(n int) []model.UserID {
	base := model.UserID(1_000_000_000 + rand.Int64N(1_000_000_000))
	ids := make([]model.UserID, n)
	for i := range ids {
		ids[i] = base + model.UserID(i)
	}
	return ids
}
