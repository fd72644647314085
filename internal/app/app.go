package app

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/humanbelnik/moviematch/internal/config"
	http_init "github.com/humanbelnik/moviematch/internal/delivery/http/init"
	http_match "github.com/humanbelnik/moviematch/internal/delivery/http/match"
	http_movie "github.com/humanbelnik/moviematch/internal/delivery/http/movie"
	http_room "github.com/humanbelnik/moviematch/internal/delivery/http/room"
	http_swagger "github.com/humanbelnik/moviematch/internal/delivery/http/swagger"
	http_user "github.com/humanbelnik/moviematch/internal/delivery/http/user"
	http_voting "github.com/humanbelnik/moviematch/internal/delivery/http/voting"
	telegram_bot "github.com/humanbelnik/moviematch/internal/delivery/telegram"
	infra_kinopoisk "github.com/humanbelnik/moviematch/internal/infra/kinopoisk"
	infra_pg_init "github.com/humanbelnik/moviematch/internal/infra/postgres/init"
	infra_postgres_match "github.com/humanbelnik/moviematch/internal/infra/postgres/match"
	infra_postgres_movie "github.com/humanbelnik/moviematch/internal/infra/postgres/movie"
	infra_postgres_room "github.com/humanbelnik/moviematch/internal/infra/postgres/room"
	infra_postgres_tx "github.com/humanbelnik/moviematch/internal/infra/postgres/tx"
	infra_postgres_user "github.com/humanbelnik/moviematch/internal/infra/postgres/user"
	infra_postgres_vote "github.com/humanbelnik/moviematch/internal/infra/postgres/vote"
	infra_queue "github.com/humanbelnik/moviematch/internal/infra/queue"
	infra_queue_asynq "github.com/humanbelnik/moviematch/internal/infra/queue/asynq"
	infra_queue_memory "github.com/humanbelnik/moviematch/internal/infra/queue/memory"
	infra_redis_codeset "github.com/humanbelnik/moviematch/internal/infra/redis/codeset"
	infra_redis_init "github.com/humanbelnik/moviematch/internal/infra/redis/init"
	infra_redis_moviecache "github.com/humanbelnik/moviematch/internal/infra/redis/moviecache"
	infra_s3 "github.com/humanbelnik/moviematch/internal/infra/s3"
	infra_telegram "github.com/humanbelnik/moviematch/internal/infra/telegram"
	"github.com/humanbelnik/moviematch/internal/metrics"
	service_catalog "github.com/humanbelnik/moviematch/internal/service/catalog"
	service_notification "github.com/humanbelnik/moviematch/internal/service/notification"
	usecase_match "github.com/humanbelnik/moviematch/internal/usecase/match"
	usecase_movie "github.com/humanbelnik/moviematch/internal/usecase/movie"
	usecase_room "github.com/humanbelnik/moviematch/internal/usecase/room"
	usecase_user "github.com/humanbelnik/moviematch/internal/usecase/user"
	usecase_vote "github.com/humanbelnik/moviematch/internal/usecase/vote"
	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

const (
	codeSetKey    = "rooms:codes"
	movieCacheKey = "movie"
)

func Go(cfg *config.Config) {
	logger := NewLogger(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	defer redisConn.Close()
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	defer pgConn.Close()

	roomRepository := infra_postgres_room.New(pgConn)
	userRepository := infra_postgres_user.New(pgConn)
	voteRepository := infra_postgres_vote.New(pgConn)
	matchRepository := infra_postgres_match.New(pgConn)
	movieRepository := infra_postgres_movie.New(pgConn)
	codeSet := infra_redis_codeset.New(redisConn, codeSetKey)

	if err := resyncCodes(ctx, roomRepository, codeSet); err != nil {
		log.Fatalf("failed to resync room codes: %v", err)
	}

	movieOpts := []usecase_movie.Option{
		usecase_movie.WithLogger(logger),
		usecase_movie.WithCache(infra_redis_moviecache.New(redisConn, movieCacheKey, cfg.Catalog.CacheTTL)),
		usecase_movie.WithCatalogLimits(cfg.Catalog.MinActive, cfg.Catalog.MaxSize, cfg.Catalog.ImportPages),
	}
	if cfg.Kinopoisk.APIKey != "" {
		movieOpts = append(movieOpts, usecase_movie.WithSource(infra_kinopoisk.New(cfg.Kinopoisk, logger)))
	} else {
		logger.Warn("kinopoisk api key is not set, catalog import disabled")
	}
	if cfg.S3.Enabled() {
		client, err := infra_s3.NewClient(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("failed to configure s3 client: %v", err)
		}
		posters, err := infra_s3.New(ctx, client, cfg.S3, logger)
		if err != nil {
			log.Fatalf("failed to open poster storage: %v", err)
		}
		movieOpts = append(movieOpts, usecase_movie.WithPosterStore(posters))
	}

	queueClient, queueServer := newQueue(cfg, logger)
	defer queueClient.Close()

	userUC := usecase_user.New(userRepository, usecase_user.WithLogger(logger))
	movieUC := usecase_movie.New(movieRepository, movieOpts...)
	matchUC := usecase_match.New(matchRepository)
	roomUC := usecase_room.New(
		roomRepository,
		infra_postgres_tx.New(pgConn),
		codeSet,
		userUC,
		usecase_room.WithLogger(logger),
		usecase_room.WithLimits(cfg.Rooms.MaxSize, cfg.Rooms.CodeLength, cfg.Rooms.CodeAttempts),
	)
	voteUC := usecase_vote.New(
		voteRepository,
		matchRepository,
		movieUC,
		service_notification.NewDispatcher(queueClient),
		usecase_vote.WithLogger(logger),
		usecase_vote.WithMaxGroupSize(cfg.Matching.MaxGroupSize),
		usecase_vote.WithDispatchTimeout(cfg.Matching.DispatchTimeout),
	)

	bot, err := infra_telegram.NewBot(cfg.TelegramBot)
	if err != nil {
		log.Fatalf("failed to connect telegram bot: %v", err)
	}
	// A nil *BotAPI must not become a non-nil Sender.
	var sender infra_telegram.Sender
	if bot != nil {
		sender = bot
	} else {
		logger.Warn("telegram bot token is not set, notifications and commands disabled")
	}
	sink := infra_telegram.NewSink(sender, cfg.TelegramBot, logger)

	worker := service_notification.NewWorker(matchUC, movieUC, sink, service_notification.WithLogger(logger))
	queueServer.Register(infra_queue.TaskMatchCreated, worker.Handle)

	controllerPool := http_init.NewControllerPool(cfg.HTTP,
		http_init.WithLogger(logger),
		http_init.WithProbe("postgres", pgConn.PingContext),
		http_init.WithProbe("redis", func(ctx context.Context) error {
			return redisConn.WithContext(ctx).Ping().Err()
		}),
	)
	controllerPool.Add(http_swagger.New(""))
	controllerPool.Add(http_user.New(userUC, http_user.WithLogger(logger)))
	controllerPool.Add(http_movie.New(movieUC, http_movie.WithLogger(logger)))
	controllerPool.Add(http_voting.New(voteUC, userUC, http_voting.WithLogger(logger)))
	controllerPool.Add(http_match.New(matchUC, http_match.WithMovies(movieUC), http_match.WithLogger(logger)))
	controllerPool.Add(http_room.New(roomUC, http_room.WithLogger(logger)))
	controllerPool.Register()

	handler := &sutureslog.Handler{Logger: logger}
	root := suture.New("moviematch", suture.Spec{
		EventHook:        handler.MustHook(),
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		Timeout:          cfg.HTTP.ShutdownTimeout,
	})
	root.Add(controllerPool)
	root.Add(queueServer)
	root.Add(service_catalog.NewMaintainer(movieUC, cfg.Catalog.RefreshInterval, logger))
	if bot != nil {
		root.Add(telegram_bot.New(bot, sink, userUC, roomUC, matchUC, movieUC, telegram_bot.WithLogger(logger)))
	}

	logger.Info("moviematch started")
	if err := root.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("supervisor stopped", slog.String("error", err.Error()))
	}
	logger.Info("moviematch stopped")
}

type queueService interface {
	infra_queue.Server
	suture.Service
}

func newQueue(cfg *config.Config, logger *slog.Logger) (infra_queue.Client, queueService) {
	if cfg.Queue.Backend == "memory" {
		bus := infra_queue_memory.New(cfg.Queue.MaxRetry, logger)
		return bus, bus
	}
	opt := infra_queue_asynq.RedisOpt(cfg.Redis)
	return infra_queue_asynq.NewClient(opt, cfg.Queue), infra_queue_asynq.NewServer(opt, cfg.Queue, logger)
}

type codeSource interface {
	Codes(ctx context.Context) ([]string, error)
}

type codeSink interface {
	Reset(ctx context.Context, codes []string) error
}

// resyncCodes rebuilds the Redis code set from Postgres, the source of truth.
func resyncCodes(ctx context.Context, rooms codeSource, set codeSink) error {
	codes, err := rooms.Codes(ctx)
	if err != nil {
		return err
	}
	if err := set.Reset(ctx, codes); err != nil {
		return err
	}
	metrics.RoomsActive.Set(float64(len(codes)))
	return nil
}
