package infra_queue_asynq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/humanbelnik/moviematch/internal/config"
	infra_queue "github.com/humanbelnik/moviematch/internal/infra/queue"
	infra_redis_init "github.com/humanbelnik/moviematch/internal/infra/redis/init"
)

const (
	queueName   = "notifications"
	taskTimeout = 30 * time.Second
)

var ErrEmptyTaskType = errors.New("asynq: task type is required")

func RedisOpt(cfg config.RedisCache) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     infra_redis_init.Addr(cfg),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

type Client struct {
	client   *asynq.Client
	maxRetry int
}

var _ infra_queue.Client = (*Client)(nil)

func NewClient(opt asynq.RedisConnOpt, cfg config.Queue) *Client {
	return &Client{
		client:   asynq.NewClient(opt),
		maxRetry: cfg.MaxRetry,
	}
}

func (c *Client) Enqueue(ctx context.Context, t infra_queue.Task) error {
	if t.Type == "" {
		return ErrEmptyTaskType
	}
	_, err := c.client.EnqueueContext(ctx, asynq.NewTask(t.Type, t.Payload),
		asynq.Queue(queueName),
		asynq.MaxRetry(c.maxRetry),
		asynq.Timeout(taskTimeout),
	)
	if err != nil {
		return fmt.Errorf("asynq: enqueue %s: %w", t.Type, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Server consumes tasks from Redis. It runs as a supervised service.
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

var _ infra_queue.Server = (*Server)(nil)

func NewServer(opt asynq.RedisConnOpt, cfg config.Queue, logger *slog.Logger) *Server {
	logger = logger.With(slog.String("component", "asynq"))
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{queueName: 1},
		Logger:      &slogAdapter{logger: logger},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Warn("task failed",
				slog.String("type", task.Type()),
				slog.Int("retried", retried),
				slog.Int("max_retry", maxRetry),
				slog.String("error", err.Error()),
			)
		}),
	})
	return &Server{
		server: srv,
		mux:    asynq.NewServeMux(),
		logger: logger,
	}
}

func (s *Server) Register(taskType string, h infra_queue.Handler) {
	s.mux.HandleFunc(taskType, func(ctx context.Context, t *asynq.Task) error {
		return h(ctx, infra_queue.Task{Type: t.Type(), Payload: t.Payload()})
	})
}

// Serve starts the workers and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	s.server.Shutdown()
	return ctx.Err()
}

func (s *Server) String() string {
	return "asynq-server"
}

type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Debug(args ...any) { a.logger.Debug(fmt.Sprint(args...)) }
func (a *slogAdapter) Info(args ...any)  { a.logger.Info(fmt.Sprint(args...)) }
func (a *slogAdapter) Warn(args ...any)  { a.logger.Warn(fmt.Sprint(args...)) }
func (a *slogAdapter) Error(args ...any) { a.logger.Error(fmt.Sprint(args...)) }

// Fatal does not exit, the supervisor owns the process lifetime.
func (a *slogAdapter) Fatal(args ...any) { a.logger.Error(fmt.Sprint(args...)) }
