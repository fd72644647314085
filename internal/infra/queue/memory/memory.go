// Package infra_queue_memory runs the task queue in process on a watermill
// gochannel. Tasks do not survive a restart.
package infra_queue_memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	infra_queue "github.com/humanbelnik/moviematch/internal/infra/queue"
)

const (
	outputBuffer = 256
	retryBackoff = 200 * time.Millisecond
)

type subscription struct {
	taskType string
	handler  infra_queue.Handler
	messages <-chan *message.Message
}

// Bus is both the client and the server side of the in-process queue.
type Bus struct {
	pubsub   *gochannel.GoChannel
	maxRetry int
	backoff  time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	subs []subscription
}

var (
	_ infra_queue.Client = (*Bus)(nil)
	_ infra_queue.Server = (*Bus)(nil)
)

type Option func(*Bus)

func WithBackoff(d time.Duration) Option {
	return func(b *Bus) {
		b.backoff = d
	}
}

func New(maxRetry int, logger *slog.Logger, opts ...Option) *Bus {
	logger = logger.With(slog.String("component", "memory-queue"))
	b := &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: outputBuffer},
			watermill.NewSlogLogger(logger),
		),
		maxRetry: maxRetry,
		backoff:  retryBackoff,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bus) Enqueue(ctx context.Context, t infra_queue.Task) error {
	msg := message.NewMessage(watermill.NewUUID(), t.Payload)
	msg.SetContext(ctx)
	return b.pubsub.Publish(t.Type, msg)
}

// Register subscribes right away so tasks published before Serve are kept.
func (b *Bus) Register(taskType string, h infra_queue.Handler) {
	messages, err := b.pubsub.Subscribe(context.Background(), taskType)
	if err != nil {
		b.logger.Error("failed to subscribe",
			slog.String("type", taskType),
			slog.String("error", err.Error()),
		)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, subscription{taskType: taskType, handler: h, messages: messages})
}

func (b *Bus) Serve(ctx context.Context) error {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.consume(ctx, sub)
		}()
	}
	wg.Wait()
	return ctx.Err()
}

func (b *Bus) consume(ctx context.Context, sub subscription) {
	attempts := make(map[string]int)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.messages:
			if !ok {
				return
			}
			b.process(ctx, sub, msg, attempts)
		}
	}
}

// A failed task is nacked and redelivered by the gochannel until maxRetry
// retries are used up, then it is dropped.
func (b *Bus) process(ctx context.Context, sub subscription, msg *message.Message, attempts map[string]int) {
	err := sub.handler(ctx, infra_queue.Task{Type: sub.taskType, Payload: msg.Payload})
	if err == nil {
		delete(attempts, msg.UUID)
		msg.Ack()
		return
	}

	attempts[msg.UUID]++
	if attempts[msg.UUID] > b.maxRetry {
		b.logger.Error("task dropped after retries",
			slog.String("type", sub.taskType),
			slog.String("message_id", msg.UUID),
			slog.String("error", err.Error()),
		)
		delete(attempts, msg.UUID)
		msg.Ack()
		return
	}

	b.logger.Warn("task failed, retrying",
		slog.String("type", sub.taskType),
		slog.String("message_id", msg.UUID),
		slog.Int("attempt", attempts[msg.UUID]),
		slog.String("error", err.Error()),
	)
	select {
	case <-time.After(b.backoff):
		msg.Nack()
	case <-ctx.Done():
		msg.Nack()
	}
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}

func (b *Bus) String() string {
	return "memory-queue"
}
