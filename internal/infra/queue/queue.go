// Package infra_queue is the task queue port shared by the asynq and
// in-process adapters.
package infra_queue

import "context"

// TaskMatchCreated carries the id of a freshly created match.
const TaskMatchCreated = "match.created"

type Task struct {
	Type    string
	Payload []byte
}

type Handler func(ctx context.Context, t Task) error

type Client interface {
	Enqueue(ctx context.Context, t Task) error
	Close() error
}

type Server interface {
	Register(taskType string, h Handler)
	Serve(ctx context.Context) error
}
