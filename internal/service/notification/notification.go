package service_notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	infra_queue "github.com/humanbelnik/moviematch/internal/infra/queue"
	"github.com/humanbelnik/moviematch/internal/metrics"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_match "github.com/humanbelnik/moviematch/internal/usecase/match"
)

var ErrNoRecipientReached = errors.New("notification: no participant was reached")

type matchCreatedPayload struct {
	MatchID uuid.UUID `json:"match_id"`
}

// Dispatcher turns a new match into a queued task.
type Dispatcher struct {
	client infra_queue.Client
}

func NewDispatcher(client infra_queue.Client) *Dispatcher {
	return &Dispatcher{client: client}
}

func (d *Dispatcher) DispatchMatch(ctx context.Context, m model.Match) error {
	payload, err := json.Marshal(matchCreatedPayload{MatchID: m.ID})
	if err != nil {
		return err
	}
	return d.client.Enqueue(ctx, infra_queue.Task{
		Type:    infra_queue.TaskMatchCreated,
		Payload: payload,
	})
}

//go:generate mockery --name=MatchStore --output=./mocks --filename=match_store.go
type MatchStore interface {
	ByID(ctx context.Context, id uuid.UUID) (model.Match, error)
	MarkNotified(ctx context.Context, id uuid.UUID) error
}

//go:generate mockery --name=MovieCatalog --output=./mocks --filename=movie_catalog.go
type MovieCatalog interface {
	ByID(ctx context.Context, id uuid.UUID) (model.MovieMeta, error)
}

//go:generate mockery --name=Sink --output=./mocks --filename=sink.go
type Sink interface {
	Send(ctx context.Context, to model.UserID, text string) error
}

// Worker delivers match.created tasks to every participant of the match.
type Worker struct {
	matches MatchStore
	movies  MovieCatalog
	sink    Sink
	logger  *slog.Logger
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func NewWorker(matches MatchStore, movies MovieCatalog, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		matches: matches,
		movies:  movies,
		sink:    sink,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Handle processes one task. Returning an error asks the queue to retry.
func (w *Worker) Handle(ctx context.Context, t infra_queue.Task) error {
	var payload matchCreatedPayload
	if err := json.Unmarshal(t.Payload, &payload); err != nil || payload.MatchID == uuid.Nil {
		w.logger.Error("dropping malformed task", slog.String("type", t.Type))
		return nil
	}

	m, err := w.matches.ByID(ctx, payload.MatchID)
	if err != nil {
		if errors.Is(err, usecase_match.ErrMatchNotFound) {
			w.logger.Warn("match is gone", slog.String("match_id", payload.MatchID.String()))
			return nil
		}
		return err
	}
	if m.Notified {
		return nil
	}

	return w.Notify(ctx, m)
}

// Notify sends the match message to each participant and marks the match
// notified once anyone got it.
func (w *Worker) Notify(ctx context.Context, m model.Match) error {
	movie, err := w.movies.ByID(ctx, m.MovieID)
	if err != nil {
		return fmt.Errorf("load movie %s for match %s: %w", m.MovieID, m.ID, err)
	}
	text := Message(movie)

	delivered := 0
	for _, to := range m.Participants {
		if err := w.sink.Send(ctx, to, text); err != nil {
			metrics.NotificationsTotal.WithLabelValues(metrics.StageDeliver, metrics.ResultFailed).Inc()
			w.logger.Error("failed to notify participant",
				slog.String("match_id", m.ID.String()),
				slog.String("user", to.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		metrics.NotificationsTotal.WithLabelValues(metrics.StageDeliver, metrics.ResultOK).Inc()
		delivered++
	}

	if delivered == 0 {
		return ErrNoRecipientReached
	}

	w.logger.Info("match notified",
		slog.String("match_id", m.ID.String()),
		slog.Int("delivered", delivered),
		slog.Int("participants", len(m.Participants)),
	)
	return w.matches.MarkNotified(ctx, m.ID)
}

func Message(movie model.MovieMeta) string {
	var b strings.Builder
	b.WriteString("🎬 Найден матч!\n\n")
	b.WriteString("Фильм: ")
	b.WriteString(movie.Title)
	if movie.Year > 0 {
		fmt.Fprintf(&b, " (%d)", movie.Year)
	}
	b.WriteString("\n\nВсе участники группы лайкнули этот фильм!")
	return b.String()
}
