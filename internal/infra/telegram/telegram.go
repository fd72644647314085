package infra_telegram

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/humanbelnik/moviematch/internal/config"
	infra_breaker "github.com/humanbelnik/moviematch/internal/infra/breaker"
	"github.com/humanbelnik/moviematch/internal/model"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const breakerName = "telegram"

// PollTimeout is the long polling timeout of getUpdates, in seconds.
const PollTimeout = 30

var ErrBotDisabled = errors.New("telegram: bot is not configured")

// NewBot connects to the Bot API. A missing token yields a nil bot.
func NewBot(cfg config.TelegramBot) (*tgbotapi.BotAPI, error) {
	if cfg.Token == "" {
		return nil, nil
	}
	client := &http.Client{Timeout: cfg.SendTimeout + PollTimeout*time.Second}
	return tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, client)
}

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Sink sends plain text messages through a rate limiter and a circuit breaker.
type Sink struct {
	bot     Sender
	breaker *gobreaker.CircuitBreaker[tgbotapi.Message]
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

func NewSink(bot Sender, cfg config.TelegramBot, logger *slog.Logger) *Sink {
	settings := infra_breaker.DefaultSettings()
	settings.IsSuccessful = isUserError
	return &Sink{
		bot:     bot,
		breaker: infra_breaker.New[tgbotapi.Message](breakerName, settings, logger),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		timeout: cfg.SendTimeout,
		logger:  logger,
	}
}

func (s *Sink) Send(ctx context.Context, to model.UserID, text string) error {
	if s.bot == nil {
		s.logger.Warn("bot is not configured, skipping message", slog.String("user", to.String()))
		return ErrBotDisabled
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := s.breaker.Execute(func() (tgbotapi.Message, error) {
		return s.send(ctx, tgbotapi.NewMessage(int64(to), text))
	})
	return err
}

func (s *Sink) send(ctx context.Context, msg tgbotapi.MessageConfig) (tgbotapi.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		msg tgbotapi.Message
		err error
	}
	done := make(chan result, 1)
	go func() {
		sent, err := s.bot.Send(msg)
		done <- result{msg: sent, err: err}
	}()

	select {
	case r := <-done:
		return r.msg, r.err
	case <-ctx.Done():
		return tgbotapi.Message{}, ctx.Err()
	}
}

// A blocked bot or an unknown chat is a per-user failure.
func isUserError(err error) bool {
	if err == nil {
		return true
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusBadRequest || apiErr.Code == http.StatusForbidden
	}
	return false
}
