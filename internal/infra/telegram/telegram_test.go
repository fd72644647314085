package infra_telegram

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/humanbelnik/moviematch/internal/config"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TelegramSinkUnitSuite struct {
	suite.Suite
}

type fakeSender struct {
	mu    sync.Mutex
	sent  []tgbotapi.MessageConfig
	err   error
	delay time.Duration
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func testConfig() config.TelegramBot {
	return config.TelegramBot{RateLimit: 1000, SendTimeout: time.Second}
}

func (s *TelegramSinkUnitSuite) TestSend(t provider.T) {
	t.Parallel()

	sender := &fakeSender{}
	sink := NewSink(sender, testConfig(), slog.Default())

	require.NoError(t, sink.Send(context.Background(), 111, "hello"))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(111), sender.sent[0].ChatID)
	assert.Equal(t, "hello", sender.sent[0].Text)
}

func (s *TelegramSinkUnitSuite) TestSendWithoutBot(t provider.T) {
	t.Parallel()

	sink := NewSink(nil, testConfig(), slog.Default())

	assert.ErrorIs(t, sink.Send(context.Background(), 111, "hello"), ErrBotDisabled)
}

func (s *TelegramSinkUnitSuite) TestSendTimeout(t provider.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.SendTimeout = 10 * time.Millisecond
	sink := NewSink(&fakeSender{delay: 200 * time.Millisecond}, cfg, slog.Default())

	assert.ErrorIs(t, sink.Send(context.Background(), 111, "hello"), context.DeadlineExceeded)
}

func (s *TelegramSinkUnitSuite) TestBlockedUserDoesNotOpenBreaker(t provider.T) {
	t.Parallel()

	blocked := &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}
	sink := NewSink(&fakeSender{err: blocked}, testConfig(), slog.Default())

	for range 10 {
		err := sink.Send(context.Background(), 111, "hello")
		assert.ErrorIs(t, err, blocked)
	}
	assert.Equal(t, gobreaker.StateClosed, sink.breaker.State())
}

func (s *TelegramSinkUnitSuite) TestOutageOpensBreaker(t provider.T) {
	t.Parallel()

	sink := NewSink(&fakeSender{err: errors.New("connection refused")}, testConfig(), slog.Default())

	for range 5 {
		_ = sink.Send(context.Background(), 111, "hello")
	}

	assert.ErrorIs(t, sink.Send(context.Background(), 111, "hello"), gobreaker.ErrOpenState)
}

func (s *TelegramSinkUnitSuite) TestNewBotWithoutToken(t provider.T) {
	bot, err := NewBot(config.TelegramBot{})

	require.NoError(t, err)
	assert.Nil(t, bot)
}

func TestTelegramSinkUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(TelegramSinkUnitSuite))
}
