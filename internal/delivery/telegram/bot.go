package telegram_bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	infra_telegram "github.com/humanbelnik/moviematch/internal/infra/telegram"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_room "github.com/humanbelnik/moviematch/internal/usecase/room"
	usecase_user "github.com/humanbelnik/moviematch/internal/usecase/user"
)

const (
	handleTimeout = 10 * time.Second
	matchesShown  = 10
)

var errUpdatesClosed = errors.New("telegram: updates channel closed")

type Updates interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Replier delivers text to a chat. infra_telegram.Sink satisfies it.
type Replier interface {
	Send(ctx context.Context, chat model.UserID, text string) error
}

//go:generate mockery --name=UserService --output=./mocks --filename=user_service.go
type UserService interface {
	Register(ctx context.Context, id model.UserID, username, firstName string) (model.User, error)
	ByTelegramID(ctx context.Context, id model.UserID) (model.User, error)
	Touch(ctx context.Context, id model.UserID) error
}

//go:generate mockery --name=RoomService --output=./mocks --filename=room_service.go
type RoomService interface {
	Create(ctx context.Context, creator model.UserID) (model.Room, error)
	Join(ctx context.Context, code string, user model.UserID) (model.Room, error)
	Leave(ctx context.Context, user model.UserID, code string) (usecase_room.LeaveResult, error)
	CurrentRoomOf(ctx context.Context, user model.UserID) (*model.Room, error)
	Info(ctx context.Context, code string) (model.RoomInfo, error)
}

//go:generate mockery --name=MatchService --output=./mocks --filename=match_service.go
type MatchService interface {
	ForUser(ctx context.Context, user model.UserID, limit, offset int) ([]model.Match, error)
}

//go:generate mockery --name=MovieLookup --output=./mocks --filename=movie_lookup.go
type MovieLookup interface {
	ByID(ctx context.Context, id uuid.UUID) (model.MovieMeta, error)
}

type Bot struct {
	updates Updates
	replier Replier
	users   UserService
	rooms   RoomService
	matches MatchService
	movies  MovieLookup

	logger *slog.Logger
}

type BotOption func(*Bot)

func WithLogger(logger *slog.Logger) BotOption {
	return func(b *Bot) {
		b.logger = logger
	}
}

func New(
	updates Updates,
	replier Replier,
	users UserService,
	rooms RoomService,
	matches MatchService,
	movies MovieLookup,
	opts ...BotOption,
) *Bot {
	b := &Bot{
		updates: updates,
		replier: replier,
		users:   users,
		rooms:   rooms,
		matches: matches,
		movies:  movies,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Serve long-polls updates and handles them one at a time until ctx ends.
func (b *Bot) Serve(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = infra_telegram.PollTimeout
	ch := b.updates.GetUpdatesChan(cfg)
	b.logger.Info("telegram bot polling started")

	for {
		select {
		case <-ctx.Done():
			b.updates.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-ch:
			if !ok {
				return errUpdatesClosed
			}
			hctx, cancel := context.WithTimeout(ctx, handleTimeout)
			b.Handle(hctx, update)
			cancel()
		}
	}
}

func (b *Bot) String() string {
	return "telegram-bot"
}

// Handle answers one update. Non-command messages are ignored.
func (b *Bot) Handle(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}

	user := model.UserID(msg.From.ID)
	var reply string
	switch msg.Command() {
	case "start":
		reply = b.start(ctx, msg.From)
	case "help":
		reply = helpText
	case "create", "join", "leave", "room", "matches":
		reply = b.registered(ctx, user, msg.Command(), msg.CommandArguments())
	default:
		reply = "Неизвестная команда. Список команд: /help"
	}

	if err := b.replier.Send(ctx, model.UserID(msg.Chat.ID), reply); err != nil {
		b.logger.Warn("failed to reply",
			slog.Int64("chat", msg.Chat.ID),
			slog.String("command", msg.Command()),
			slog.String("error", err.Error()))
	}
}

const helpText = `Команды:
/create - создать комнату
/join КОД - войти в комнату
/leave - выйти из комнаты
/room - участники текущей комнаты
/matches - последние матчи
/help - эта справка`

func (b *Bot) start(ctx context.Context, from *tgbotapi.User) string {
	usr, err := b.users.Register(ctx, model.UserID(from.ID), from.UserName, from.FirstName)
	if err != nil {
		return b.failure("start", err)
	}
	return fmt.Sprintf("Привет, %s! Выбирайте фильмы вместе с друзьями.\n\n%s", usr.FirstName, helpText)
}

func (b *Bot) registered(ctx context.Context, user model.UserID, command, args string) string {
	if _, err := b.users.ByTelegramID(ctx, user); err != nil {
		if errors.Is(err, usecase_user.ErrUserNotFound) {
			return "Сначала отправьте /start"
		}
		return b.failure(command, err)
	}
	if err := b.users.Touch(ctx, user); err != nil {
		b.logger.Warn("failed to touch user", slog.String("user", user.String()), slog.String("error", err.Error()))
	}

	switch command {
	case "create":
		return b.create(ctx, user)
	case "join":
		return b.join(ctx, user, args)
	case "leave":
		return b.leave(ctx, user)
	case "room":
		return b.room(ctx, user)
	default:
		return b.listMatches(ctx, user)
	}
}

func (b *Bot) create(ctx context.Context, user model.UserID) string {
	room, err := b.rooms.Create(ctx, user)
	if err != nil {
		return b.failure("create", err)
	}
	return fmt.Sprintf("Комната создана! Код: %s\nПоделитесь им с друзьями: /join %s", room.Code, room.Code)
}

func (b *Bot) join(ctx context.Context, user model.UserID, args string) string {
	code := strings.TrimSpace(args)
	if code == "" {
		return "Укажите код комнаты: /join КОД"
	}
	room, err := b.rooms.Join(ctx, code, user)
	if err != nil {
		return b.failure("join", err)
	}
	return fmt.Sprintf("Вы в комнате %s. Участников: %d", room.Code, len(room.Participants))
}

func (b *Bot) leave(ctx context.Context, user model.UserID) string {
	room, err := b.rooms.CurrentRoomOf(ctx, user)
	if err != nil {
		return b.failure("leave", err)
	}
	if room == nil {
		return "Вы не состоите в комнате"
	}

	result, err := b.rooms.Leave(ctx, user, room.Code)
	if err != nil {
		return b.failure("leave", err)
	}
	if result.Outcome == usecase_room.LeaveOutcomeRoomRemoved {
		return fmt.Sprintf("Вы вышли из комнаты %s. Комната закрыта", room.Code)
	}
	return fmt.Sprintf("Вы вышли из комнаты %s", room.Code)
}

func (b *Bot) room(ctx context.Context, user model.UserID) string {
	room, err := b.rooms.CurrentRoomOf(ctx, user)
	if err != nil {
		return b.failure("room", err)
	}
	if room == nil {
		return "Вы не состоите в комнате. Создайте: /create"
	}

	info, err := b.rooms.Info(ctx, room.Code)
	if err != nil {
		return b.failure("room", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Комната %s (%d/%d):", info.Room.Code, len(info.Members), info.Capacity)
	for _, m := range info.Members {
		sb.WriteString("\n• ")
		sb.WriteString(m.DisplayName())
	}
	return sb.String()
}

func (b *Bot) listMatches(ctx context.Context, user model.UserID) string {
	matches, err := b.matches.ForUser(ctx, user, matchesShown, 0)
	if err != nil {
		return b.failure("matches", err)
	}
	if len(matches) == 0 {
		return "Матчей пока нет"
	}

	var sb strings.Builder
	sb.WriteString("Ваши матчи:")
	for _, m := range matches {
		sb.WriteString("\n• ")
		movie, err := b.movies.ByID(ctx, m.MovieID)
		if err != nil {
			b.logger.Warn("failed to load match movie", slog.String("movie", m.MovieID.String()), slog.String("error", err.Error()))
			sb.WriteString(m.MovieID.String())
			continue
		}
		sb.WriteString(movie.Title)
		if movie.Year > 0 {
			fmt.Fprintf(&sb, " (%d)", movie.Year)
		}
	}
	return sb.String()
}

// failure turns a usecase error into a reply. Unexpected errors are logged
// and answered generically.
func (b *Bot) failure(command string, err error) string {
	switch {
	case errors.Is(err, usecase_room.ErrAlreadyInRoom):
		return "Вы уже состоите в комнате. Сначала выйдите: /leave"
	case errors.Is(err, usecase_room.ErrAlreadyMember):
		return "Вы уже в этой комнате"
	case errors.Is(err, usecase_room.ErrRoomFull):
		return "Комната заполнена"
	case errors.Is(err, usecase_room.ErrRoomNotFound):
		return "Комната не найдена"
	case errors.Is(err, usecase_room.ErrInvalidCode):
		return "Некорректный код комнаты"
	case errors.Is(err, usecase_room.ErrNotMember):
		return "Вы не состоите в этой комнате"
	case errors.Is(err, model.ErrValidation):
		return "Некорректные данные профиля"
	}

	b.logger.Error("bot command failed", slog.String("command", command), slog.String("error", err.Error()))
	return "Что-то пошло не так, попробуйте позже"
}
