package usecase_user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
)

var (
	ErrUserNotFound      = fmt.Errorf("%w: user not found", model.ErrNotFound)
	ErrInvalidTelegramID = fmt.Errorf("%w: telegram id must be positive", model.ErrValidation)
	ErrEmptyName         = fmt.Errorf("%w: first name is required", model.ErrValidation)
)

//go:generate mockery --name=Repository --output=./mocks --filename=repository.go
type Repository interface {
	// Upsert inserts u or refreshes the profile of the same telegram id,
	// keeping the stored row id.
	Upsert(ctx context.Context, u model.User) (model.User, error)
	ByTelegramID(ctx context.Context, id model.UserID) (model.User, error)
	ByTelegramIDs(ctx context.Context, ids []model.UserID) ([]model.User, error)
	Touch(ctx context.Context, id model.UserID, at time.Time) error
}

type Usecase struct {
	repo   Repository
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(u *Usecase) {
		u.now = now
	}
}

func New(repo Repository, opts ...Option) *Usecase {
	u := &Usecase{
		repo:   repo,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Register creates the user on first contact and refreshes the profile later.
func (u *Usecase) Register(ctx context.Context, id model.UserID, username, firstName string) (model.User, error) {
	if id <= 0 {
		return model.User{}, ErrInvalidTelegramID
	}
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return model.User{}, ErrEmptyName
	}

	stored, err := u.repo.Upsert(ctx, model.User{
		ID:         uuid.New(),
		TelegramID: id,
		Username:   strings.TrimPrefix(strings.TrimSpace(username), "@"),
		FirstName:  firstName,
		LastActive: u.now(),
	})
	if err != nil {
		return model.User{}, errors.Join(model.ErrInternal, err)
	}

	u.logger.Debug("user registered", slog.Int64("telegram_id", int64(id)))
	return stored, nil
}

func (u *Usecase) ByTelegramID(ctx context.Context, id model.UserID) (model.User, error) {
	usr, err := u.repo.ByTelegramID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, errors.Join(model.ErrInternal, err)
	}
	return usr, nil
}

// ByTelegramIDs skips ids without a profile.
func (u *Usecase) ByTelegramIDs(ctx context.Context, ids []model.UserID) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	users, err := u.repo.ByTelegramIDs(ctx, ids)
	if err != nil {
		return nil, errors.Join(model.ErrInternal, err)
	}
	return users, nil
}

// Touch records activity. Unknown users are ignored.
func (u *Usecase) Touch(ctx context.Context, id model.UserID) error {
	if err := u.repo.Touch(ctx, id, u.now()); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return errors.Join(model.ErrInternal, err)
	}
	return nil
}
