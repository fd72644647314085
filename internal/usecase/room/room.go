package usecase_room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/humanbelnik/moviematch/internal/metrics"
	"github.com/humanbelnik/moviematch/internal/model"
)

var (
	ErrRoomNotFound     = fmt.Errorf("%w: room not found", model.ErrNotFound)
	ErrNotMember        = fmt.Errorf("%w: user is not a member of the room", model.ErrNotFound)
	ErrAlreadyMember    = fmt.Errorf("%w: user is already a member of the room", model.ErrConflict)
	ErrAlreadyInRoom    = fmt.Errorf("%w: user already belongs to a room", model.ErrConflict)
	ErrRoomFull         = fmt.Errorf("%w: room is full", model.ErrConflict)
	ErrInvalidCode      = fmt.Errorf("%w: room code is malformed", model.ErrValidation)
	ErrRoomsUnavailable = fmt.Errorf("%w: no available room codes", model.ErrInternal)

	// ErrCodeConflict is returned by storage when a generated code is taken.
	ErrCodeConflict = errors.New("code conflict")
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

//go:generate mockery --name=RoomRepository --output=./mocks --filename=repository.go
type RoomRepository interface {
	// Create inserts the room with its creator as the only member.
	Create(ctx context.Context, room model.Room) error
	// LockByCode loads the room and holds its row lock until the unit of work ends.
	LockByCode(ctx context.Context, code string) (model.Room, error)
	ByCode(ctx context.Context, code string) (model.Room, error)
	CodeByMember(ctx context.Context, user model.UserID) (string, error)
	AddMember(ctx context.Context, code string, user model.UserID) error
	RemoveMember(ctx context.Context, code string, user model.UserID) error
	Delete(ctx context.Context, code string) error
}

// CodeSet tracks codes of active rooms for a cheap collision pre-check.
// Storage stays authoritative.
//
//go:generate mockery --name=CodeSet --output=./mocks --filename=code_set.go
type CodeSet interface {
	Contains(ctx context.Context, code string) (bool, error)
	Add(ctx context.Context, code string) error
	Remove(ctx context.Context, code string) error
}

//go:generate mockery --name=UserDirectory --output=./mocks --filename=user_directory.go
type UserDirectory interface {
	ByTelegramIDs(ctx context.Context, ids []model.UserID) ([]model.User, error)
}

type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type LeaveOutcome int

const (
	LeaveOutcomeLeft LeaveOutcome = iota + 1
	LeaveOutcomeRoomRemoved
)

type LeaveResult struct {
	Outcome LeaveOutcome
	// Room after the leave. Empty participants when the room was removed.
	Room model.Room
}

type Usecase struct {
	repo  RoomRepository
	tx    Transactor
	codes CodeSet
	users UserDirectory

	maxSize      int
	codeLength   int
	codeAttempts int
	generateCode func(length int) string

	logger *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithLimits(maxSize, codeLength, codeAttempts int) Option {
	return func(u *Usecase) {
		if maxSize > 0 {
			u.maxSize = maxSize
		}
		if codeLength > 0 {
			u.codeLength = codeLength
		}
		if codeAttempts > 0 {
			u.codeAttempts = codeAttempts
		}
	}
}

func WithCodeGenerator(gen func(length int) string) Option {
	return func(u *Usecase) {
		u.generateCode = gen
	}
}

func New(
	repo RoomRepository,
	tx Transactor,
	codes CodeSet,
	users UserDirectory,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		repo:         repo,
		tx:           tx,
		codes:        codes,
		users:        users,
		maxSize:      5,
		codeLength:   6,
		codeAttempts: 10,
		generateCode: randomCode,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) MaxSize() int {
	return u.maxSize
}

// Create opens a room owned by creator with creator as its only member.
func (u *Usecase) Create(ctx context.Context, creator model.UserID) (model.Room, error) {
	var room model.Room
	err := u.tx.Do(ctx, func(ctx context.Context) error {
		if _, err := u.repo.CodeByMember(ctx, creator); err == nil {
			return ErrAlreadyInRoom
		} else if !errors.Is(err, ErrRoomNotFound) {
			return errors.Join(model.ErrInternal, err)
		}

		var err error
		room, err = u.createWithFreshCode(ctx, creator)
		return err
	})
	if err != nil {
		return model.Room{}, model.Internal(err)
	}

	if err := u.codes.Add(ctx, room.Code); err != nil {
		u.logger.Warn("failed to track room code", slog.String("code", room.Code), slog.String("error", err.Error()))
	}
	metrics.RoomsActive.Inc()
	u.logger.Info("room created", slog.String("code", room.Code), slog.Int64("creator", int64(creator)))
	return room, nil
}

// Codes may collide. Retrying with a fresh one.
func (u *Usecase) createWithFreshCode(ctx context.Context, creator model.UserID) (model.Room, error) {
	for range u.codeAttempts {
		code := u.generateCode(u.codeLength)

		taken, err := u.codes.Contains(ctx, code)
		if err != nil {
			u.logger.Warn("code set unavailable, relying on storage", slog.String("error", err.Error()))
		} else if taken {
			continue
		}

		room := model.Room{
			Code:         code,
			CreatorID:    creator,
			Participants: []model.UserID{creator},
		}
		if err := u.repo.Create(ctx, room); err != nil {
			switch {
			case errors.Is(err, ErrCodeConflict):
				continue
			case errors.Is(err, ErrAlreadyInRoom):
				return model.Room{}, ErrAlreadyInRoom
			default:
				return model.Room{}, errors.Join(model.ErrInternal, err)
			}
		}

		created, err := u.repo.ByCode(ctx, code)
		if err != nil {
			return model.Room{}, errors.Join(model.ErrInternal, err)
		}
		return created, nil
	}
	return model.Room{}, ErrRoomsUnavailable
}

func (u *Usecase) Join(ctx context.Context, code string, user model.UserID) (model.Room, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return model.Room{}, err
	}

	var room model.Room
	err = u.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		room, err = u.repo.LockByCode(ctx, code)
		if err != nil {
			if errors.Is(err, ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			return errors.Join(model.ErrInternal, err)
		}

		if room.Has(user) {
			return ErrAlreadyMember
		}
		if len(room.Participants) >= u.maxSize {
			return ErrRoomFull
		}

		if err := u.repo.AddMember(ctx, code, user); err != nil {
			if errors.Is(err, ErrAlreadyInRoom) {
				return ErrAlreadyInRoom
			}
			return errors.Join(model.ErrInternal, err)
		}

		room.Participants = append(room.Participants, user)
		return nil
	})
	if err != nil {
		return model.Room{}, model.Internal(err)
	}

	u.logger.Info("user joined room", slog.String("code", code), slog.Int64("user", int64(user)))
	return room, nil
}

// Leave removes user from the room. The last member leaving deletes the room,
// reported as LeaveOutcomeRoomRemoved.
func (u *Usecase) Leave(ctx context.Context, user model.UserID, code string) (LeaveResult, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return LeaveResult{}, err
	}

	var result LeaveResult
	err = u.tx.Do(ctx, func(ctx context.Context) error {
		room, err := u.repo.LockByCode(ctx, code)
		if err != nil {
			if errors.Is(err, ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			return errors.Join(model.ErrInternal, err)
		}

		if !room.Has(user) {
			return ErrNotMember
		}

		if err := u.repo.RemoveMember(ctx, code, user); err != nil {
			if errors.Is(err, ErrNotMember) {
				return ErrNotMember
			}
			return errors.Join(model.ErrInternal, err)
		}

		remaining := make([]model.UserID, 0, len(room.Participants))
		for _, p := range room.Participants {
			if p != user {
				remaining = append(remaining, p)
			}
		}
		room.Participants = remaining

		if len(remaining) > 0 {
			result = LeaveResult{Outcome: LeaveOutcomeLeft, Room: room}
			return nil
		}

		if err := u.repo.Delete(ctx, code); err != nil {
			return errors.Join(model.ErrInternal, err)
		}
		result = LeaveResult{Outcome: LeaveOutcomeRoomRemoved, Room: room}
		return nil
	})
	if err != nil {
		return LeaveResult{}, model.Internal(err)
	}

	if result.Outcome == LeaveOutcomeRoomRemoved {
		if err := u.codes.Remove(ctx, code); err != nil {
			u.logger.Warn("failed to release room code", slog.String("code", code), slog.String("error", err.Error()))
		}
		metrics.RoomsActive.Dec()
		u.logger.Info("room removed", slog.String("code", code))
	}
	return result, nil
}

// CurrentRoomOf returns nil when user is in no room.
func (u *Usecase) CurrentRoomOf(ctx context.Context, user model.UserID) (*model.Room, error) {
	code, err := u.repo.CodeByMember(ctx, user)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return nil, nil
		}
		return nil, errors.Join(model.ErrInternal, err)
	}

	room, err := u.repo.ByCode(ctx, code)
	if err != nil {
		// Removed between the two reads.
		if errors.Is(err, ErrRoomNotFound) {
			return nil, nil
		}
		return nil, errors.Join(model.ErrInternal, err)
	}
	return &room, nil
}

// Info returns the room with members resolved through the user directory.
// Members unknown to the directory keep only their id.
func (u *Usecase) Info(ctx context.Context, code string) (model.RoomInfo, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return model.RoomInfo{}, err
	}

	room, err := u.repo.ByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.RoomInfo{}, ErrRoomNotFound
		}
		return model.RoomInfo{}, errors.Join(model.ErrInternal, err)
	}

	known, err := u.users.ByTelegramIDs(ctx, room.Participants)
	if err != nil {
		return model.RoomInfo{}, errors.Join(model.ErrInternal, err)
	}

	byID := make(map[model.UserID]model.User, len(known))
	for _, usr := range known {
		byID[usr.TelegramID] = usr
	}

	members := make([]model.User, 0, len(room.Participants))
	for _, id := range room.Participants {
		usr, ok := byID[id]
		if !ok {
			usr = model.User{TelegramID: id}
		}
		members = append(members, usr)
	}

	return model.RoomInfo{
		Room:     room,
		Members:  members,
		Capacity: u.maxSize,
	}, nil
}

func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrInvalidCode
	}
	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			return "", ErrInvalidCode
		}
	}
	return code, nil
}

func randomCode(length int) string {
	var builder strings.Builder
	builder.Grow(length)

	for range length {
		builder.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}

	return builder.String()
}
