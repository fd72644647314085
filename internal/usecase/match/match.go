package usecase_match

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
)

var (
	ErrMatchNotFound = fmt.Errorf("%w: match not found", model.ErrNotFound)
	ErrInvalidGroup  = fmt.Errorf("%w: participant set is empty", model.ErrValidation)
)

//go:generate mockery --name=MatchRepository --output=./mocks --filename=repository.go
type MatchRepository interface {
	ByMovieAndGroup(ctx context.Context, movieID uuid.UUID, groupKey string) (model.Match, error)
	// CreateOrGet inserts m unless a match for the same movie and group exists.
	// The bool reports whether this call inserted the row.
	CreateOrGet(ctx context.Context, m model.Match) (model.Match, bool, error)
	ByID(ctx context.Context, id uuid.UUID) (model.Match, error)
	ByGroup(ctx context.Context, groupKey string) ([]model.Match, error)
	ByParticipant(ctx context.Context, user model.UserID, limit, offset int) ([]model.Match, error)
	MarkNotified(ctx context.Context, id uuid.UUID) error
}

type Usecase struct {
	repo MatchRepository
}

func New(repo MatchRepository) *Usecase {
	return &Usecase{repo: repo}
}

func (u *Usecase) ByID(ctx context.Context, id uuid.UUID) (model.Match, error) {
	m, err := u.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, errors.Join(model.ErrInternal, err)
	}
	return m, nil
}

// ByGroup lists the matches of exactly this participant set.
func (u *Usecase) ByGroup(ctx context.Context, participants []model.UserID) ([]model.Match, error) {
	group := model.NormalizeParticipants(participants)
	if len(group) == 0 {
		return nil, ErrInvalidGroup
	}

	matches, err := u.repo.ByGroup(ctx, group.Key())
	if err != nil {
		return nil, errors.Join(model.ErrInternal, err)
	}
	return matches, nil
}

// ForUser lists matches of every group the user took part in.
func (u *Usecase) ForUser(ctx context.Context, user model.UserID, limit, offset int) ([]model.Match, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	matches, err := u.repo.ByParticipant(ctx, user, limit, offset)
	if err != nil {
		return nil, errors.Join(model.ErrInternal, err)
	}
	return matches, nil
}

func (u *Usecase) MarkNotified(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.MarkNotified(ctx, id); err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return errors.Join(model.ErrInternal, err)
	}
	return nil
}
