package usecase_match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
	mocks "github.com/humanbelnik/moviematch/internal/usecase/match/mocks"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type UsecaseMatchUnitSuite struct {
	suite.Suite

	mockRepo *mocks.MatchRepository
	usecase  *Usecase
	ctx      context.Context
}

func validMatch() model.Match {
	return model.Match{
		ID:           uuid.New(),
		MovieID:      uuid.New(),
		Participants: model.Participants{111, 222, 333},
		MatchedAt:    time.Date(2025, 12, 6, 14, 0, 0, 0, time.UTC),
	}
}

func (s *UsecaseMatchUnitSuite) BeforeEach(t provider.T) {
	s.mockRepo = mocks.NewMatchRepository(t)
	s.usecase = New(s.mockRepo)
	s.ctx = context.Background()
}

func (s *UsecaseMatchUnitSuite) TestByGroup(t provider.T) {
	t.Run("Should look up by canonical key", func(t provider.T) {
		expected := []model.Match{validMatch()}
		s.mockRepo.On("ByGroup", s.ctx, "111,222,333").Return(expected, nil).Once()

		matches, err := s.usecase.ByGroup(s.ctx, []model.UserID{333, 111, 222, 111})

		assert.NoError(t, err)
		assert.Equal(t, expected, matches)
	})

	t.Run("Should reject empty group", func(t provider.T) {
		_, err := s.usecase.ByGroup(s.ctx, nil)

		assert.ErrorIs(t, err, ErrInvalidGroup)
	})

	t.Run("Should wrap repository failure", func(t provider.T) {
		s.mockRepo.On("ByGroup", s.ctx, "1,2").Return(nil, errors.New("timeout")).Once()

		_, err := s.usecase.ByGroup(s.ctx, []model.UserID{2, 1})

		assert.ErrorIs(t, err, model.ErrInternal)
	})
}

func (s *UsecaseMatchUnitSuite) TestByID(t provider.T) {
	t.Run("Should return match", func(t provider.T) {
		m := validMatch()
		s.mockRepo.On("ByID", s.ctx, m.ID).Return(m, nil).Once()

		got, err := s.usecase.ByID(s.ctx, m.ID)

		assert.NoError(t, err)
		assert.Equal(t, m, got)
	})

	t.Run("Should report missing match", func(t provider.T) {
		id := uuid.New()
		s.mockRepo.On("ByID", s.ctx, id).Return(model.Match{}, ErrMatchNotFound).Once()

		_, err := s.usecase.ByID(s.ctx, id)

		assert.ErrorIs(t, err, ErrMatchNotFound)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func (s *UsecaseMatchUnitSuite) TestForUser(t provider.T) {
	t.Run("Should clamp paging", func(t provider.T) {
		s.mockRepo.On("ByParticipant", s.ctx, model.UserID(111), 50, 0).Return([]model.Match{validMatch()}, nil).Once()

		matches, err := s.usecase.ForUser(s.ctx, 111, 1000, -5)

		assert.NoError(t, err)
		assert.Len(t, matches, 1)
	})
}

func (s *UsecaseMatchUnitSuite) TestMarkNotified(t provider.T) {
	id := uuid.New()
	s.mockRepo.On("MarkNotified", s.ctx, id).Return(nil).Once()

	assert.NoError(t, s.usecase.MarkNotified(s.ctx, id))
}

func TestUsecaseMatchUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseMatchUnitSuite))
}
