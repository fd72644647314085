package http_voting

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_vote "github.com/humanbelnik/moviematch/internal/usecase/vote"
)

//go:generate mockery --name=VoteService --output=./mocks --filename=vote_service.go
type VoteService interface {
	Submit(ctx context.Context, voter model.UserID, movieID uuid.UUID, participants []model.UserID, decision model.Decision) (usecase_vote.SubmitResult, error)
	Status(ctx context.Context, movieID uuid.UUID, participants []model.UserID) (model.VoteStatus, error)
	VotesOf(ctx context.Context, voter model.UserID, limit, offset int) ([]model.Vote, error)
}

//go:generate mockery --name=UserDirectory --output=./mocks --filename=user_directory.go
type UserDirectory interface {
	ByTelegramID(ctx context.Context, id model.UserID) (model.User, error)
	Touch(ctx context.Context, id model.UserID) error
}

type Controller struct {
	uc    VoteService
	users UserDirectory

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	uc VoteService,
	users UserDirectory,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		uc:     uc,
		users:  users,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	swipes := router.Group("/swipes")
	swipes.POST("", c.swipe)
	swipes.GET("/status", c.status)
	swipes.GET("/user/:telegram_id", c.history)
}

// SwipeRequestDTO
type SwipeRequestDTO struct {
	MovieID           uuid.UUID `json:"movie_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	SwipeType         string    `json:"swipe_type" binding:"required" example:"like" enums:"like,dislike"`
	GroupParticipants []int64   `json:"group_participants" binding:"required" example:"111,222,333"`
}

// SwipeResponseDTO
type SwipeResponseDTO struct {
	ID                uuid.UUID             `json:"id"`
	VoterID           int64                 `json:"voter_id" example:"111"`
	MovieID           uuid.UUID             `json:"movie_id"`
	SwipeType         string                `json:"swipe_type" example:"like"`
	SwipedAt          time.Time             `json:"swiped_at"`
	GroupParticipants []int64               `json:"group_participants" example:"111,222,333"`
	MatchFound        bool                  `json:"match_found"`
	Match             *http_common.MatchDTO `json:"match,omitempty"`
}

func fromVote(v model.Vote) SwipeResponseDTO {
	return SwipeResponseDTO{
		ID:                v.ID,
		VoterID:           int64(v.VoterID),
		MovieID:           v.MovieID,
		SwipeType:         string(v.Decision),
		SwipedAt:          v.VotedAt,
		GroupParticipants: v.Participants.Int64s(),
	}
}

// VoteStatusResponseDTO
type VoteStatusResponseDTO struct {
	TotalParticipants int               `json:"total_participants" example:"3"`
	LikesCount        int               `json:"likes_count" example:"2"`
	DislikesCount     int               `json:"dislikes_count" example:"0"`
	Votes             map[string]string `json:"votes"`
	MatchReady        bool              `json:"match_ready"`
}

// @Summary Свайп фильма
// @Description Сохраняет голос участника группы и проверяет матч
// @Tags Swipes
// @Accept json
// @Produce json
// @Param X-Telegram-Id header int true "Telegram ID голосующего"
// @Param request body SwipeRequestDTO true "Голос"
// @Success 201 {object} SwipeResponseDTO "Голос сохранен"
// @Failure 400 {object} http_common.ErrorResponse "Некорректные данные свайпа"
// @Failure 401 {object} http_common.ErrorResponse "Не передан X-Telegram-Id"
// @Failure 404 {object} http_common.ErrorResponse "Пользователь или фильм не найден"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /swipes [post]
func (c *Controller) swipe(ctx *gin.Context) {
	voter, ok := http_common.CallerID(ctx)
	if !ok {
		return
	}

	var req SwipeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.BadRequest(ctx, "invalid request format")
		return
	}

	if _, err := c.users.ByTelegramID(ctx, voter); err != nil {
		http_common.WriteError(ctx, c.logger, "swipe", err)
		return
	}
	if err := c.users.Touch(ctx, voter); err != nil {
		c.logger.Warn("failed to touch user", slog.String("user", voter.String()), slog.String("error", err.Error()))
	}

	result, err := c.uc.Submit(ctx, voter, req.MovieID, http_common.ToUserIDs(req.GroupParticipants), model.Decision(req.SwipeType))
	if err != nil {
		http_common.WriteError(ctx, c.logger, "swipe", err)
		return
	}

	resp := fromVote(result.Vote)
	if result.Match != nil {
		m := http_common.FromMatch(*result.Match)
		resp.MatchFound = true
		resp.Match = &m
	}
	ctx.JSON(http.StatusCreated, resp)
}

// @Summary Статус голосования
// @Description Решения участников группы по фильму
// @Tags Swipes
// @Produce json
// @Param movie_id query string true "ID фильма"
// @Param participants query string true "Участники через запятую" example(111,222,333)
// @Success 200 {object} VoteStatusResponseDTO "Статус"
// @Failure 400 {object} http_common.ErrorResponse "Некорректные параметры"
// @Router /swipes/status [get]
func (c *Controller) status(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Query("movie_id"))
	if err != nil {
		http_common.BadRequest(ctx, "invalid movie id")
		return
	}
	group, err := model.ParseParticipants(ctx.Query("participants"))
	if err != nil {
		http_common.BadRequest(ctx, "invalid participants")
		return
	}

	status, err := c.uc.Status(ctx, movieID, group)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "vote status", err)
		return
	}

	votes := make(map[string]string, len(status.Decisions))
	for voter, d := range status.Decisions {
		votes[voter.String()] = string(d)
	}
	ctx.JSON(http.StatusOK, VoteStatusResponseDTO{
		TotalParticipants: len(status.Participants),
		LikesCount:        status.Likes,
		DislikesCount:     status.Dislikes,
		Votes:             votes,
		MatchReady:        status.MatchReady,
	})
}

// @Summary История свайпов
// @Tags Swipes
// @Produce json
// @Param telegram_id path int true "Telegram ID"
// @Param limit query int false "Размер страницы" default(50)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {array} SwipeResponseDTO "Голоса"
// @Router /swipes/user/{telegram_id} [get]
func (c *Controller) history(ctx *gin.Context) {
	voter, ok := http_common.ParseUserID(ctx.Param("telegram_id"))
	if !ok {
		http_common.BadRequest(ctx, "invalid telegram id")
		return
	}
	limit, offset := http_common.Pagination(ctx)

	votes, err := c.uc.VotesOf(ctx, voter, limit, offset)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "vote history", err)
		return
	}

	resp := make([]SwipeResponseDTO, len(votes))
	for i, v := range votes {
		resp[i] = fromVote(v)
	}
	ctx.JSON(http.StatusOK, resp)
}
