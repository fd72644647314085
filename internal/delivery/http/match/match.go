package http_match

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	"github.com/humanbelnik/moviematch/internal/model"
)

//go:generate mockery --name=MatchService --output=./mocks --filename=match_service.go
type MatchService interface {
	ByID(ctx context.Context, id uuid.UUID) (model.Match, error)
	ByGroup(ctx context.Context, participants []model.UserID) ([]model.Match, error)
	ForUser(ctx context.Context, user model.UserID, limit, offset int) ([]model.Match, error)
}

//go:generate mockery --name=MovieLookup --output=./mocks --filename=movie_lookup.go
type MovieLookup interface {
	ByID(ctx context.Context, id uuid.UUID) (model.MovieMeta, error)
}

type Controller struct {
	uc     MatchService
	movies MovieLookup

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithMovies embeds movie metadata into every returned match.
func WithMovies(movies MovieLookup) ControllerOption {
	return func(c *Controller) {
		c.movies = movies
	}
}

func New(uc MatchService, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	matches := router.Group("/matches")
	matches.GET("/group", c.byGroup)
	matches.GET("/user/:telegram_id", c.forUser)
	matches.GET("/:match_id", c.byID)
}

// @Summary Матчи группы
// @Description Все матчи для заданного набора участников, новые первыми
// @Tags Matches
// @Produce json
// @Param participants query string true "Участники через запятую" example(111,222,333)
// @Success 200 {array} http_common.MatchDTO "Матчи"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный список участников"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /matches/group [get]
func (c *Controller) byGroup(ctx *gin.Context) {
	group, err := model.ParseParticipants(ctx.Query("participants"))
	if err != nil {
		http_common.BadRequest(ctx, "invalid participants")
		return
	}

	matches, err := c.uc.ByGroup(ctx, group)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "group matches", err)
		return
	}
	ctx.JSON(http.StatusOK, c.enrich(ctx, matches))
}

// @Summary Матчи пользователя
// @Tags Matches
// @Produce json
// @Param telegram_id path int true "Telegram ID"
// @Param limit query int false "Размер страницы" default(50)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {array} http_common.MatchDTO "Матчи"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный Telegram ID"
// @Router /matches/user/{telegram_id} [get]
func (c *Controller) forUser(ctx *gin.Context) {
	user, ok := http_common.ParseUserID(ctx.Param("telegram_id"))
	if !ok {
		http_common.BadRequest(ctx, "invalid telegram id")
		return
	}
	limit, offset := http_common.Pagination(ctx)

	matches, err := c.uc.ForUser(ctx, user, limit, offset)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "user matches", err)
		return
	}
	ctx.JSON(http.StatusOK, c.enrich(ctx, matches))
}

// @Summary Матч по ID
// @Tags Matches
// @Produce json
// @Param match_id path string true "ID матча"
// @Success 200 {object} http_common.MatchDTO "Матч"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный ID"
// @Failure 404 {object} http_common.ErrorResponse "Матч не найден"
// @Router /matches/{match_id} [get]
func (c *Controller) byID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("match_id"))
	if err != nil {
		http_common.BadRequest(ctx, "invalid match id")
		return
	}

	m, err := c.uc.ByID(ctx, id)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "match", err)
		return
	}
	ctx.JSON(http.StatusOK, c.enrich(ctx, []model.Match{m})[0])
}

// enrich attaches movie metadata where it can be loaded. A failed lookup
// leaves the movie out rather than failing the request.
func (c *Controller) enrich(ctx context.Context, matches []model.Match) []http_common.MatchDTO {
	out := http_common.FromMatches(matches)
	if c.movies == nil {
		return out
	}

	seen := make(map[uuid.UUID]*http_common.MovieDTO)
	for i := range out {
		dto, ok := seen[out[i].MovieID]
		if !ok {
			mm, err := c.movies.ByID(ctx, out[i].MovieID)
			if err != nil {
				c.logger.Warn("failed to load match movie",
					slog.String("movie", out[i].MovieID.String()),
					slog.String("error", err.Error()))
			} else {
				m := http_common.FromMovie(mm)
				dto = &m
			}
			seen[out[i].MovieID] = dto
		}
		out[i].Movie = dto
	}
	return out
}
