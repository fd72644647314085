package http_movie

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	"github.com/humanbelnik/moviematch/internal/model"
)

//go:generate mockery --name=MovieService --output=./mocks --filename=movie_service.go
type MovieService interface {
	ByID(ctx context.Context, id uuid.UUID) (model.MovieMeta, error)
	Random(ctx context.Context) (model.MovieMeta, error)
	List(ctx context.Context, limit, offset int) ([]model.MovieMeta, error)
}

// MoviesListResponseDTO DTO для списка фильмов
type MoviesListResponseDTO struct {
	Movies []http_common.MovieDTO `json:"movies"`
	Total  int                    `json:"total"`
}

type Controller struct {
	uc MovieService

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc MovieService, opts ...ControllerOption) *Controller {
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
	movies := router.Group("/movies")
	movies.GET("", c.getMovies)
	movies.GET("/random", c.getRandomMovie)
	movies.GET("/:movie_id", c.getMovie)
}

// @Summary Случайный фильм
// @Description Возвращает случайный активный фильм для свайпа
// @Tags Movies operations
// @Produce json
// @Success 200 {object} http_common.MovieDTO "Фильм"
// @Failure 404 {object} http_common.ErrorResponse "Каталог пуст"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /movies/random [get]
func (c *Controller) getRandomMovie(ctx *gin.Context) {
	movie, err := c.uc.Random(ctx)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "random movie", err)
		return
	}
	ctx.JSON(http.StatusOK, http_common.FromMovie(movie))
}

// @Summary Получение фильма
// @Tags Movies operations
// @Produce json
// @Param movie_id path string true "ID фильма"
// @Success 200 {object} http_common.MovieDTO "Фильм"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный ID"
// @Failure 404 {object} http_common.ErrorResponse "Фильм не найден"
// @Router /movies/{movie_id} [get]
func (c *Controller) getMovie(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("movie_id"))
	if err != nil {
		http_common.BadRequest(ctx, "invalid movie id")
		return
	}

	movie, err := c.uc.ByID(ctx, id)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "get movie", err)
		return
	}
	ctx.JSON(http.StatusOK, http_common.FromMovie(movie))
}

// @Summary Список фильмов
// @Tags Movies operations
// @Produce json
// @Param limit query int false "Размер страницы" default(50)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} MoviesListResponseDTO "Фильмы"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /movies [get]
func (c *Controller) getMovies(ctx *gin.Context) {
	limit, offset := http_common.Pagination(ctx)

	movies, err := c.uc.List(ctx, limit, offset)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "list movies", err)
		return
	}

	dtos := make([]http_common.MovieDTO, len(movies))
	for i, mm := range movies {
		dtos[i] = http_common.FromMovie(mm)
	}
	ctx.JSON(http.StatusOK, MoviesListResponseDTO{
		Movies: dtos,
		Total:  len(dtos),
	})
}
