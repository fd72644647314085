package http_user

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	"github.com/humanbelnik/moviematch/internal/model"
)

//go:generate mockery --name=UserService --output=./mocks --filename=user_service.go
type UserService interface {
	Register(ctx context.Context, id model.UserID, username, firstName string) (model.User, error)
	ByTelegramID(ctx context.Context, id model.UserID) (model.User, error)
}

type Controller struct {
	users  UserService
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(users UserService, opts ...ControllerOption) *Controller {
	c := &Controller{
		users:  users,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", c.register)
		users.GET("/:telegram_id", c.get)
	}
}

// RegisterRequestDTO DTO регистрации пользователя
type RegisterRequestDTO struct {
	TelegramID int64  `json:"telegram_id" binding:"required,gt=0" example:"111"`
	Username   string `json:"username" example:"kinoman"`
	FirstName  string `json:"first_name" binding:"required" example:"Иван"`
}

// Register регистрирует пользователя
// @Summary Регистрация пользователя
// @Description Создает пользователя или обновляет его имя
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterRequestDTO true "Данные пользователя"
// @Success 201 {object} http_common.UserDTO "Пользователь"
// @Failure 400 {object} http_common.ErrorResponse "Некорректные данные запроса"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users [post]
func (c *Controller) register(ctx *gin.Context) {
	var req RegisterRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.BadRequest(ctx, "invalid request format")
		return
	}

	user, err := c.users.Register(ctx, model.UserID(req.TelegramID), req.Username, req.FirstName)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "register user", err)
		return
	}

	ctx.JSON(http.StatusCreated, http_common.FromUser(user))
}

// Get возвращает пользователя
// @Summary Получение пользователя
// @Tags Users
// @Produce json
// @Param telegram_id path int true "Telegram ID"
// @Success 200 {object} http_common.UserDTO "Пользователь"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} http_common.ErrorResponse "Пользователь не найден"
// @Router /users/{telegram_id} [get]
func (c *Controller) get(ctx *gin.Context) {
	id, ok := http_common.ParseUserID(ctx.Param("telegram_id"))
	if !ok {
		http_common.BadRequest(ctx, "invalid telegram id")
		return
	}

	user, err := c.users.ByTelegramID(ctx, id)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "get user", err)
		return
	}

	ctx.JSON(http.StatusOK, http_common.FromUser(user))
}
