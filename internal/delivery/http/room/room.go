package http_room

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	"github.com/humanbelnik/moviematch/internal/model"
	usecase_room "github.com/humanbelnik/moviematch/internal/usecase/room"
)

//go:generate mockery --name=RoomService --output=./mocks --filename=room_service.go
type RoomService interface {
	Create(ctx context.Context, creator model.UserID) (model.Room, error)
	Join(ctx context.Context, code string, user model.UserID) (model.Room, error)
	Leave(ctx context.Context, user model.UserID, code string) (usecase_room.LeaveResult, error)
	CurrentRoomOf(ctx context.Context, user model.UserID) (*model.Room, error)
	Info(ctx context.Context, code string) (model.RoomInfo, error)
	MaxSize() int
}

type Controller struct {
	uc RoomService

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc RoomService, opts ...ControllerOption) *Controller {
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
	rooms := router.Group("/rooms")
	{
		rooms.POST("", c.create)
		rooms.GET("/current", c.current)
		rooms.GET("/:code", c.info)
		rooms.POST("/:code/join", c.join)
		rooms.POST("/:code/leave", c.leave)
	}
}

// RoomDTO DTO комнаты
type RoomDTO struct {
	Code         string    `json:"code" example:"AB12CD"`
	CreatorID    int64     `json:"creator_id" example:"111"`
	Participants []int64   `json:"participants" example:"111,222"`
	Capacity     int       `json:"capacity" example:"10"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *Controller) fromRoom(r model.Room) RoomDTO {
	participants := make([]int64, len(r.Participants))
	for i, id := range r.Participants {
		participants[i] = int64(id)
	}
	return RoomDTO{
		Code:         r.Code,
		CreatorID:    int64(r.CreatorID),
		Participants: participants,
		Capacity:     c.uc.MaxSize(),
		CreatedAt:    r.CreatedAt,
	}
}

// RoomInfoResponseDTO DTO комнаты с профилями участников
type RoomInfoResponseDTO struct {
	RoomDTO
	Members []http_common.UserDTO `json:"members"`
}

// CurrentRoomResponseDTO DTO текущей комнаты пользователя
type CurrentRoomResponseDTO struct {
	InRoom bool     `json:"in_room"`
	Room   *RoomDTO `json:"room,omitempty"`
}

// LeaveResponseDTO DTO результата выхода из комнаты
type LeaveResponseDTO struct {
	RoomRemoved bool     `json:"room_removed"`
	Room        *RoomDTO `json:"room,omitempty"`
}

// @Summary Создание комнаты
// @Description Создает комнату, создатель становится первым участником
// @Tags Rooms
// @Produce json
// @Param X-Telegram-Id header int true "Telegram ID создателя"
// @Success 201 {object} RoomDTO "Комната создана"
// @Failure 401 {object} http_common.ErrorResponse "Не передан X-Telegram-Id"
// @Failure 409 {object} http_common.ErrorResponse "Пользователь уже в комнате"
// @Failure 500 {object} http_common.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	caller, ok := http_common.CallerID(ctx)
	if !ok {
		return
	}

	room, err := c.uc.Create(ctx, caller)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "create room", err)
		return
	}
	ctx.JSON(http.StatusCreated, c.fromRoom(room))
}

// @Summary Текущая комната
// @Tags Rooms
// @Produce json
// @Param X-Telegram-Id header int true "Telegram ID"
// @Success 200 {object} CurrentRoomResponseDTO "Текущая комната"
// @Failure 401 {object} http_common.ErrorResponse "Не передан X-Telegram-Id"
// @Router /rooms/current [get]
func (c *Controller) current(ctx *gin.Context) {
	caller, ok := http_common.CallerID(ctx)
	if !ok {
		return
	}

	room, err := c.uc.CurrentRoomOf(ctx, caller)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "current room", err)
		return
	}

	resp := CurrentRoomResponseDTO{}
	if room != nil {
		dto := c.fromRoom(*room)
		resp.InRoom = true
		resp.Room = &dto
	}
	ctx.JSON(http.StatusOK, resp)
}

// @Summary Информация о комнате
// @Tags Rooms
// @Produce json
// @Param code path string true "Код комнаты"
// @Success 200 {object} RoomInfoResponseDTO "Комната"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный код"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Router /rooms/{code} [get]
func (c *Controller) info(ctx *gin.Context) {
	info, err := c.uc.Info(ctx, ctx.Param("code"))
	if err != nil {
		http_common.WriteError(ctx, c.logger, "room info", err)
		return
	}

	members := make([]http_common.UserDTO, len(info.Members))
	for i, m := range info.Members {
		members[i] = http_common.FromUser(m)
	}
	ctx.JSON(http.StatusOK, RoomInfoResponseDTO{
		RoomDTO: c.fromRoom(info.Room),
		Members: members,
	})
}

// @Summary Вход в комнату
// @Tags Rooms
// @Produce json
// @Param code path string true "Код комнаты"
// @Param X-Telegram-Id header int true "Telegram ID"
// @Success 200 {object} RoomDTO "Комната после входа"
// @Failure 400 {object} http_common.ErrorResponse "Некорректный код"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена"
// @Failure 409 {object} http_common.ErrorResponse "Комната заполнена или пользователь уже в комнате"
// @Router /rooms/{code}/join [post]
func (c *Controller) join(ctx *gin.Context) {
	caller, ok := http_common.CallerID(ctx)
	if !ok {
		return
	}

	room, err := c.uc.Join(ctx, ctx.Param("code"), caller)
	if err != nil {
		http_common.WriteError(ctx, c.logger, "join room", err)
		return
	}
	ctx.JSON(http.StatusOK, c.fromRoom(room))
}

// @Summary Выход из комнаты
// @Description Последний вышедший участник удаляет комнату
// @Tags Rooms
// @Produce json
// @Param code path string true "Код комнаты"
// @Param X-Telegram-Id header int true "Telegram ID"
// @Success 200 {object} LeaveResponseDTO "Результат выхода"
// @Failure 404 {object} http_common.ErrorResponse "Комната не найдена или пользователь не участник"
// @Router /rooms/{code}/leave [post]
func (c *Controller) leave(ctx *gin.Context) {
	caller, ok := http_common.CallerID(ctx)
	if !ok {
		return
	}

	result, err := c.uc.Leave(ctx, caller, ctx.Param("code"))
	if err != nil {
		http_common.WriteError(ctx, c.logger, "leave room", err)
		return
	}

	resp := LeaveResponseDTO{RoomRemoved: result.Outcome == usecase_room.LeaveOutcomeRoomRemoved}
	if !resp.RoomRemoved {
		dto := c.fromRoom(result.Room)
		resp.Room = &dto
	}
	ctx.JSON(http.StatusOK, resp)
}
