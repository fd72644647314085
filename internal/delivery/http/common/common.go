package http_common

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/moviematch/internal/model"
)

// CallerHeader carries the Telegram id of the caller.
const CallerHeader = "X-Telegram-Id"

type ErrorResponse struct {
	Message string `json:"message"`
}

var errBadCaller = errors.New("X-Telegram-Id header is missing or malformed")

// StatusOf maps the error taxonomy onto HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError answers with the category status. Internal errors are logged
// and never leak their text.
func WriteError(ctx *gin.Context, logger *slog.Logger, op string, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("op", op),
			slog.String("path", ctx.FullPath()),
			slog.String("error", err.Error()),
		)
		ctx.JSON(status, ErrorResponse{Message: "internal error"})
		return
	}
	ctx.JSON(status, ErrorResponse{Message: err.Error()})
}

func BadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

func ParseUserID(raw string) (model.UserID, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return model.UserID(id), true
}

// CallerID reads the caller from CallerHeader, answering 401 when absent.
func CallerID(ctx *gin.Context) (model.UserID, bool) {
	id, ok := ParseUserID(ctx.GetHeader(CallerHeader))
	if !ok {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{Message: errBadCaller.Error()})
		return 0, false
	}
	return id, true
}

// Pagination reads limit and offset query params; the usecases clamp them.
func Pagination(ctx *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	return limit, offset
}
