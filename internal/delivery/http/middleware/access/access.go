package http_access_middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
)

const ModeReadOnly = "RO"

// ReadOnly rejects writes while the instance runs in mode RO, e.g. during
// database maintenance. Reads pass through.
func ReadOnly(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mode != ModeReadOnly {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusServiceUnavailable, http_common.ErrorResponse{
			Message: "write operations are disabled on a read-only instance",
		})
	}
}
