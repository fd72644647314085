package http_access_middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type AccessMiddlewareUnitSuite struct {
	suite.Suite
}

func engine(mode string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(ReadOnly(mode))
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	e.GET("/rooms/current", ok)
	e.POST("/rooms", ok)
	return e
}

func (s *AccessMiddlewareUnitSuite) TestReadOnly(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		mode         string
		method       string
		target       string
		expectedCode int
	}{
		{name: "Should serve writes in RW", mode: "RW", method: http.MethodPost, target: "/rooms", expectedCode: http.StatusNoContent},
		{name: "Should serve reads in RO", mode: ModeReadOnly, method: http.MethodGet, target: "/rooms/current", expectedCode: http.StatusNoContent},
		{name: "Should reject writes in RO", mode: ModeReadOnly, method: http.MethodPost, target: "/rooms", expectedCode: http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			w := httptest.NewRecorder()

			engine(tc.mode).ServeHTTP(w, httptest.NewRequest(tc.method, tc.target, nil))

			assert.Equal(t, tc.expectedCode, w.Code)
		})
	}
}

func TestAccessMiddlewareUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(AccessMiddlewareUnitSuite))
}
