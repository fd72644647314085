package http_swagger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type SwaggerControllerUnitSuite struct {
	suite.Suite
}

func (s *SwaggerControllerUnitSuite) TestServesUI(t provider.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	New("/api/v1/swagger/doc.json").RegisterRoutes(engine.Group("/api/v1"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/swagger/index.html", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	// The UI template renders the URL as an escaped JS string.
	assert.Contains(t, w.Body.String(), `"\/api\/v1\/swagger\/doc.json"`)
}

func TestSwaggerControllerUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(SwaggerControllerUnitSuite))
}
