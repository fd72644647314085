package http_swagger

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Controller serves the Swagger UI for the REST API under /api/v1/swagger.
type Controller struct {
	docURL string
}

func New(docURL string) *Controller {
	return &Controller{docURL: docURL}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	opts := []func(*ginSwagger.Config){
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	}
	if c.docURL != "" {
		opts = append(opts, ginSwagger.URL(c.docURL))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, opts...))
}
