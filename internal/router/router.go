package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"uploadrelay/internal/config"
	"uploadrelay/internal/handler"
	"uploadrelay/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	mediaH *handler.MediaHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()
	if cfg.Upload.MaxMemoryMB > 0 {
		r.MaxMultipartMemory = cfg.Upload.MaxMemoryMB << 20
	}

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/", healthH.Root)

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// Upload relay
	r.POST("/upload", mediaH.Upload)
	r.GET("/resources", mediaH.ListResources)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
