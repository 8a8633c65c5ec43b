package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/denisAlshanov/ytfetch/internal/api/handlers"
	"github.com/denisAlshanov/ytfetch/internal/api/middleware"
	"github.com/denisAlshanov/ytfetch/internal/config"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
	server *http.Server
}

func NewRouter(cfg *config.Config, videoHandler *handlers.VideoHandler, healthHandler *handlers.HealthHandler) *Router {
	// Set Gin mode
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())

	health := engine.Group("/")
	{
		health.GET("/health", healthHandler.Health)
		health.GET("/ready", healthHandler.Readiness)
		health.GET("/live", healthHandler.Liveness)
	}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.POST("/check", videoHandler.Check)
	engine.POST("/download", videoHandler.Download)

	// Everything else is the static front end.
	engine.NoRoute(middleware.StaticFiles(cfg.Static.Root, cfg.Static.IndexFile))

	return &Router{
		engine: engine,
		config: cfg,
		server: &http.Server{
			Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (r *Router) Start() error {
	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
