package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xn_chatbot/backend/internal/catalog"
	"github.com/xn_chatbot/backend/internal/config"
	"github.com/xn_chatbot/backend/internal/conversation"
	"github.com/xn_chatbot/backend/internal/http/handlers"
	"github.com/xn_chatbot/backend/internal/http/middleware"

	_ "github.com/xn_chatbot/backend/docs"
)

func Router(cfg config.Config, manager *conversation.Manager, resources *catalog.ResourceCatalog, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Manager:   manager,
		Resources: resources,
		Validator: validator.New(),
		Logger:    logger,
		AdminKey:  cfg.AdminKey,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/sessions", h.CreateSession)
		api.POST("/sessions/:id/messages", h.PostMessage)
		api.POST("/sessions/:id/provider-search", h.StartProviderSearch)
		api.GET("/sessions/:id/summary", h.SessionSummary)
		api.GET("/sessions/:id/history", h.SessionHistory)
		api.DELETE("/sessions/:id", h.EndSession)
		api.GET("/resources", h.ResourcesList)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/maintenance/cleanup", h.Cleanup)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
