package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NapaConcierge/concierge-api/internal/api/admin"
	"github.com/NapaConcierge/concierge-api/internal/api/contract"
	"github.com/NapaConcierge/concierge-api/internal/api/widget"
	"github.com/NapaConcierge/concierge-api/internal/config"
	"github.com/NapaConcierge/concierge-api/internal/llm"
	"github.com/NapaConcierge/concierge-api/internal/loaders"
	"github.com/NapaConcierge/concierge-api/internal/mailer"
	"github.com/NapaConcierge/concierge-api/internal/metrics"
	"github.com/NapaConcierge/concierge-api/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *loaders.PostgresClient, cfg *config.Config, provider llm.Provider, mail mailer.Sender) {
	// Apply global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID())
	router.Use(metrics.Middleware())

	// Setup route groups
	SetupHealthRoutes(router, db)
	router.GET("/metrics", metrics.Handler())
	widget.RegisterRoutes(router, db, provider)
	contract.RegisterRoutes(router, db)
	admin.RegisterRoutes(router, db, mail, cfg.AdminToken)
	Setup404Handler(router)
}
