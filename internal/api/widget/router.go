package widget

import (
	"github.com/gin-gonic/gin"

	"github.com/NapaConcierge/concierge-api/internal/llm"
	"github.com/NapaConcierge/concierge-api/internal/loaders"
)

// RegisterRoutes registers the public widget endpoints
func RegisterRoutes(router *gin.Engine, db *loaders.PostgresClient, provider llm.Provider) {
	svc := NewService(db, provider)
	ctrl := NewController(svc)

	router.GET("/widget/config", ctrl.Config)
	router.POST("/chat", ctrl.Chat)
	router.POST("/lead", ctrl.Lead)
}
