package contract

import (
	"github.com/gin-gonic/gin"

	"github.com/NapaConcierge/concierge-api/internal/loaders"
)

// RegisterRoutes registers the public contract-signing endpoint
func RegisterRoutes(router *gin.Engine, db *loaders.PostgresClient) {
	svc := NewService(db)
	ctrl := NewController(svc)
	router.POST("/contract/sign", ctrl.Sign)
}
