package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/NapaConcierge/concierge-api/internal/loaders"
	"github.com/NapaConcierge/concierge-api/internal/mailer"
)

// RegisterRoutes registers the admin surface behind the token middleware
func RegisterRoutes(router *gin.Engine, db *loaders.PostgresClient, mail mailer.Sender, adminToken string) {
	svc := NewService(db, mail)
	ctrl := NewController(svc)

	group := router.Group("/admin", AuthMiddleware(adminToken))

	group.POST("/businesses", ctrl.CreateBusiness)
	group.GET("/businesses", ctrl.ListBusinesses)
	group.GET("/businesses/:id", ctrl.GetBusiness)
	group.PUT("/businesses/:id", ctrl.UpdateBusiness)
	group.DELETE("/businesses/:id", ctrl.DeleteBusiness)

	group.GET("/businesses/:id/analytics", ctrl.Analytics)
	group.GET("/businesses/:id/leads", ctrl.Leads)
	group.GET("/businesses/:id/conversations", ctrl.Conversations)
	group.GET("/businesses/:id/reports/weekly", ctrl.WeeklyReport)
	group.GET("/businesses/:id/reports/monthly", ctrl.MonthlyReport)
	group.POST("/businesses/:id/reports/send", ctrl.SendReport)
	group.POST("/reports/broadcast", ctrl.BroadcastReports)

	group.GET("/contracts", ctrl.ListContracts)
}
