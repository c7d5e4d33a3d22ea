package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NapaConcierge/concierge-api/internal/api/respond"
	"github.com/NapaConcierge/concierge-api/internal/loaders"
	"github.com/NapaConcierge/concierge-api/internal/utils"
)

// Controller handles the privileged admin endpoints.
type Controller struct {
	svc *Service
}

func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error":     "bad_request",
		"message":   err.Error(),
		"timestamp": time.Now().UTC(),
	})
}

func businessID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, err)
		return 0, false
	}
	return id, true
}

// periodDays reads ?period= with weekly/monthly aliases; default weekly.
func periodDays(ctx *gin.Context) int {
	switch period := ctx.DefaultQuery("period", "weekly"); period {
	case "monthly":
		return 30
	case "weekly":
		return 7
	default:
		if days, err := strconv.Atoi(period); err == nil && days > 0 {
			return days
		}
		return 7
	}
}

// CreateBusiness handles POST /admin/businesses
func (c *Controller) CreateBusiness(ctx *gin.Context) {
	var req CreateBusinessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Warn("invalid create business payload", zap.Error(err))
		badRequest(ctx, err)
		return
	}

	business, err := c.svc.CreateBusiness(ctx.Request.Context(), &req)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, business)
}

// ListBusinesses handles GET /admin/businesses
func (c *Controller) ListBusinesses(ctx *gin.Context) {
	businesses, err := c.svc.ListBusinesses(ctx.Request.Context())
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, businesses)
}

// GetBusiness handles GET /admin/businesses/:id
func (c *Controller) GetBusiness(ctx *gin.Context) {
	id, ok := businessID(ctx)
	if !ok {
		return
	}
	business, err := c.svc.GetBusiness(ctx.Request.Context(), id)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, business)
}

// UpdateBusiness handles PUT /admin/businesses/:id
func (c *Controller) UpdateBusiness(ctx *gin.Context) {
	id, ok := businessID(ctx)
	if !ok {
		return
	}

	var patch loaders.BusinessPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		utils.Zlog.Warn("invalid update business payload", zap.Error(err))
		badRequest(ctx, err)
		return
	}

	business, err := c.svc.UpdateBusiness(ctx.Request.Context(), id, &patch)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, business)
}

// DeleteBusiness handles DELETE /admin/businesses/:id
func (c *Controller) DeleteBusiness(ctx *gin.Context) {
	id, ok := businessID(ctx)
	if !ok {
		return
	}
	if err := c.svc.DeleteBusiness(ctx.Request.Context(), id); err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": id})
}

// Analytics handles GET /admin/businesses/:id/analytics
func (c *Controller) Analytics(ctx *gin.Context) {
	id, ok := businessID(ctx)
	if !ok {
		return
	}
	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "30"))

	analytics, err := c.svc.Analytics(ctx.Request.Context(), id, days)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}

// Leads handles GET /admin/businesses/:id/leads
func (c *Controller) Leads(ctx *gin.Context) {
	id, ok := businessID(ctx)
	if !ok {
		return
	}
	leads, err := c.svc.Leads(ctx.Request.Context(), id)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, leads)
}

// Conversations handles GET /admin/businesses/:id/conversations
func (c *Controller) Conversations(ctx *gin.Context) {
	id, ok := businessID(ctx)
	if !ok {
		return
	}
	conversations, err := c.svc.Conversations(ctx.Request.Context(), id)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, conversations)
}

// WeeklyReport handles GET /admin/businesses/:id/reports/weekly
func (c *Controller) WeeklyReport(ctx *gin.Context) {
	c.report(ctx, 7)
}

// MonthlyReport handles GET /admin/businesses/:id/reports/monthly
func (c *Controller) MonthlyReport(ctx *gin.Context) {
	c.report(ctx, 30)
}

func (c *Controller) report(ctx *gin.Context, days int) {
	id, ok := businessID(ctx)
	if !ok {
		return
	}
	report, err := c.svc.Report(ctx.Request.Context(), id, days)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// SendReport handles POST /admin/businesses/:id/reports/send
func (c *Controller) SendReport(ctx *gin.Context) {
	id, ok := businessID(ctx)
	if !ok {
		return
	}
	if err := c.svc.SendReport(ctx.Request.Context(), id, periodDays(ctx)); err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"sent": true})
}

// BroadcastReports handles POST /admin/reports/broadcast
func (c *Controller) BroadcastReports(ctx *gin.Context) {
	result, err := c.svc.BroadcastReports(ctx.Request.Context(), periodDays(ctx))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListContracts handles GET /admin/contracts
func (c *Controller) ListContracts(ctx *gin.Context) {
	sigs, err := c.svc.ListContracts(ctx.Request.Context())
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sigs)
}
