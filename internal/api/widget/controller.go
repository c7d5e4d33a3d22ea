package widget

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NapaConcierge/concierge-api/internal/api/respond"
	"github.com/NapaConcierge/concierge-api/internal/types"
	"github.com/NapaConcierge/concierge-api/internal/utils"
)

// Controller handles the public widget HTTP endpoints.
type Controller struct {
	svc *Service
}

func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

// Config handles GET /widget/config
func (c *Controller) Config(ctx *gin.Context) {
	cfg, err := c.svc.WidgetConfig(ctx.Request.Context(), apiKeyFromRequest(ctx))
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cfg)
}

// Chat handles POST /chat
func (c *Controller) Chat(ctx *gin.Context) {
	business, err := c.svc.ResolveBusiness(ctx.Request.Context(), apiKeyFromRequest(ctx))
	if err != nil {
		respond.Error(ctx, err)
		return
	}

	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Warn("invalid /chat payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	start := time.Now()
	result, err := c.svc.Chat(ctx.Request.Context(), business, &req, visitorFromRequest(ctx))
	if err != nil {
		utils.Zlog.Error("chat request failed",
			zap.Int64("business_id", business.ID),
			zap.Error(err))
		respond.Error(ctx, err)
		return
	}

	utils.Zlog.Info("Chat request completed",
		zap.Int64("business_id", business.ID),
		zap.String("session_id", result.SessionID),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()))

	ctx.JSON(http.StatusOK, result)
}

// Lead handles POST /lead
func (c *Controller) Lead(ctx *gin.Context) {
	business, err := c.svc.ResolveBusiness(ctx.Request.Context(), apiKeyFromRequest(ctx))
	if err != nil {
		respond.Error(ctx, err)
		return
	}

	var req LeadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Warn("invalid /lead payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	lead, err := c.svc.CaptureLead(ctx.Request.Context(), business, &req)
	if err != nil {
		respond.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, lead)
}

func visitorFromRequest(ctx *gin.Context) types.VisitorInfo {
	return types.VisitorInfo{
		IP:        ctx.ClientIP(),
		UserAgent: ctx.Request.UserAgent(),
		Referrer:  ctx.Request.Referer(),
	}
}
