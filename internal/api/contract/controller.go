package contract

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NapaConcierge/concierge-api/internal/api/respond"
	"github.com/NapaConcierge/concierge-api/internal/types"
	"github.com/NapaConcierge/concierge-api/internal/utils"
)

type Controller struct {
	svc *Service
}

func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

// Sign handles POST /contract/sign
func (c *Controller) Sign(ctx *gin.Context) {
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Warn("invalid /contract/sign payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	visitor := types.VisitorInfo{
		IP:        ctx.ClientIP(),
		UserAgent: ctx.Request.UserAgent(),
	}

	sig, err := c.svc.Sign(ctx.Request.Context(), &req, visitor)
	if err != nil {
		respond.Error(ctx, err)
		return
	}

	utils.Zlog.Info("Contract signed",
		zap.Int64("signature_id", sig.ID),
		zap.String("company", sig.CompanyName),
		zap.String("version", sig.ContractVersion))

	ctx.JSON(http.StatusCreated, Response{ID: sig.ID, Success: true})
}
