// Package respond maps service failures onto the HTTP error envelope.
package respond

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NapaConcierge/concierge-api/internal/types"
)

// Error writes the JSON error envelope for err. Upstream error text is
// surfaced verbatim; acceptable for an internal tool, flagged as a leak
// risk for public exposure.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, types.ErrUnauthorized):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, types.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, types.ErrValidation):
		status, code = http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, types.ErrCompletion), errors.Is(err, types.ErrDelivery):
		status, code = http.StatusInternalServerError, "upstream_error"
	}

	c.JSON(status, gin.H{
		"error":     code,
		"message":   err.Error(),
		"timestamp": time.Now().UTC(),
	})
}
