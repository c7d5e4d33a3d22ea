package admin

import (
	"crypto/subtle"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/NapaConcierge/concierge-api/internal/api/respond"
	"github.com/NapaConcierge/concierge-api/internal/types"
)

// AdminTokenHeader carries the shared admin secret. This is a
// process-wide token, not per-tenant auth.
const AdminTokenHeader = "X-Admin-Token"

// AuthMiddleware rejects requests that do not present the admin token.
// The comparison is constant-time.
func AuthMiddleware(adminToken string) gin.HandlerFunc {
	expected := []byte(adminToken)
	return func(c *gin.Context) {
		token := c.GetHeader(AdminTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
			respond.Error(c, fmt.Errorf("%w: invalid admin token", types.ErrUnauthorized))
			c.Abort()
			return
		}
		c.Next()
	}
}
