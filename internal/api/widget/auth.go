package widget

import "github.com/gin-gonic/gin"

// APIKeyHeader carries the tenant key on POST endpoints; the config
// endpoint accepts a query parameter so the embed snippet stays a plain
// script tag.
const APIKeyHeader = "X-API-Key"

func apiKeyFromRequest(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	return c.Query("api_key")
}
