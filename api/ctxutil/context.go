package ctxutil

import (
	"context"

	"ordering/api/response"
	"ordering/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// RequestContext returns the request context tagged with the gin request id,
// so application and persistence logging can correlate with the HTTP log line.
func RequestContext(c *gin.Context) context.Context {
	return persistence.ContextWithRequestID(c.Request.Context(), response.GetRequestID(c))
}
