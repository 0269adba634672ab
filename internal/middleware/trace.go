package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"customer-support-agent/pkg/log"
)

const HeaderRequestID = "X-Request-ID"

// Trace tags the request context with a trace id, echoes it back in
// X-Request-ID, and logs the request when it completes.
func (mw Middleware) Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(HeaderRequestID)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := log.WithTraceID(c.Request.Context(), traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, traceID)

		start := time.Now()
		c.Next()

		mw.l.Infof(ctx, "%s %s -> %d (%s)", c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
