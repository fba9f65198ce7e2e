package handlers

import (
	"time"

	"legalconsult-backend/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one structured line per request
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	log = logger.OrNoOp(log)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}
		if firmID := c.GetHeader(firmIDHeader); firmID != "" {
			fields["firm_id"] = firmID
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("request failed", fields)
		case status >= 400:
			log.Warn("request rejected", fields)
		default:
			log.Info("request handled", fields)
		}
	}
}
