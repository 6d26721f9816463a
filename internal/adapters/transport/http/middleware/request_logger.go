package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var sensitiveHeaders = []string{"authorization", "cookie", TokenHeader}

func scrub(h http.Header) http.Header {
	clone := h.Clone()
	for k := range clone {
		lower := strings.ToLower(k)
		for _, s := range sensitiveHeaders {
			if strings.Contains(lower, s) {
				clone[k] = []string{"[redacted]"}
				break
			}
		}
	}
	return clone
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqHeaders, _ := json.Marshal(scrub(c.Request.Header))
		log.Debug("↘︎ incoming request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("origin", c.GetHeader("Origin")),
			zap.ByteString("hdr", reqHeaders),
		)

		ts := time.Now()
		c.Next()

		latency := time.Since(ts)
		respStatus := c.Writer.Status()

		if c.IsAborted() {
			log.Warn("↗︎ aborted",
				zap.Int("status", respStatus),
				zap.Duration("latency", latency),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
			return
		}

		for _, e := range c.Errors {
			log.Error("handler error",
				zap.Int("status", respStatus),
				zap.Error(e),
				zap.String("path", c.Request.URL.Path),
			)
		}

		log.Info("↗︎ completed",
			zap.Int("status", respStatus),
			zap.Duration("latency", latency),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
	}
}
