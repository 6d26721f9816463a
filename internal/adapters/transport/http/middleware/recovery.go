package middleware

import (
	"net/http"

	"github.com/Miraines/MoonyAndStarry/finance-service/internal/adapters/transport/http/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into the standard 500 payload.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		response.Abort(c, http.StatusInternalServerError, response.CodeInternal, "internal server error", nil)
	})
}
