package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/keepsake-service/pkg/app"
	"github.com/haierkeys/keepsake-service/pkg/code"
	"github.com/haierkeys/keepsake-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 捕获 panic，记录堆栈并返回 500
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			var errorMsg string
			fields := []zap.Field{
				zap.String(logger.FieldMethod, c.Request.Method),
				zap.String(logger.FieldPath, c.Request.URL.Path),
				zap.String("query", c.Request.URL.RawQuery),
				zap.String("ip", c.ClientIP()),
				zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
				zap.String("stack", string(debug.Stack())),
			}
			switch v := rec.(type) {
			case error:
				errorMsg = v.Error()
				fields = append(fields, zap.Error(v))
			default:
				errorMsg = fmt.Sprintf("%v", v)
				fields = append(fields, zap.String("panic_value", errorMsg))
			}
			lg.Error("Recovered from panic", fields...)

			app.NewResponse(c).ToError(code.ErrorServerInternal)
			c.Abort()
		}()

		c.Next()
	}
}
