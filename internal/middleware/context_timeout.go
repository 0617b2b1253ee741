package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/keepsake-service/pkg/app"
	"github.com/haierkeys/keepsake-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// ContextTimeout 为请求上下文设置超时，timeout <= 0 时不限制
// 处理器因超时未写响应时返回 504
func ContextTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			app.NewResponse(c).ToError(code.ErrorRequestTimeout)
			c.Abort()
		}
	}
}
