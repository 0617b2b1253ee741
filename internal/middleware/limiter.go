package middleware

import (
	"math"
	"strconv"

	"github.com/haierkeys/keepsake-service/pkg/app"
	"github.com/haierkeys/keepsake-service/pkg/code"
	"github.com/haierkeys/keepsake-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 令牌桶限流，未配置规则的路由不受限
// 令牌耗尽时返回 429，Retry-After 为补充一个令牌所需的秒数
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket, ok := l.GetBucket(l.Key(c))
		if !ok || bucket.TakeAvailable(1) > 0 {
			c.Next()
			return
		}

		if rate := bucket.Rate(); rate > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Max(1, math.Round(1/rate)))))
		}
		app.NewResponse(c).ToError(code.ErrorTooManyRequests)
		c.Abort()
	}
}
