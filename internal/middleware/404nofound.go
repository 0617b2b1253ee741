package middleware

import (
	"github.com/haierkeys/keepsake-service/pkg/app"
	"github.com/haierkeys/keepsake-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 未匹配的路由返回 JSON 404，而不是 gin 默认的纯文本
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.NewResponse(c).ToError(code.ErrorNotFoundAPI.WithDetails(c.Request.Method + " " + c.Request.URL.Path))
		c.Abort()
	}
}
