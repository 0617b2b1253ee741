// Package api_router 照片与信件的 HTTP 处理器
package api_router

import (
	"github.com/haierkeys/keepsake-service/internal/app"
	pkgapp "github.com/haierkeys/keepsake-service/pkg/app"
	apperrors "github.com/haierkeys/keepsake-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Handler 各资源处理器共同嵌入，持有 App 容器
type Handler struct {
	App *app.App
}

func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// respond Service 返回错误时按错误码响应，否则输出 data
func respond[T any](c *gin.Context, data T, err error) {
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToJSON(data)
}
