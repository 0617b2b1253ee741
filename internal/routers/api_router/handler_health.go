package api_router

import (
	"github.com/haierkeys/keepsake-service/internal/app"
	pkgapp "github.com/haierkeys/keepsake-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status"`
}

// Check 进程存活即返回 ok，不探测数据库
func (h *HealthHandler) Check(c *gin.Context) {
	pkgapp.NewResponse(c).ToJSON(HealthResponse{Status: "ok"})
}
