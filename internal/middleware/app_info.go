package middleware

import (
	pkgapp "github.com/haierkeys/keepsake-service/pkg/app"

	"github.com/gin-gonic/gin"
)

const (
	HeaderAppName    = "X-App-Name"
	HeaderAppVersion = "X-App-Version"
)

// AppInfo 在响应头中标注服务名称与版本，并写入 gin.Context 供处理器读取
func AppInfo(name string, v pkgapp.VersionInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header(HeaderAppName, name)
		c.Header(HeaderAppVersion, v.Version)
		c.Set("version_info", v)
		c.Next()
	}
}
