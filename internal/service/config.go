// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// AssetServiceConfig 文件存储服务配置
type AssetServiceConfig struct {
	// StorageType 存储类型，决定是否为托管存储
	StorageType string
	// MaxUploadSize 单个图片最大字节数
	MaxUploadSize int64
	// AllowedExts 托管存储允许的扩展名
	AllowedExts []string
}

// DefaultMaxUploadSize 默认上传大小上限 5 MiB
const DefaultMaxUploadSize int64 = 5 << 20

// DefaultAllowedExts 托管存储默认允许的图片扩展名
var DefaultAllowedExts = []string{".jpg", ".jpeg", ".png", ".gif"}
