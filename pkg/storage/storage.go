package storage

import (
	"context"
	"io"
	"time"

	"github.com/haierkeys/keepsake-service/pkg/code"
	"github.com/haierkeys/keepsake-service/pkg/storage/aliyun_oss"
	"github.com/haierkeys/keepsake-service/pkg/storage/aws_s3"
	"github.com/haierkeys/keepsake-service/pkg/storage/cloudflare_r2"
	"github.com/haierkeys/keepsake-service/pkg/storage/local_fs"
	"github.com/haierkeys/keepsake-service/pkg/storage/minio"
	"github.com/haierkeys/keepsake-service/pkg/storage/noop"
	"github.com/haierkeys/keepsake-service/pkg/storage/webdav"

	"go.uber.org/zap"
)

type Type = string
type CloudType = Type

const OSS CloudType = "oss"
const R2 CloudType = "r2"
const S3 CloudType = "s3"
const LOCAL Type = "localfs"
const MinIO CloudType = "minio"
const WebDAV CloudType = "webdav"
const NOOP Type = "noop"

var StorageTypeMap = map[Type]bool{
	OSS:    true,
	R2:     true,
	S3:     true,
	LOCAL:  true,
	MinIO:  true,
	WebDAV: true,
	NOOP:   true,
}

// RemoteStorageTypeMap 托管存储，上传时受图片类型白名单约束，记录中保存 assetId
var RemoteStorageTypeMap = map[Type]bool{
	OSS:    true,
	R2:     true,
	S3:     true,
	MinIO:  true,
	WebDAV: true,
}

// ErrStorageFull 本地存储空间不足
var ErrStorageFull = local_fs.ErrStorageFull

// Config Unified storage configuration
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// Common settings
	CustomPath string `yaml:"custom-path"`
	// PublicURL 对外访问地址前缀，为空时按各存储默认规则拼接
	PublicURL string `yaml:"public-url"`

	// Cloud Storage (S3/OSS/MinIO/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Path     string `yaml:"path"`

	// Local FS
	SavePath     string `yaml:"save-path" default:"storage/uploads"`
	URLPrefix    string `yaml:"url-prefix" default:"/uploads"`
	MinFreeSpace int64  `yaml:"min-free-space"`
}

type Storager interface {
	// SendFile 写入文件，返回存储键（含 CustomPath）
	SendFile(ctx context.Context, pathKey string, file io.Reader, cType string, modTime time.Time) (string, error)
	SendContent(ctx context.Context, pathKey string, content []byte, modTime time.Time) (string, error)
	// Delete 删除存储键对应的文件，文件不存在时返回 nil
	Delete(ctx context.Context, fileKey string) error
	// PublicURL 存储键对应的访问地址
	PublicURL(fileKey string) string
}

// IsRemote 是否为托管存储
func IsRemote(t Type) bool {
	return RemoteStorageTypeMap[t]
}

func NewClient(config *Config, logger *zap.Logger) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:     config.SavePath,
			URLPrefix:    config.URLPrefix,
			MinFreeSpace: config.MinFreeSpace,
		})
	case OSS:
		return aliyun_oss.NewClient(&aliyun_oss.Config{
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			PublicURL:       config.PublicURL,
		})
	case R2:
		return cloudflare_r2.NewClient(&cloudflare_r2.Config{
			AccountID:       config.AccountID,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			PublicURL:       config.PublicURL,
		}, aws_s3.WithLogger(logger))
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			Region:          config.Region,
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			PublicURL:       config.PublicURL,
		}, aws_s3.WithLogger(logger))
	case MinIO:
		return minio.NewClient(&minio.Config{
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			PublicURL:       config.PublicURL,
		}, aws_s3.WithLogger(logger))
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			Path:       config.Path,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
			PublicURL:  config.PublicURL,
		})
	case NOOP:
		return noop.NewClient(config.PublicURL), nil
	}
	return nil, code.ErrorInvalidStorageType
}
