package cloudflare_r2

import (
	"fmt"

	"github.com/haierkeys/keepsake-service/pkg/storage/aws_s3"

	"github.com/pkg/errors"
)

type Config struct {
	AccountID       string `yaml:"account-id"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	PublicURL       string `yaml:"public-url"`
}

// Endpoint R2 的 S3 兼容访问地址
func Endpoint(accountID string) string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
}

// NewClient creates an R2 storage instance
// NewClient 创建 R2 存储实例
func NewClient(conf *Config, opts ...aws_s3.Option) (*aws_s3.S3, error) {
	if conf == nil || conf.AccountID == "" {
		return nil, errors.New("cloudflare_r2: account id is required")
	}
	opts = append(opts, aws_s3.WithName("cloudflare_r2"))
	return aws_s3.NewClient(&aws_s3.Config{
		Region:          "auto",
		Endpoint:        Endpoint(conf.AccountID),
		BucketName:      conf.BucketName,
		AccessKeyID:     conf.AccessKeyID,
		AccessKeySecret: conf.AccessKeySecret,
		CustomPath:      conf.CustomPath,
		PublicURL:       conf.PublicURL,
	}, opts...)
}
