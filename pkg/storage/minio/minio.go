package minio

import (
	"github.com/haierkeys/keepsake-service/pkg/storage/aws_s3"

	"github.com/pkg/errors"
)

type Config struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	PublicURL       string `yaml:"public-url"`
}

// NewClient 创建 MinIO 存储实例，使用路径风格访问
func NewClient(conf *Config, opts ...aws_s3.Option) (*aws_s3.S3, error) {
	if conf == nil || conf.Endpoint == "" {
		return nil, errors.New("minio: endpoint is required")
	}
	region := conf.Region
	if region == "" {
		region = "us-east-1"
	}
	opts = append(opts, aws_s3.WithName("minio"))
	return aws_s3.NewClient(&aws_s3.Config{
		Region:          region,
		Endpoint:        conf.Endpoint,
		UsePathStyle:    true,
		BucketName:      conf.BucketName,
		AccessKeyID:     conf.AccessKeyID,
		AccessKeySecret: conf.AccessKeySecret,
		CustomPath:      conf.CustomPath,
		PublicURL:       conf.PublicURL,
	}, opts...)
}
