package aws_s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/haierkeys/keepsake-service/pkg/fileurl"
	"github.com/haierkeys/keepsake-service/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/transfermanager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ObjectKey 拼接 CustomPath 前缀后的完整存储键
func (p *S3) ObjectKey(pathKey string) string {
	return fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + strings.TrimPrefix(pathKey, "/")
}

// SendFile 上传文件，返回完整存储键
func (p *S3) SendFile(ctx context.Context, pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	fileKey := p.ObjectKey(pathKey)

	input := &transfermanager.UploadObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
		Body:   file,
	}
	if cType != "" {
		input.ContentType = aws.String(cType)
	}
	if !modTime.IsZero() {
		input.Metadata = map[string]string{
			"modification-time": modTime.Format(time.RFC3339),
		}
	}

	if _, err := p.TransferManager.UploadObject(ctx, input); err != nil {
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			p.logger.Error(p.name+" bucket does not exist", zap.String(logger.FieldBucket, p.Config.BucketName))
		}
		return "", errors.Wrap(err, p.name)
	}

	return fileKey, nil
}

func (p *S3) SendContent(ctx context.Context, pathKey string, content []byte, modTime time.Time) (string, error) {
	return p.SendFile(ctx, pathKey, bytes.NewReader(content), "", modTime)
}

// Delete 删除对象；S3 协议对不存在的键同样返回成功
func (p *S3) Delete(ctx context.Context, fileKey string) error {
	_, err := p.S3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil
		}
		return errors.Wrap(err, p.name)
	}
	return nil
}

func (p *S3) PublicURL(fileKey string) string {
	if p.Config.PublicURL != "" {
		return strings.TrimSuffix(p.Config.PublicURL, "/") + "/" + fileKey
	}
	if p.Config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(p.Config.Endpoint, "/"), p.Config.BucketName, fileKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.Config.BucketName, p.Config.Region, fileKey)
}
