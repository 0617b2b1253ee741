package aliyun_oss

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/haierkeys/keepsake-service/pkg/fileurl"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

func (p *OSS) GetBucket(bucketName string) error {
	if len(bucketName) <= 0 {
		bucketName = p.Config.BucketName
	}
	var err error
	p.Bucket, err = p.Client.Bucket(bucketName)
	return err
}

func (p *OSS) SendFile(ctx context.Context, pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return "", errors.Wrap(err, "aliyun_oss")
		}
	}
	fileKey := fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + strings.TrimPrefix(pathKey, "/")

	opts := []oss.Option{oss.WithContext(ctx)}
	if cType != "" {
		opts = append(opts, oss.ContentType(cType))
	}
	if !modTime.IsZero() {
		opts = append(opts, oss.Meta("modification-time", modTime.Format(time.RFC3339)))
	}

	if err := p.Bucket.PutObject(fileKey, file, opts...); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}

func (p *OSS) SendContent(ctx context.Context, pathKey string, content []byte, modTime time.Time) (string, error) {
	return p.SendFile(ctx, pathKey, bytes.NewReader(content), "", modTime)
}

// Delete OSS 删除不存在的对象同样返回成功
func (p *OSS) Delete(ctx context.Context, fileKey string) error {
	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return errors.Wrap(err, "aliyun_oss")
		}
	}
	if err := p.Bucket.DeleteObject(fileKey, oss.WithContext(ctx)); err != nil {
		return errors.Wrap(err, "aliyun_oss")
	}
	return nil
}

func (p *OSS) PublicURL(fileKey string) string {
	if p.Config.PublicURL != "" {
		return strings.TrimSuffix(p.Config.PublicURL, "/") + "/" + fileKey
	}
	return "https://" + p.Config.BucketName + "." + p.endpointHost() + "/" + fileKey
}
