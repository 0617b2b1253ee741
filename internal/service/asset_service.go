package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"
	"github.com/haierkeys/keepsake-service/pkg/code"
	"github.com/haierkeys/keepsake-service/pkg/fileurl"
	"github.com/haierkeys/keepsake-service/pkg/logger"
	"github.com/haierkeys/keepsake-service/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AssetService 图片文件存储服务
type AssetService interface {
	// Store 校验并写入图片，返回访问地址与托管存储对象键
	Store(ctx context.Context, content []byte, filename string) (*domain.Asset, error)

	// Delete 删除图片；assetID 为空时从 imageURL 推导；文件不存在视为成功
	Delete(ctx context.Context, assetID, imageURL string) error

	// IsRemote 是否为托管存储
	IsRemote() bool
}

// keyResolver 可从访问地址反推存储键的存储实现
type keyResolver interface {
	KeyFromURL(url string) string
}

type assetService struct {
	storage storage.Storager
	conf    AssetServiceConfig
	logger  *zap.Logger
}

// NewAssetService 创建 AssetService 实例
func NewAssetService(s storage.Storager, conf AssetServiceConfig, zl *zap.Logger) AssetService {
	if conf.MaxUploadSize <= 0 {
		conf.MaxUploadSize = DefaultMaxUploadSize
	}
	if len(conf.AllowedExts) == 0 {
		conf.AllowedExts = DefaultAllowedExts
	}
	if zl == nil {
		zl = zap.NewNop()
	}
	return &assetService{storage: s, conf: conf, logger: zl}
}

var _ AssetService = (*assetService)(nil)

func (s *assetService) IsRemote() bool {
	return storage.IsRemote(s.conf.StorageType)
}

func (s *assetService) Store(ctx context.Context, content []byte, filename string) (*domain.Asset, error) {
	size := int64(len(content))
	if size > s.conf.MaxUploadSize {
		assetOperations.WithLabelValues("store", s.conf.StorageType, "too_large").Inc()
		return nil, code.ErrorPayloadTooLarge.WithDetails(fmt.Sprintf("%d > %d bytes", size, s.conf.MaxUploadSize))
	}

	remote := s.IsRemote()
	if remote && !fileurl.IsContainExt(filename, s.conf.AllowedExts) {
		assetOperations.WithLabelValues("store", s.conf.StorageType, "unsupported").Inc()
		return nil, code.ErrorUnsupportedMedia.WithDetails(fileurl.GetFileExt(filename))
	}

	name := fileurl.UniqueName(filename)
	cType := mimetype.Detect(content).String()

	key, err := s.storage.SendFile(ctx, name, bytes.NewReader(content), cType, time.Time{})
	if err != nil {
		assetOperations.WithLabelValues("store", s.conf.StorageType, "error").Inc()
		s.logger.Error("asset store failed",
			zap.String(logger.FieldStorage, s.conf.StorageType),
			zap.String(logger.FieldFileKey, name),
			zap.Int64(logger.FieldSize, size),
			zap.Error(err))
		switch {
		case errors.Is(err, storage.ErrStorageFull):
			return nil, code.ErrorStorageFull.WithDetails(err.Error())
		case remote:
			return nil, code.ErrorRemoteUnavailable.WithDetails(err.Error())
		}
		return nil, code.ErrorStorageIO.WithDetails(err.Error())
	}

	assetOperations.WithLabelValues("store", s.conf.StorageType, "ok").Inc()
	assetBytesStored.WithLabelValues(s.conf.StorageType).Add(float64(size))

	asset := &domain.Asset{URL: s.storage.PublicURL(key)}
	if remote {
		asset.ID = key
	}
	return asset, nil
}

// resolveKey 本地存储或缺少 assetID 时由访问地址推导存储键
func (s *assetService) resolveKey(assetID, imageURL string) string {
	if assetID != "" {
		return assetID
	}
	if imageURL == "" {
		return ""
	}
	if r, ok := s.storage.(keyResolver); ok {
		return r.KeyFromURL(imageURL)
	}
	return path.Base(imageURL)
}

func (s *assetService) Delete(ctx context.Context, assetID, imageURL string) error {
	key := s.resolveKey(assetID, imageURL)
	if key == "" || key == "." || key == "/" {
		s.logger.Warn("asset delete skipped, no key",
			zap.String(logger.FieldAssetID, assetID),
			zap.String(logger.FieldImageURL, imageURL))
		return nil
	}

	start := time.Now()
	if err := s.storage.Delete(ctx, key); err != nil {
		assetOperations.WithLabelValues("delete", s.conf.StorageType, "error").Inc()
		if s.IsRemote() {
			return code.ErrorRemoteUnavailable.WithDetails(err.Error())
		}
		return code.ErrorStorageIO.WithDetails(err.Error())
	}

	assetOperations.WithLabelValues("delete", s.conf.StorageType, "ok").Inc()
	s.logger.Debug("asset deleted",
		zap.String(logger.FieldStorage, s.conf.StorageType),
		zap.String(logger.FieldFileKey, key),
		zap.Duration(logger.FieldDuration, time.Since(start)))
	return nil
}
