package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"
	"github.com/haierkeys/keepsake-service/pkg/code"
	"github.com/haierkeys/keepsake-service/pkg/logger"

	"go.uber.org/zap"
)

// PhotoService 定义照片业务服务接口
type PhotoService interface {
	// Create 写入图片后保存记录；保存失败时删除已写入的图片
	Create(ctx context.Context, params *PhotoCreateParams) (*PhotoDTO, error)

	// List 按日期倒序获取全部照片
	List(ctx context.Context) ([]*PhotoDTO, error)

	// Get 根据 ID 获取照片
	Get(ctx context.Context, id string) (*PhotoDTO, error)

	// Delete 删除照片及其图片，图片删除失败只记录日志
	Delete(ctx context.Context, id string) error
}

// PhotoCreateParams 照片创建参数
type PhotoCreateParams struct {
	Title       string
	Description string
	// Date 为空时使用当前时间
	Date     string
	Filename string
	Content  []byte
}

// PhotoDTO 照片数据传输对象
type PhotoDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	ImageURL    string    `json:"imageUrl"`
	AssetID     string    `json:"assetId,omitempty"`
}

type photoService struct {
	repo   domain.PhotoRepository
	asset  AssetService
	logger *zap.Logger
	now    func() time.Time
}

// NewPhotoService 创建 PhotoService 实例
func NewPhotoService(repo domain.PhotoRepository, asset AssetService, zl *zap.Logger) PhotoService {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &photoService{repo: repo, asset: asset, logger: zl, now: time.Now}
}

var _ PhotoService = (*photoService)(nil)

func (s *photoService) domainToDTO(p *domain.Photo) *PhotoDTO {
	if p == nil {
		return nil
	}
	return &PhotoDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
		ImageURL:    p.ImageURL,
		AssetID:     p.AssetID,
	}
}

// photoDateLayouts 客户端可能提交的日期格式
var photoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsePhotoDate 解析照片日期；空值取 now；纯数字按毫秒时间戳处理
func ParsePhotoDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	for _, layout := range photoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	return time.Time{}, code.ErrorPhotoInvalidDate.WithDetails(s)
}

func (s *photoService) Create(ctx context.Context, params *PhotoCreateParams) (*PhotoDTO, error) {
	if params == nil || params.Content == nil {
		return nil, code.ErrorPhotoNoImage
	}

	date, err := ParsePhotoDate(params.Date, s.now())
	if err != nil {
		return nil, err
	}

	asset, err := s.asset.Store(ctx, params.Content, params.Filename)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Photo{
		Title:       params.Title,
		Description: params.Description,
		Date:        date,
		ImageURL:    asset.URL,
		AssetID:     asset.ID,
	})
	if err != nil {
		s.logger.Error("photo persist failed, removing stored asset",
			zap.String(logger.FieldImageURL, asset.URL),
			zap.String(logger.FieldAssetID, asset.ID),
			zap.Error(err))
		// 补偿删除，失败时由孤儿文件清理任务兜底
		if derr := s.asset.Delete(context.WithoutCancel(ctx), asset.ID, asset.URL); derr != nil {
			s.logger.Warn("compensating asset delete failed",
				zap.String(logger.FieldImageURL, asset.URL),
				zap.Error(derr))
		}
		if errors.Is(err, domain.ErrDatabaseUnavailable) {
			return nil, code.ErrorDatabaseUnavailable.WithDetails(err.Error())
		}
		return nil, code.ErrorPhotoUploadFailed.WithDetails(err.Error())
	}

	return s.domainToDTO(created), nil
}

func (s *photoService) List(ctx context.Context) ([]*PhotoDTO, error) {
	photos, err := s.repo.List(ctx)
	if err != nil {
		return nil, code.ErrorPhotoListFailed.WithDetails(err.Error())
	}
	list := make([]*PhotoDTO, 0, len(photos))
	for _, p := range photos {
		list = append(list, s.domainToDTO(p))
	}
	return list, nil
}

func (s *photoService) Get(ctx context.Context, id string) (*PhotoDTO, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorPhotoNotFound
		}
		return nil, code.ErrorPhotoListFailed.WithDetails(err.Error())
	}
	return s.domainToDTO(p), nil
}

func (s *photoService) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrorPhotoNotFound
		}
		return code.ErrorPhotoDeleteFailed.WithDetails(err.Error())
	}

	if err := s.asset.Delete(ctx, p.AssetID, p.ImageURL); err != nil {
		s.logger.Warn("photo asset delete failed, removing record anyway",
			zap.String(logger.FieldPhotoID, id),
			zap.String(logger.FieldImageURL, p.ImageURL),
			zap.Error(err))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrorPhotoNotFound
		}
		return code.ErrorPhotoDeleteFailed.WithDetails(err.Error())
	}
	return nil
}
