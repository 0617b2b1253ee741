package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"
	"github.com/haierkeys/keepsake-service/pkg/code"
	"github.com/haierkeys/keepsake-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LetterService 定义信件业务服务接口
type LetterService interface {
	// Create 创建信件，署名为空时使用默认署名
	Create(ctx context.Context, params *LetterParams) (*LetterDTO, error)

	// List 按日期倒序获取全部信件，集合为空时创建默认信件
	List(ctx context.Context) ([]*LetterDTO, error)

	// Get 根据 ID 获取信件，id 为 default 时查找或创建默认信件
	Get(ctx context.Context, id string) (*LetterDTO, error)

	// Update 更新信件并刷新日期
	Update(ctx context.Context, id string, params *LetterParams) (*LetterDTO, error)

	// Delete 删除信件
	Delete(ctx context.Context, id string) error
}

// LetterParams 信件创建与更新参数
type LetterParams struct {
	Title     string
	Content   string
	Signature string
}

// LetterDTO 信件数据传输对象
type LetterDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Signature string    `json:"signature"`
	Date      time.Time `json:"date"`
}

const sfKeyDefaultLetter = "letter_default"

type letterService struct {
	repo   domain.LetterRepository
	sf     *singleflight.Group
	logger *zap.Logger
	now    func() time.Time
}

// NewLetterService 创建 LetterService 实例
func NewLetterService(repo domain.LetterRepository, zl *zap.Logger) LetterService {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &letterService{
		repo:   repo,
		sf:     &singleflight.Group{},
		logger: zl,
		now:    time.Now,
	}
}

var _ LetterService = (*letterService)(nil)

func (s *letterService) domainToDTO(l *domain.Letter) *LetterDTO {
	if l == nil {
		return nil
	}
	return &LetterDTO{
		ID:        l.ID,
		Title:     l.Title,
		Content:   l.Content,
		Signature: l.Signature,
		Date:      l.Date,
	}
}

func signatureOrDefault(sig string) string {
	if strings.TrimSpace(sig) == "" {
		return domain.DefaultSignature
	}
	return sig
}

// ensureDefault 查找或创建默认信件
// 使用 Singleflight 合并并发请求，并在 flight 内再次查询，保证只创建一封
func (s *letterService) ensureDefault(ctx context.Context) (*domain.Letter, error) {
	result, err, _ := s.sf.Do(sfKeyDefaultLetter, func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)
		existing, err := s.repo.GetByTitle(ctx, domain.DefaultLetterTitle)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}

		created, err := s.repo.Create(ctx, domain.NewDefaultLetter(s.now()))
		if err != nil {
			return nil, err
		}
		defaultLetterCreated.Inc()
		s.logger.Info("default letter created", zap.String(logger.FieldLetterID, created.ID))
		return created, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Letter), nil
}

func (s *letterService) Create(ctx context.Context, params *LetterParams) (*LetterDTO, error) {
	if params == nil {
		params = &LetterParams{}
	}
	created, err := s.repo.Create(ctx, &domain.Letter{
		Title:     params.Title,
		Content:   params.Content,
		Signature: signatureOrDefault(params.Signature),
		Date:      s.now(),
	})
	if err != nil {
		return nil, code.ErrorLetterCreateFailed.WithDetails(err.Error())
	}
	return s.domainToDTO(created), nil
}

func (s *letterService) List(ctx context.Context) ([]*LetterDTO, error) {
	letters, err := s.repo.List(ctx)
	if err != nil {
		return nil, code.ErrorLetterListFailed.WithDetails(err.Error())
	}

	if len(letters) == 0 {
		def, err := s.ensureDefault(ctx)
		if err != nil {
			return nil, code.ErrorLetterListFailed.WithDetails(err.Error())
		}
		return []*LetterDTO{s.domainToDTO(def)}, nil
	}

	list := make([]*LetterDTO, 0, len(letters))
	for _, l := range letters {
		list = append(list, s.domainToDTO(l))
	}
	return list, nil
}

func (s *letterService) Get(ctx context.Context, id string) (*LetterDTO, error) {
	if id == domain.DefaultLetterID {
		def, err := s.ensureDefault(ctx)
		if err != nil {
			return nil, code.ErrorLetterGetFailed.WithDetails(err.Error())
		}
		return s.domainToDTO(def), nil
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorLetterNotFound
		}
		return nil, code.ErrorLetterGetFailed.WithDetails(err.Error())
	}
	return s.domainToDTO(l), nil
}

func (s *letterService) Update(ctx context.Context, id string, params *LetterParams) (*LetterDTO, error) {
	if params == nil || strings.TrimSpace(params.Title) == "" || strings.TrimSpace(params.Content) == "" {
		return nil, code.ErrorLetterInvalid
	}

	updated, err := s.repo.Update(ctx, &domain.Letter{
		ID:        id,
		Title:     params.Title,
		Content:   params.Content,
		Signature: signatureOrDefault(params.Signature),
		Date:      s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorLetterNotFound
		}
		return nil, code.ErrorLetterUpdateFailed.WithDetails(err.Error())
	}
	return s.domainToDTO(updated), nil
}

func (s *letterService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrorLetterNotFound
		}
		return code.ErrorLetterDeleteFailed.WithDetails(err.Error())
	}
	return nil
}
