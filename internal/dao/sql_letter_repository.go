package dao

import (
	"context"

	"github.com/haierkeys/keepsake-service/internal/domain"
	"github.com/haierkeys/keepsake-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sqlLetterRepository 实现 domain.LetterRepository 接口
type sqlLetterRepository struct {
	db *gorm.DB
}

// NewSQLLetterRepository 创建 LetterRepository 实例
func NewSQLLetterRepository(db *gorm.DB) domain.LetterRepository {
	return &sqlLetterRepository{db: db}
}

var _ domain.LetterRepository = (*sqlLetterRepository)(nil)

func (r *sqlLetterRepository) toDomain(m *model.Letter) (*domain.Letter, error) {
	l := new(domain.Letter)
	if err := copyWithID(l, m); err != nil {
		return nil, errors.Wrap(err, "copy letter")
	}
	return l, nil
}

func (r *sqlLetterRepository) Create(ctx context.Context, letter *domain.Letter) (*domain.Letter, error) {
	m := new(model.Letter)
	if err := copyWithID(m, letter); err != nil {
		return nil, errors.Wrap(err, "copy letter")
	}
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, sqlErr(err)
	}
	return r.toDomain(m)
}

func (r *sqlLetterRepository) List(ctx context.Context) ([]*domain.Letter, error) {
	var ms []*model.Letter
	if err := r.db.WithContext(ctx).Order("date DESC").Order("id DESC").Find(&ms).Error; err != nil {
		return nil, sqlErr(err)
	}
	list := make([]*domain.Letter, 0, len(ms))
	for _, m := range ms {
		l, err := r.toDomain(m)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, nil
}

func (r *sqlLetterRepository) GetByID(ctx context.Context, id string) (*domain.Letter, error) {
	n, err := parseSQLID(id)
	if err != nil {
		return nil, err
	}
	m := new(model.Letter)
	if err := r.db.WithContext(ctx).Where("id = ?", n).First(m).Error; err != nil {
		return nil, sqlErr(err)
	}
	return r.toDomain(m)
}

func (r *sqlLetterRepository) GetByTitle(ctx context.Context, title string) (*domain.Letter, error) {
	m := new(model.Letter)
	if err := r.db.WithContext(ctx).Where("title = ?", title).Order("id ASC").First(m).Error; err != nil {
		return nil, sqlErr(err)
	}
	return r.toDomain(m)
}

func (r *sqlLetterRepository) Update(ctx context.Context, letter *domain.Letter) (*domain.Letter, error) {
	n, err := parseSQLID(letter.ID)
	if err != nil {
		return nil, err
	}
	res := r.db.WithContext(ctx).Model(&model.Letter{}).Where("id = ?", n).Updates(map[string]interface{}{
		"title":     letter.Title,
		"content":   letter.Content,
		"signature": letter.Signature,
		"date":      letter.Date,
	})
	if res.Error != nil {
		return nil, sqlErr(res.Error)
	}
	// 内容未变时 mysql 的 RowsAffected 也为 0，不能据此判断不存在
	return r.GetByID(ctx, letter.ID)
}

func (r *sqlLetterRepository) Delete(ctx context.Context, id string) error {
	n, err := parseSQLID(id)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where("id = ?", n).Delete(&model.Letter{})
	if res.Error != nil {
		return sqlErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
