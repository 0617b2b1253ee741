package dao

import (
	"context"
	"strconv"

	"github.com/haierkeys/keepsake-service/internal/domain"
	"github.com/haierkeys/keepsake-service/internal/model"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// idConverters 领域模型字符串 ID 与数据库自增 ID 互转
var idConverters = []copier.TypeConverter{
	{
		SrcType: int64(0),
		DstType: "",
		Fn: func(src interface{}) (interface{}, error) {
			return strconv.FormatInt(src.(int64), 10), nil
		},
	},
	{
		SrcType: "",
		DstType: int64(0),
		Fn: func(src interface{}) (interface{}, error) {
			s := src.(string)
			if s == "" {
				return int64(0), nil
			}
			return strconv.ParseInt(s, 10, 64)
		},
	},
}

func copyWithID(to, from interface{}) error {
	return copier.CopyWithOption(to, from, copier.Option{Converters: idConverters})
}

// parseSQLID 非数字 id 视为不存在
func parseSQLID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.ErrNotFound
	}
	return n, nil
}

func sqlErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return errors.Wrap(err, "sql")
}

// sqlPhotoRepository 实现 domain.PhotoRepository 接口
type sqlPhotoRepository struct {
	db *gorm.DB
}

// NewSQLPhotoRepository 创建 PhotoRepository 实例
func NewSQLPhotoRepository(db *gorm.DB) domain.PhotoRepository {
	return &sqlPhotoRepository{db: db}
}

var _ domain.PhotoRepository = (*sqlPhotoRepository)(nil)

// toDomain 将数据库模型转换为领域模型
func (r *sqlPhotoRepository) toDomain(m *model.Photo) (*domain.Photo, error) {
	p := new(domain.Photo)
	if err := copyWithID(p, m); err != nil {
		return nil, errors.Wrap(err, "copy photo")
	}
	return p, nil
}

func (r *sqlPhotoRepository) Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error) {
	m := new(model.Photo)
	if err := copyWithID(m, photo); err != nil {
		return nil, errors.Wrap(err, "copy photo")
	}
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, sqlErr(err)
	}
	return r.toDomain(m)
}

func (r *sqlPhotoRepository) List(ctx context.Context) ([]*domain.Photo, error) {
	var ms []*model.Photo
	if err := r.db.WithContext(ctx).Order("date DESC").Order("id DESC").Find(&ms).Error; err != nil {
		return nil, sqlErr(err)
	}
	list := make([]*domain.Photo, 0, len(ms))
	for _, m := range ms {
		p, err := r.toDomain(m)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

func (r *sqlPhotoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	n, err := parseSQLID(id)
	if err != nil {
		return nil, err
	}
	m := new(model.Photo)
	if err := r.db.WithContext(ctx).Where("id = ?", n).First(m).Error; err != nil {
		return nil, sqlErr(err)
	}
	return r.toDomain(m)
}

func (r *sqlPhotoRepository) Delete(ctx context.Context, id string) error {
	n, err := parseSQLID(id)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where("id = ?", n).Delete(&model.Photo{})
	if res.Error != nil {
		return sqlErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
