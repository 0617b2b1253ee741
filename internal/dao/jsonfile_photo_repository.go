package dao

import (
	"context"
	"sort"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"
)

type jsonPhoto struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	ImageURL    string    `json:"imageUrl"`
	AssetID     string    `json:"assetId,omitempty"`
}

func (j jsonPhoto) toDomain() *domain.Photo {
	return &domain.Photo{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Date:        j.Date,
		ImageURL:    j.ImageURL,
		AssetID:     j.AssetID,
	}
}

// jsonPhotoRepository 实现 domain.PhotoRepository 接口，数据保存在 photos.json
type jsonPhotoRepository struct {
	coll *jsonCollection[jsonPhoto]
}

func NewJSONPhotoRepository(dir string) (domain.PhotoRepository, error) {
	coll, err := newJSONCollection[jsonPhoto](dir, "photos.json")
	if err != nil {
		return nil, err
	}
	return &jsonPhotoRepository{coll: coll}, nil
}

var _ domain.PhotoRepository = (*jsonPhotoRepository)(nil)

func (r *jsonPhotoRepository) Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error) {
	var created jsonPhoto
	err := r.coll.mutate(func(items []jsonPhoto) ([]jsonPhoto, error) {
		created = jsonPhoto{
			ID: r.coll.nextID(func(id string) bool {
				for _, it := range items {
					if it.ID == id {
						return true
					}
				}
				return false
			}),
			Title:       photo.Title,
			Description: photo.Description,
			Date:        photo.Date,
			ImageURL:    photo.ImageURL,
			AssetID:     photo.AssetID,
		}
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}
	return created.toDomain(), nil
}

func (r *jsonPhotoRepository) List(ctx context.Context) ([]*domain.Photo, error) {
	items, err := r.coll.read()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	list := make([]*domain.Photo, 0, len(items))
	for _, it := range items {
		list = append(list, it.toDomain())
	}
	return list, nil
}

func (r *jsonPhotoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	items, err := r.coll.read()
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == id {
			return it.toDomain(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *jsonPhotoRepository) Delete(ctx context.Context, id string) error {
	return r.coll.mutate(func(items []jsonPhoto) ([]jsonPhoto, error) {
		for i, it := range items {
			if it.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
