package dao

import (
	"context"
	"sort"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"
)

type jsonLetter struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Signature string    `json:"signature"`
	Date      time.Time `json:"date"`
}

func (j jsonLetter) toDomain() *domain.Letter {
	return &domain.Letter{
		ID:        j.ID,
		Title:     j.Title,
		Content:   j.Content,
		Signature: j.Signature,
		Date:      j.Date,
	}
}

// jsonLetterRepository 实现 domain.LetterRepository 接口，数据保存在 letters.json
type jsonLetterRepository struct {
	coll *jsonCollection[jsonLetter]
}

func NewJSONLetterRepository(dir string) (domain.LetterRepository, error) {
	coll, err := newJSONCollection[jsonLetter](dir, "letters.json")
	if err != nil {
		return nil, err
	}
	return &jsonLetterRepository{coll: coll}, nil
}

var _ domain.LetterRepository = (*jsonLetterRepository)(nil)

func (r *jsonLetterRepository) Create(ctx context.Context, letter *domain.Letter) (*domain.Letter, error) {
	var created jsonLetter
	err := r.coll.mutate(func(items []jsonLetter) ([]jsonLetter, error) {
		created = jsonLetter{
			ID: r.coll.nextID(func(id string) bool {
				for _, it := range items {
					if it.ID == id {
						return true
					}
				}
				return false
			}),
			Title:     letter.Title,
			Content:   letter.Content,
			Signature: letter.Signature,
			Date:      letter.Date,
		}
		return append(items, created), nil
	})
	if err != nil {
		return nil, err
	}
	return created.toDomain(), nil
}

func (r *jsonLetterRepository) List(ctx context.Context) ([]*domain.Letter, error) {
	items, err := r.coll.read()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	list := make([]*domain.Letter, 0, len(items))
	for _, it := range items {
		list = append(list, it.toDomain())
	}
	return list, nil
}

func (r *jsonLetterRepository) find(match func(jsonLetter) bool) (*domain.Letter, error) {
	items, err := r.coll.read()
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if match(it) {
			return it.toDomain(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *jsonLetterRepository) GetByID(ctx context.Context, id string) (*domain.Letter, error) {
	return r.find(func(l jsonLetter) bool { return l.ID == id })
}

func (r *jsonLetterRepository) GetByTitle(ctx context.Context, title string) (*domain.Letter, error) {
	return r.find(func(l jsonLetter) bool { return l.Title == title })
}

func (r *jsonLetterRepository) Update(ctx context.Context, letter *domain.Letter) (*domain.Letter, error) {
	var updated jsonLetter
	err := r.coll.mutate(func(items []jsonLetter) ([]jsonLetter, error) {
		for i := range items {
			if items[i].ID == letter.ID {
				items[i].Title = letter.Title
				items[i].Content = letter.Content
				items[i].Signature = letter.Signature
				items[i].Date = letter.Date
				updated = items[i]
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated.toDomain(), nil
}

func (r *jsonLetterRepository) Delete(ctx context.Context, id string) error {
	return r.coll.mutate(func(items []jsonLetter) ([]jsonLetter, error) {
		for i, it := range items {
			if it.ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
