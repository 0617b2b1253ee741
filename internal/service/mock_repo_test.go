package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"
)

// memPhotoRepo 内存版照片仓储
type memPhotoRepo struct {
	domain.PhotoRepository
	mu        sync.Mutex
	seq       int
	photos    map[string]*domain.Photo
	createErr error
}

func newMemPhotoRepo() *memPhotoRepo {
	return &memPhotoRepo{photos: map[string]*domain.Photo{}}
}

func (m *memPhotoRepo) Create(ctx context.Context, p *domain.Photo) (*domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.seq++
	cp := *p
	cp.ID = strconv.Itoa(m.seq)
	m.photos[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memPhotoRepo) List(ctx context.Context) ([]*domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*domain.Photo, 0, len(m.photos))
	for _, p := range m.photos {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}

func (m *memPhotoRepo) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.photos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPhotoRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.photos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.photos, id)
	return nil
}

// memLetterRepo 内存版信件仓储；lookupDelay 放大默认信件的竞争窗口
type memLetterRepo struct {
	domain.LetterRepository
	mu          sync.Mutex
	seq         int
	letters     []*domain.Letter
	lookupDelay time.Duration
	creates     int
}

func (m *memLetterRepo) Create(ctx context.Context, l *domain.Letter) (*domain.Letter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.creates++
	cp := *l
	cp.ID = strconv.Itoa(m.seq)
	m.letters = append(m.letters, &cp)
	out := cp
	return &out, nil
}

func (m *memLetterRepo) List(ctx context.Context) ([]*domain.Letter, error) {
	if m.lookupDelay > 0 {
		time.Sleep(m.lookupDelay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*domain.Letter, 0, len(m.letters))
	for _, l := range m.letters {
		cp := *l
		list = append(list, &cp)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}

func (m *memLetterRepo) find(match func(*domain.Letter) bool) (*domain.Letter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.letters {
		if match(l) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memLetterRepo) GetByID(ctx context.Context, id string) (*domain.Letter, error) {
	return m.find(func(l *domain.Letter) bool { return l.ID == id })
}

func (m *memLetterRepo) GetByTitle(ctx context.Context, title string) (*domain.Letter, error) {
	if m.lookupDelay > 0 {
		time.Sleep(m.lookupDelay)
	}
	return m.find(func(l *domain.Letter) bool { return l.Title == title })
}

func (m *memLetterRepo) Update(ctx context.Context, l *domain.Letter) (*domain.Letter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.letters {
		if cur.ID == l.ID {
			cur.Title, cur.Content, cur.Signature, cur.Date = l.Title, l.Content, l.Signature, l.Date
			cp := *cur
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memLetterRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.letters {
		if l.ID == id {
			m.letters = append(m.letters[:i], m.letters[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
