package dao

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONConcurrentCreatesSameTick(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewJSONPhotoRepository(dir)
	require.NoError(t, err)

	frozen := time.UnixMilli(1700000000000)
	repo.(*jsonPhotoRepository).coll.now = func() time.Time { return frozen }

	const n = 20
	ctx := context.Background()
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := repo.Create(ctx, &domain.Photo{Title: "p", Date: frozen})
			if assert.NoError(t, err) {
				ids[i] = p.ID
			}
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		_, err := repo.GetByID(ctx, id)
		assert.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestJSONIDsSkipExistingAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	frozen := time.UnixMilli(1700000000000)

	a, err := NewJSONLetterRepository(dir)
	require.NoError(t, err)
	b, err := NewJSONLetterRepository(dir)
	require.NoError(t, err)
	a.(*jsonLetterRepository).coll.now = func() time.Time { return frozen }
	b.(*jsonLetterRepository).coll.now = func() time.Time { return frozen }

	ctx := context.Background()
	la, err := a.Create(ctx, &domain.Letter{Title: "a", Content: "a"})
	require.NoError(t, err)
	lb, err := b.Create(ctx, &domain.Letter{Title: "b", Content: "b"})
	require.NoError(t, err)
	assert.NotEqual(t, la.ID, lb.ID)
	assert.Equal(t, "1700000000000", la.ID)
}

func TestJSONFileLayout(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewJSONPhotoRepository(dir)
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), &domain.Photo{Title: "x", ImageURL: "/uploads/x.jpg"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "photos.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"imageUrl": "/uploads/x.jpg"`)
	assert.NotContains(t, string(data), "assetId")

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestJSONCorruptFileSurfacesError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "letters.json"), []byte("{not json"), 0o644))
	repo, err := NewJSONLetterRepository(dir)
	require.NoError(t, err)

	_, err = repo.List(context.Background())
	assert.Error(t, err)
}
