package dao

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/keepsake-service/internal/domain"
	"github.com/haierkeys/keepsake-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type storeFactory func(t *testing.T) *Store

func jsonFileStore(t *testing.T) *Store {
	s, err := NewStore(Config{RecordStore: StoreJSONFile, DataPath: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	return s
}

func sqliteStore(t *testing.T) *Store {
	s, err := NewStore(Config{
		RecordStore: StoreSQL,
		SQL: SQLConfig{
			Type:        "sqlite",
			Path:        filepath.Join(t.TempDir(), "keepsake.sqlite3"),
			AutoMigrate: true,
		},
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

var stores = map[string]storeFactory{
	StoreJSONFile: jsonFileStore,
	StoreSQL:      sqliteStore,
}

func TestPhotoRepositoryContract(t *testing.T) {
	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := factory(t).Photos
			base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

			older, err := repo.Create(ctx, &domain.Photo{Title: "old", Date: base, ImageURL: "/uploads/1.jpg"})
			require.NoError(t, err)
			newer, err := repo.Create(ctx, &domain.Photo{Title: "new", Description: "d", Date: base.Add(time.Hour), ImageURL: "/uploads/2.jpg", AssetID: "k/2.jpg"})
			require.NoError(t, err)
			assert.NotEmpty(t, older.ID)
			assert.NotEqual(t, older.ID, newer.ID)

			list, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, newer.ID, list[0].ID)
			assert.Equal(t, older.ID, list[1].ID)

			got, err := repo.GetByID(ctx, newer.ID)
			require.NoError(t, err)
			assert.Equal(t, "new", got.Title)
			assert.Equal(t, "d", got.Description)
			assert.Equal(t, "k/2.jpg", got.AssetID)
			assert.True(t, got.Date.Equal(base.Add(time.Hour)))

			require.NoError(t, repo.Delete(ctx, older.ID))
			assert.ErrorIs(t, repo.Delete(ctx, older.ID), domain.ErrNotFound)
			_, err = repo.GetByID(ctx, older.ID)
			assert.ErrorIs(t, err, domain.ErrNotFound)
			_, err = repo.GetByID(ctx, "not-an-id")
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestLetterRepositoryContract(t *testing.T) {
	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := factory(t).Letters
			now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

			list, err := repo.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)

			first, err := repo.Create(ctx, &domain.Letter{Title: "hi", Content: "c1", Signature: "s", Date: now})
			require.NoError(t, err)
			_, err = repo.Create(ctx, &domain.Letter{Title: "hi", Content: "c2", Signature: "s", Date: now.Add(time.Minute)})
			require.NoError(t, err)

			byTitle, err := repo.GetByTitle(ctx, "hi")
			require.NoError(t, err)
			assert.Equal(t, first.ID, byTitle.ID)
			_, err = repo.GetByTitle(ctx, "missing")
			assert.ErrorIs(t, err, domain.ErrNotFound)

			edit := *first
			edit.Title = "edited"
			edit.Content = "c1'"
			edit.Date = now.Add(time.Hour)
			updated, err := repo.Update(ctx, &edit)
			require.NoError(t, err)
			assert.Equal(t, first.ID, updated.ID)
			assert.Equal(t, "edited", updated.Title)
			assert.True(t, updated.Date.Equal(now.Add(time.Hour)))

			list, err = repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, first.ID, list[0].ID)

			missing := edit
			missing.ID = "999999"
			_, err = repo.Update(ctx, &missing)
			assert.ErrorIs(t, err, domain.ErrNotFound)

			require.NoError(t, repo.Delete(ctx, first.ID))
			assert.ErrorIs(t, repo.Delete(ctx, first.ID), domain.ErrNotFound)
		})
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	_, err := NewStore(Config{RecordStore: "redis"}, nil)
	assert.ErrorIs(t, err, code.ErrorInvalidRecordStore)
}
