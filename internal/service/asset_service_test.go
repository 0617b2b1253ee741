package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haierkeys/keepsake-service/pkg/code"
	"github.com/haierkeys/keepsake-service/pkg/storage"
	"github.com/haierkeys/keepsake-service/pkg/storage/local_fs"
	"github.com/haierkeys/keepsake-service/pkg/storage/noop"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// fakeStorager 记录调用的存储桩
type fakeStorager struct {
	mu        sync.Mutex
	files     map[string][]byte
	deleted   []string
	sendErr   error
	deleteErr error
}

func newFakeStorager() *fakeStorager {
	return &fakeStorager{files: map[string][]byte{}}
}

func (f *fakeStorager) SendFile(ctx context.Context, pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := "photos/" + pathKey
	f.files[key] = b
	return key, nil
}

func (f *fakeStorager) SendContent(ctx context.Context, pathKey string, content []byte, modTime time.Time) (string, error) {
	return f.SendFile(ctx, pathKey, bytes.NewReader(content), "", modTime)
}

func (f *fakeStorager) Delete(ctx context.Context, fileKey string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, fileKey)
	delete(f.files, fileKey)
	return nil
}

func (f *fakeStorager) PublicURL(fileKey string) string {
	return "https://cdn.example.com/" + fileKey
}

func newLocalAsset(t *testing.T, maxSize int64) (AssetService, *local_fs.LocalFS) {
	t.Helper()
	fs, err := local_fs.NewClient(&local_fs.Config{SavePath: t.TempDir(), URLPrefix: "/uploads"})
	require.NoError(t, err)
	return NewAssetService(fs, AssetServiceConfig{StorageType: storage.LOCAL, MaxUploadSize: maxSize}, nil), fs
}

func TestAssetStoreLocal(t *testing.T) {
	svc, fs := newLocalAsset(t, 0)
	assert.False(t, svc.IsRemote())

	asset, err := svc.Store(context.Background(), pngHeader, "cat.png")
	require.NoError(t, err)
	assert.Empty(t, asset.ID)
	assert.True(t, strings.HasPrefix(asset.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(asset.URL, ".png"))

	data, err := os.ReadFile(filepath.Join(fs.Root(), strings.TrimPrefix(asset.URL, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	require.NoError(t, svc.Delete(context.Background(), "", asset.URL))
	files, err := fs.ListFiles()
	require.NoError(t, err)
	assert.Empty(t, files)

	// 重复删除视为成功
	assert.NoError(t, svc.Delete(context.Background(), "", asset.URL))
}

func TestAssetStoreLocalAcceptsAnyExtension(t *testing.T) {
	svc, _ := newLocalAsset(t, 0)
	asset, err := svc.Store(context.Background(), []byte("not really an image"), "notes.txt")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(asset.URL, ".txt"))
}

func TestAssetStoreTooLarge(t *testing.T) {
	svc, fs := newLocalAsset(t, 8)

	_, err := svc.Store(context.Background(), make([]byte, 9), "big.png")
	assert.ErrorIs(t, err, code.ErrorPayloadTooLarge)

	files, err := fs.ListFiles()
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = svc.Store(context.Background(), make([]byte, 8), "ok.png")
	assert.NoError(t, err)
}

func TestAssetStoreRemote(t *testing.T) {
	st := newFakeStorager()
	svc := NewAssetService(st, AssetServiceConfig{StorageType: storage.S3}, nil)
	assert.True(t, svc.IsRemote())

	tests := []struct {
		name     string
		filename string
		wantErr  error
	}{
		{"png", "a.png", nil},
		{"upper jpg", "B.JPG", nil},
		{"jpeg", "c.jpeg", nil},
		{"gif", "d.gif", nil},
		{"webp rejected", "e.webp", code.ErrorUnsupportedMedia},
		{"no ext rejected", "noext", code.ErrorUnsupportedMedia},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := svc.Store(context.Background(), pngHeader, tt.filename)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(asset.ID, "photos/"))
			assert.Equal(t, "https://cdn.example.com/"+asset.ID, asset.URL)
		})
	}
}

func TestAssetStoreErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		storageType string
		sendErr     error
		want        error
	}{
		{"local full", storage.LOCAL, storage.ErrStorageFull, code.ErrorStorageFull},
		{"local io", storage.LOCAL, errors.New("disk gone"), code.ErrorStorageIO},
		{"remote down", storage.MinIO, errors.New("connection refused"), code.ErrorRemoteUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newFakeStorager()
			st.sendErr = tt.sendErr
			svc := NewAssetService(st, AssetServiceConfig{StorageType: tt.storageType}, nil)
			_, err := svc.Store(context.Background(), pngHeader, "x.png")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAssetDeleteResolvesKey(t *testing.T) {
	st := newFakeStorager()
	svc := NewAssetService(st, AssetServiceConfig{StorageType: storage.S3}, nil)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "photos/a.png", "https://cdn.example.com/photos/a.png"))
	require.NoError(t, svc.Delete(ctx, "", "https://cdn.example.com/photos/b.png"))
	require.NoError(t, svc.Delete(ctx, "", ""))
	assert.Equal(t, []string{"photos/a.png", "b.png"}, st.deleted)

	st.deleteErr = errors.New("timeout")
	assert.ErrorIs(t, svc.Delete(ctx, "photos/c.png", ""), code.ErrorRemoteUnavailable)
}

func TestAssetStoreNoop(t *testing.T) {
	svc := NewAssetService(noop.NewClient(""), AssetServiceConfig{StorageType: storage.NOOP}, nil)
	asset, err := svc.Store(context.Background(), pngHeader, "a.png")
	require.NoError(t, err)
	assert.Empty(t, asset.URL)
	assert.NoError(t, svc.Delete(context.Background(), "", asset.URL))
}
