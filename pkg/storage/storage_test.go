package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/keepsake-service/pkg/storage"
	"github.com/haierkeys/keepsake-service/pkg/storage/aws_s3"
	"github.com/haierkeys/keepsake-service/pkg/storage/local_fs"
	"github.com/haierkeys/keepsake-service/pkg/storage/noop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Local(t *testing.T) {
	cfg := &storage.Config{
		Type:      storage.LOCAL,
		SavePath:  t.TempDir(),
		URLPrefix: "/uploads",
	}

	client, err := storage.NewClient(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, client)

	_, ok := client.(*local_fs.LocalFS)
	assert.True(t, ok, "client is not *local_fs.LocalFS")
}

func TestNewClient_Remote(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"s3", storage.Config{Type: storage.S3, Region: "us-east-1", BucketName: "b"}},
		{"minio", storage.Config{Type: storage.MinIO, Endpoint: "http://127.0.0.1:9000", BucketName: "b"}},
		{"r2", storage.Config{Type: storage.R2, AccountID: "acct", BucketName: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			client, err := storage.NewClient(&cfg, nil)
			require.NoError(t, err)
			_, ok := client.(*aws_s3.S3)
			assert.True(t, ok)
			assert.True(t, storage.IsRemote(cfg.Type))
		})
	}
}

func TestNewClient_Noop(t *testing.T) {
	client, err := storage.NewClient(&storage.Config{Type: storage.NOOP}, nil)
	require.NoError(t, err)
	_, ok := client.(*noop.Noop)
	assert.True(t, ok)
	assert.False(t, storage.IsRemote(storage.NOOP))

	key, err := client.SendContent(context.Background(), "a.jpg", []byte("x"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", key)
	assert.Equal(t, "", client.PublicURL(key))
	assert.NoError(t, client.Delete(context.Background(), key))
}

func TestNewClient_Invalid(t *testing.T) {
	_, err := storage.NewClient(&storage.Config{Type: "invalid"}, nil)
	assert.Error(t, err)

	_, err = storage.NewClient(nil, nil)
	assert.Error(t, err)
}
