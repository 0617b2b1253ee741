package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/keepsake-service/internal/dao"
	"github.com/haierkeys/keepsake-service/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	c, err := ParseConfig([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, ":3000", c.Server.HttpPort)
	assert.Equal(t, dao.StoreMongo, c.Database.RecordStore)
	assert.Equal(t, "5s", c.Database.Mongo.RetryInterval)
	assert.Equal(t, storage.LOCAL, c.Storage.Type)
	assert.Equal(t, "/uploads", c.Storage.URLPrefix)
	assert.Equal(t, []string{"https://songpengju.github.io", "http://localhost:8000"}, c.Cors.AllowOrigins)
	assert.Equal(t, []string{".jpg", ".jpeg", ".png", ".gif"}, c.App.AllowedExts)
	assert.Equal(t, int64(5<<20), c.GetAssetServiceConfig().MaxUploadSize)
	assert.Equal(t, 6*time.Hour, c.GetOrphanSweepInterval())
	assert.Equal(t, time.Hour, c.GetOrphanGracePeriod())
	assert.Equal(t, 60*time.Second, c.GetContextTimeout())
}

func TestParseConfigFile(t *testing.T) {
	yml := `
server:
  http-port: ":8080"
app:
  upload-max-size: 1MB
  orphan-sweep-interval: "0"
database:
  record-store: jsonfile
  data-path: /tmp/keepsake
storage:
  type: s3
  bucket-name: photos
`
	c, err := ParseConfig([]byte(yml))
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Server.HttpPort)
	assert.Equal(t, dao.StoreJSONFile, c.Database.RecordStore)
	assert.Equal(t, "/tmp/keepsake", c.Database.DataPath)
	assert.Equal(t, int64(1<<20), c.GetAssetServiceConfig().MaxUploadSize)
	assert.Equal(t, storage.S3, c.GetAssetServiceConfig().StorageType)
	assert.Equal(t, time.Duration(0), c.GetOrphanSweepInterval())
}

func TestApplyEnv(t *testing.T) {
	c, err := ParseConfig([]byte("{}"))
	require.NoError(t, err)

	env := map[string]string{
		"PORT":            "4000",
		"MONGODB_URI":     "mongodb://db:27017/memories",
		"UPLOAD_DIR":      "/srv/uploads",
		"RECORD_STORE":    "sql",
		"UPLOAD_MAX_SIZE": "  ",
		"S3_BUCKET":       "bucket",
	}
	c.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, ":4000", c.Server.HttpPort)
	assert.Equal(t, "mongodb://db:27017/memories", c.Database.Mongo.URI)
	assert.Equal(t, "/srv/uploads", c.Storage.SavePath)
	assert.Equal(t, dao.StoreSQL, c.Database.RecordStore)
	assert.Equal(t, "5MB", c.App.UploadMaxSize)
	assert.Equal(t, "bucket", c.Storage.BucketName)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))

	c, real, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, real)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, path, c.File)

	_, _, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRedacted(t *testing.T) {
	c, err := ParseConfig([]byte("{}"))
	require.NoError(t, err)
	c.Database.Mongo.URI = "mongodb://user:secret@db:27017/keepsake"
	c.Storage.AccessKeySecret = "sk"

	r := c.Redacted()
	assert.Equal(t, "mongodb://user:******@db:27017/keepsake", r.Database.Mongo.URI)
	assert.Equal(t, "******", r.Storage.AccessKeySecret)
	assert.Equal(t, "sk", c.Storage.AccessKeySecret)
}
