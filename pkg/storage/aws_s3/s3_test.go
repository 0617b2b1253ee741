package aws_s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresBucket(t *testing.T) {
	_, err := NewClient(&Config{Region: "us-east-1"})
	assert.Error(t, err)

	_, err = NewClient(nil, WithName("minio"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minio")
}

func TestObjectKeyAndPublicURL(t *testing.T) {
	tests := []struct {
		name string
		conf Config
		key  string
		url  string
	}{
		{
			name: "aws default host",
			conf: Config{Region: "ap-east-1", BucketName: "keepsake"},
			key:  "a.jpg",
			url:  "https://keepsake.s3.ap-east-1.amazonaws.com/a.jpg",
		},
		{
			name: "custom path with endpoint",
			conf: Config{Region: "us-east-1", BucketName: "keepsake", Endpoint: "http://127.0.0.1:9000/", CustomPath: "photos"},
			key:  "photos/a.jpg",
			url:  "http://127.0.0.1:9000/keepsake/photos/a.jpg",
		},
		{
			name: "public url wins",
			conf: Config{Region: "auto", BucketName: "keepsake", Endpoint: "https://x.example", PublicURL: "https://cdn.example/"},
			key:  "a.jpg",
			url:  "https://cdn.example/a.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := tt.conf
			c, err := NewClient(&conf, WithLogger(nil))
			require.NoError(t, err)
			assert.Equal(t, tt.key, c.ObjectKey("a.jpg"))
			assert.Equal(t, tt.url, c.PublicURL(tt.key))
		})
	}
}
