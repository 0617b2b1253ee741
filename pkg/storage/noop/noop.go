package noop

import (
	"context"
	"io"
	"strings"
	"time"
)

// Noop 丢弃写入内容的存储，用于测试和演示环境
type Noop struct {
	publicURL string
}

func NewClient(publicURL string) *Noop {
	return &Noop{publicURL: publicURL}
}

func (n *Noop) SendFile(ctx context.Context, pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}
	return strings.TrimPrefix(pathKey, "/"), nil
}

func (n *Noop) SendContent(ctx context.Context, pathKey string, content []byte, modTime time.Time) (string, error) {
	return strings.TrimPrefix(pathKey, "/"), nil
}

func (n *Noop) Delete(ctx context.Context, fileKey string) error {
	return nil
}

func (n *Noop) PublicURL(fileKey string) string {
	if n.publicURL == "" {
		return ""
	}
	return strings.TrimSuffix(n.publicURL, "/") + "/" + fileKey
}
