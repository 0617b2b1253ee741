package webdav

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/haierkeys/keepsake-service/pkg/fileurl"

	"github.com/pkg/errors"
)

// remotePath 存储键在服务器上的完整路径
func (w *WebDAV) remotePath(fileKey string) string {
	return path.Join("/", w.Config.Path, fileKey)
}

// SendFile 将文件流上传到 WebDAV 服务器。
func (w *WebDAV) SendFile(ctx context.Context, pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fileKey := fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + strings.TrimPrefix(pathKey, "/")
	remote := w.remotePath(fileKey)

	if err := w.Client.MkdirAll(path.Dir(remote), 0o755); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	if err := w.Client.WriteStream(remote, file, 0o644); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return fileKey, nil
}

// SendContent 将二进制内容上传到 WebDAV 服务器。
func (w *WebDAV) SendContent(ctx context.Context, pathKey string, content []byte, modTime time.Time) (string, error) {
	return w.SendFile(ctx, pathKey, bytes.NewReader(content), "", modTime)
}

// Delete 从 WebDAV 服务器删除文件，不存在时返回 nil。
func (w *WebDAV) Delete(ctx context.Context, fileKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := w.Client.Remove(w.remotePath(fileKey)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "webdav")
	}
	return nil
}

func (w *WebDAV) PublicURL(fileKey string) string {
	base := w.Config.PublicURL
	if base == "" {
		base = strings.TrimSuffix(w.Config.Endpoint, "/") + path.Join("/", w.Config.Path)
	}
	return strings.TrimSuffix(base, "/") + "/" + fileKey
}
