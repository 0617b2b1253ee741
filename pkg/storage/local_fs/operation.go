package local_fs

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v4/disk"
)

// abs 将存储键解析为根目录下的绝对路径，拒绝越界路径
func (p *LocalFS) abs(fileKey string) (string, error) {
	joined := filepath.Join(p.root, filepath.Clean(filepath.FromSlash(fileKey)))
	rel, err := filepath.Rel(p.root, joined)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", errors.Errorf("local_fs: path %q escapes storage root", fileKey)
	}
	return joined, nil
}

func (p *LocalFS) checkFreeSpace(ctx context.Context, need int64) error {
	if p.Config.MinFreeSpace <= 0 {
		return nil
	}
	usage, err := disk.UsageWithContext(ctx, p.root)
	if err != nil {
		return errors.Wrap(err, "local_fs: disk usage")
	}
	if int64(usage.Free) < p.Config.MinFreeSpace+need {
		return ErrStorageFull
	}
	return nil
}

// SendFile 写入临时文件后原子重命名
func (p *LocalFS) SendFile(ctx context.Context, fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	dest, err := p.abs(fileKey)
	if err != nil {
		return "", err
	}
	if err := p.checkFreeSpace(ctx, 0); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o754); err != nil {
		return "", errors.Wrap(err, "local_fs: mkdir")
	}

	tmp := dest + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "local_fs: open tmp")
	}

	_, werr := io.Copy(f, file)
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(tmp)
		if errors.Is(werr, syscall.ENOSPC) {
			return "", ErrStorageFull
		}
		return "", errors.Wrap(werr, "local_fs: write")
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return "", errors.Wrap(err, "local_fs: rename")
	}

	if !modTime.IsZero() {
		_ = os.Chtimes(dest, modTime, modTime)
	}

	return filepath.ToSlash(fileKey), nil
}

func (p *LocalFS) SendContent(ctx context.Context, fileKey string, content []byte, modTime time.Time) (string, error) {
	if err := p.checkFreeSpace(ctx, int64(len(content))); err != nil {
		return "", err
	}
	return p.SendFile(ctx, fileKey, bytes.NewReader(content), "", modTime)
}

// Delete 删除文件，不存在时视为成功
func (p *LocalFS) Delete(ctx context.Context, fileKey string) error {
	dst, err := p.abs(fileKey)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "local_fs: delete")
	}
	return nil
}

func (p *LocalFS) PublicURL(fileKey string) string {
	return strings.TrimSuffix(p.Config.URLPrefix, "/") + "/" + path.Clean(strings.TrimPrefix(filepath.ToSlash(fileKey), "/"))
}

// KeyFromURL 从访问地址反推存储键，与 PublicURL 互逆
func (p *LocalFS) KeyFromURL(url string) string {
	prefix := strings.TrimSuffix(p.Config.URLPrefix, "/") + "/"
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix)
	}
	return path.Base(url)
}

// ListFiles 列出根目录下的文件（不递归，跳过临时文件）
func (p *LocalFS) ListFiles() ([]os.FileInfo, error) {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return nil, errors.Wrap(err, "local_fs: read dir")
	}
	files := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".tmp") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, info)
	}
	return files, nil
}
