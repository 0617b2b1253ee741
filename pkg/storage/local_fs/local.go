package local_fs

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrStorageFull 磁盘剩余空间不足
var ErrStorageFull = errors.New("local_fs: storage full")

type Config struct {
	SavePath  string `yaml:"save-path" default:"storage/uploads"`
	URLPrefix string `yaml:"url-prefix" default:"/uploads"`
	// MinFreeSpace 写入前要求的最小剩余空间（字节），0 表示不检查
	MinFreeSpace int64 `yaml:"min-free-space"`
}

type LocalFS struct {
	Config *Config
	root   string
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf == nil || conf.SavePath == "" {
		return nil, errors.New("local_fs: save path is required")
	}
	if err := os.MkdirAll(conf.SavePath, 0o754); err != nil {
		return nil, errors.Wrap(err, "local_fs: create save path")
	}
	root, err := filepath.Abs(conf.SavePath)
	if err != nil {
		return nil, errors.Wrap(err, "local_fs: resolve save path")
	}
	if conf.URLPrefix == "" {
		conf.URLPrefix = "/uploads"
	}
	return &LocalFS{Config: conf, root: root}, nil
}

// Root 存储根目录的绝对路径
func (p *LocalFS) Root() string {
	return p.root
}
