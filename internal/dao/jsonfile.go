package dao

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// jsonCollection 以单个 JSON 数组文件保存的集合
// 每次操作重新读取文件；写操作在进程内互斥锁与文件锁下完成读-改-写
type jsonCollection[T any] struct {
	path   string
	mu     sync.Mutex
	lock   *flock.Flock
	lastID int64
	now    func() time.Time
}

func newJSONCollection[T any](dir, name string) (*jsonCollection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "jsonfile: create data dir")
	}
	p := filepath.Join(dir, name)
	return &jsonCollection[T]{
		path: p,
		lock: flock.New(p + ".lock"),
		now:  time.Now,
	}, nil
}

// load 读取全部记录，文件不存在视为空集合
func (c *jsonCollection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "jsonfile: read")
	}
	if len(data) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := sonic.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrapf(err, "jsonfile: decode %s", filepath.Base(c.path))
	}
	return items, nil
}

// store 写临时文件后重命名
func (c *jsonCollection[T]) store(items []T) error {
	data, err := sonic.ConfigStd.MarshalIndent(items, "", "  ")
	if err != nil {
		return errors.Wrap(err, "jsonfile: encode")
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "jsonfile: create tmp")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "jsonfile: write tmp")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "jsonfile: sync tmp")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "jsonfile: close tmp")
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "jsonfile: rename")
	}
	return nil
}

// read 在共享文件锁下读取
func (c *jsonCollection[T]) read() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.lock.RLock(); err != nil {
		return nil, errors.Wrap(err, "jsonfile: rlock")
	}
	defer c.lock.Unlock()
	return c.load()
}

// mutate 在互斥锁与排他文件锁下执行读-改-写，fn 返回 nil 切片时不写回
func (c *jsonCollection[T]) mutate(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.lock.Lock(); err != nil {
		return errors.Wrap(err, "jsonfile: lock")
	}
	defer c.lock.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	return c.store(next)
}

// nextID 以毫秒时间戳为 id，同一毫秒或已存在时递增；须在 mutate 内调用
func (c *jsonCollection[T]) nextID(exists func(id string) bool) string {
	id := c.now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	for exists(strconv.FormatInt(id, 10)) {
		id++
	}
	c.lastID = id
	return strconv.FormatInt(id, 10)
}
