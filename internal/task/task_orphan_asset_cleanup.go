package task

import (
	"context"
	"os"
	"time"

	"github.com/haierkeys/keepsake-service/internal/app"
	"github.com/haierkeys/keepsake-service/internal/domain"
	"github.com/haierkeys/keepsake-service/pkg/fileurl"
	"github.com/haierkeys/keepsake-service/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// localAssets 可枚举文件的本地存储
type localAssets interface {
	ListFiles() ([]os.FileInfo, error)
	KeyFromURL(url string) string
	Delete(ctx context.Context, fileKey string) error
}

// operationTracker 应用关闭时等待进行中的清理
type operationTracker interface {
	TrackOperation() func()
	IsShuttingDown() bool
}

// OrphanAssetCleanupTask 清理没有照片记录引用的本地图片
// 照片保存失败且补偿删除也失败时会留下这类文件
type OrphanAssetCleanupTask struct {
	assets   localAssets
	photos   domain.PhotoRepository
	tracker  operationTracker
	interval time.Duration
	grace    time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func (t *OrphanAssetCleanupTask) Name() string {
	return "OrphanAssetCleanup"
}

func (t *OrphanAssetCleanupTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *OrphanAssetCleanupTask) IsStartupRun() bool {
	return false
}

// Run 记录列表读取失败时不删除任何文件，非上传生成的文件不参与清理
func (t *OrphanAssetCleanupTask) Run(ctx context.Context) error {
	if t.tracker != nil {
		if t.tracker.IsShuttingDown() {
			return nil
		}
		defer t.tracker.TrackOperation()()
	}

	photos, err := t.photos.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list photos")
	}

	referenced := make(map[string]struct{}, len(photos))
	for _, p := range photos {
		if p.ImageURL != "" {
			referenced[t.assets.KeyFromURL(p.ImageURL)] = struct{}{}
		}
	}

	files, err := t.assets.ListFiles()
	if err != nil {
		return err
	}

	cutoff := t.now().Add(-t.grace)
	removed := 0
	for _, f := range files {
		// 上传目录可能与 jsonfile 数据目录相同，只处理上传生成的文件
		if !fileurl.IsAssetName(f.Name()) {
			continue
		}
		if _, ok := referenced[f.Name()]; ok {
			continue
		}
		if f.ModTime().After(cutoff) {
			continue
		}
		if err := t.assets.Delete(ctx, f.Name()); err != nil {
			t.logger.Warn("orphan asset delete failed", zap.String(logger.FieldFileKey, f.Name()), zap.Error(err))
			continue
		}
		removed++
		t.logger.Info("orphan asset removed", zap.String(logger.FieldFileKey, f.Name()))
	}

	t.logger.Info(t.Name()+" completed", zap.Int("scanned", len(files)), zap.Int("removed", removed))
	return nil
}

// NewOrphanAssetCleanupTask 仅本地存储且清理间隔大于 0 时启用
func NewOrphanAssetCleanupTask(a *app.App) (Task, error) {
	interval := a.Config().GetOrphanSweepInterval()
	if interval <= 0 {
		return nil, nil
	}
	assets, ok := a.Storage.(localAssets)
	if !ok {
		return nil, nil
	}
	return &OrphanAssetCleanupTask{
		assets:   assets,
		photos:   a.Store.Photos,
		tracker:  a,
		interval: interval,
		grace:    a.Config().GetOrphanGracePeriod(),
		logger:   a.Logger(),
		now:      time.Now,
	}, nil
}

func init() {
	Register(NewOrphanAssetCleanupTask)
}
