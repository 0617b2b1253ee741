// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/keepsake-service/internal/dao"
	"github.com/haierkeys/keepsake-service/internal/service"
	pkgapp "github.com/haierkeys/keepsake-service/pkg/app"
	"github.com/haierkeys/keepsake-service/pkg/logger"
	"github.com/haierkeys/keepsake-service/pkg/storage"

	"go.uber.org/zap"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger

	// Storage 图片存储后端
	Storage storage.Storager
	// Store 记录存储
	Store *dao.Store

	// Service 层
	AssetService  service.AssetService
	PhotoService  service.PhotoService
	LetterService service.LetterService

	StartTime time.Time

	// 关闭控制
	shutdownCh chan struct{}
	cancelRun  context.CancelFunc
	wg         sync.WaitGroup
}

// NewApp 创建应用容器实例
// 按配置选定存储后端与记录存储，并注入到 Service 层
func NewApp(cfg *AppConfig, lg *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if lg == nil {
		return nil, fmt.Errorf("logger is required")
	}

	st, err := storage.NewClient(&cfg.Storage, lg)
	if err != nil {
		return nil, fmt.Errorf("init storage %q: %w", cfg.Storage.Type, err)
	}

	store, err := dao.NewStore(cfg.Database, lg)
	if err != nil {
		return nil, fmt.Errorf("init record store %q: %w", cfg.Database.RecordStore, err)
	}

	return newApp(cfg, lg, st, store), nil
}

// NewAppWith 使用已构建的存储创建容器，便于测试注入
func NewAppWith(cfg *AppConfig, lg *zap.Logger, st storage.Storager, store *dao.Store) *App {
	if lg == nil {
		lg = zap.NewNop()
	}
	return newApp(cfg, lg, st, store)
}

func newApp(cfg *AppConfig, lg *zap.Logger, st storage.Storager, store *dao.Store) *App {
	a := &App{
		config:     cfg,
		logger:     lg,
		Storage:    st,
		Store:      store,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	assetConf := cfg.GetAssetServiceConfig()
	a.AssetService = service.NewAssetService(st, assetConf, lg)
	a.PhotoService = service.NewPhotoService(store.Photos, a.AssetService, lg)
	a.LetterService = service.NewLetterService(store.Letters, lg)

	lg.Info("App container initialized successfully",
		zap.String(logger.FieldStorage, cfg.Storage.Type),
		zap.String(logger.FieldStore, store.Type),
		zap.Int64("uploadMaxSize", assetConf.MaxUploadSize))

	return a
}

// Start 在后台建立记录存储连接，连接失败按配置间隔重试直到 Shutdown
func (a *App) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelRun = cancel

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.Store.Run(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error("record store run failed", zap.Error(err))
		}
	}()
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：重连循环 -> 后台任务 -> 记录存储
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	select {
	case <-a.shutdownCh:
		return nil
	default:
		close(a.shutdownCh)
	}

	if a.cancelRun != nil {
		a.cancelRun()
	}

	var errs []error

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	if err := a.Store.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close record store: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
