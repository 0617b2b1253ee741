package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	internalApp "github.com/haierkeys/keepsake-service/internal/app"
	"github.com/haierkeys/keepsake-service/internal/dao"
	"github.com/haierkeys/keepsake-service/internal/routers"
	"github.com/haierkeys/keepsake-service/internal/task"
	"github.com/haierkeys/keepsake-service/pkg/logger"
	"github.com/haierkeys/keepsake-service/pkg/safe_close"
	"github.com/haierkeys/keepsake-service/pkg/storage"
	"github.com/haierkeys/keepsake-service/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"go.uber.org/zap"
)

type Server struct {
	logger            *zap.Logger             // 日志对象
	config            *internalApp.AppConfig  // 应用配置
	ut                *ut.UniversalTranslator // 翻译器
	httpServer        *http.Server
	privateHttpServer *http.Server
	sc                *safe_close.SafeClose
	app               *internalApp.App // App Container
}

func NewServer(runEnv *runFlags) (*Server, error) {

	// 加载配置，环境变量覆盖配置文件
	appConfig, configRealpath, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if port := strings.TrimPrefix(runEnv.port, ":"); port != "" {
		appConfig.Server.HttpPort = ":" + port
	}

	// -m 覆盖配置中的运行模式，私有路由据此决定是否挂载 pprof
	if runEnv.runMode != "" {
		appConfig.Server.RunMode = runEnv.runMode
	}
	if appConfig.Server.RunMode == "" {
		appConfig.Server.RunMode = gin.ReleaseMode
	}
	gin.SetMode(appConfig.Server.RunMode)

	s := &Server{
		config: appConfig,
		sc:     safe_close.NewSafeClose(),
	}

	if err := initLoggerWithConfig(s, appConfig); err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}

	// 初始化存储目录
	if err := initStorageWithConfig(appConfig); err != nil {
		return nil, fmt.Errorf("initStorage: %w", err)
	}

	// 初始化校验器
	uni, err := initValidatorWithLogger(s.logger)
	if err != nil {
		return nil, fmt.Errorf("initValidator: %w", err)
	}
	s.ut = uni

	// 初始化 App Container，记录存储在后台连接
	app, err := internalApp.NewApp(appConfig, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app
	app.Start()

	initScheduler(s)

	banner := `
    __ __                            __
   / //_/__  ___  ____  _________ _/ /_____
  / ,< / _ \/ _ \/ __ \/ ___/ __ '/ //_/ _ \
 / /| /  __/  __/ /_/ (__  ) /_/ / ,< /  __/
/_/ |_\___/\___/ .___/____/\__,_/_/|_|\___/
              /_/                          `
	s.logger.Warn(fmt.Sprintf("%s\n\n%s v%s\nGit: %s\nBuildTime: %s\n", banner, internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))

	redacted := appConfig.Redacted()
	s.logger.Warn("config loaded",
		zap.String("path", configRealpath),
		zap.String(logger.FieldStore, redacted.Database.RecordStore),
		zap.String("mongo-uri", redacted.Database.Mongo.URI),
		zap.String(logger.FieldStorage, redacted.Storage.Type),
		zap.String("upload-max-size", redacted.App.UploadMaxSize))

	// 公开 API 与私有监听（metrics/pprof）共用同一套启停流程
	if addr := appConfig.Server.HttpPort; addr != "" {
		s.httpServer = newHTTPServer(appConfig, addr, routers.NewRouter(s.app, s.ut))
		s.serve("api", s.httpServer)
	}
	if addr := appConfig.Server.PrivateHttpListen; addr != "" {
		s.privateHttpServer = newHTTPServer(appConfig, addr, routers.NewPrivateRouter(s.app))
		s.serve("private", s.privateHttpServer)
	}

	// 注册 App Container 的优雅关闭
	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		if s.app != nil {
			ctx, cancel := context.WithTimeout(context.Background(), internalApp.DefaultShutdownTimeout)
			defer cancel()

			if err := s.app.Shutdown(ctx); err != nil {
				s.logger.Error("failed to shutdown app container", zap.Error(err))
			} else {
				s.logger.Info("App container shutdown gracefully")
			}
		}
	})

	return s, nil
}

// httpShutdownTimeout 单个监听的关闭等待时间
const httpShutdownTimeout = 5 * time.Second

func newHTTPServer(cfg *internalApp.AppConfig, addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        h,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}

// serve 挂到 SafeClose 上：监听异常退出时触发整体关闭，收到关闭信号时优雅停止
func (s *Server) serve(name string, srv *http.Server) {
	lg := s.logger.With(zap.String("listener", name), zap.String("addr", srv.Addr))
	lg.Warn("http listener starting")

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			lg.Error("http listener stopped", zap.Error(err))
			s.sc.SendCloseSignal(err)
		case <-closeSignal:
			ctx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				lg.Error("http listener shutdown error", zap.Error(err))
			}
		}
	})
}

func initScheduler(s *Server) {
	manager := task.NewManager(s.logger, s.sc, s.app)

	if err := manager.RegisterTasks(); err != nil {
		s.logger.Error("failed to register tasks", zap.Error(err))
		return
	}

	manager.Start()
}

// initLoggerWithConfig 初始化日志器
func initLoggerWithConfig(s *Server, cfg *internalApp.AppConfig) error {
	lg, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Production: cfg.Log.Production,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	s.logger = lg

	return nil
}

// initValidatorWithLogger 初始化验证器，返回 UniversalTranslator
func initValidatorWithLogger(lg *zap.Logger) (*ut.UniversalTranslator, error) {
	customValidator := validator.NewCustomValidator()
	if err := customValidator.RegisterCustom(); err != nil {
		return nil, err
	}
	binding.Validator = customValidator

	var uni *ut.UniversalTranslator

	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if ok {

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		uni = ut.New(en.New(), en.New(), zh.New())

		zhTran, _ := uni.GetTranslator("zh")
		enTran, _ := uni.GetTranslator("en")

		err := zh_translations.RegisterDefaultTranslations(validate, zhTran)
		if err != nil {
			return nil, err
		}
		err = en_translations.RegisterDefaultTranslations(validate, enTran)
		if err != nil {
			return nil, err
		}
	} else {
		lg.Warn("validator engine is not go-playground/validator, translations disabled")
	}

	return uni, nil
}

// initStorageWithConfig 创建日志、上传与数据目录
func initStorageWithConfig(cfg *internalApp.AppConfig) error {
	dirs := []string{filepath.Dir(cfg.Log.File)}

	if cfg.Storage.Type == storage.LOCAL {
		dirs = append(dirs, cfg.Storage.SavePath)
	}
	switch cfg.Database.RecordStore {
	case dao.StoreJSONFile:
		dirs = append(dirs, cfg.Database.DataPath)
	case dao.StoreSQL:
		if cfg.Database.SQL.Type == "sqlite" {
			dirs = append(dirs, filepath.Dir(cfg.Database.SQL.Path))
		}
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0754); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
