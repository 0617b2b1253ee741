package routers

import (
	"net/http"
	"time"

	"github.com/haierkeys/keepsake-service/internal/app"
	"github.com/haierkeys/keepsake-service/internal/middleware"
	"github.com/haierkeys/keepsake-service/internal/routers/api_router"
	"github.com/haierkeys/keepsake-service/pkg/limiter"
	"github.com/haierkeys/keepsake-service/pkg/storage"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// newUploadLimiter 上传接口按每分钟次数限流
func newUploadLimiter(perMinute int) limiter.Face {
	l := limiter.NewMethodLimiter()
	if perMinute <= 0 {
		return l
	}
	return l.AddBuckets(limiter.BucketRule{
		Key:          http.MethodPost + " /api/photos",
		FillInterval: time.Minute / time.Duration(perMinute),
		Capacity:     int64(perMinute),
		Quantum:      1,
	})
}

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	r := gin.New()
	r.MaxMultipartMemory = cfg.GetAssetServiceConfig().MaxUploadSize + 1<<20

	r.Use(middleware.RecoveryWithLogger(lg))
	r.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header))
	r.Use(middleware.AccessLogWithLogger(lg))
	r.Use(middleware.Metrics())
	r.Use(middleware.CorsWithOrigins(cfg.Cors.AllowOrigins, cfg.Cors.AllowMethods))

	healthHandler := api_router.NewHealthHandler(appContainer)
	r.GET("/health", healthHandler.Check)

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version()))
		api.Use(middleware.RateLimiter(newUploadLimiter(cfg.App.UploadRateLimit)))
		api.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))
		api.Use(middleware.LangWithTranslator(uni))

		photoHandler := api_router.NewPhotoHandler(appContainer)
		letterHandler := api_router.NewLetterHandler(appContainer)

		api.GET("/photos", photoHandler.List)
		api.POST("/photos", photoHandler.Create)
		api.DELETE("/photos/:id", photoHandler.Delete)

		api.GET("/letters", letterHandler.List)
		api.GET("/letters/:id", letterHandler.Get)
		api.POST("/letters", letterHandler.Create)
		api.PUT("/letters/:id", letterHandler.Update)
		api.DELETE("/letters/:id", letterHandler.Delete)
	}

	// 本地存储的图片由本服务直接提供
	if cfg.Storage.Type == storage.LOCAL && cfg.Storage.URLPrefix != "" {
		r.Static(cfg.Storage.URLPrefix, cfg.Storage.SavePath)
	}

	r.NoRoute(middleware.NoFound())

	return r
}
