package routers

import (
	"expvar"
	"net/http/pprof"
	"sync"
	"time"

	"github.com/haierkeys/keepsake-service/internal/app"
	"github.com/haierkeys/keepsake-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultPrefix pprof 路由前缀
const DefaultPrefix = "/debug/pprof"

var (
	serviceVarsOnce sync.Once
	serviceVars     *expvar.Map
)

// publishServiceVars 在 /debug/vars 的 keepsake 键下输出当前实例的后端与版本
// expvar 名称全局唯一，配置热加载重建路由时只更新取值
func publishServiceVars(a *app.App) {
	serviceVarsOnce.Do(func() {
		serviceVars = expvar.NewMap("keepsake")
	})

	set := func(k, v string) {
		s := new(expvar.String)
		s.Set(v)
		serviceVars.Set(k, s)
	}
	cfg := a.Config()
	set("version", a.Version().Version)
	set("record_store", a.Store.Type)
	set("storage", cfg.Storage.Type)
	set("started_at", a.StartTime.Format(time.RFC3339))
}

// NewPrivateRouter 私有监听：/metrics、/debug/vars，debug 模式下挂载 pprof
func NewPrivateRouter(a *app.App) *gin.Engine {
	runMode := a.Config().Server.RunMode
	publishServiceVars(a)

	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(a.Logger()))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/debug/vars", gin.WrapH(expvar.Handler()))

	if runMode != gin.DebugMode {
		return r
	}

	p := r.Group(DefaultPrefix)
	p.GET("/", gin.WrapF(pprof.Index))
	p.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	p.GET("/profile", gin.WrapF(pprof.Profile))
	p.Any("/symbol", gin.WrapF(pprof.Symbol))
	p.GET("/trace", gin.WrapF(pprof.Trace))
	for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		p.GET("/"+name, gin.WrapH(pprof.Handler(name)))
	}

	return r
}
