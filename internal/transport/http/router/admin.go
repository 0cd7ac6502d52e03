package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"restaurant-admin/internal/core/auth"
	"restaurant-admin/internal/core/server"
	"restaurant-admin/internal/transport/http/flash"
	mdw "restaurant-admin/internal/transport/http/middleware"
	resp "restaurant-admin/internal/transport/http/response"
	"restaurant-admin/internal/transport/http/view"
)

const (
	AdminPrefix  = "/admin"
	AdminHome    = "/admin/restaurants"
	UploadPrefix = "/upload"
)

type Limits struct {
	RPS         float64
	Burst       int
	Concurrency int64
	MaxBody     int64
	Timeout     time.Duration
}

type Options struct {
	Log       *zap.Logger
	JWT       *auth.JWTer // 为 nil 时不校验登录
	Flash     flash.Store
	Limits    Limits
	UploadDir string // 本地图床目录，空则不挂静态路由
	Modules   *Registry
}

func (o *Options) defaults() {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Flash == nil {
		o.Flash = flash.NewCookieStore("flash", 300)
	}
	if o.Modules == nil {
		o.Modules = &Registry{}
	}
	l := &o.Limits
	if l.RPS <= 0 {
		l.RPS = 200
	}
	if l.Burst <= 0 {
		l.Burst = 400
	}
	if l.Concurrency <= 0 {
		l.Concurrency = 300
	}
	if l.MaxBody <= 0 {
		l.MaxBody = 16 << 20
	}
	if l.Timeout <= 0 {
		l.Timeout = 10 * time.Second
	}
}

func NewAdminEngine(o Options) *gin.Engine {
	o.defaults()
	r := server.NewRouter(o.Log)
	view.Load(r)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(o.Limits.RPS), o.Limits.Burst),
		mdw.ConcurrencyLimit(o.Limits.Concurrency),
		mdw.MaxBodyBytes(o.Limits.MaxBody),
		mdw.Timeout(o.Limits.Timeout),
		mdw.Metrics(),
		flash.Middleware(o.Flash),
		mdw.Errors(o.Log, AdminHome),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(gin.H{"ok": 1})) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, AdminHome) })
	if o.UploadDir != "" {
		r.Static(UploadPrefix, o.UploadDir)
	}

	admin := r.Group(AdminPrefix)
	if o.JWT != nil {
		admin.Use(mdw.AuthJWT(o.JWT, "admin"))
	}
	o.Modules.MountAll(admin)

	// 兜底：后台下任何没匹配上的路径都回餐厅列表
	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == AdminPrefix || strings.HasPrefix(p, AdminPrefix+"/") {
			c.Redirect(http.StatusFound, AdminHome)
			return
		}
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, ""))
	})
	return r
}

// NewAdminHandler engine 外面包一层方法覆盖（表单的 PUT/PATCH/DELETE）
func NewAdminHandler(o Options) http.Handler {
	return mdw.MethodOverride(NewAdminEngine(o))
}
