package router

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/metrics"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/middleware"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Router struct {
	cfg      *config.Config
	modules  *modules.AppModules
	gatherer prometheus.Gatherer
}

// NewRouter gatherer 为 nil 时不注册 /metrics
func NewRouter(cfg *config.Config, appModules *modules.AppModules, gatherer prometheus.Gatherer) *Router {
	return &Router{
		cfg:      cfg,
		modules:  appModules,
		gatherer: gatherer,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	// 已知路径上的错误方法统一返回纯文本 405
	r.HandleMethodNotAllowed = true
	r.NoMethod(methodNotAllowed)

	r.Use(cors.New(corsConfig(rt.cfg.Server.CORSAllowOrigins)))

	if rt.gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(rt.gatherer)))
	}

	api := r.Group("/api")
	// 注册安全标头中间件
	api.Use(middleware.SecurityHeaders())

	registerPublicRoutes(api, rt.modules.Settings.Handler, rt.modules.Puzzle.Handler)
	registerAdminRoutes(api, rt.cfg, rt.modules.Auth.Gate, rt.modules.Puzzle.Handler, rt.modules.System.Handler)

	rt.registerStorageRoutes(r)
}

// registerStorageRoutes 本地驱动时由本服务直接提供图片
func (rt *Router) registerStorageRoutes(r *gin.Engine) {
	storageCfg := rt.cfg.Storage
	if storageCfg.Driver != "local" {
		return
	}
	root := storageCfg.LocalRoot()
	if err := os.MkdirAll(root, 0755); err != nil {
		log.Printf("⚠️ 无法创建本地存储目录 %s: %v", root, err)
		return
	}
	r.Group(storageCfg.LocalURLPrefix(), middleware.SecurityHeaders(), middleware.StaticCacheMiddleware(storageCfg.CacheControl)).
		StaticFS("", gin.Dir(root, false))
}

func methodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, "Method not allowed")
}

func corsConfig(origins []string) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Body-Encoding", "Content-Transfer-Encoding"}

	var allowed []string
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	corsCfg.AllowOrigins = allowed
	return corsCfg
}
