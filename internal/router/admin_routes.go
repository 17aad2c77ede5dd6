package router

import (
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/middleware"
	authservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/auth/service"
	puzzlehandler "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/handler"
	systemhandler "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/handler"

	"github.com/gin-gonic/gin"
)

// registerAdminRoutes 配置检查先于鉴权，未配置时不会访问身份服务
func registerAdminRoutes(
	api *gin.RouterGroup,
	cfg *config.Config,
	gate *authservice.Gate,
	puzzles *puzzlehandler.Handler,
	system *systemhandler.Handler,
) {
	ready := puzzles.RequireReady()
	adminOnly := middleware.AdminAuth(gate, true)
	bodyLimit := middleware.BodyLimitMiddleware(cfg.Server.MaxBodySizeMB)

	api.GET("/list-puzzles-admin", ready, adminOnly, puzzles.ListPuzzlesAdmin)
	api.POST("/upload-puzzle",
		ready,
		middleware.AdminAuth(gate, cfg.Auth.UploadRequiresAllowlist),
		middleware.UploadBodyLimitMiddleware(cfg.Server.MaxUploadSizeMB),
		puzzles.UploadPuzzle,
	)
	api.POST("/delete-puzzle", ready, adminOnly, bodyLimit, puzzles.DeletePuzzle)

	adminGroup := api.Group("/admin")
	adminGroup.Use(ready, adminOnly)

	adminGroup.GET("/stats", system.GetPuzzleStats)
	adminGroup.POST("/reconcile", bodyLimit, system.Reconcile)
}
