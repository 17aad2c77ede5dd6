package router

import (
	puzzlehandler "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/handler"
	settingshandler "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/settings/handler"

	"github.com/gin-gonic/gin"
)

func registerPublicRoutes(api *gin.RouterGroup, settings *settingshandler.Handler, puzzles *puzzlehandler.Handler) {
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong from gin"})
	})
	api.GET("/get-config", settings.GetConfig)
	api.GET("/list-puzzles", puzzles.RequireReady(), puzzles.ListPuzzles)
}
