package handler

import (
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/common/httpx"
	puzzleservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	puzzleService *puzzleservice.Service
}

func New(puzzleService *puzzleservice.Service) *Handler {
	return &Handler{puzzleService: puzzleService}
}

// RequireReady 后端未配置时在鉴权和任何后端调用之前返回 500
func (h *Handler) RequireReady() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.puzzleService.Ready(); err != nil {
			httpx.AbortWithServiceError(c, err, "Missing Supabase configuration.")
			return
		}
		c.Next()
	}
}
