package handler

import (
	"net/http"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/common/httpx"
	settingsservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/settings/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	settingsService *settingsservice.Service
}

func New(settingsService *settingsservice.Service) *Handler {
	return &Handler{settingsService: settingsService}
}

func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.settingsService.PublicConfig()
	if err != nil {
		httpx.WriteServiceError(c, err, "Missing Supabase configuration.")
		return
	}
	c.JSON(http.StatusOK, cfg)
}
