package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/middleware"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/common/httpx"
	moduledto "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/dto"

	"github.com/gin-gonic/gin"
)

// GetPuzzleStats 获取谜题概览统计信息
func (h *Handler) GetPuzzleStats(c *gin.Context) {
	stats, err := h.systemService.AdminGetPuzzleStats(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to read puzzle stats.")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Reconcile 触发一次存储对账；空请求体等同于 dry-run
func (h *Handler) Reconcile(c *gin.Context) {
	var req moduledto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON."})
		return
	}

	email := "-"
	if ident, ok := middleware.CurrentIdentity(c); ok {
		email = ident.NormalizedEmail()
	}
	log.Printf("🧹 %s 触发存储对账 (apply=%v)", email, req.Apply)

	report, err := h.systemService.AdminReconcile(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to reconcile puzzle storage.")
		return
	}

	c.JSON(http.StatusOK, report)
}
