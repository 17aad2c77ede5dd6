package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/middleware"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/common/httpx"
	platformservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/service"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListPuzzles(c *gin.Context) {
	puzzles, err := h.puzzleService.ListPublic(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to load puzzles.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"puzzles": puzzles})
}

func (h *Handler) ListPuzzlesAdmin(c *gin.Context) {
	puzzles, err := h.puzzleService.ListAdmin(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to load puzzles.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"puzzles": puzzles})
}

func (h *Handler) UploadPuzzle(c *gin.Context) {
	form, err := utils.DecodeMultipartForm(c.Request.Body, c.GetHeader("Content-Type"), middleware.IsBase64Body(c.Request))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			httpx.WriteServiceError(c, platformservice.NewServiceError(platformservice.ErrorCodeTooLarge, "Payload too large."), "")
			return
		}
		httpx.WriteServiceError(c, platformservice.WrapServiceError(platformservice.ErrorCodeInvalidFormData, "Invalid form data.", err), "")
		return
	}

	result, err := h.puzzleService.Ingest(c.Request.Context(), form)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to upload puzzle.")
		return
	}

	log.Printf("✅ 谜题已上传: %s (by %s)", result.ImagePath, uploaderEmail(c))
	c.JSON(http.StatusOK, result)
}

func (h *Handler) DeletePuzzle(c *gin.Context) {
	id, err := readPuzzleID(c.Request.Body)
	if err != nil {
		httpx.WriteServiceError(c, err, "Invalid JSON.")
		return
	}

	if err := h.puzzleService.Delete(c.Request.Context(), id); err != nil {
		httpx.WriteServiceError(c, err, "Failed to delete puzzle.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readPuzzleID 空请求体视为 {}；id 可以是字符串或数字，字符串原样返回
func readPuzzleID(body io.Reader) (string, error) {
	if body == nil {
		return "", nil
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return "", platformservice.NewServiceError(platformservice.ErrorCodeTooLarge, "Payload too large.")
		}
		return "", platformservice.WrapServiceError(platformservice.ErrorCodeValidation, "Invalid JSON.", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return "", nil
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", platformservice.WrapServiceError(platformservice.ErrorCodeValidation, "Invalid JSON.", err)
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return "", nil
	}
	switch id := obj["id"].(type) {
	case string:
		return id, nil
	case float64:
		if id == 0 {
			return "", nil
		}
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	default:
		return "", nil
	}
}

func uploaderEmail(c *gin.Context) string {
	if id, ok := middleware.CurrentIdentity(c); ok {
		return id.Email
	}
	return "-"
}
