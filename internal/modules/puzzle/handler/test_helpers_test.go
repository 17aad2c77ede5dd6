package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/middleware"
	authservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/auth/service"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/repo"
	puzzleservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/service"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/testutils"

	"github.com/gin-gonic/gin"
)

type testEnv struct {
	router *gin.Engine
	blobs  *testutils.MemoryBlobStore
	store  *repo.PuzzleRepository
	svc    *puzzleservice.Service
}

func setupHandler(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repo.NewPuzzleRepository(testutils.SetupDB(t))
	blobs := testutils.NewMemoryBlobStore()
	svc := puzzleservice.New(puzzleservice.Options{}, store, blobs, nil, nil)
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	})
	h := New(svc)

	verifier := testutils.NewStaticVerifier().
		Add("admin", "admin@example.com").
		Add("user", "user@example.com")
	gate := authservice.NewGate(verifier, []string{"admin@example.com"})

	r := gin.New()
	r.Use(h.RequireReady())
	r.GET("/list", h.ListPuzzles)
	r.GET("/admin/list", middleware.AdminAuth(gate, true), h.ListPuzzlesAdmin)
	r.POST("/upload", middleware.AdminAuth(gate, true), middleware.UploadBodyLimitMiddleware(1), h.UploadPuzzle)
	r.POST("/delete", middleware.AdminAuth(gate, true), middleware.BodyLimitMiddleware(1), h.DeletePuzzle)

	return &testEnv{router: r, blobs: blobs, store: store, svc: svc}
}

func multipartBody(t *testing.T, fields map[string]string, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if data != nil {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		_, _ = part.Write(data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"answer_1a":  "cat",
		"answer_1b":  "hat",
		"answer_2a":  "dog",
		"answer_2b":  "log",
		"hints":      "first\n\n second \n",
		"publish_at": "2024-03-05T00:00:00Z",
	}
}

func (e *testEnv) upload(t *testing.T, token string, fields map[string]string, filename string, data []byte, encodeBase64 bool) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, filename, data)
	payload := body.Bytes()
	if encodeBase64 {
		payload = []byte(base64.StdEncoding.EncodeToString(payload))
	}
	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(payload))
	req.Header.Set("Content-Type", contentType)
	if encodeBase64 {
		req.Header.Set("X-Body-Encoding", "base64")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("响应不是 JSON: %s", w.Body.String())
	}
	return out
}
