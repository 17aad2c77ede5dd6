package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/model"
	puzzlerepo "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/repo"
	puzzleservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/service"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/repo"
	systemservice "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/system/service"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/testutils"

	"github.com/gin-gonic/gin"
)

var fixedNow = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) (*gin.Engine, *testutils.MemoryBlobStore, *puzzlerepo.PuzzleRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := testutils.SetupDB(t)
	store := puzzlerepo.NewPuzzleRepository(gdb)
	blobs := testutils.NewMemoryBlobStore()
	puzzles := puzzleservice.New(puzzleservice.Options{GracePeriod: 15 * time.Minute}, store, blobs, nil, nil)
	puzzles.SetClock(func() time.Time { return fixedNow })

	svc := systemservice.New(repo.NewStatsRepository(gdb), puzzles)
	svc.SetClock(func() time.Time { return fixedNow })
	h := New(svc)

	r := gin.New()
	r.GET("/stats", h.GetPuzzleStats)
	r.POST("/reconcile", h.Reconcile)
	return r, blobs, store
}

// 测试内容：验证统计接口返回已发布与待发布数量。
func TestGetPuzzleStats(t *testing.T) {
	r, _, store := setupRouter(t)
	for i, at := range []time.Time{fixedNow.Add(-time.Hour), fixedNow.Add(time.Hour)} {
		p := &model.Puzzle{
			ImagePath: "2024-03-05/1709600000000-" + string(rune('a'+i)) + ".png",
			Answer1A:  "a", Answer1B: "b", Answer2A: "c", Answer2B: "d",
			PublishAt: at,
		}
		if err := store.Create(context.Background(), p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是 JSON: %s", w.Body.String())
	}
	if body["puzzle_count"] != float64(2) || body["published_count"] != float64(1) || body["scheduled_count"] != float64(1) {
		t.Fatalf("统计结果错误: %v", body)
	}
}

// 测试内容：验证空请求体执行 dry-run，孤儿图片只报告不删除。
func TestReconcile_DryRunByDefault(t *testing.T) {
	r, blobs, _ := setupRouter(t)
	orphan := "2024-03-01/1709251200000-old.png"
	blobs.Seed(orphan, []byte("img"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reconcile", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d: %s", w.Code, w.Body.String())
	}
	var report struct {
		Orphans []string `json:"orphans"`
		Applied bool     `json:"applied"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("响应不是 JSON: %s", w.Body.String())
	}
	if report.Applied || len(report.Orphans) != 1 || report.Orphans[0] != orphan {
		t.Fatalf("期望报告 1 个孤儿且未执行删除，实际为 %+v", report)
	}
	if _, ok := blobs.Object(orphan); !ok {
		t.Fatalf("dry-run 不应删除对象")
	}
}

// 测试内容：验证 apply=true 时删除孤儿图片。
func TestReconcile_Apply(t *testing.T) {
	r, blobs, _ := setupRouter(t)
	orphan := "2024-03-01/1709251200000-old.png"
	blobs.Seed(orphan, []byte("img"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reconcile", bytes.NewBufferString(`{"apply":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d: %s", w.Code, w.Body.String())
	}
	if _, ok := blobs.Object(orphan); ok {
		t.Fatalf("期望孤儿图片被删除")
	}
}

// 测试内容：验证非法 JSON 与非法 grace_period 返回 400。
func TestReconcile_BadRequest(t *testing.T) {
	r, _, _ := setupRouter(t)

	for _, body := range []string{`{"apply":`, `{"grace_period":"later"}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reconcile", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body=%s 期望 400，实际为 %d", body, w.Code)
		}
	}
}
