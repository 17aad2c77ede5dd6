package di

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/identity"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/redisx"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/storage"

	"github.com/gin-gonic/gin"
)

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Server:   config.ServerConfig{MaxUploadSizeMB: 1, MaxBodySizeMB: 1, CORSAllowOrigins: []string{"*"}},
		Database: config.DatabaseConfig{Type: "sqlite", Filename: filepath.Join(dir, "db", "test.db")},
		Supabase: config.SupabaseConfig{JWTSecret: "test_secret"},
		Storage: config.StorageConfig{
			Driver:    "local",
			Bucket:    "puzzleimages",
			LocalPath: filepath.Join(dir, "uploads"),
			URLPrefix: "/storage/",
		},
		Auth: config.AuthConfig{Verifier: "jwt", AdminEmailAllowlist: "admin@example.com", UploadRequiresAllowlist: true},
	}
}

// 测试内容：验证本地驱动 + jwt 校验器可以组装出完整应用并处理管理请求。
func TestInitializeApplication_LocalStack(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := localConfig(t)

	app, cleanup, err := InitializeApplication(cfg)
	if err != nil {
		t.Fatalf("InitializeApplication: %v", err)
	}
	defer cleanup()

	if app.Modules == nil || app.Router == nil || app.Config != cfg {
		t.Fatalf("应用组件不完整: %+v", app)
	}

	r := gin.New()
	app.Router.Init(r)

	token, err := identity.SignAccessToken("test_secret", "user-1", "Admin@Example.com", time.Hour)
	if err != nil {
		t.Fatalf("SignAccessToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/list-puzzles-admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 /metrics 返回 200，实际为 %d", w.Code)
	}
}

// 测试内容：验证 Supabase 未配置时不创建对象存储与身份校验器。
func TestProviders_MissingSupabase(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: "supabase", Bucket: "puzzleimages"},
		Auth:    config.AuthConfig{Verifier: "supabase"},
	}

	blobs, err := ProvideBlobStore(cfg)
	if err != nil || blobs != nil {
		t.Fatalf("期望返回 nil 存储，实际为 %v / %v", blobs, err)
	}
	verifier, err := ProvideVerifier(cfg)
	if err != nil || verifier != nil {
		t.Fatalf("期望返回 nil 校验器，实际为 %v / %v", verifier, err)
	}
}

// 测试内容：验证 Supabase 配置完整时选择对应的存储与校验器实现。
func TestProviders_SupabaseConfigured(t *testing.T) {
	cfg := &config.Config{
		Supabase: config.SupabaseConfig{URL: "https://abc.supabase.co", AnonKey: "anon", ServiceRoleKey: "service"},
		Storage:  config.StorageConfig{Driver: "supabase", Bucket: "puzzleimages"},
		Auth:     config.AuthConfig{Verifier: "supabase"},
	}

	blobs, err := ProvideBlobStore(cfg)
	if err != nil {
		t.Fatalf("ProvideBlobStore: %v", err)
	}
	if _, ok := blobs.(*storage.SupabaseStore); !ok {
		t.Fatalf("期望 SupabaseStore，实际为 %T", blobs)
	}
	if got := blobs.PublicURL("2024-03-05/1-a.png"); got != "https://abc.supabase.co/storage/v1/object/public/puzzleimages/2024-03-05/1-a.png" {
		t.Fatalf("公开 URL 错误: %q", got)
	}

	verifier, err := ProvideVerifier(cfg)
	if err != nil {
		t.Fatalf("ProvideVerifier: %v", err)
	}
	if _, ok := verifier.(*identity.GoTrueVerifier); !ok {
		t.Fatalf("期望 GoTrueVerifier，实际为 %T", verifier)
	}
}

// 测试内容：验证未启用 Redis 时使用进程内锁。
func TestProvideLocker_FallsBackToMemory(t *testing.T) {
	client, cleanup := ProvideRedisClient(&config.Config{})
	defer cleanup()
	if client != nil {
		t.Fatalf("期望未启用 Redis 时客户端为 nil")
	}
	if locker, ok := ProvideLocker(&config.Config{}, client).(*redisx.MemoryLocker); !ok || locker == nil {
		t.Fatalf("期望 MemoryLocker，实际为 %T", locker)
	}
}
