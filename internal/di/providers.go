package di

import (
	"log"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/db"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/identity"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/metrics"
	puzzlerepo "github.com/MacKrakenGames/Rhyming-Pairs/internal/modules/puzzle/repo"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/platform/redisx"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const metricsNamespace = "rhyming_pairs"

func ProvideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return gdb, cleanup, nil
}

func ProvidePuzzleStore(gdb *gorm.DB) puzzlerepo.PuzzleStore {
	return puzzlerepo.NewPuzzleRepository(gdb)
}

func ProvideRedisClient(cfg *config.Config) (*redis.Client, func()) {
	client := redisx.NewClient(cfg)
	return client, func() {
		if err := redisx.Close(client); err != nil {
			log.Printf("⚠️ %v", err)
		}
	}
}

func ProvideLocker(cfg *config.Config, client *redis.Client) redisx.Locker {
	return redisx.NewLocker(client, cfg.Redis.Prefix)
}

// ProvideRegistry 独立注册表，避免与默认注册表上的其它库指标混在一起
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func ProvideObserver(reg *prometheus.Registry) (metrics.Observer, error) {
	observer, err := metrics.NewPrometheusObserver(metricsNamespace, reg)
	if err != nil {
		return nil, err
	}
	return observer, nil
}

// ProvideBlobStore 未配置 Supabase 时返回 nil，谜题接口会统一返回配置错误
func ProvideBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.Storage.Driver {
	case "local":
		store, err := storage.NewLocalStore(cfg.Storage.LocalRoot(), cfg.Storage.LocalURLPrefix())
		if err != nil {
			return nil, err
		}
		log.Printf("✅ 使用本地存储: %s", store.Root())
		return store, nil
	case "supabase", "":
		if !cfg.Supabase.ServiceConfigured() {
			log.Println("⚠️ Supabase 未配置，谜题接口将返回 500")
			return nil, nil
		}
		store, err := storage.NewSupabaseStore(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, cfg.Storage.Bucket, nil)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		log.Printf("⚠️ 不支持的存储驱动 %q，谜题接口将返回 500", cfg.Storage.Driver)
		return nil, nil
	}
}

// ProvideVerifier 按 auth.verifier 选择身份校验方式，缺少配置时返回 nil
func ProvideVerifier(cfg *config.Config) (identity.Verifier, error) {
	switch cfg.Auth.Verifier {
	case "jwt":
		if cfg.Supabase.JWTSecret == "" {
			log.Println("⚠️ 未设置 supabase.jwt_secret，管理接口将不可用")
			return nil, nil
		}
		verifier, err := identity.NewJWTVerifier(cfg.Supabase.JWTSecret)
		if err != nil {
			return nil, err
		}
		return verifier, nil
	default:
		apiKey := cfg.Supabase.AnonKey
		if apiKey == "" {
			apiKey = cfg.Supabase.ServiceRoleKey
		}
		if cfg.Supabase.URL == "" || apiKey == "" {
			log.Println("⚠️ Supabase Auth 未配置，管理接口将不可用")
			return nil, nil
		}
		verifier, err := identity.NewGoTrueVerifier(cfg.Supabase.URL, apiKey, nil)
		if err != nil {
			return nil, err
		}
		return verifier, nil
	}
}
