package redisx

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "rhyming_pairs"

// NewClient 创建 Redis 客户端；未启用或 Ping 失败时返回 nil，调用方降级为进程内实现。
func NewClient(cfg *config.Config) *redis.Client {
	if cfg == nil || !cfg.Redis.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Printf("⚠️ Redis 不可用，降级为内存模式: %v", err)
		return nil
	}

	log.Printf("✅ Redis 已连接: %s (db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	return client
}

// Close 关闭客户端，nil 安全
func Close(client *redis.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}

// Key 基于前缀拼接 Redis 键名，前缀为空时使用默认值。
func Key(prefix string, parts ...string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}
