package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/config"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open 按配置选择方言建立连接，并同步表结构
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Database)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	// 获取底层 sql.DB 以配置连接池
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("无法获取 sql.DB: %w", err)
	}

	if cfg.Database.Type == "mysql" || cfg.Database.Type == "postgres" {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
	} else {
		// SQLite 建议单连接写
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(gdb); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Printf("✅ 数据库(%s)连接成功，表结构已同步", cfg.Database.Type)
	return gdb, nil
}

// Migrate 同步谜题表结构
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&model.Puzzle{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
		if cfg.SSL {
			dsn += "&tls=true"
		}
		return mysql.Open(dsn), nil
	case "postgres":
		// Supabase 的数据库即 Postgres，生产环境走这里
		sslMode := "disable"
		if cfg.SSL {
			sslMode = "require"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			sslMode,
		)
		return postgres.Open(dsn), nil
	case "sqlite", "":
		// 自动创建数据库目录
		dbDir := filepath.Dir(cfg.Filename)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("无法创建数据库目录 '%s': %w", dbDir, err)
		}
		// 启用 WAL 模式和繁忙等待，提升 SQLite 并发性能
		dsn := cfg.Filename + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", cfg.Type)
	}
}
