package config

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/consts"

	"github.com/spf13/viper"
)

// 应用配置在进程启动时加载一次，之后以指针形式注入各组件

const (
	defaultConfigDir = "config"
	envPrefix        = "RHYMING_PAIRS"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Listing   ListingConfig   `mapstructure:"listing"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
	Redis     RedisConfig     `mapstructure:"redis"`

	dir string
}

type ServerConfig struct {
	Port             string   `mapstructure:"port"`
	Mode             string   `mapstructure:"mode"`
	CORSAllowOrigins []string `mapstructure:"cors_allow_origins"`
	MaxUploadSizeMB  int      `mapstructure:"max_upload_size_mb"`
	MaxBodySizeMB    int      `mapstructure:"max_body_size_mb"`
}

type DatabaseConfig struct {
	Type     string `mapstructure:"type"`     // sqlite, mysql, postgres
	Filename string `mapstructure:"filename"` // for sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSL      bool   `mapstructure:"ssl"`
}

type SupabaseConfig struct {
	URL            string `mapstructure:"url"`
	AnonKey        string `mapstructure:"anon_key"`
	ServiceRoleKey string `mapstructure:"service_role_key"`
	JWTSecret      string `mapstructure:"jwt_secret"`
}

type StorageConfig struct {
	Driver       string `mapstructure:"driver"` // supabase, local
	Bucket       string `mapstructure:"bucket"`
	LocalPath    string `mapstructure:"local_path"`
	URLPrefix    string `mapstructure:"url_prefix"`
	CacheControl string `mapstructure:"cache_control"`
}

type AuthConfig struct {
	Verifier                string `mapstructure:"verifier"` // supabase, jwt
	AdminEmailAllowlist     string `mapstructure:"admin_email_allowlist"`
	UploadRequiresAllowlist bool   `mapstructure:"upload_requires_allowlist"` // 默认 false，上传只校验身份
}

type ListingConfig struct {
	HideUnpublished bool `mapstructure:"hide_unpublished"`
}

type ReconcileConfig struct {
	GracePeriod time.Duration `mapstructure:"grace_period"`
	LockTTL     time.Duration `mapstructure:"lock_ttl"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// Dir 返回实际使用的配置目录
func (c *Config) Dir() string {
	return c.dir
}

// AdminEmails 解析管理员白名单：逗号分隔、去空白、转小写、丢弃空项
func (c *Config) AdminEmails() []string {
	var emails []string
	for _, email := range strings.Split(c.Auth.AdminEmailAllowlist, ",") {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}

// PublicConfigured 公共配置接口需要 URL 与 anon key
func (s SupabaseConfig) PublicConfigured() bool {
	return s.URL != "" && s.AnonKey != ""
}

// ServiceConfigured 服务端操作需要 URL 与 service role key
func (s SupabaseConfig) ServiceConfigured() bool {
	return s.URL != "" && s.ServiceRoleKey != ""
}

// LocalRoot 本地驱动的存储桶目录
func (s StorageConfig) LocalRoot() string {
	return filepath.Join(s.LocalPath, s.Bucket)
}

// LocalURLPrefix 本地驱动对外暴露的存储桶 URL 前缀，不带末尾斜杠
func (s StorageConfig) LocalURLPrefix() string {
	return s.URLPrefix + s.Bucket
}

// Validate 检查后端所需的配置是否齐全
func (c *Config) Validate() error {
	var problems []string
	if c.Storage.Driver == "supabase" || c.Auth.Verifier == "supabase" {
		if !c.Supabase.ServiceConfigured() {
			problems = append(problems, "supabase.url / supabase.service_role_key 未设置")
		}
	}
	if c.Auth.Verifier == "jwt" && c.Supabase.JWTSecret == "" {
		problems = append(problems, "auth.verifier=jwt 时必须设置 supabase.jwt_secret")
	}
	if c.Storage.Driver == "local" && strings.TrimSpace(c.Storage.LocalPath) == "" {
		problems = append(problems, "storage.driver=local 时必须设置 storage.local_path")
	}
	if len(c.AdminEmails()) == 0 {
		problems = append(problems, "auth.admin_email_allowlist 为空，所有管理操作都会被拒绝")
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "; "))
}

// Load 读取配置文件、默认值与环境变量
func Load(customConfigDir string) (*Config, error) {
	v, dir, err := initViper(customConfigDir)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.dir = dir
	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		if cfg.Server.Mode == "release" {
			return nil, fmt.Errorf("生产模式(release)下配置不完整: %w", err)
		}
		log.Printf("⚠️ [开发模式警告] 配置不完整: %v", err)
	}

	log.Println("✅ 配置加载成功")
	return &cfg, nil
}

func initViper(customConfigDir string) (*viper.Viper, string, error) {
	v := viper.New()

	dir := strings.TrimSpace(customConfigDir)
	if dir == "" {
		dir = defaultConfigDir
	}

	v.AddConfigPath(dir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors_allow_origins", []string{"*"})
	v.SetDefault("server.max_upload_size_mb", 10)
	v.SetDefault("server.max_body_size_mb", 1)
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.filename", "database/rhyming_pairs.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "postgres")
	v.SetDefault("database.ssl", false)
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.anon_key", "")
	v.SetDefault("supabase.service_role_key", "")
	v.SetDefault("supabase.jwt_secret", "")
	v.SetDefault("storage.driver", "supabase")
	v.SetDefault("storage.bucket", consts.DefaultBucket)
	v.SetDefault("storage.local_path", "uploads/puzzles")
	v.SetDefault("storage.url_prefix", "/storage/")
	v.SetDefault("storage.cache_control", "public, max-age=31536000, immutable")
	v.SetDefault("auth.verifier", "supabase")
	v.SetDefault("auth.admin_email_allowlist", "")
	v.SetDefault("auth.upload_requires_allowlist", false)
	v.SetDefault("listing.hide_unpublished", false)
	v.SetDefault("reconcile.grace_period", "15m")
	v.SetDefault("reconcile.lock_ttl", "10m")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "rhyming_pairs")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, "", fmt.Errorf("读取配置文件失败: %w", err)
		}
		log.Println("⚠️  未找到配置文件，将仅使用环境变量或默认值")
	}

	// 规则：环境变量以 RHYMING_PAIRS_ 开头，server.port 对应 RHYMING_PAIRS_SERVER_PORT
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 兼容 Netlify 时代的变量名
	legacy := map[string]string{
		"supabase.url":               "SUPABASE_URL",
		"supabase.anon_key":          "SUPABASE_ANON_KEY",
		"supabase.service_role_key":  "SUPABASE_SERVICE_ROLE_KEY",
		"supabase.jwt_secret":        "SUPABASE_JWT_SECRET",
		"auth.admin_email_allowlist": "ADMIN_EMAIL_ALLOWLIST",
	}
	for key, name := range legacy {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, name); err != nil {
			return nil, "", fmt.Errorf("绑定环境变量 %s 失败: %w", name, err)
		}
	}

	return v, dir, nil
}

func normalize(cfg *Config) {
	cfg.Supabase.URL = strings.TrimRight(strings.TrimSpace(cfg.Supabase.URL), "/")
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Auth.Verifier = strings.ToLower(strings.TrimSpace(cfg.Auth.Verifier))
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = consts.DefaultBucket
	}
	if !strings.HasPrefix(cfg.Storage.URLPrefix, "/") {
		cfg.Storage.URLPrefix = "/" + cfg.Storage.URLPrefix
	}
	if !strings.HasSuffix(cfg.Storage.URLPrefix, "/") {
		cfg.Storage.URLPrefix += "/"
	}
	if cfg.Reconcile.GracePeriod <= 0 {
		cfg.Reconcile.GracePeriod = 15 * time.Minute
	}
	if cfg.Reconcile.LockTTL <= 0 {
		cfg.Reconcile.LockTTL = 10 * time.Minute
	}
}
