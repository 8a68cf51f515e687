// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar 可指定 YAML 設定檔路徑
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths 未指定路徑時依序尋找的設定檔
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	JWT      JWTConfig      `koanf:"jwt"`
	Cache    CacheConfig    `koanf:"cache"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Addr  string `koanf:"addr"`
	Debug bool   `koanf:"debug"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// JWTConfig 簽章密鑰只在啟動時讀取一次，沒有預設值
type JWTConfig struct {
	Secret string `koanf:"secret"`
}

type CacheConfig struct {
	// BlogTTL 為單篇文章快取的存活時間，0 表示停用快取
	BlogTTL time.Duration `koanf:"blog_ttl"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// envKeys 將環境變數對應到 koanf 路徑，未列出的變數一律忽略
var envKeys = map[string]string{
	"SERVER_ADDR":    "server.addr",
	"SERVER_DEBUG":   "server.debug",
	"DATABASE_URL":   "database.url",
	"REDIS_ADDR":     "redis.addr",
	"REDIS_PASSWORD": "redis.password",
	"REDIS_DB":       "redis.db",
	"JWT_SECRET":     "jwt.secret",
	"CACHE_BLOG_TTL": "cache.blog_ttl",
	"LOG_LEVEL":      "log.level",
	"LOG_FORMAT":     "log.format",
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Cache:  CacheConfig{BlogTTL: time.Minute},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}

// Load 依序套用預設值、YAML 設定檔與環境變數，後者優先
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadForMigrations 供 -rollback 使用，只要求 DATABASE_URL
func LoadForMigrations() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL 未設定")
	}
	return cfg, nil
}

func load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func envTransform(key string) string {
	return envKeys[strings.ToUpper(key)]
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate 檢查必要設定
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL 未設定"))
	}
	if c.Redis.Addr == "" {
		errs = append(errs, errors.New("REDIS_ADDR 未設定"))
	}
	if c.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("無效的 REDIS_DB: %d", c.Redis.DB))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET 未設定"))
	}
	if c.Cache.BlogTTL < 0 {
		errs = append(errs, fmt.Errorf("無效的 CACHE_BLOG_TTL: %s", c.Cache.BlogTTL))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("SERVER_ADDR 不可為空"))
	}
	return errors.Join(errs...)
}
