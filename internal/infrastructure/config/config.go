package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Catalog     CatalogConfig   `mapstructure:"catalog"`
	Planner     PlannerConfig   `mapstructure:"planner"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Storage     StorageConfig   `mapstructure:"storage"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// CatalogConfig 食譜目錄來源；設定 RemoteURL 時優先使用遠端
type CatalogConfig struct {
	MealsPath string        `mapstructure:"meals_path"`
	FoodsPath string        `mapstructure:"foods_path"`
	RemoteURL string        `mapstructure:"remote_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// PlannerConfig 計畫引擎設定
type PlannerConfig struct {
	DayNames           []string `mapstructure:"day_names"`
	DefaultMealsPerDay int      `mapstructure:"default_meals_per_day"`
	DefaultGoal        string   `mapstructure:"default_goal"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// StorageConfig 計畫儲存設定
type StorageConfig struct {
	SQLitePath string `mapstructure:"sqlite_path"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// 緩存後端
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，不存在時只使用環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("catalog.meals_path", "MEALS_PATH")
	_ = v.BindEnv("catalog.foods_path", "FOODS_PATH")
	_ = v.BindEnv("catalog.remote_url", "CATALOG_URL")
	_ = v.BindEnv("cache.enabled", "CACHE_ENABLED")
	_ = v.BindEnv("cache.backend", "CACHE_BACKEND")
	_ = v.BindEnv("cache.redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("storage.sqlite_path", "SQLITE_PATH")
	_ = v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	_ = v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	_ = v.BindEnv("dedup_window", "DEDUP_WINDOW")
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

// decode 解析並驗證設定
func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 環境變數只能提供逗號分隔的字串
	config.Planner.DayNames = splitList(strings.Join(config.Planner.DayNames, ","))
	config.Planner.DefaultGoal = strings.ToLower(strings.TrimSpace(config.Planner.DefaultGoal))

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "meal-plan-generator")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// 目錄設定
	v.SetDefault("catalog.meals_path", "data/meal_components.json")
	v.SetDefault("catalog.foods_path", "data/foods.json")
	v.SetDefault("catalog.remote_url", "")
	v.SetDefault("catalog.timeout", "10s")

	// 計畫設定
	v.SetDefault("planner.day_names", []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"})
	v.SetDefault("planner.default_meals_per_day", 3)
	v.SetDefault("planner.default_goal", "maintain")

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// 儲存設定
	v.SetDefault("storage.sqlite_path", "data/plans.db")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body bytes")
	}

	// 驗證目錄設定
	if config.Catalog.RemoteURL == "" && (config.Catalog.MealsPath == "" || config.Catalog.FoodsPath == "") {
		return fmt.Errorf("catalog requires either remote_url or both meals_path and foods_path")
	}

	// 驗證計畫設定
	if n := len(config.Planner.DayNames); n != 7 {
		return fmt.Errorf("planner day names must have 7 entries, got %d", n)
	}
	switch config.Planner.DefaultMealsPerDay {
	case 3, 5, 6:
	default:
		return fmt.Errorf("invalid default meals per day: %d", config.Planner.DefaultMealsPerDay)
	}
	switch config.Planner.DefaultGoal {
	case "", "lose", "maintain", "gain":
	default:
		return fmt.Errorf("invalid default goal: %q", config.Planner.DefaultGoal)
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		switch config.Cache.Backend {
		case CacheBackendMemory:
			if config.Cache.MaxSize <= 0 {
				return fmt.Errorf("invalid cache max size")
			}
			if config.Cache.CleanupInterval <= 0 {
				return fmt.Errorf("invalid cache cleanup interval")
			}
		case CacheBackendRedis:
			if config.Cache.RedisAddr == "" {
				return fmt.Errorf("redis cache requires redis_addr")
			}
		default:
			return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	// 驗證限流設定
	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit")
	}

	return nil
}
