package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host        string   `yaml:"host"`
		Port        int      `yaml:"port"`
		Env         string   `yaml:"env"`
		LogLevel    string   `yaml:"log_level"` // пусто - по окружению
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		Driver          string        `yaml:"driver"` // postgres, sqlite
		DSN             string        `yaml:"url"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
		AutoMigrate     bool          `yaml:"auto_migrate"`
		LogLevel        string        `yaml:"log_level"`
		SlowQuery       time.Duration `yaml:"slow_query"`
	} `yaml:"database"`

	Auth struct {
		Provider    string `yaml:"provider"` // jwt, supabase
		JWTSecret   string `yaml:"jwt_secret"`
		TokenTTL    int    `yaml:"token_ttl"` // минуты
		SupabaseURL string `yaml:"supabase_url"`
		SupabaseKey string `yaml:"supabase_key"`
	} `yaml:"auth"`

	Cache struct {
		Type          string        `yaml:"type"` // memory, redis, none
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		TTL           time.Duration `yaml:"ttl"`
	} `yaml:"cache"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		AppURL       string `yaml:"app_url"`
	} `yaml:"email"`

	Workers struct {
		ApplicationCountInterval time.Duration `yaml:"application_count_interval"`
	} `yaml:"workers"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию в AppConfig и завершает процесс при ошибке.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load читает .env (если есть), затем либо переменные окружения (когда задан
// DATABASE_URL), либо YAML-файл из CONFIG_PATH.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Не удалось прочитать .env: %v", err)
	}

	var cfg Config
	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}
		if err := loadFile(configPath, &cfg); err != nil {
			return nil, err
		}
	} else {
		loadEnv(&cfg)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) {
	cfg.Server.Host = os.Getenv("SERVER_HOST")
	cfg.Server.Port = envInt("SERVER_PORT", 0)
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.LogLevel = os.Getenv("LOG_LEVEL")
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = strings.Split(origins, ",")
	}

	cfg.Database.Driver = os.Getenv("DATABASE_DRIVER")
	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Database.AutoMigrate = envBool("DATABASE_AUTO_MIGRATE", true)
	cfg.Database.LogLevel = os.Getenv("DATABASE_LOG_LEVEL")

	cfg.Auth.Provider = os.Getenv("AUTH_PROVIDER")
	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.Auth.TokenTTL = envInt("JWT_TTL", 0)
	cfg.Auth.SupabaseURL = os.Getenv("SUPABASE_URL")
	cfg.Auth.SupabaseKey = os.Getenv("SUPABASE_KEY")

	cfg.Cache.Type = os.Getenv("CACHE_TYPE")
	cfg.Cache.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.Cache.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.Cache.RedisDB = envInt("REDIS_DB", 0)

	cfg.Email.Enabled = envBool("EMAIL_ENABLED", false)
	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort = envInt("SMTP_PORT", 0)
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("EMAIL_FROM")
	cfg.Email.AppURL = os.Getenv("APP_URL")

	cfg.Metrics.Enabled = envBool("METRICS_ENABLED", true)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:5173"}
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if cfg.Database.SlowQuery == 0 {
		cfg.Database.SlowQuery = 200 * time.Millisecond
	}
	if cfg.Auth.Provider == "" {
		cfg.Auth.Provider = "jwt"
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 60
	}
	if cfg.Cache.Type == "" {
		cfg.Cache.Type = "memory"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "TrainerTrust"
	}
	if cfg.Workers.ApplicationCountInterval == 0 {
		cfg.Workers.ApplicationCountInterval = 15 * time.Minute
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is required")
	}

	switch c.Auth.Provider {
	case "jwt":
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required for jwt provider")
		}
	case "supabase":
		if c.Auth.SupabaseURL == "" || c.Auth.SupabaseKey == "" {
			return fmt.Errorf("auth.supabase_url and auth.supabase_key are required for supabase provider")
		}
	default:
		return fmt.Errorf("unsupported auth provider %q", c.Auth.Provider)
	}

	switch c.Cache.Type {
	case "memory", "none":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for redis cache")
		}
	default:
		return fmt.Errorf("unsupported cache type %q", c.Cache.Type)
	}
	return nil
}

// Address - адрес для http.Server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
