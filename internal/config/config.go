package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ToxicBeastt/shuttle-booking/internal/ratelimit"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Latency   LatencyConfig   `yaml:"latency"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	FormCache FormCacheConfig `yaml:"form_cache"`
	Timezone  string          `yaml:"timezone"`
}

type ServerConfig struct {
	Port string `yaml:"port" validate:"required,numeric"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

type StorageConfig struct {
	Backend string      `yaml:"backend" validate:"oneof=memory redis"`
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Host      string `yaml:"host" validate:"required_if=Enabled true"`
	Port      string `yaml:"port"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db" validate:"gte=0"`
	KeyPrefix string `yaml:"key_prefix"`
	Enabled   bool   `yaml:"-"`
}

type ScheduleConfig struct {
	// Source is "embedded", a file path, or an http(s) URL.
	Source  string        `yaml:"source" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

type LatencyConfig struct {
	Search  time.Duration `yaml:"search" validate:"gte=0"`
	Confirm time.Duration `yaml:"confirm" validate:"gte=0"`
}

type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps" validate:"gt=0"`
	Burst   int     `yaml:"burst" validate:"gt=0"`
	// Clients overrides the budget for specific client IPs.
	Clients map[string]ClientRate `yaml:"clients" validate:"dive"`
}

type ClientRate struct {
	RPS   float64 `yaml:"rps" validate:"gt=0"`
	Burst int     `yaml:"burst" validate:"gt=0"`
}

type FormCacheConfig struct {
	ClearOnConfirm bool `yaml:"clear_on_confirm"`
}

func Default() Config {
	var cfg Config
	cfg.Server.Port = "8080"
	cfg.Log.Level = "info"
	cfg.Storage.Backend = "memory"
	cfg.Storage.Redis.Host = "localhost"
	cfg.Storage.Redis.Port = "6379"
	cfg.Storage.Redis.KeyPrefix = "shuttle:"
	cfg.Schedule.Source = "embedded"
	cfg.Schedule.Timeout = 10 * time.Second
	cfg.Latency.Search = 500 * time.Millisecond
	cfg.Latency.Confirm = 1000 * time.Millisecond
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RPS = ratelimit.DefaultConfig().RequestsPerSecond
	cfg.RateLimit.Burst = ratelimit.DefaultConfig().BurstSize
	cfg.Timezone = "Asia/Jakarta"
	return cfg
}

// Load reads path over the defaults, applies env overrides and validates the
// result. An empty path, or a missing file at the default location, yields
// the defaults.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	cfg.Storage.Redis.Enabled = cfg.Storage.Backend == "redis"
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Storage.Backend = getEnv("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.Redis.Host = getEnv("REDIS_HOST", cfg.Storage.Redis.Host)
	cfg.Storage.Redis.Port = getEnv("REDIS_PORT", cfg.Storage.Redis.Port)
	cfg.Storage.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Storage.Redis.Password)
	cfg.Storage.Redis.DB = getEnvInt("REDIS_DB", cfg.Storage.Redis.DB)
	cfg.Schedule.Source = getEnv("SCHEDULE_SOURCE", cfg.Schedule.Source)
	cfg.Schedule.Timeout = getEnvDuration("SCHEDULE_TIMEOUT", cfg.Schedule.Timeout)
	cfg.Latency.Search = getEnvDuration("SEARCH_DELAY", cfg.Latency.Search)
	cfg.Latency.Confirm = getEnvDuration("CONFIRM_DELAY", cfg.Latency.Confirm)
	cfg.RateLimit.Enabled = getEnvBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.FormCache.ClearOnConfirm = getEnvBool("FORM_CLEAR_ON_CONFIRM", cfg.FormCache.ClearOnConfirm)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
