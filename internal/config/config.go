package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config prisoner-profile 服务配置
// Defaults < CONFIG_FILE (yaml) < environment variables.
type Config struct {
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Redis RedisConfig `yaml:"redis"`
	Log   struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Session  SessionConfig  `yaml:"session"`
	Audit    AuditConfig    `yaml:"audit"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// APIConfig one upstream REST API.
type APIConfig struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	RetryCount int           `yaml:"retry_count"`
}

// UpstreamConfig upstream API endpoints
type UpstreamConfig struct {
	PrisonAPI      APIConfig `yaml:"prison_api"`
	WhereaboutsAPI APIConfig `yaml:"whereabouts_api"`
	CaseNotesAPI   APIConfig `yaml:"case_notes_api"`
}

// SessionConfig where viewer sessions are looked up
type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	KeyPrefix  string `yaml:"key_prefix"`
}

// AuditConfig page view audit stream
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Stream  string `yaml:"stream"`
}

func defaults() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = ":8080"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"

	cfg.Upstream.PrisonAPI = APIConfig{URL: "http://localhost:8082", Timeout: 10 * time.Second, RetryCount: 2}
	cfg.Upstream.WhereaboutsAPI = APIConfig{URL: "http://localhost:8083", Timeout: 10 * time.Second, RetryCount: 2}
	cfg.Upstream.CaseNotesAPI = APIConfig{URL: "http://localhost:8084", Timeout: 10 * time.Second, RetryCount: 2}

	cfg.Session.CookieName = "session"
	cfg.Session.KeyPrefix = "session:"
	cfg.Audit.Enabled = true
	cfg.Audit.Stream = "audit:page-views"
	return cfg
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", cfg.HTTP.Addr)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", ""), cfg.Redis.DB)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	loadAPIFromEnv(&cfg.Upstream.PrisonAPI, "PRISON_API")
	loadAPIFromEnv(&cfg.Upstream.WhereaboutsAPI, "WHEREABOUTS_API")
	loadAPIFromEnv(&cfg.Upstream.CaseNotesAPI, "CASE_NOTES_API")

	cfg.Session.CookieName = getEnv("SESSION_COOKIE_NAME", cfg.Session.CookieName)
	cfg.Session.KeyPrefix = getEnv("SESSION_KEY_PREFIX", cfg.Session.KeyPrefix)

	if v := os.Getenv("AUDIT_ENABLED"); v != "" {
		cfg.Audit.Enabled = v == "true"
	}
	cfg.Audit.Stream = getEnv("AUDIT_STREAM", cfg.Audit.Stream)

	return cfg, nil
}

// loadAPIFromEnv reads {prefix}_URL, {prefix}_TIMEOUT_SECONDS, {prefix}_RETRY_COUNT.
func loadAPIFromEnv(c *APIConfig, prefix string) {
	c.URL = getEnv(prefix+"_URL", c.URL)
	if secs := parseInt(getEnv(prefix+"_TIMEOUT_SECONDS", ""), -1); secs > 0 {
		c.Timeout = time.Duration(secs) * time.Second
	}
	c.RetryCount = parseInt(getEnv(prefix+"_RETRY_COUNT", ""), c.RetryCount)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
