package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

var (
	errInvalidPort       = errors.New("config: invalid SERVER_PORT")
	errInvalidBackendURL = errors.New("config: BACKEND_URL must be an absolute http(s) URL")
	errInvalidCrawlMode  = errors.New("config: CRAWL_MODE must be \"http\" or \"browser\"")
	errInvalidCountdown  = errors.New("config: ERROR_TICK must be positive and not exceed ERROR_DURATION")
)

// Crawl modes.
const (
	CrawlModeHTTP    = "http"
	CrawlModeBrowser = "browser"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	// BackendURL is where the report view posts submitted URLs.
	BackendURL     string        `mapstructure:"BACKEND_URL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`

	PostgresURL   string        `mapstructure:"POSTGRES_URL"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	CrawlMode        string        `mapstructure:"CRAWL_MODE"`
	CrawlTimeout     time.Duration `mapstructure:"CRAWL_TIMEOUT"`
	CrawlProxies     []string      `mapstructure:"CRAWL_PROXIES"`
	CrawlUserAgent   string        `mapstructure:"CRAWL_USER_AGENT"`
	BrowserInstances int           `mapstructure:"BROWSER_INSTANCES"`

	GeminiAPIKey   string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel    string `mapstructure:"GEMINI_MODEL"`
	GeminiEndpoint string `mapstructure:"GEMINI_ENDPOINT"`

	ErrorDuration time.Duration `mapstructure:"ERROR_DURATION"`
	ErrorTick     time.Duration `mapstructure:"ERROR_TICK"`
	FadeDuration  time.Duration `mapstructure:"FADE_DURATION"`

	// SessionIdle is how long an unused report view is kept before it is swept.
	SessionIdle time.Duration `mapstructure:"SESSION_IDLE"`
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// A missing .env is fine; production is configured through the environment.
	_ = v.ReadInConfig()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("BACKEND_URL", "http://localhost:8080/")
	v.SetDefault("REQUEST_TIMEOUT", 2*time.Minute)
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", 6*time.Hour)
	v.SetDefault("CRAWL_MODE", CrawlModeHTTP)
	v.SetDefault("CRAWL_TIMEOUT", 30*time.Second)
	v.SetDefault("CRAWL_PROXIES", []string{})
	v.SetDefault("CRAWL_USER_AGENT", "")
	v.SetDefault("BROWSER_INSTANCES", 2)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com/")
	v.SetDefault("ERROR_DURATION", 2000*time.Millisecond)
	v.SetDefault("ERROR_TICK", 50*time.Millisecond)
	v.SetDefault("FADE_DURATION", 500*time.Millisecond)
	v.SetDefault("SESSION_IDLE", 30*time.Minute)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	port, err := strconv.Atoi(c.ServerPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.ServerPort)
	}

	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errInvalidBackendURL, c.BackendURL)
	}

	if c.CrawlMode != CrawlModeHTTP && c.CrawlMode != CrawlModeBrowser {
		return fmt.Errorf("%w: %q", errInvalidCrawlMode, c.CrawlMode)
	}

	if c.BrowserInstances < 1 {
		c.BrowserInstances = 1
	}

	if c.ErrorTick <= 0 || c.ErrorTick > c.ErrorDuration {
		return fmt.Errorf("%w: tick %s, duration %s", errInvalidCountdown, c.ErrorTick, c.ErrorDuration)
	}

	return nil
}
