// Package config содержит логику чтения конфигурации дашборда прачечной.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Хранилища сессии.
const (
	BackendCookie = "cookie"
	BackendRedis  = "redis"
)

const (
	defaultRunAddress = "localhost:8080"
	defaultAPIBaseURL = "http://localhost:8000/api"
)

// Config содержит параметры конфигурации дашборда.
type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	APIBaseURL    string `env:"API_BASE_URL"`
	PublicURL     string `env:"PUBLIC_URL"`
	SessionSecret string `env:"SESSION_SECRET"`

	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"cookie"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	SecureCookies  bool          `env:"SECURE_COOKIES" envDefault:"false"`
	APITimeout     time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	CheckRateLimit float64       `env:"CHECK_RATE_LIMIT" envDefault:"1"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envAPIBaseURL := cfg.APIBaseURL
	envPublicURL := cfg.PublicURL
	envSessionSecret := cfg.SessionSecret

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.APIBaseURL, "b", defaultAPIBaseURL, "laundry API base URL")
	flag.StringVar(&cfg.PublicURL, "p", "", "public dashboard URL for tracking QR codes")
	flag.StringVar(&cfg.SessionSecret, "s", "", "secret for signing session user records")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envAPIBaseURL != "" {
		cfg.APIBaseURL = envAPIBaseURL
	}
	if envPublicURL != "" {
		cfg.PublicURL = envPublicURL
	}
	if envSessionSecret != "" {
		cfg.SessionSecret = envSessionSecret
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = "http://" + cfg.RunAddress
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность параметров.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case BackendCookie:
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.APITimeout <= 0 {
		return errors.New("API_TIMEOUT must be positive")
	}
	if c.CheckRateLimit <= 0 {
		return errors.New("CHECK_RATE_LIMIT must be positive")
	}
	return nil
}
