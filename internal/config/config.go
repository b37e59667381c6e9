// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	"github.com/mmdoo7123/marketpulse/internal/domain"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	PostsAPIURL   string `env:"POSTS_API_URL"`
	PostsAPIToken string `env:"POSTS_API_TOKEN"`
	NewsAPIURL    string `env:"NEWS_API_URL"`
	NewsAPIKey    string `env:"NEWS_API_KEY"`

	// Fallback cooldown windows applied when a rate-limit response does
	// not carry an explicit wait time. The posts API enforces a much
	// longer window than the news API.
	PostsCooldownWindow time.Duration `env:"POSTS_COOLDOWN_WINDOW" default:"900s"`
	NewsCooldownWindow  time.Duration `env:"NEWS_COOLDOWN_WINDOW" default:"60s"`

	// MaxResults caps the per-search item count requested from a source.
	MaxResults int `env:"MAX_RESULTS" default:"50"`

	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" default:"15s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"POSTS_API_URL":   cfg.PostsAPIURL,
		"POSTS_API_TOKEN": cfg.PostsAPIToken,
		"NEWS_API_URL":    cfg.NewsAPIURL,
		"NEWS_API_KEY":    cfg.NewsAPIKey,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.PostsCooldownWindow < time.Second {
		return fmt.Errorf("POSTS_COOLDOWN_WINDOW must be at least 1s, got %s", cfg.PostsCooldownWindow)
	}
	if cfg.NewsCooldownWindow < time.Second {
		return fmt.Errorf("NEWS_COOLDOWN_WINDOW must be at least 1s, got %s", cfg.NewsCooldownWindow)
	}
	if cfg.MaxResults < 1 {
		return fmt.Errorf("MAX_RESULTS must be at least 1, got %d", cfg.MaxResults)
	}

	return nil
}

// CooldownWindows returns the per-source fallback windows in whole
// seconds, keyed the way the cooldown controller expects them.
func (c *Config) CooldownWindows() map[domain.Source]int {
	return map[domain.Source]int{
		domain.SourcePosts: int(c.PostsCooldownWindow / time.Second),
		domain.SourceNews:  int(c.NewsCooldownWindow / time.Second),
	}
}
