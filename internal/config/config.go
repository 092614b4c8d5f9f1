package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the ProLearn client.
type Config struct {
	APIBaseURL      string
	APITimeout      time.Duration
	StateDir        string
	RedisURL        string
	CacheTTL        time.Duration
	MetricsAddr     string
	DefaultLanguage string
	Debug           bool
}

// StatePath returns the location of the local state database.
func (c Config) StatePath() string {
	return filepath.Join(c.StateDir, "prolearn.db")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PROLEARN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("cache.ttl", "2m")
	v.SetDefault("default.language", "javascript")

	timeout, err := time.ParseDuration(v.GetString("api.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid api timeout: %w", err)
	}

	ttl, err := time.ParseDuration(v.GetString("cache.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid cache ttl: %w", err)
	}

	stateDir := v.GetString("state.dir")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".prolearn")
	}

	cfg := Config{
		APIBaseURL:      strings.TrimRight(v.GetString("api.base_url"), "/"),
		APITimeout:      timeout,
		StateDir:        stateDir,
		RedisURL:        v.GetString("redis.url"),
		CacheTTL:        ttl,
		MetricsAddr:     v.GetString("metrics.addr"),
		DefaultLanguage: strings.ToLower(v.GetString("default.language")),
		Debug:           v.GetBool("debug"),
	}

	if !strings.HasPrefix(cfg.APIBaseURL, "http") {
		return Config{}, fmt.Errorf("api base url must be an http(s) origin, got %q", cfg.APIBaseURL)
	}

	return cfg, nil
}
