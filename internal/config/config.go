// Package config defines the bot's application configuration on top of the
// reusable core configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "nationbot/core/config"
	"nationbot/internal/nationalize"
	"nationbot/internal/resultcache"
)

// NationalizeConfig holds prediction API settings.
type NationalizeConfig struct {
	BaseURL        string `yaml:"base_url" envconfig:"NATIONALIZE_BASE_URL"`
	APIKey         string `yaml:"api_key" envconfig:"NATIONALIZE_API_KEY"`
	TimeoutSeconds int    `yaml:"timeout_seconds" envconfig:"NATIONALIZE_TIMEOUT_SECONDS"`
}

// Timeout returns the request timeout, falling back to the client default.
func (c NationalizeConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return nationalize.DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheConfig bounds the in-memory result cache.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes" envconfig:"CACHE_TTL_MINUTES"`
	MaxEntries int `yaml:"max_entries" envconfig:"CACHE_MAX_ENTRIES"`
}

// TTL returns the configured entry lifetime, falling back to the cache default.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLMinutes <= 0 {
		return resultcache.DefaultTTL
	}
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Config is the full application configuration.
type Config struct {
	Core        coreconfig.Config `yaml:",inline"`
	Nationalize NationalizeConfig `yaml:"nationalize"`
	Cache       CacheConfig       `yaml:"cache"`
}

// CoreConfig exposes the embedded core configuration to the runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) error {
	if cfg.Nationalize.TimeoutSeconds < 0 {
		return fmt.Errorf("nationalize.timeout_seconds must be >= 0")
	}
	if cfg.Cache.TTLMinutes < 0 {
		return fmt.Errorf("cache.ttl_minutes must be >= 0")
	}
	if cfg.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache.max_entries must be >= 0")
	}
	return nil
}
