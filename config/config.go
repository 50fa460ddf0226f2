// Package config provides file-based configuration for campusmate.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/campusmate/ai"
)

// Configuration validation errors.
var (
	ErrMissingSchedulePath     = errors.New("data.schedule is required")
	ErrMissingAnnouncementPath = errors.New("data.announcements is required")
	ErrMissingHost             = errors.New("ai.host is required")
	ErrMissingModel            = errors.New("ai.model is required")
	ErrInvalidMaxRetries       = errors.New("ai.max_retries must be at least 1")
	ErrInvalidRetryDelay       = errors.New("ai.retry_delay_ms must be non-negative")
	ErrInvalidMaxMatches       = errors.New("search.max_matches must be at least 1")
	ErrInvalidWorkers          = errors.New("batch.workers must be non-negative")
	ErrInvalidLogLevel         = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	AI      AIConfig      `yaml:"ai"`
	Cache   CacheConfig   `yaml:"cache"`
	Search  SearchConfig  `yaml:"search"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the source tables.
type DataConfig struct {
	Schedule      string `yaml:"schedule"`
	Announcements string `yaml:"announcements"`
}

// AIConfig configures the embedding service.
type AIConfig struct {
	Host         string `yaml:"host"`
	Model        string `yaml:"model"`
	Token        string `yaml:"token"`
	MaxRetries   int    `yaml:"max_retries"`
	RetryDelayMs int    `yaml:"retry_delay_ms"`
}

// CacheConfig configures the snippet embedding cache.
type CacheConfig struct {
	// Path is the badger directory; empty keeps the cache in memory.
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// SearchConfig configures the retrieval arbiter.
type SearchConfig struct {
	MaxMatches           int  `yaml:"max_matches"`
	DegradeOnRankFailure bool `yaml:"degrade_on_rank_failure"`
}

// BatchConfig configures concurrent query answering.
type BatchConfig struct {
	// Workers is the pool size; zero picks one from the CPU count.
	Workers int `yaml:"workers"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Data: DataConfig{
			Schedule:      "./data/todo.csv",
			Announcements: "./data/snowe_article.csv",
		},
		AI: AIConfig{
			Host:         aiDefaults.EmbeddingHost,
			Model:        aiDefaults.EmbeddingModel,
			Token:        aiDefaults.APIToken,
			MaxRetries:   aiDefaults.MaxRetries,
			RetryDelayMs: int(aiDefaults.RetryDelay / time.Millisecond),
		},
		Search: SearchConfig{
			MaxMatches: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
// Keys missing from the file keep their default values.
func Load(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Data.Schedule == "" {
		return ErrMissingSchedulePath
	}
	if c.Data.Announcements == "" {
		return ErrMissingAnnouncementPath
	}
	if c.AI.Host == "" {
		return ErrMissingHost
	}
	if c.AI.Model == "" {
		return ErrMissingModel
	}
	if c.AI.MaxRetries < 1 {
		return ErrInvalidMaxRetries
	}
	if c.AI.RetryDelayMs < 0 {
		return ErrInvalidRetryDelay
	}
	if c.Search.MaxMatches < 1 {
		return ErrInvalidMaxMatches
	}
	if c.Batch.Workers < 0 {
		return ErrInvalidWorkers
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// EmbeddingConfig converts the ai section into an ai.Config.
func (c *Config) EmbeddingConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.AI.Host),
		ai.WithEmbeddingModel(c.AI.Model),
		ai.WithAPIToken(c.AI.Token),
		ai.WithRetry(c.AI.MaxRetries, time.Duration(c.AI.RetryDelayMs)*time.Millisecond),
	)
}

// ParseLogLevel maps a level name to its slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
}
