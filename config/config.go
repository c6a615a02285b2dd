// Package config loads the settings of the list front ends and the demo
// message server from a TOML file and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"git.sr.ht/~gioverse/scroll/list"
)

// Config is the root configuration structure.
type Config struct {
	List   ListConfig   `toml:"list"`
	Source SourceConfig `toml:"source"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
}

// ListConfig tunes the windowed list.
type ListConfig struct {
	SeedCount          int           `toml:"seed_count"`
	Gutter             int           `toml:"gutter"`
	DistanceFromBottom int           `toml:"distance_from_bottom"`
	SwipeCommitRatio   float64       `toml:"swipe_commit_ratio"`
	MinPlaceholders    int           `toml:"min_placeholders"`
	PageSize           int           `toml:"page_size"`
	Capacity           int           `toml:"capacity"`
	Transition         time.Duration `toml:"transition"`
}

// Source kinds.
const (
	SourceLorem = "lorem"
	SourceHTTP  = "http"
)

// SourceConfig selects where messages come from.
type SourceConfig struct {
	// Kind is either "lorem" for generated messages or "http" for the
	// message API.
	Kind string `toml:"kind"`
	// Endpoint is the base URL of the message API.
	Endpoint string `toml:"endpoint"`
	// ImageBase is prepended to author photo paths.
	ImageBase string        `toml:"image_base"`
	Timeout   time.Duration `toml:"timeout"`
	// RateLimit is the number of requests per second allowed against the
	// endpoint. Zero disables limiting.
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int     `toml:"rate_burst"`
	// Latency is the simulated delay of generated pages.
	Latency time.Duration `toml:"latency"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level string `toml:"level"`
	// File receives the logs. Empty means stderr.
	File string `toml:"file"`
}

// ServerConfig configures the demo message server.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	Database string `toml:"database"`
	// Seed is the number of messages generated into an empty database.
	Seed int `toml:"seed"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		List: ListConfig{
			SeedCount:          list.DefaultSeedCount,
			Gutter:             list.DefaultGutter,
			DistanceFromBottom: list.DefaultDistanceFromBottom,
			SwipeCommitRatio:   list.DefaultSwipeCommitRatio,
			MinPlaceholders:    list.DefaultMinPlaceholders,
			PageSize:           list.DefaultPageSize,
			Transition:         list.DefaultTransition,
		},
		Source: SourceConfig{
			Kind:      SourceLorem,
			Endpoint:  "http://localhost:8080",
			ImageBase: "http://localhost:8080",
			Timeout:   10 * time.Second,
			RateLimit: 5,
			RateBurst: 2,
			Latency:   300 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr:     ":8080",
			Database: "messages.db",
			Seed:     1000,
		},
	}
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Source.Kind {
	case SourceLorem, SourceHTTP:
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	if c.List.SwipeCommitRatio < 0 || c.List.SwipeCommitRatio > 1 {
		return fmt.Errorf("swipe_commit_ratio must be within [0,1], got %v", c.List.SwipeCommitRatio)
	}
	if c.List.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative, got %d", c.List.Capacity)
	}
	return nil
}

// Options converts the list settings into a list.Config.
func (l ListConfig) Options() list.Config {
	return list.Config{
		SeedCount:          l.SeedCount,
		Gutter:             l.Gutter,
		DistanceFromBottom: l.DistanceFromBottom,
		SwipeCommitRatio:   float32(l.SwipeCommitRatio),
		MinPlaceholders:    l.MinPlaceholders,
		PageSize:           l.PageSize,
		Capacity:           l.Capacity,
		Transition:         l.Transition,
	}.WithDefaults()
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	str("SCROLL_SOURCE", &cfg.Source.Kind)
	str("SCROLL_ENDPOINT", &cfg.Source.Endpoint)
	str("SCROLL_IMAGE_BASE", &cfg.Source.ImageBase)
	if v := os.Getenv("SCROLL_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Source.RateLimit = f
		}
	}
	num("SCROLL_RATE_BURST", &cfg.Source.RateBurst)
	num("SCROLL_PAGE_SIZE", &cfg.List.PageSize)
	num("SCROLL_CAPACITY", &cfg.List.Capacity)
	str("SCROLL_LOG_LEVEL", &cfg.Log.Level)
	str("SCROLL_LOG_FILE", &cfg.Log.File)
	str("SCROLL_ADDR", &cfg.Server.Addr)
	str("SCROLL_DB", &cfg.Server.Database)
	num("SCROLL_SEED", &cfg.Server.Seed)
}
