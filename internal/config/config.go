// Package config loads oscctl settings from a TOML file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/chabad360/osc-codec/osc"
)

type Config struct {
	Listen      string
	Target      string
	MaxDepth    int
	Copy        bool
	Workers     int
	ReadTimeout time.Duration
	MetricsAddr string
	LogLevel    string
	Output      string
}

type fileConfig struct {
	Listen      string `toml:"listen"`
	Target      string `toml:"target"`
	MaxDepth    int    `toml:"max_depth"`
	Copy        bool   `toml:"copy"`
	Workers     int    `toml:"workers"`
	ReadTimeout string `toml:"read_timeout"`
	MetricsAddr string `toml:"metrics_addr"`
	LogLevel    string `toml:"log_level"`
	Output      string `toml:"output"`
}

func Default() Config {
	return Config{
		Listen:   "127.0.0.1:8765",
		Target:   "127.0.0.1:8765",
		MaxDepth: osc.DefaultMaxDepth,
		Workers:  16,
		LogLevel: "info",
		Output:   "text",
	}
}

// Load overlays the keys present in the file at path onto Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("listen") {
		cfg.Listen = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("target") {
		cfg.Target = strings.TrimSpace(raw.Target)
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("copy") {
		cfg.Copy = raw.Copy
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("read_timeout must not be negative")
	}
	switch c.Output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	return nil
}

// Decoder returns the decoder described by the config.
func (c Config) Decoder() osc.Decoder {
	return osc.Decoder{MaxDepth: c.MaxDepth, Copy: c.Copy}
}
