// Package config handles configuration loading and validation for pastebox.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/pastebox/emoji"
	"github.com/iw2rmb/pastebox/internal/logging"
	"github.com/iw2rmb/pastebox/paste"
)

// Config is the file configuration of a pastebox host.
type Config struct {
	Paste   PasteConfig   `toml:"paste" yaml:"paste" json:"paste"`
	Emoji   EmojiConfig   `toml:"emoji" yaml:"emoji" json:"emoji"`
	Editor  EditorConfig  `toml:"editor" yaml:"editor" json:"editor"`
	Logging LoggingConfig `toml:"logging" yaml:"logging" json:"logging"`
}

type PasteConfig struct {
	// MaxImageBytes is the size above which pasted images are downscaled.
	MaxImageBytes int `toml:"max_image_bytes" yaml:"max_image_bytes" json:"max_image_bytes"`
	// Quality is the JPEG quality used when re-encoding (1-100).
	Quality int `toml:"quality" yaml:"quality" json:"quality"`
	// ReadTimeoutMS bounds one paste resolution.
	ReadTimeoutMS int `toml:"read_timeout_ms" yaml:"read_timeout_ms" json:"read_timeout_ms"`
}

type EmojiConfig struct {
	// Advance is "fixed" or "glyph".
	Advance string   `toml:"advance" yaml:"advance" json:"advance"`
	Catalog []string `toml:"catalog" yaml:"catalog" json:"catalog"`
}

type EditorConfig struct {
	Text         string `toml:"text" yaml:"text" json:"text"`
	HistoryLimit int    `toml:"history_limit" yaml:"history_limit" json:"history_limit"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level" json:"level"`
	Format string `toml:"format" yaml:"format" json:"format"`
	// Output is "stderr", "stdout", "discard" or a file path.
	Output string `toml:"output" yaml:"output" json:"output"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Paste: PasteConfig{
			MaxImageBytes: paste.DefaultMaxImageBytes,
			Quality:       75,
			ReadTimeoutMS: int(paste.DefaultReadTimeout / time.Millisecond),
		},
		Emoji: EmojiConfig{
			Advance: emoji.AdvanceFixed.String(),
			Catalog: emoji.DefaultCatalog(),
		},
		Editor: EditorConfig{
			HistoryLimit: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads path, applies environment overrides and validates the result.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

func loadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return cfg, nil
}

// ApplyEnvOverrides applies PASTEBOX_* environment variables. Malformed
// numbers are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PASTEBOX_MAX_IMAGE_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Paste.MaxImageBytes = n
		}
	}
	if v := os.Getenv("PASTEBOX_READ_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Paste.ReadTimeoutMS = n
		}
	}
	if v := os.Getenv("PASTEBOX_EMOJI_ADVANCE"); v != "" {
		c.Emoji.Advance = v
	}
	if v := os.Getenv("PASTEBOX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PASTEBOX_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("PASTEBOX_LOG_OUTPUT"); v != "" {
		c.Logging.Output = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if c.Paste.MaxImageBytes < 1024 {
		errs = append(errs, fmt.Errorf("paste.max_image_bytes must be at least 1024, got %d", c.Paste.MaxImageBytes))
	}
	if c.Paste.Quality < 1 || c.Paste.Quality > 100 {
		errs = append(errs, fmt.Errorf("paste.quality must be in [1, 100], got %d", c.Paste.Quality))
	}
	if c.Paste.ReadTimeoutMS <= 0 {
		errs = append(errs, fmt.Errorf("paste.read_timeout_ms must be positive, got %d", c.Paste.ReadTimeoutMS))
	}
	if _, err := emoji.ParseAdvance(c.Emoji.Advance); err != nil {
		errs = append(errs, err)
	}
	for i, g := range c.Emoji.Catalog {
		if g == "" {
			errs = append(errs, fmt.Errorf("emoji.catalog[%d] is empty", i))
		}
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ReadTimeout returns the paste read timeout as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Paste.ReadTimeoutMS) * time.Millisecond
}

// EmojiAdvance returns the parsed emoji advance policy.
func (c *Config) EmojiAdvance() emoji.Advance {
	adv, _ := emoji.ParseAdvance(c.Emoji.Advance)
	return adv
}

// LogConfig converts the logging section for internal/logging.
func (c *Config) LogConfig() logging.Config {
	out := logging.DefaultConfig()
	out.Level, _ = logging.ParseLevel(c.Logging.Level)
	out.Format, _ = logging.ParseFormat(c.Logging.Format)
	if c.Logging.Output != "" {
		out.Output = c.Logging.Output
	}
	return out
}
