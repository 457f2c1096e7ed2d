package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Storage backends a snapshot can be kept in.
const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds lair's settings. File values are applied first, then any
// LAIR_* environment variables.
type Config struct {
	Storage     string `toml:"storage" env:"STORAGE"`
	StateDir    string `toml:"state_dir" env:"STATE_DIR"`
	RedisAddr   string `toml:"redis_addr" env:"REDIS_ADDR"`
	RedisDB     int    `toml:"redis_db" env:"REDIS_DB"`
	SQLitePath  string `toml:"sqlite_path" env:"SQLITE_PATH"`
	Catalog     string `toml:"catalog" env:"CATALOG"`
	LogFile     string `toml:"log_file" env:"LOG_FILE"`
	LogLevel    string `toml:"log_level" env:"LOG_LEVEL"`
	TickSeconds int    `toml:"tick_seconds" env:"TICK_SECONDS"`
}

const (
	envPrefix          = "LAIR_"
	defaultConfigPath  = "~/.config/lair/config.toml"
	defaultStateDir    = "~/.local/share/lair"
	defaultRedisAddr   = "127.0.0.1:6379"
	defaultLogLevel    = "info"
	defaultTickSeconds = 1
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the settings used when no file or environment overrides exist.
func Default() Config {
	cfg := Config{}
	_ = cfg.normalize()
	return cfg
}

// Load reads the config file at path (empty means the default location),
// applies environment overrides and fills defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	if c.Storage == "" {
		c.Storage = StorageFile
	}
	switch c.Storage {
	case StorageFile, StorageRedis, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("invalid storage %q (want file, redis, sqlite or memory)", c.Storage)
	}

	c.StateDir = strings.TrimSpace(c.StateDir)
	if c.StateDir == "" {
		c.StateDir = defaultStateDir
	}
	c.StateDir = mustExpand(c.StateDir)

	c.RedisAddr = strings.TrimSpace(c.RedisAddr)
	if c.RedisAddr == "" {
		c.RedisAddr = defaultRedisAddr
	}

	c.SQLitePath = strings.TrimSpace(c.SQLitePath)
	if c.SQLitePath == "" {
		c.SQLitePath = filepath.Join(c.StateDir, "lair.db")
	}
	c.SQLitePath = mustExpand(c.SQLitePath)

	c.Catalog = strings.TrimSpace(c.Catalog)

	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.StateDir, "lair.log")
	}
	c.LogFile = mustExpand(c.LogFile)

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}

	if c.TickSeconds <= 0 {
		c.TickSeconds = defaultTickSeconds
	}
	return nil
}

// Level returns the configured slog level, info when unparseable.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// TickInterval is how often time spent in the browser is recorded.
func (c Config) TickInterval() time.Duration {
	if c.TickSeconds <= 0 {
		return defaultTickSeconds * time.Second
	}
	return time.Duration(c.TickSeconds) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
