// Package config loads lair's settings.
//
// # Resolution Order
//
//  1. Built-in defaults
//  2. The TOML file at the given path, or ~/.config/lair/config.toml
//  3. LAIR_* environment variables (LAIR_STORAGE, LAIR_REDIS_ADDR, ...)
//
// A missing config file is not an error. A file that exists but does not
// parse is, and the error mentions "parse config".
//
// # Default Values
//
//   - storage: file
//   - state_dir: ~/.local/share/lair
//   - redis_addr: 127.0.0.1:6379
//   - sqlite_path: <state_dir>/lair.db
//   - catalog: empty, meaning the built-in catalog
//   - log_file: <state_dir>/lair.log
//   - log_level: info
//   - tick_seconds: 1
//
// # TOML Format
//
//	storage = "sqlite"
//	state_dir = "~/.local/share/lair"
//	catalog = "~/dragons.toml"
//	log_level = "debug"
//
// Paths are trimmed and tilde-expanded. storage must be one of file, redis,
// sqlite or memory; log_level must be a level slog understands.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return fmt.Errorf("load config: %w", err)
//	}
//	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.Level()}))
//
// The package is stateless. Load returns a value and keeps no globals.
package config
