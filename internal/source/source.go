package source

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/lair/internal/catalog"
)

//go:embed data/dragons.json
var builtin []byte

// Loader fetches a complete catalog.
type Loader interface {
	Load(ctx context.Context) ([]catalog.Item, error)
}

// Ensure the loaders satisfy Loader at compile time.
var (
	_ Loader = (*Client)(nil)
	_ Loader = File("")
	_ Loader = Builtin{}
)

// Open picks a Loader for ref.
func Open(ref string) (Loader, error) {
	trimmed := strings.TrimSpace(ref)
	switch {
	case trimmed == "":
		return Builtin{}, nil
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		return NewClient(trimmed)
	default:
		path, err := expandPath(trimmed)
		if err != nil {
			return nil, err
		}
		return File(path), nil
	}
}

// Load opens ref and loads it.
func Load(ctx context.Context, ref string) ([]catalog.Item, error) {
	loader, err := Open(ref)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx)
}

// Builtin serves the catalog compiled into the binary.
type Builtin struct{}

func (Builtin) Load(context.Context) ([]catalog.Item, error) {
	items, err := decodeJSON(builtin)
	if err != nil {
		return nil, fmt.Errorf("builtin catalog: %w", err)
	}
	return items, nil
}

// File reads a catalog from disk. TOML is chosen by extension, JSON otherwise.
type File string

func (f File) Load(ctx context.Context) ([]catalog.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var items []catalog.Item
	if strings.EqualFold(filepath.Ext(string(f)), ".toml") {
		items, err = decodeTOML(data)
	} else {
		items, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", f, err)
	}
	return items, nil
}

type tomlDocument struct {
	Dragons []catalog.Item `toml:"dragons"`
}

func decodeTOML(data []byte) ([]catalog.Item, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if err := catalog.Validate(doc.Dragons); err != nil {
		return nil, err
	}
	return doc.Dragons, nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
