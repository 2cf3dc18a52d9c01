package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = ".nwlint.yaml"

// PyprojectName is read for a [tool.nwlint] table next to the YAML file.
const PyprojectName = "pyproject.toml"

type Config struct {
	// Select lists the rules to run, by code or name. Empty means all.
	Select []string `yaml:"select" toml:"select"`
	// Ignore removes rules from the selection.
	Ignore []string `yaml:"ignore" toml:"ignore"`
	// Exclude lists directory names skipped while crawling.
	Exclude []string `yaml:"exclude" toml:"exclude"`
	Workers int      `yaml:"workers" toml:"workers"`
	Format  string   `yaml:"format" toml:"format"` // "text" or "json"
	Cache   struct {
		Enabled bool   `yaml:"enabled" toml:"enabled"`
		Path    string `yaml:"path" toml:"path"`
	} `yaml:"cache" toml:"cache"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		Exclude: []string{".git", ".venv", "venv", "__pycache__", "node_modules", ".tox", "build", "dist"},
		Format:  "text",
	}
	cfg.Cache.Path = ".nwlint.db"
	return cfg
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. pyproject.toml [tool.nwlint], then YAML on top
	if err := loadPyproject(filepath.Join(filepath.Dir(path), PyprojectName), cfg); err != nil {
		return nil, err
	}

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// 3. Override with Environment Variables if present
	if v := os.Getenv("NWLINT_SELECT"); v != "" {
		cfg.Select = splitList(v)
	}
	if v := os.Getenv("NWLINT_IGNORE"); v != "" {
		cfg.Ignore = splitList(v)
	}
	if v := os.Getenv("NWLINT_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("NWLINT_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NWLINT_WORKERS %q: %w", v, err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("NWLINT_CACHE"); v != "" {
		cfg.Cache.Path = v
		cfg.Cache.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type pyproject struct {
	Tool struct {
		Nwlint Config `toml:"nwlint"`
	} `toml:"tool"`
}

func loadPyproject(path string, cfg *Config) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	var p pyproject
	p.Tool.Nwlint = *cfg
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	*cfg = p.Tool.Nwlint
	return nil
}
