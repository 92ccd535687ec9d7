// Package config loads the ringer configuration file.
//
// A configuration starts from the built-in defaults; a YAML file overlays
// whatever keys it sets. Relative paths in the file are resolved against
// the directory holding it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/changering/generator"
	"github.com/katalvlaran/changering/library"
)

// FileName is the configuration file looked up when none is named.
const FileName = "ringer.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

const defaultConfigYAML = `# ringer configuration
library:
  # Method library; text (name|type|stage|notation|...) or XML.
  path: methods.txt
  format: auto

prove:
  # Replace each composition file with its rewritten form.
  rewrite: false
  # Directory for stripped listings; empty disables them.
  output_dir: ""
  overwrite: false

generate:
  max_changes: 5300
  # 0 uses one worker per CPU.
  workers: 0
  # plain or prover
  format: plain
  # Empty writes to standard output.
  output: ""

artifacts:
  output_dir: artifacts
  overwrite: false

log:
  level: info
`

// Library locates the method library.
type Library struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// Prove configures the batch prover.
type Prove struct {
	Rewrite   bool   `yaml:"rewrite"`
	OutputDir string `yaml:"output_dir"`
	Overwrite bool   `yaml:"overwrite"`
}

// Generate configures the composition generator.
type Generate struct {
	MaxChanges int    `yaml:"max_changes"`
	Workers    int    `yaml:"workers"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
}

// Artifacts configures description and grid files.
type Artifacts struct {
	OutputDir string `yaml:"output_dir"`
	Overwrite bool   `yaml:"overwrite"`
}

// Log configures the logger.
type Log struct {
	Level string `yaml:"level"`
}

// Config models ringer.yaml.
type Config struct {
	Library   Library   `yaml:"library"`
	Prove     Prove     `yaml:"prove"`
	Generate  Generate  `yaml:"generate"`
	Artifacts Artifacts `yaml:"artifacts"`
	Log       Log       `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Library:   Library{Path: "methods.txt", Format: "auto"},
		Generate:  Generate{MaxChanges: generator.DefaultMaxChanges, Format: "plain"},
		Artifacts: Artifacts{OutputDir: "artifacts"},
		Log:       Log{Level: "info"},
	}
}

// DefaultYAML returns the commented default configuration document.
func DefaultYAML() string { return defaultConfigYAML }

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.normalize(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// WriteDefault writes the default document to path unless a file is
// already there. It reports whether it wrote.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return false, fmt.Errorf("config: write %s: %w", path, err)
	}

	return true, nil
}

// Validate checks every value that has a restricted range.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Library.Path) == "" {
		return fmt.Errorf("%w: library.path is required", ErrInvalid)
	}
	if _, err := library.ParseFormat(c.Library.Format); err != nil {
		return fmt.Errorf("%w: library.format: %v", ErrInvalid, err)
	}
	if c.Generate.MaxChanges <= 0 {
		return fmt.Errorf("%w: generate.max_changes must be > 0, got %d", ErrInvalid, c.Generate.MaxChanges)
	}
	if c.Generate.Workers < 0 {
		return fmt.Errorf("%w: generate.workers must be >= 0, got %d", ErrInvalid, c.Generate.Workers)
	}
	if _, err := generator.ParseFormat(c.Generate.Format); err != nil {
		return fmt.Errorf("%w: generate.format: %v", ErrInvalid, err)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}

	return nil
}

// YAML renders the configuration as a document Load accepts.
func (c Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}

	return string(data), nil
}

func (c *Config) normalize(base string) {
	c.Library.Path = resolvePath(base, c.Library.Path)
	c.Library.Format = normalizeWord(c.Library.Format)
	c.Prove.OutputDir = resolvePath(base, c.Prove.OutputDir)
	c.Generate.Format = normalizeWord(c.Generate.Format)
	c.Generate.Output = resolvePath(base, c.Generate.Output)
	c.Artifacts.OutputDir = resolvePath(base, c.Artifacts.OutputDir)
	c.Log.Level = normalizeWord(c.Log.Level)
}

func normalizeWord(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}

	return filepath.Clean(filepath.Join(base, trimmed))
}
