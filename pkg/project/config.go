// Package project handles the splice.yaml project configuration: named
// registry targets so operators refer to "trending" instead of repeating a
// file path, anchor marker and registry declaration on every run.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the config file looked up at the project root.
const DefaultConfigName = "splice.yaml"

// Config is the parsed splice.yaml.
type Config struct {
	// Updated is a timestamp, refreshed on every write.
	Updated string `yaml:"updated,omitempty"`

	// DefaultTarget is the alias used when a command names none.
	DefaultTarget string `yaml:"defaultTarget,omitempty"`

	// Targets maps an alias to a registry target.
	Targets map[string]Target `yaml:"targets"`
}

// Target describes one registry file and how to locate its insertion point.
type Target struct {
	// File is the registry file path, relative to the project root unless
	// absolute.
	File string `yaml:"file"`

	// Anchor is the literal string immediately following the registry,
	// used to find its closing delimiter.
	Anchor string `yaml:"anchor"`

	// Open, optional, is the registry's own declaration; setting it turns
	// on the structural guard during location.
	Open string `yaml:"open,omitempty"`
}

// ReadConfig reads and parses a splice.yaml at path.
func ReadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, NewInvalidConfigError(fmt.Sprintf("parse %q: %v", path, err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every target is usable.
func (c *Config) Validate() error {
	for alias, t := range c.Targets {
		if strings.TrimSpace(t.File) == "" {
			return NewInvalidConfigError(fmt.Sprintf("target %q: file is required", alias))
		}
		if strings.TrimSpace(t.Anchor) == "" {
			return NewInvalidConfigError(fmt.Sprintf("target %q: anchor is required", alias))
		}
	}
	if c.DefaultTarget != "" {
		if _, ok := c.Targets[c.DefaultTarget]; !ok {
			return NewInvalidConfigError(fmt.Sprintf("defaultTarget %q is not a configured target", c.DefaultTarget))
		}
	}
	return nil
}

// Resolve returns the target for alias, falling back to DefaultTarget when
// alias is empty. The returned target's File is resolved against root when
// relative.
func (c *Config) Resolve(root, alias string) (Target, error) {
	if alias == "" {
		alias = c.DefaultTarget
	}
	if alias == "" {
		return Target{}, NewTargetNotFoundError("")
	}
	t, ok := c.Targets[alias]
	if !ok {
		return Target{}, NewTargetNotFoundError(alias)
	}
	if !filepath.IsAbs(t.File) {
		t.File = filepath.Join(root, t.File)
	}
	return t, nil
}

// Write persists the config to path atomically (temp file in the same
// directory, then rename). The Updated timestamp is refreshed.
func (c *Config) Write(path string) error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if path == "" {
		return fmt.Errorf("path required")
	}
	c.Updated = time.Now().UTC().Format(time.RFC3339)

	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir %q: %w", dir, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write temp config %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %q -> %q: %w", tmp, path, err)
	}
	return nil
}
