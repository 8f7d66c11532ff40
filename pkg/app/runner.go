// Package app provides the Runner used to execute splice operations on
// behalf of the CLI: appending batches, normalizing keys, generating preset
// batches, and linting registry targets.
package app

import (
	"fmt"
	"path/filepath"

	"github.com/jlrickert/cli-toolkit/toolkit"

	"github.com/jlrickert/splice/pkg/project"
)

// Runner holds process-level dependencies and cached project state. One
// Runner drives one invocation; operations never run concurrently against
// the same target file.
type Runner struct {
	// Root is the project root used to resolve relative paths and to find
	// splice.yaml.
	Root string

	// Runtime carries process-level dependencies (streams, env, fs).
	Runtime *toolkit.Runtime

	// ConfigPath overrides the default splice.yaml location when set.
	ConfigPath string

	cfg *project.Config
}

// NewRunner constructs a Runner. A nil runtime gets a production one; an
// empty root defaults to the working directory.
func NewRunner(rt *toolkit.Runtime, root string) (*Runner, error) {
	if rt == nil {
		var err error
		rt, err = toolkit.NewRuntime()
		if err != nil {
			return nil, fmt.Errorf("unable to create runtime: %w", err)
		}
	}
	if root == "" {
		wd, err := rt.Getwd()
		if err != nil {
			return nil, fmt.Errorf("unable to determine working directory: %w", err)
		}
		root = wd
	}
	return &Runner{Root: root, Runtime: rt}, nil
}

// Config returns the cached project config, loading it on first use.
func (r *Runner) Config() (*project.Config, error) {
	if r.cfg != nil {
		return r.cfg, nil
	}
	path := r.ConfigPath
	if path == "" {
		path = filepath.Join(r.Root, project.DefaultConfigName)
	}
	cfg, err := project.ReadConfig(path)
	if err != nil {
		return nil, err
	}
	r.cfg = cfg
	return r.cfg, nil
}

// TargetOptions selects the registry file a command operates on: either an
// explicit file plus anchor, or a configured alias from splice.yaml.
type TargetOptions struct {
	// Alias of a target in splice.yaml. Empty falls back to the config's
	// defaultTarget.
	Alias string

	// File, when set together with Anchor, bypasses the config entirely.
	File   string
	Anchor string
	Open   string
}

func (r *Runner) resolveTarget(opts TargetOptions) (project.Target, error) {
	if opts.File != "" {
		if opts.Anchor == "" {
			return project.Target{}, fmt.Errorf("--anchor is required with an explicit file")
		}
		return project.Target{
			File:   r.resolvePath(opts.File),
			Anchor: opts.Anchor,
			Open:   opts.Open,
		}, nil
	}
	cfg, err := r.Config()
	if err != nil {
		return project.Target{}, err
	}
	return cfg.Resolve(r.Root, opts.Alias)
}

// resolvePath makes path absolute against the project root.
func (r *Runner) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.Root, path)
}
