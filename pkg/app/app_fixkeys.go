package app

import (
	"context"

	"github.com/jlrickert/cli-toolkit/mylog"

	"github.com/jlrickert/splice/pkg/registry"
)

// FixKeysOptions configures behavior for Runner.FixKeys. Only the file of
// the target is used; the anchor is irrelevant to normalization.
type FixKeysOptions struct {
	TargetOptions

	// DryRun reports what would change without writing.
	DryRun bool
}

// FixKeysResult reports a normalization pass.
type FixKeysResult struct {
	Path  string
	Fixed int
	Diff  string // set on dry runs with changes
}

// FixKeys rewrites every bare entry key containing a hyphen into its quoted
// form. The pass is idempotent and never fails on content; a second run
// always reports zero fixes.
func (r *Runner) FixKeys(ctx context.Context, opts FixKeysOptions) (*FixKeysResult, error) {
	lg := mylog.LoggerFromContext(ctx)

	file, err := r.fixKeysFile(opts.TargetOptions)
	if err != nil {
		return nil, err
	}
	doc, err := registry.LoadDocument(file)
	if err != nil {
		return nil, err
	}

	normalized, count := registry.NormalizeKeys(doc.Text)
	res := &FixKeysResult{Path: doc.Path, Fixed: count}
	if count == 0 {
		return res, nil
	}

	if opts.DryRun {
		res.Diff = renderDiff(doc.Text, normalized)
		return res, nil
	}

	doc.Text = normalized
	if err := doc.Save(); err != nil {
		return nil, err
	}
	lg.Info("keys normalized", "path", doc.Path, "fixed", count)
	return res, nil
}

// fixKeysFile resolves just the file for key normalization: an explicit
// file needs no anchor, otherwise the configured target supplies one.
func (r *Runner) fixKeysFile(opts TargetOptions) (string, error) {
	if opts.File != "" {
		return r.resolvePath(opts.File), nil
	}
	cfg, err := r.Config()
	if err != nil {
		return "", err
	}
	target, err := cfg.Resolve(r.Root, opts.Alias)
	if err != nil {
		return "", err
	}
	return target.File, nil
}
