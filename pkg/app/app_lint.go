package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jlrickert/cli-toolkit/mylog"

	"github.com/jlrickert/splice/pkg/registry"
)

// LintOptions configures behavior for Runner.Lint.
type LintOptions struct {
	TargetOptions
}

// LintResult is one report over a registry target.
type LintResult struct {
	Path string

	// Entries is the number of entry keys found in the document.
	Entries int

	// BareKeys is how many keys a fix-keys run would rewrite.
	BareKeys int

	// InsertOffset is the computed insertion point, -1 when location
	// failed.
	InsertOffset int

	// Problem describes a location failure (missing marker, missing
	// container, structural mismatch). Empty when the target is
	// spliceable.
	Problem string
}

// Clean reports whether the target is spliceable and fully normalized.
func (l *LintResult) Clean() bool {
	return l.Problem == "" && l.BareKeys == 0
}

// Lint checks a registry target without modifying it: can an insertion
// point be located, and how many keys would normalization rewrite.
// Structural findings land in the result; only file-level failures return
// an error.
func (r *Runner) Lint(ctx context.Context, opts LintOptions) (*LintResult, error) {
	target, err := r.resolveTarget(opts.TargetOptions)
	if err != nil {
		return nil, err
	}
	doc, err := registry.LoadDocument(target.File)
	if err != nil {
		return nil, err
	}

	res := &LintResult{
		Path:     doc.Path,
		Entries:  len(registry.Keys(doc.Text)),
		BareKeys: registry.CountBareKeys(doc.Text),
	}
	loc, err := registry.Locate(doc.Text, registry.LocateOptions{
		Anchor: target.Anchor,
		Open:   target.Open,
	})
	if err != nil {
		res.InsertOffset = -1
		res.Problem = err.Error()
		return res, nil
	}
	res.InsertOffset = loc.Insert
	return res, nil
}

// WatchLint lints the target once, then re-lints whenever its file
// changes, invoking onResult for every pass. Change bursts are debounced
// before re-reading. Blocks until ctx is canceled or the watcher fails.
func (r *Runner) WatchLint(ctx context.Context, opts LintOptions, onResult func(*LintResult, error)) error {
	lg := mylog.LoggerFromContext(ctx)

	target, err := r.resolveTarget(opts.TargetOptions)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch target: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()
	if err := watcher.Add(filepath.Dir(target.File)); err != nil {
		return fmt.Errorf("watch target directory: %w", err)
	}

	onResult(r.Lint(ctx, opts))

	var (
		pending     bool
		pendingFrom time.Time
	)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if pending && time.Since(pendingFrom) >= 120*time.Millisecond {
				onResult(r.Lint(ctx, opts))
				pending = false
			}
		case event, ok := <-watcher.Events:
			if !ok {
				continue
			}
			if event.Name != target.File {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Chmod|fsnotify.Remove) != 0 {
				pending = true
				pendingFrom = time.Now()
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				continue
			}
			lg.Warn("target watcher error", "err", watchErr)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
