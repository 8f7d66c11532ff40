package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jlrickert/cli-toolkit/mylog"

	"github.com/jlrickert/splice/pkg/registry"
)

// AppendOptions configures behavior for Runner.Append. Exactly one of
// Source or Records supplies the batch.
type AppendOptions struct {
	TargetOptions

	// Source is a path to a pre-rendered batch file (entry blocks ready
	// for splicing, the generator's output format).
	Source string

	// Batch is pre-rendered batch text passed directly, e.g. read from a
	// pipe.
	Batch string

	// Records is an in-memory batch, rendered through the serializer with
	// duplicate-id checking.
	Records []registry.Record

	// DryRun computes the result and a diff without writing anything.
	DryRun bool
}

// AppendResult reports what an append did (or, for a dry run, would do).
type AppendResult struct {
	// Path of the registry file.
	Path string

	// Entries appended.
	Entries int

	// Diff is the line diff of the pending change; only set on dry runs.
	Diff string
}

// Append splices a batch of entries into the configured registry target.
// The document is read in full, patched in memory, and written back in one
// atomic replace; any failure aborts before the write.
func (r *Runner) Append(ctx context.Context, opts AppendOptions) (*AppendResult, error) {
	lg := mylog.LoggerFromContext(ctx)

	target, err := r.resolveTarget(opts.TargetOptions)
	if err != nil {
		return nil, err
	}
	sources := 0
	for _, set := range []bool{opts.Source != "", opts.Batch != "", len(opts.Records) > 0} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("append: source file, raw batch, and records are mutually exclusive")
	}
	if sources == 0 {
		return nil, fmt.Errorf("append: nothing to append")
	}

	doc, err := registry.LoadDocument(target.File)
	if err != nil {
		return nil, err
	}
	before := doc.Text

	locOpts := registry.LocateOptions{Anchor: target.Anchor, Open: target.Open}
	entries := len(opts.Records)
	switch {
	case opts.Source != "":
		raw, err := os.ReadFile(r.resolvePath(opts.Source))
		if err != nil {
			return nil, fmt.Errorf("read batch source: %w", err)
		}
		batch := strings.TrimRight(string(raw), "\n")
		entries = len(registry.Keys(batch))
		if err := doc.Append(batch, locOpts); err != nil {
			return nil, err
		}
	case opts.Batch != "":
		batch := strings.TrimRight(opts.Batch, "\n")
		entries = len(registry.Keys(batch))
		if err := doc.Append(batch, locOpts); err != nil {
			return nil, err
		}
	default:
		if err := doc.AppendRecords(opts.Records, locOpts); err != nil {
			return nil, err
		}
	}

	res := &AppendResult{Path: doc.Path, Entries: entries}
	if opts.DryRun {
		res.Diff = renderDiff(before, doc.Text)
		lg.Debug("append dry run", "path", doc.Path, "entries", entries)
		return res, nil
	}

	if err := doc.Save(); err != nil {
		return nil, err
	}
	lg.Info("batch appended", "path", doc.Path, "entries", entries)
	return res, nil
}
