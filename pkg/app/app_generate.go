package app

import (
	"context"
	"fmt"

	"github.com/jlrickert/cli-toolkit/mylog"

	"github.com/jlrickert/splice/pkg/generator"
	"github.com/jlrickert/splice/pkg/registry"
)

// GenerateOptions configures behavior for Runner.Generate.
type GenerateOptions struct {
	// Count of presets to generate.
	Count int

	// Seed for the pseudo-random picks; equal seeds give equal batches.
	Seed int64

	// CategoriesPath optionally replaces the built-in category set with a
	// YAML file.
	CategoriesPath string

	// Out is the batch file to write. Empty returns the batch in the
	// result without touching the filesystem.
	Out string
}

// GenerateResult reports a generation run.
type GenerateResult struct {
	Records []registry.Record
	Batch   string
	Path    string // empty unless written to a file
}

// Generate produces a batch of preset records and renders them to
// splice-ready text, optionally writing it to a batch file.
func (r *Runner) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	lg := mylog.LoggerFromContext(ctx)

	var cats []generator.Category
	if opts.CategoriesPath != "" {
		var err error
		cats, err = generator.LoadCategories(r.resolvePath(opts.CategoriesPath))
		if err != nil {
			return nil, err
		}
	}

	records, err := generator.Generate(generator.Options{
		Count:      opts.Count,
		Seed:       opts.Seed,
		Categories: cats,
	})
	if err != nil {
		return nil, err
	}
	batch, err := generator.RenderBatch(records)
	if err != nil {
		return nil, err
	}

	res := &GenerateResult{Records: records, Batch: batch}
	if opts.Out == "" {
		return res, nil
	}

	out := r.resolvePath(opts.Out)
	if err := r.Runtime.AtomicWriteFile(out, []byte(batch), 0o644); err != nil {
		return nil, fmt.Errorf("write batch %q: %w", out, err)
	}
	res.Path = out
	lg.Info("batch generated", "path", out, "count", len(records))
	return res, nil
}
