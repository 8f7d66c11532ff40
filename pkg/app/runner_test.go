package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jlrickert/splice/pkg/app"
	"github.com/jlrickert/splice/pkg/project"
	"github.com/jlrickert/splice/pkg/registry"
)

const testDoc = "export const DEFS = {\n" +
	"  a: { id: 'a' }\n" +
	"};\n\n" +
	"export const PRESETS = {};\n"

func newTestRunner(t *testing.T) *app.Runner {
	t.Helper()
	r, err := app.NewRunner(nil, t.TempDir())
	require.NoError(t, err)
	return r
}

func writeTarget(t *testing.T, r *app.Runner, name, content string) string {
	t.Helper()
	path := filepath.Join(r.Root, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunnerAppend_FromSourceFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)

	target := writeTarget(t, r, "pattern.ts", testDoc)
	writeTarget(t, r, "batch.ts", "  b: {\n    id: 'b'\n  },\n")

	res, err := r.Append(ctx, app.AppendOptions{
		TargetOptions: app.TargetOptions{
			File:   "pattern.ts",
			Anchor: "export const PRESETS",
			Open:   "export const DEFS",
		},
		Source: "batch.ts",
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Entries)
	require.Empty(t, res.Diff)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, registry.Keys(string(got)))
}

func TestRunnerAppend_Records(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	target := writeTarget(t, r, "pattern.ts", testDoc)

	res, err := r.Append(ctx, app.AppendOptions{
		TargetOptions: app.TargetOptions{
			File:   "pattern.ts",
			Anchor: "export const PRESETS",
		},
		Records: []registry.Record{
			{ID: "b", Fields: []registry.Field{{Name: "id", Str: "b"}}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Entries)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, registry.Keys(string(got)))
}

func TestRunnerAppend_RawBatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	target := writeTarget(t, r, "pattern.ts", testDoc)

	res, err := r.Append(ctx, app.AppendOptions{
		TargetOptions: app.TargetOptions{
			File:   "pattern.ts",
			Anchor: "export const PRESETS",
		},
		Batch: "  b: {\n    id: 'b'\n  },\n",
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Entries)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, registry.Keys(string(got)))
}

func TestRunnerAppend_DryRunLeavesFileUntouched(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	target := writeTarget(t, r, "pattern.ts", testDoc)

	res, err := r.Append(ctx, app.AppendOptions{
		TargetOptions: app.TargetOptions{
			File:   "pattern.ts",
			Anchor: "export const PRESETS",
		},
		Records: []registry.Record{
			{ID: "b", Fields: []registry.Field{{Name: "id", Str: "b"}}},
		},
		DryRun: true,
	})
	require.NoError(t, err)
	require.Contains(t, res.Diff, "+   b: {")

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, testDoc, string(got))
}

func TestRunnerAppend_MissingMarkerLeavesFileUnmodified(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	target := writeTarget(t, r, "pattern.ts", "export const DEFS = {\n};\n")

	_, err := r.Append(ctx, app.AppendOptions{
		TargetOptions: app.TargetOptions{
			File:   "pattern.ts",
			Anchor: "export const PRESETS",
		},
		Records: []registry.Record{
			{ID: "b", Fields: []registry.Field{{Name: "id", Str: "b"}}},
		},
	})
	require.True(t, registry.IsMarkerNotFound(err))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "export const DEFS = {\n};\n", string(got))
}

func TestRunnerAppend_DuplicateKeyRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	writeTarget(t, r, "pattern.ts", testDoc)

	_, err := r.Append(ctx, app.AppendOptions{
		TargetOptions: app.TargetOptions{
			File:   "pattern.ts",
			Anchor: "export const PRESETS",
		},
		Records: []registry.Record{
			{ID: "a", Fields: []registry.Field{{Name: "id", Str: "a"}}},
		},
	})
	require.True(t, registry.IsDuplicateKey(err))
}

func TestRunnerAppend_TargetFromConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	target := writeTarget(t, r, "pattern.ts", testDoc)
	writeTarget(t, r, "batch.ts", "  b: {\n    id: 'b'\n  },\n")

	cfg := &project.Config{
		DefaultTarget: "pattern",
		Targets: map[string]project.Target{
			"pattern": {
				File:   "pattern.ts",
				Anchor: "export const PRESETS",
				Open:   "export const DEFS",
			},
		},
	}
	require.NoError(t, cfg.Write(filepath.Join(r.Root, project.DefaultConfigName)))

	// empty alias resolves through defaultTarget
	res, err := r.Append(ctx, app.AppendOptions{Source: "batch.ts"})
	require.NoError(t, err)
	require.Equal(t, target, res.Path)
}

func TestRunnerAppend_InputValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	writeTarget(t, r, "pattern.ts", testDoc)

	opts := app.TargetOptions{File: "pattern.ts", Anchor: "export const PRESETS"}

	_, err := r.Append(ctx, app.AppendOptions{TargetOptions: opts})
	require.ErrorContains(t, err, "nothing to append")

	_, err = r.Append(ctx, app.AppendOptions{
		TargetOptions: opts,
		Source:        "batch.ts",
		Records: []registry.Record{
			{ID: "b", Fields: []registry.Field{{Name: "id", Str: "b"}}},
		},
	})
	require.ErrorContains(t, err, "mutually exclusive")

	_, err = r.Append(ctx, app.AppendOptions{
		TargetOptions: app.TargetOptions{File: "pattern.ts"},
		Source:        "batch.ts",
	})
	require.ErrorContains(t, err, "--anchor is required")
}

func TestRunnerFixKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	doc := "export const DEFS = {\n  st-patricks: {\n    id: 'st-patricks'\n  }\n};\n"
	target := writeTarget(t, r, "pattern.ts", doc)

	res, err := r.FixKeys(ctx, app.FixKeysOptions{
		TargetOptions: app.TargetOptions{File: "pattern.ts"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Fixed)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Contains(t, string(got), "  'st-patricks': {")

	// second pass is a no-op
	res, err = r.FixKeys(ctx, app.FixKeysOptions{
		TargetOptions: app.TargetOptions{File: "pattern.ts"},
	})
	require.NoError(t, err)
	require.Zero(t, res.Fixed)
}

func TestRunnerFixKeys_DryRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	doc := "  st-patricks: {\n"
	target := writeTarget(t, r, "pattern.ts", doc)

	res, err := r.FixKeys(ctx, app.FixKeysOptions{
		TargetOptions: app.TargetOptions{File: "pattern.ts"},
		DryRun:        true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Fixed)
	require.Contains(t, res.Diff, "+   'st-patricks': {")

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, doc, string(got))
}

func TestRunnerGenerate_WritesBatchFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)

	res, err := r.Generate(ctx, app.GenerateOptions{Count: 12, Seed: 5, Out: "batch.ts"})
	require.NoError(t, err)
	require.Len(t, res.Records, 12)
	require.Equal(t, filepath.Join(r.Root, "batch.ts"), res.Path)

	got, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	require.Equal(t, res.Batch, string(got))
	require.Len(t, registry.Keys(string(got)), 12)
}

func TestRunnerGenerate_ThenAppendEndToEnd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	target := writeTarget(t, r, "pattern.ts", testDoc)

	gen, err := r.Generate(ctx, app.GenerateOptions{Count: 6, Seed: 9, Out: "batch.ts"})
	require.NoError(t, err)

	res, err := r.Append(ctx, app.AppendOptions{
		TargetOptions: app.TargetOptions{
			File:   "pattern.ts",
			Anchor: "export const PRESETS",
			Open:   "export const DEFS",
		},
		Source: "batch.ts",
	})
	require.NoError(t, err)
	require.Equal(t, 6, res.Entries)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	keys := registry.Keys(string(got))
	require.Len(t, keys, 7) // original entry plus the batch
	require.Equal(t, gen.Records[0].ID, keys[1])
}

func TestRunnerLint(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	writeTarget(t, r, "pattern.ts",
		"export const DEFS = {\n  st-patricks: { id: 'x' }\n};\nexport const PRESETS = {};\n")

	res, err := r.Lint(ctx, app.LintOptions{
		TargetOptions: app.TargetOptions{
			File:   "pattern.ts",
			Anchor: "export const PRESETS",
			Open:   "export const DEFS",
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Entries)
	require.Equal(t, 1, res.BareKeys)
	require.GreaterOrEqual(t, res.InsertOffset, 0)
	require.Empty(t, res.Problem)
	require.False(t, res.Clean())
}

func TestRunnerLint_ReportsMissingMarker(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)
	writeTarget(t, r, "pattern.ts", "export const DEFS = {\n};\n")

	res, err := r.Lint(ctx, app.LintOptions{
		TargetOptions: app.TargetOptions{
			File:   "pattern.ts",
			Anchor: "export const PRESETS",
		},
	})
	require.NoError(t, err)
	require.Equal(t, -1, res.InsertOffset)
	require.Contains(t, res.Problem, "anchor marker not found")
	require.False(t, res.Clean())
}

func TestRunnerLint_MissingFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRunner(t)

	_, err := r.Lint(ctx, app.LintOptions{
		TargetOptions: app.TargetOptions{File: "gone.ts", Anchor: "x"},
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunnerWatchLint_ReLintsOnChange(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := newTestRunner(t)
	target := writeTarget(t, r, "pattern.ts", testDoc)

	results := make(chan *app.LintResult, 8)
	done := make(chan error, 1)
	go func() {
		done <- r.WatchLint(ctx, app.LintOptions{
			TargetOptions: app.TargetOptions{
				File:   "pattern.ts",
				Anchor: "export const PRESETS",
			},
		}, func(res *app.LintResult, err error) {
			if err == nil {
				results <- res
			}
		})
	}()

	select {
	case res := <-results:
		require.Equal(t, 1, res.Entries)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial lint result")
	}

	// grow the registry; the watcher should pick it up
	require.NoError(t, os.WriteFile(target, []byte(
		"export const DEFS = {\n  a: { id: 'a' },\n  b: { id: 'b' }\n};\nexport const PRESETS = {};\n",
	), 0o644))

	select {
	case res := <-results:
		require.Equal(t, 2, res.Entries)
	case <-time.After(5 * time.Second):
		t.Fatal("no lint result after change")
	}

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
