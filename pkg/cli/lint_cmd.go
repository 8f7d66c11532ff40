package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jlrickert/splice/pkg/app"
)

// NewLintCmd constructs the `lint` subcommand.
//
// Usage examples:
//
//	splice lint
//	splice lint --target pattern
//	splice lint --watch
func NewLintCmd(deps *Deps) *cobra.Command {
	var opts app.LintOptions
	var watch bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "check that the registry target is spliceable and normalized",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if watch {
				err := deps.Runner.WatchLint(cmd.Context(), opts, func(res *app.LintResult, err error) {
					fmt.Fprintf(out, "--- %s\n", time.Now().Format("15:04:05"))
					if err != nil {
						fmt.Fprintf(out, "lint failed: %s\n", renderUserError(err, deps))
						return
					}
					printLintResult(out, res)
				})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			res, err := deps.Runner.Lint(cmd.Context(), opts)
			if err != nil {
				return err
			}
			printLintResult(out, res)
			if res.Problem != "" {
				return fmt.Errorf("target %s is not spliceable", res.Path)
			}
			return nil
		},
	}

	bindTargetFlags(cmd, deps, &opts.TargetOptions)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-lint whenever the target file changes")

	return cmd
}

func printLintResult(w io.Writer, res *app.LintResult) {
	fmt.Fprintf(w, "%s: %d entries\n", res.Path, res.Entries)
	if res.Problem != "" {
		fmt.Fprintf(w, "  problem: %s\n", res.Problem)
	} else {
		fmt.Fprintf(w, "  insert point at offset %d\n", res.InsertOffset)
	}
	if res.BareKeys > 0 {
		fmt.Fprintf(w, "  %d bare keys; run `splice fix-keys`\n", res.BareKeys)
	}
	if res.Clean() {
		fmt.Fprintf(w, "  ok\n")
	}
}
