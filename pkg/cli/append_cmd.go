package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jlrickert/splice/pkg/app"
)

// NewAppendCmd constructs the `append` subcommand.
//
// Usage examples:
//
//	splice append batch.ts
//	splice append batch.ts --target pattern
//	splice gen -n 20 | splice append --file pattern.ts --anchor 'export const PRESETS'
//	splice append batch.ts --dry-run
func NewAppendCmd(deps *Deps) *cobra.Command {
	var opts app.AppendOptions

	cmd := &cobra.Command{
		Use:     "append [BATCH_FILE]",
		Short:   "splice a pre-rendered batch into the registry target",
		Aliases: []string{"a"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Source = args[0]
			}
			stream := deps.Runtime.Stream()
			if opts.Source == "" && (stream.IsPiped || !stream.IsTTY) {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read batch from stdin: %w", err)
				}
				if strings.TrimSpace(string(raw)) != "" {
					opts.Batch = string(raw)
				}
			}

			res, err := deps.Runner.Append(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if opts.DryRun {
				fmt.Fprint(cmd.OutOrStdout(), res.Diff)
				fmt.Fprintf(cmd.OutOrStdout(), "would append %d entries to %s\n", res.Entries, res.Path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "appended %d entries to %s\n", res.Entries, res.Path)
			return nil
		},
	}

	bindTargetFlags(cmd, deps, &opts.TargetOptions)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "show the pending change without writing")

	return cmd
}
