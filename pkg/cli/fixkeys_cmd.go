package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jlrickert/splice/pkg/app"
)

// NewFixKeysCmd constructs the `fix-keys` subcommand.
//
// Usage examples:
//
//	splice fix-keys
//	splice fix-keys --file pattern.ts --dry-run
func NewFixKeysCmd(deps *Deps) *cobra.Command {
	var opts app.FixKeysOptions

	cmd := &cobra.Command{
		Use:   "fix-keys",
		Short: "quote bare hyphenated entry keys in the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := deps.Runner.FixKeys(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if res.Fixed == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no bare keys in %s\n", res.Path)
				return nil
			}
			if opts.DryRun {
				fmt.Fprint(cmd.OutOrStdout(), res.Diff)
				fmt.Fprintf(cmd.OutOrStdout(), "would quote %d keys in %s\n", res.Fixed, res.Path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "quoted %d keys in %s\n", res.Fixed, res.Path)
			return nil
		},
	}

	bindTargetFlags(cmd, deps, &opts.TargetOptions)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "show the pending change without writing")

	return cmd
}
