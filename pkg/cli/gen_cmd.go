package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jlrickert/splice/pkg/app"
)

// NewGenCmd constructs the `gen` subcommand.
//
// Usage examples:
//
//	splice gen -n 30 -o batch.ts
//	splice gen -n 10 --seed 42
//	splice gen --categories categories.yaml | splice append
func NewGenCmd(deps *Deps) *cobra.Command {
	var opts app.GenerateOptions

	cmd := &cobra.Command{
		Use:     "gen",
		Short:   "generate a batch of preset entries",
		Aliases: []string{"g"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.Seed = time.Now().UnixNano()
			}

			res, err := deps.Runner.Generate(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if opts.Out == "" {
				fmt.Fprint(cmd.OutOrStdout(), res.Batch)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d presets to %s\n", len(res.Records), res.Path)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 30, "number of presets to generate")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "seed for reproducible batches (default: time-based)")
	cmd.Flags().StringVar(&opts.CategoriesPath, "categories", "", "YAML file overriding the built-in category set")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "batch file to write (default stdout)")

	return cmd
}
