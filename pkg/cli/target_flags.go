package cli

import (
	"github.com/spf13/cobra"

	"github.com/jlrickert/splice/pkg/app"
)

// bindTargetFlags attaches the shared target-selection flags. A target is
// either a splice.yaml alias or an explicit --file/--anchor pair.
func bindTargetFlags(cmd *cobra.Command, deps *Deps, opts *app.TargetOptions) {
	cmd.Flags().StringVarP(&opts.Alias, "target", "t", "", "target alias from splice.yaml (default: defaultTarget)")
	cmd.Flags().StringVar(&opts.File, "file", "", "explicit registry file (bypasses splice.yaml; requires --anchor)")
	cmd.Flags().StringVar(&opts.Anchor, "anchor", "", "anchor marker the batch is spliced before")
	cmd.Flags().StringVar(&opts.Open, "open", "", "registry opening declaration, enables the balance check")

	_ = cmd.RegisterFlagCompletionFunc("target", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if deps.Runner == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cfg, err := deps.Runner.Config()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		aliases := make([]string, 0, len(cfg.Targets))
		for alias := range cfg.Targets {
			aliases = append(aliases, alias)
		}
		return aliases, cobra.ShellCompDirectiveNoFileComp
	})
}
