package cli

import (
	"github.com/spf13/cobra"

	"github.com/jlrickert/splice/pkg/plugin"
)

// NewPluginCmd constructs the `plugin` subcommand: a single-shot JSON
// handler reading a request from stdin and writing the response to stdout,
// for driving splice from editor tooling.
//
// Usage example:
//
//	echo '{"command":"normalize","text":"  st-patricks: {"}' | splice plugin
func NewPluginCmd(deps *Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "handle one JSON plugin request on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			h := plugin.NewHandler(
				"splice", Version,
				cmd.InOrStdin(), cmd.OutOrStdout(),
				deps.Runtime.Logger,
			)
			return h.Run()
		},
	}
	return cmd
}
