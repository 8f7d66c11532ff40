package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCmd constructs the `version` subcommand.
func NewVersionCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the splice version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "splice %s\n", Version)
			return err
		},
	}
}
