package cli

// NewRootCmd builds the root cobra command, wires persistent flags, and
// installs the subcommands. PersistentPreRunE resolves the project root from
// the runtime's working directory and constructs the app.Runner every
// subcommand shares; tests inject their own runtime through Deps.
import (
	"fmt"
	"os"

	"github.com/jlrickert/cli-toolkit/mylog"
	"github.com/jlrickert/cli-toolkit/toolkit"
	"github.com/spf13/cobra"

	"github.com/jlrickert/splice/pkg/app"
)

// Version may be overridden at build-time with
// -ldflags "-X github.com/jlrickert/splice/pkg/cli.Version=v1.2.3"
var Version = "dev"

type shutdownKey struct{}

// Deps carries everything the command tree needs at execution time. The
// persistent flags write straight into it so subcommands can read the
// resolved values.
type Deps struct {
	Root     string
	Shutdown func()
	Runtime  *toolkit.Runtime

	ConfigPath string
	LogFile    string
	LogLevel   string
	LogJSON    bool

	Runner *app.Runner
}

func NewRootCmd(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = &Deps{}
	}
	if deps.Shutdown == nil {
		deps.Shutdown = func() {}
	}

	cmd := &cobra.Command{
		Use:   "splice",
		Short: "append generated preset batches into structured registry files",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Respect an existing context (tests set it before Execute).
			ctx := cmd.Context()
			rt := deps.Runtime
			if rt == nil {
				return fmt.Errorf("runtime is required")
			}

			wd, err := rt.Env.Getwd()
			if err != nil {
				return err
			}
			runner, err := app.NewRunner(rt, wd)
			if err != nil {
				return err
			}
			runner.ConfigPath = deps.ConfigPath
			deps.Runner = runner
			deps.Root = wd

			if deps.LogFile != "" || deps.LogJSON || deps.LogLevel != "" {
				// create a logger out-> stderr or file
				var out = os.Stderr
				var f *os.File
				if deps.LogFile != "" {
					var err error
					f, err = os.OpenFile(deps.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
					if err != nil {
						return err
					}
					out = f
				}
				lg := mylog.NewLogger(mylog.LoggerConfig{
					Out:     out,
					Level:   mylog.ParseLevel(deps.LogLevel),
					JSON:    deps.LogJSON,
					Version: Version,
				})
				deps.Runtime.Logger = lg
			}

			ctx = mylog.WithLogger(ctx, deps.Runtime.Logger)
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			// invoke shutdown if present
			if v := cmd.Context().Value(shutdownKey{}); v != nil {
				if sd, ok := v.(func()); ok && sd != nil {
					sd()
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&deps.LogFile, "log-file", "", "write logs to file (default stderr)")
	cmd.PersistentFlags().StringVar(&deps.LogLevel, "log-level", "info", "minimum log level")
	cmd.PersistentFlags().BoolVar(&deps.LogJSON, "log-json", false, "output logs as JSON")
	cmd.PersistentFlags().StringVarP(&deps.ConfigPath, "config", "c", "", "path to config file")

	cmd.AddCommand(
		NewAppendCmd(deps),
		NewFixKeysCmd(deps),
		NewGenCmd(deps),
		NewLintCmd(deps),
		NewPluginCmd(deps),
		NewVersionCmd(deps),
	)

	return cmd
}
