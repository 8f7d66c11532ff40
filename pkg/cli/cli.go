package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/jlrickert/cli-toolkit/toolkit"
)

// Run executes the CLI against args and returns the process exit code. A
// canceled or deadline-exceeded context maps to 130, every other failure
// to 1.
func Run(ctx context.Context, rt *toolkit.Runtime, args []string) (int, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := &Deps{Runtime: rt}
	cmd := NewRootCmd(deps)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(args)
	stream := rt.Stream()
	cmd.SetIn(stream.In)
	cmd.SetOut(stream.Out)
	cmd.SetErr(stream.Err)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded) {
			return 130, err
		}
		return 1, errors.New(renderUserError(err, deps))
	}
	return 0, nil
}
