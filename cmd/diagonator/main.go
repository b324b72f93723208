package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"diagonator/internal/bootstrap"
	"diagonator/internal/platform/config"
	apperrors "diagonator/internal/platform/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, apperrors.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "diagonator",
		Short:         "Client for the diagonator session server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(root.PersistentFlags())
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v\nusage: %s", apperrors.ErrUsage, err, cmd.UseLine())
	})

	root.AddCommand(
		newStartSessionCmd(),
		newEndSessionCmd(),
		newGetInfoCmd(),
		newRemainingTimeCmd(),
		newAddRequirementCmd(),
		newCompleteRequirementCmd(),
		newDeactivateCmd(),
		newUnlockTimerCmd(),
		newLockTimerCmd(),
		newSyncRequirementsCmd(),
		newStatusCmd(),
		newAnalyticsCmd(),
	)
	return root
}

// loadApp resolves configuration and wires the modules. Commands that talk
// to the server pass needServer.
func loadApp(cmd *cobra.Command, needServer bool) (*bootstrap.App, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	if needServer {
		if err := cfg.RequireServer(); err != nil {
			return nil, err
		}
	}
	return bootstrap.New(cmd.Context(), cfg, cmd.ErrOrStderr())
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: %s takes %d argument(s), got %d\nusage: %s", apperrors.ErrUsage, cmd.Name(), n, len(args), cmd.UseLine())
		}
		return nil
	}
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return fmt.Errorf("%w: %s takes at least %d argument(s), got %d\nusage: %s", apperrors.ErrUsage, cmd.Name(), n, len(args), cmd.UseLine())
		}
		return nil
	}
}
