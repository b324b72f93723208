package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "diagonator/internal/platform/errors"
)

func newStartSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-session",
		Short: "Start today's session",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.SessionCLI.StartSession(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session started")
			return nil
		},
	}
}

func newEndSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end-session",
		Short: "End the running session",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.SessionCLI.EndSession(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session ended")
			return nil
		},
	}
}

func newGetInfoCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get-info",
		Short: "Show the session state, requirements and locked time ranges",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(output, outputText, outputJSON, outputYAML); err != nil {
				return err
			}
			app, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.GetInfo(cmd.Context())
			if err != nil {
				return err
			}
			return writeInfo(cmd.OutOrStdout(), out.Info, output, time.Now())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text|json|yaml")
	return cmd
}

func newRemainingTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remaining-time",
		Short: "Show the time until the next state change",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.RemainingTime(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), describeRemaining(out.Info.State, out.Remaining, out.Scheduled, time.Now()))
			return nil
		},
	}
}

func newAddRequirementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-requirement <name> <due>",
		Short: "Add a requirement due at H:MM today",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.SessionCLI.AddRequirement(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added requirement %q due %s\n", args[0], args[1])
			return nil
		},
	}
}

func newCompleteRequirementCmd() *cobra.Command {
	var sortByDue bool
	cmd := withPromptArgs(&cobra.Command{
		Use:   "complete-requirement [--sort-by-due] [prompt-args...]",
		Short: "Pick an incomplete requirement and mark it complete",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts, err := parsePromptArgs(cmd, args)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.CompleteRequirement(cmd.Context(), prompts, sortByDue)
			if err != nil {
				return err
			}
			if !out.Completed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no incomplete requirements")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed %q\n", out.Name)
			return nil
		},
	})
	cmd.Flags().BoolVar(&sortByDue, "sort-by-due", false, "list requirements by due time, undated last")
	return cmd
}

func newDeactivateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deactivate <duration-seconds> [prompt-args...]",
		Short: "Answer the confirmation challenge and deactivate the lock",
		Args:  minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: duration %q must be whole seconds", apperrors.ErrUsage, args[0])
			}
			app, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.SessionCLI.Deactivate(cmd.Context(), seconds, args[1:]); err != nil {
				return challengeMessage(err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deactivated for %s\n", time.Duration(seconds)*time.Second)
			return nil
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newUnlockTimerCmd() *cobra.Command {
	var confirm bool
	cmd := withPromptArgs(&cobra.Command{
		Use:   "unlock-timer [--confirm] [prompt-args...]",
		Short: "Unlock the break timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts, err := parsePromptArgs(cmd, args)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.SessionCLI.UnlockTimer(cmd.Context(), confirm, prompts); err != nil {
				return challengeMessage(err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "timer unlocked")
			return nil
		},
	})
	cmd.Flags().BoolVar(&confirm, "confirm", false, "require the confirmation challenge first")
	return cmd
}

func newLockTimerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock-timer",
		Short: "Lock the break timer",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.SessionCLI.LockTimer(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "timer locked")
			return nil
		},
	}
}

func newSyncRequirementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-requirements",
		Short: "Re-complete requirements already logged as done today",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.SyncRequirements(cmd.Context())
			if err != nil {
				return err
			}
			if len(out.Completed) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to sync")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed %d requirement(s): %s\n", len(out.Completed), strings.Join(out.Completed, ", "))
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	var watch bool
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print a one-line status suitable for status bars",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 {
				return fmt.Errorf("%w: interval must be positive", apperrors.ErrUsage)
			}
			app, err := loadApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			if !watch {
				out, err := app.SessionCLI.Status(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(w, out.Line)
				return nil
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				out, err := app.SessionCLI.Status(ctx)
				if err != nil {
					app.Logger.Warn("status unavailable", "error", err)
					_, _ = fmt.Fprintln(w, "Session status unavailable")
				} else {
					_, _ = fmt.Fprintln(w, out.Line)
				}
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep printing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "refresh interval with --watch")
	return cmd
}

// challengeMessage keeps the operator-facing wording of a wrong answer short.
func challengeMessage(err error) error {
	if errors.Is(err, apperrors.ErrChallengeFailed) {
		return fmt.Errorf("%w: command not sent", err)
	}
	return err
}
