package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	apperrors "diagonator/internal/platform/errors"
)

// withPromptArgs lets a command forward its trailing arguments to the menu
// program. Cobra flag parsing is off for it; parsePromptArgs parses the
// leading flags the command knows and returns the rest untouched.
func withPromptArgs(cmd *cobra.Command) *cobra.Command {
	cmd.DisableFlagParsing = true
	return cmd
}

// parsePromptArgs consumes known flags up to the first argument that is not
// one of them, or up to "--". Everything after that belongs to the menu
// program, dash-prefixed or not.
func parsePromptArgs(cmd *cobra.Command, args []string) ([]string, error) {
	flags := cmd.Flags()
	flags.AddFlagSet(cmd.InheritedFlags())

	var known []string
	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		flag := lookupFlag(flags, arg)
		if flag == nil {
			break
		}
		known = append(known, arg)
		if flag.NoOptDefVal == "" && !strings.Contains(arg, "=") {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%w: flag needs an argument: %s\nusage: %s", apperrors.ErrUsage, arg, cmd.UseLine())
			}
			i++
			known = append(known, args[i])
		}
	}
	if err := flags.Parse(known); err != nil {
		return nil, fmt.Errorf("%w: %v\nusage: %s", apperrors.ErrUsage, err, cmd.UseLine())
	}
	if help, err := flags.GetBool("help"); err == nil && help {
		return nil, pflag.ErrHelp
	}
	return args[i:], nil
}

func lookupFlag(flags *pflag.FlagSet, arg string) *pflag.Flag {
	switch {
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		name, _, _ := strings.Cut(arg[2:], "=")
		return flags.Lookup(name)
	case len(arg) == 2 && arg[0] == '-' && arg[1] != '-':
		return flags.ShorthandLookup(arg[1:])
	default:
		return nil
	}
}
