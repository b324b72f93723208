// Package selector collects one line of operator input, either by running an
// external menu program such as dmenu or with the built-in terminal picker.
package selector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Request describes one prompt. Options may be empty, in which case the
// operator types free text. Args are passed through to external programs.
type Request struct {
	Prompt  string
	Options []string
	Args    []string
}

type Selector interface {
	Select(ctx context.Context, req Request) (string, error)
}

// CommandSelector pipes the options, one per line, into an external program
// and returns what it printed.
type CommandSelector struct {
	Name     string
	BaseArgs []string
}

func NewCommandSelector(name string, baseArgs ...string) *CommandSelector {
	return &CommandSelector{Name: name, BaseArgs: baseArgs}
}

func NewDmenu() *CommandSelector {
	return NewCommandSelector("dmenu")
}

func (s *CommandSelector) Select(ctx context.Context, req Request) (string, error) {
	args := append(append([]string{}, s.BaseArgs...), req.Args...)
	cmd := exec.CommandContext(ctx, s.Name, args...)
	cmd.Stdin = strings.NewReader(strings.Join(req.Options, "\n"))
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		// dmenu exits non-zero when the operator escapes; treat it as an empty choice.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("run %s: %w", s.Name, err)
		}
	}
	return strings.Trim(stdout.String(), "\n"), nil
}
