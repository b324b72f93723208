package selector

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"diagonator/internal/ui/components"
)

// TUISelector renders an in-terminal picker on the given output (stderr by
// default so stdout stays clean for command results).
type TUISelector struct {
	input  io.Reader
	output io.Writer
}

func NewTUI() *TUISelector {
	return &TUISelector{input: os.Stdin, output: os.Stderr}
}

func (s *TUISelector) Select(ctx context.Context, req Request) (string, error) {
	model := components.NewPicker(req.Prompt, req.Options)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(s.input),
		tea.WithOutput(s.output),
	)
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	picker, ok := final.(components.Picker)
	if !ok {
		return "", fmt.Errorf("unexpected picker model %T", final)
	}
	return picker.Choice(), nil
}
