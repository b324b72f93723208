package logging

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

const defaultLevel = "warn"

// New builds the process logger. An unknown level falls back to warn.
func New(level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	parsed := hclog.LevelFromString(level)
	if parsed == hclog.NoLevel {
		parsed = hclog.LevelFromString(defaultLevel)
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "diagonator",
		Level:  parsed,
		Output: output,
	})
}

// Discard is used where no logger was injected.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
