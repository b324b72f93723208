package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"diagonator/internal/platform/logging"
)

func TestNewFallsBackToWarn(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := logging.New("loud", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("expected only the warning, got %q", out)
	}
}

func TestDiscardWritesNothing(t *testing.T) {
	t.Parallel()
	logger := logging.Discard()
	logger.Error("dropped")
	if logger.IsError() {
		t.Fatalf("expected a logger with every level disabled")
	}
}
