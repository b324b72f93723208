package selector_test

import (
	"context"
	"testing"

	"diagonator/internal/platform/selector"
)

func TestCommandSelectorPipesOptionsAndTrimsOutput(t *testing.T) {
	t.Parallel()
	sel := selector.NewCommandSelector("tail", "-n")
	got, err := sel.Select(context.Background(), selector.Request{
		Options: []string{"walk", "stretch", "read"},
		Args:    []string{"1"},
	})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got != "read" {
		t.Fatalf("expected last option, got %q", got)
	}
}

func TestCommandSelectorEmptyInput(t *testing.T) {
	t.Parallel()
	got, err := selector.NewCommandSelector("cat").Select(context.Background(), selector.Request{})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty answer, got %q", got)
	}
}

func TestCommandSelectorNonZeroExitIsEmptyChoice(t *testing.T) {
	t.Parallel()
	got, err := selector.NewCommandSelector("false").Select(context.Background(), selector.Request{Options: []string{"a"}})
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty answer, got %q", got)
	}
}

func TestCommandSelectorMissingProgram(t *testing.T) {
	t.Parallel()
	if _, err := selector.NewCommandSelector("diagonator-no-such-menu").Select(context.Background(), selector.Request{}); err == nil {
		t.Fatalf("missing program must fail")
	}
}
