package components_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"diagonator/internal/ui/components"
)

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestPickerFiltersAndChoosesHighlighted(t *testing.T) {
	t.Parallel()
	var m tea.Model = components.NewPicker("requirement", []string{"walk", "stretch", "read a book"})
	m = typeText(m, "re")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter must quit the picker")
	}
	if got := m.(components.Picker).Choice(); got != "read a book" {
		t.Fatalf("expected second match, got %q", got)
	}
}

func TestPickerFreeTextWithoutOptions(t *testing.T) {
	t.Parallel()
	var m tea.Model = components.NewPicker("", nil)
	m = typeText(m, "21:30")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.(components.Picker).Choice(); got != "21:30" {
		t.Fatalf("expected typed answer, got %q", got)
	}
}

func TestPickerEscapeCancels(t *testing.T) {
	t.Parallel()
	var m tea.Model = components.NewPicker("", []string{"walk"})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.(components.Picker).Choice(); got != "" {
		t.Fatalf("canceled picker must return empty choice, got %q", got)
	}
}
