package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"diagonator/internal/ui/theme"
)

const maxVisible = 8

var (
	pickerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Foreground(theme.Text).
			Padding(0, 1)

	optionStyle   = lipgloss.NewStyle().Foreground(theme.Subtext0)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Green).Bold(true)
)

// Picker is a dmenu-like line selector: the operator types to filter the
// options and confirms with enter. Without options it is a plain text prompt.
type Picker struct {
	title    string
	input    textinput.Model
	options  []string
	matches  []string
	cursor   int
	choice   string
	canceled bool
}

func NewPicker(title string, options []string) Picker {
	ti := textinput.New()
	ti.Placeholder = "type to filter…"
	if len(options) == 0 {
		ti.Placeholder = "answer…"
	}
	ti.CharLimit = 256
	ti.Focus()
	p := Picker{title: title, input: ti, options: options}
	p.refilter()
	return p
}

// Choice is the confirmed line, empty when the picker was canceled.
func (p Picker) Choice() string {
	if p.canceled {
		return ""
	}
	return p.choice
}

func (p Picker) Init() tea.Cmd {
	return textinput.Blink
}

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			p.canceled = true
			return p, tea.Quit
		case "enter":
			p.choice = strings.TrimSpace(p.input.Value())
			if len(p.matches) > 0 {
				p.choice = p.matches[p.cursor]
			}
			return p, tea.Quit
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case "down", "ctrl+n":
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.refilter()
	return p, cmd
}

func (p Picker) View() string {
	var sb strings.Builder
	if p.title != "" {
		sb.WriteString(theme.Title.Render(p.title) + "\n")
	}
	sb.WriteString("> " + p.input.View() + "\n")
	for i, option := range p.matches {
		if i == maxVisible {
			sb.WriteString(theme.Muted.Render("  …") + "\n")
			break
		}
		if i == p.cursor {
			sb.WriteString(selectedStyle.Render("› "+option) + "\n")
			continue
		}
		sb.WriteString(optionStyle.Render("  "+option) + "\n")
	}
	return pickerStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func (p *Picker) refilter() {
	filter := strings.ToLower(strings.TrimSpace(p.input.Value()))
	matches := make([]string, 0, len(p.options))
	for _, option := range p.options {
		if filter == "" || strings.Contains(strings.ToLower(option), filter) {
			matches = append(matches, option)
		}
	}
	p.matches = matches
	if p.cursor >= len(p.matches) {
		p.cursor = 0
	}
}
