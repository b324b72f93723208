package in

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"diagonator/internal/modules/analytics/dto"
	analyticsin "diagonator/internal/modules/analytics/port/in"
	"diagonator/internal/ui/theme"
)

const (
	barWidth   = 48
	trackWidth = 48
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Deactivations(ctx context.Context, from, to string) (dto.DeactivationsOutput, error) {
	return h.usecase.Deactivations(ctx, dto.RangeInput{From: from, To: to})
}

func (h CLIHandler) Requirements(ctx context.Context, from, to string) (dto.RequirementsOutput, error) {
	return h.usecase.Requirements(ctx, dto.RangeInput{From: from, To: to})
}

// RenderDeactivations draws one stacked bar per clock hour.
func RenderDeactivations(out dto.DeactivationsOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Deactivations %s .. %s", out.From, out.To)) + "\n")
	legend := make([]string, 0, len(out.Legend))
	for i, label := range out.Legend {
		legend = append(legend, lipgloss.NewStyle().Foreground(theme.SeriesColor(i)).Render("█ "+label))
	}
	sb.WriteString(strings.Join(legend, "  ") + "\n")

	peak := 0
	for _, bin := range out.Bins {
		peak = max(peak, bin.Total())
	}
	for _, bin := range out.Bins {
		var bar strings.Builder
		for i, n := range bin.Counts() {
			cells := scale(n, peak, barWidth)
			if cells == 0 {
				continue
			}
			bar.WriteString(lipgloss.NewStyle().Foreground(theme.SeriesColor(i)).Render(strings.Repeat("█", cells)))
		}
		count := ""
		if bin.Total() > 0 {
			count = " " + theme.Muted.Render(fmt.Sprint(bin.Total()))
		}
		fmt.Fprintf(&sb, "%02d │%s%s\n", bin.Hour, bar.String(), count)
	}
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("total %d", out.Total)))
	return theme.Pane.Render(sb.String())
}

// RenderRequirements plots each completion on a 24 hour track.
func RenderRequirements(out dto.RequirementsOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Requirements %s .. %s", out.From, out.To)) + "\n")
	if len(out.Series) == 0 {
		sb.WriteString(theme.Muted.Render("no completions logged"))
		return theme.Pane.Render(sb.String())
	}
	for i, series := range out.Series {
		style := lipgloss.NewStyle().Foreground(theme.SeriesColor(i))
		fmt.Fprintf(&sb, "%s  %s\n", style.Bold(true).Render(series.Name), theme.Hot.Render("median "+series.Median))
		for _, p := range series.Points {
			track := []rune(strings.Repeat("·", trackWidth))
			pos := int(p.Hours / 24 * float64(trackWidth))
			track[min(max(pos, 0), trackWidth-1)] = '●'
			fmt.Fprintf(&sb, "  %s %s\n", p.Date, style.Render(string(track)))
		}
	}
	return theme.Pane.Render(strings.TrimRight(sb.String(), "\n"))
}

// scale maps n out of peak onto width cells, keeping any non-zero count visible.
func scale(n, peak, width int) int {
	if n <= 0 || peak <= 0 {
		return 0
	}
	if peak <= width {
		return n
	}
	return max(1, n*width/peak)
}
