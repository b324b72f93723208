package in

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"diagonator/internal/modules/analytics/dto"
	"diagonator/internal/ui/theme"
)

const (
	chartWidth   = 760
	chartHeight  = 340
	marginLeft   = 48
	marginRight  = 170
	marginTop    = 24
	marginBottom = 36
)

type svgRect struct {
	X, Y, W, H float64
	Color      string
	Title      string
}

type svgText struct {
	X, Y  float64
	Label string
}

type svgLegend struct {
	X, Y  float64
	Color string
	Label string
}

type svgDot struct {
	X, Y  float64
	Color string
	Title string
}

type svgLine struct {
	X1, Y1, X2, Y2 float64
	Color          string
}

type svgChart struct {
	Width, Height int
	Background    string
	Axis          string
	Text          string
	Title         string
	PlotLeft      float64
	PlotRight     float64
	PlotBottom    float64
	Rects         []svgRect
	Dots          []svgDot
	Lines         []svgLine
	XLabels       []svgText
	YLabels       []svgText
	Legend        []svgLegend
}

var svgTemplate = template.Must(template.New("chart").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" font-family="sans-serif" font-size="11">
<rect width="{{.Width}}" height="{{.Height}}" fill="{{.Background}}"/>
<text x="{{.PlotLeft}}" y="16" fill="{{.Text}}" font-size="13">{{.Title}}</text>
<line x1="{{.PlotLeft}}" y1="{{.PlotBottom}}" x2="{{.PlotRight}}" y2="{{.PlotBottom}}" stroke="{{.Axis}}"/>
{{range .Rects}}<rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" fill="{{.Color}}"><title>{{.Title}}</title></rect>
{{end}}{{range .Lines}}<line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}" stroke="{{.Color}}" stroke-dasharray="4 3"/>
{{end}}{{range .Dots}}<circle cx="{{.X}}" cy="{{.Y}}" r="3.5" fill="{{.Color}}"><title>{{.Title}}</title></circle>
{{end}}{{range .XLabels}}<text x="{{.X}}" y="{{.Y}}" fill="{{$.Text}}" text-anchor="middle">{{.Label}}</text>
{{end}}{{range .YLabels}}<text x="{{.X}}" y="{{.Y}}" fill="{{$.Text}}" text-anchor="end">{{.Label}}</text>
{{end}}{{range .Legend}}<rect x="{{.X}}" y="{{.Y}}" width="10" height="10" fill="{{.Color}}"/><text x="{{.X}}" y="{{.Y}}" dx="16" dy="9" fill="{{$.Text}}">{{.Label}}</text>
{{end}}</svg>
`))

func newChart(title string) svgChart {
	return svgChart{
		Width:      chartWidth,
		Height:     chartHeight,
		Background: string(theme.Base),
		Axis:       string(theme.Surface1),
		Text:       string(theme.Text),
		Title:      title,
		PlotLeft:   marginLeft,
		PlotRight:  chartWidth - marginRight,
		PlotBottom: chartHeight - marginBottom,
	}
}

func (c svgChart) plotWidth() float64  { return c.PlotRight - c.PlotLeft }
func (c svgChart) plotHeight() float64 { return c.PlotBottom - marginTop }

func (c svgChart) legendAt(i int, color, label string) svgLegend {
	return svgLegend{X: c.PlotRight + 12, Y: marginTop + float64(i)*18, Color: color, Label: label}
}

func renderSVG(chart svgChart) ([]byte, error) {
	var buf bytes.Buffer
	if err := svgTemplate.Execute(&buf, chart); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return buf.Bytes(), nil
}

// DeactivationsSVG renders the stacked hourly histogram.
func DeactivationsSVG(out dto.DeactivationsOutput) ([]byte, error) {
	chart := newChart(fmt.Sprintf("Deactivations %s .. %s (%d)", out.From, out.To, out.Total))
	peak := 1
	for _, bin := range out.Bins {
		peak = max(peak, bin.Total())
	}
	slot := chart.plotWidth() / 24
	unit := chart.plotHeight() / float64(peak)
	for _, bin := range out.Bins {
		x := chart.PlotLeft + float64(bin.Hour)*slot
		y := chart.PlotBottom
		for i, n := range bin.Counts() {
			if n == 0 {
				continue
			}
			h := float64(n) * unit
			y -= h
			chart.Rects = append(chart.Rects, svgRect{
				X: x + 1, Y: y, W: slot - 2, H: h,
				Color: string(theme.SeriesColor(i)),
				Title: fmt.Sprintf("%02d:00 %s: %d", bin.Hour, out.Legend[i], n),
			})
		}
	}
	for hour := 0; hour <= 24; hour += 3 {
		chart.XLabels = append(chart.XLabels, svgText{X: chart.PlotLeft + float64(hour)*slot, Y: chart.PlotBottom + 16, Label: fmt.Sprint(hour)})
	}
	for _, v := range []int{0, peak / 2, peak} {
		chart.YLabels = append(chart.YLabels, svgText{X: chart.PlotLeft - 6, Y: chart.PlotBottom - float64(v)*unit + 4, Label: fmt.Sprint(v)})
	}
	for i, label := range out.Legend {
		chart.Legend = append(chart.Legend, chart.legendAt(i, string(theme.SeriesColor(i)), label))
	}
	return renderSVG(chart)
}

// RequirementsSVG plots completion time of day against date, one color per
// requirement, with a dashed median line.
func RequirementsSVG(out dto.RequirementsOutput) ([]byte, error) {
	chart := newChart(fmt.Sprintf("Requirements %s .. %s", out.From, out.To))
	dates := map[string]int{}
	var order []string
	for _, series := range out.Series {
		for _, p := range series.Points {
			if _, ok := dates[p.Date]; !ok {
				dates[p.Date] = 0
				order = append(order, p.Date)
			}
		}
	}
	sort.Strings(order)
	for i, d := range order {
		dates[d] = i
	}
	slot := chart.plotWidth() / float64(max(len(order), 1))
	yOf := func(hours float64) float64 {
		return chart.PlotBottom - hours/24*chart.plotHeight()
	}
	for i, series := range out.Series {
		color := string(theme.SeriesColor(i))
		for _, p := range series.Points {
			chart.Dots = append(chart.Dots, svgDot{
				X:     chart.PlotLeft + (float64(dates[p.Date])+0.5)*slot,
				Y:     yOf(p.Hours),
				Color: color,
				Title: fmt.Sprintf("%s %s", series.Name, p.Date),
			})
		}
		y := yOf(series.MedianHours)
		chart.Lines = append(chart.Lines, svgLine{X1: chart.PlotLeft, Y1: y, X2: chart.PlotRight, Y2: y, Color: color})
		chart.Legend = append(chart.Legend, chart.legendAt(i, color, series.Name+" "+series.Median))
	}
	step := max(1, len(order)/8)
	for i := 0; i < len(order); i += step {
		chart.XLabels = append(chart.XLabels, svgText{X: chart.PlotLeft + (float64(i)+0.5)*slot, Y: chart.PlotBottom + 16, Label: shortDate(order[i])})
	}
	for hour := 0; hour <= 24; hour += 6 {
		chart.YLabels = append(chart.YLabels, svgText{X: chart.PlotLeft - 6, Y: yOf(float64(hour)) + 4, Label: fmt.Sprintf("%02d:00", hour)})
	}
	return renderSVG(chart)
}

// shortDate drops the year from YYYY-MM-DD.
func shortDate(date string) string {
	if len(date) == len("2006-01-02") {
		return date[5:]
	}
	return date
}
