// Package chart builds the "visual trends" bar chart of a report's numeric
// test results.
package chart

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/mediai/report-dashboard/pkg/models/domain"
)

const (
	ColorHigh   = "#ef4444"
	ColorLow    = "#f97316"
	ColorNormal = "#3b82f6"

	maxTickLabel  = 10
	tickLabelKeep = 8
)

// Bar is one charted test result.
type Bar struct {
	TestName string
	Label    string
	Value    float64
	Status   string
	Color    string
}

// Bars returns one bar per result that carries a numeric value, in report order.
func Bars(results []domain.TestResult) []Bar {
	var bars []Bar
	for _, r := range results {
		if !r.Charted() {
			continue
		}
		bars = append(bars, Bar{
			TestName: r.TestName,
			Label:    TickLabel(r.TestName),
			Value:    *r.NumericValue,
			Status:   r.Status,
			Color:    ColorFor(r.Status),
		})
	}
	return bars
}

func ColorFor(status string) string {
	switch domain.ToneOf(status) {
	case domain.ToneHigh:
		return ColorHigh
	case domain.ToneLow:
		return ColorLow
	default:
		return ColorNormal
	}
}

// TickLabel shortens axis labels longer than ten characters.
func TickLabel(name string) string {
	r := []rune(name)
	if len(r) > maxTickLabel {
		return string(r[:tickLabelKeep]) + "..."
	}
	return name
}

// Render writes a standalone HTML page with the bar chart. It writes nothing
// and returns false when there is nothing to chart. Test names and the title
// come from the analysis backend and are HTML escaped before they reach the
// page, go-echarts embeds them verbatim.
func Render(w io.Writer, title string, results []domain.TestResult) (bool, error) {
	bars := Bars(results)
	if len(bars) == 0 {
		return false, nil
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: template.HTMLEscapeString(title),
			Width:     "100%",
			Height:    "250px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Visual Trends"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(false)}),
	)

	labels := make([]string, 0, len(bars))
	data := make([]opts.BarData, 0, len(bars))
	for _, b := range bars {
		labels = append(labels, template.HTMLEscapeString(b.Label))
		data = append(data, opts.BarData{
			Name:      template.HTMLEscapeString(b.TestName),
			Value:     b.Value,
			ItemStyle: &opts.ItemStyle{Color: b.Color},
		})
	}

	bar.SetXAxis(labels).AddSeries("numeric_value", data)

	if err := bar.Render(w); err != nil {
		return false, fmt.Errorf("failed to render chart: %w", err)
	}
	return true, nil
}

// Snippet renders the chart and returns it as a string, empty when there is
// nothing to chart.
func Snippet(title string, results []domain.TestResult) (string, error) {
	var buf bytes.Buffer
	ok, err := Render(&buf, title, results)
	if err != nil || !ok {
		return "", err
	}
	return buf.String(), nil
}
