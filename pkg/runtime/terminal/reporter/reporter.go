package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/mediai/report-dashboard/pkg/dashboard"
	"github.com/mediai/report-dashboard/pkg/models/domain"
)

type TableConfig struct {
	NameWidth   int
	ValueWidth  int
	UnitWidth   int
	RangeWidth  int
	StatusWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:   28,
		ValueWidth:  10,
		UnitWidth:   10,
		RangeWidth:  16,
		StatusWidth: 10,
	}
}

// Reporter prints a report to the console as text with a results table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const reportTemplate = `
{{.Title}}
{{.ReportedOn}}

Patient Details:{{range .PatientDetails}} {{.Label}}: {{.Value}};{{end}}
Report Details:{{range .ReportDetails}} {{.Label}}: {{.Value}};{{end}}
{{if .Results}}
=== Test Results ===
{{separator}}
{{formatRow "Test Name" "Value" "Unit" "Ref. Range" "Status"}}
{{separator}}
{{range .Results}}{{formatRow .TestName .Value .Unit .ReferenceRange .Status}}
{{end}}{{separator}}
{{end}}
=== Interpretation ===
Overall Status: {{.OverallStatus}}
{{range .AbnormalFindings}}! {{.Title}}: {{.Significance}}
{{end}}{{if .KeyFindings}}
Key Findings:
{{range .KeyFindings}}- {{.}}
{{end}}{{end}}{{if .Recommendations}}
Recommendations:
{{range .Recommendations}}- {{.}}
{{end}}{{end}}{{if .HasMedicines}}
=== {{.MedicinesHeading}} ===
{{range .Medicines}}- {{.Name}} ({{.Formula}}): {{.Purpose}}{{if .Link}} <{{.Link}}>{{end}}
{{end}}{{end}}
{{.Disclaimer}}
`

func (c *Reporter) Handle(report domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, value, unit, refRange, status string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s | %-*s |",
				c.config.NameWidth, clip(name, c.config.NameWidth),
				c.config.ValueWidth, clip(value, c.config.ValueWidth),
				c.config.UnitWidth, clip(unit, c.config.UnitWidth),
				c.config.RangeWidth, clip(refRange, c.config.RangeWidth),
				c.config.StatusWidth, clip(status, c.config.StatusWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.RangeWidth+2),
				strings.Repeat("-", c.config.StatusWidth+2))
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, dashboard.NewView(report))
}

func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
