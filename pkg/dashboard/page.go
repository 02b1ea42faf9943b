package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/mediai/report-dashboard/pkg/chart"
	"github.com/mediai/report-dashboard/pkg/models/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html"))

type page struct {
	View
	Chart template.HTML
}

// Render writes the report detail page as HTML.
func Render(w io.Writer, report domain.Report) error {
	view := NewView(report)

	snippet, err := chart.Snippet(view.Title, report.Document.TestResults)
	if err != nil {
		return err
	}

	// chart.Render escapes every backend supplied string it embeds
	if err := pageTemplate.Execute(w, page{View: view, Chart: template.HTML(snippet)}); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}
