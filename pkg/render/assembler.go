// Package render lays a structured lab report out onto paginated pages.
//
// The Assembler draws the report sections in a fixed order onto a Sink,
// tracking a vertical Cursor and breaking pages before a section starts when
// the cursor has passed that section's threshold. Tables paginate by row.
package render

import (
	"time"

	"github.com/mediai/report-dashboard/pkg/models/domain"
)

const (
	DefaultMedicineTitle = "Suggested Medicines"
	dateLayout           = "1/2/2006"
)

type SectionName string

const (
	SectionHeader         SectionName = "header"
	SectionInfo           SectionName = "info"
	SectionTestResults    SectionName = "test_results"
	SectionInterpretation SectionName = "interpretation"
	SectionPathologist    SectionName = "pathologist"
	SectionMedicines      SectionName = "medicines"
)

// Meta carries the parts of the header that do not come from the document.
type Meta struct {
	GeneratedFor  string
	GeneratedOn   time.Time
	MedicineTitle string
}

func (m Meta) date() string {
	if m.GeneratedOn.IsZero() {
		return domain.Placeholder
	}
	return m.GeneratedOn.Format(dateLayout)
}

// Summary describes what a render produced.
type Summary struct {
	Sections []SectionName
	Pages    int
	FinalY   float64
}

func (s Summary) Has(name SectionName) bool {
	for _, n := range s.Sections {
		if n == name {
			return true
		}
	}
	return false
}

type Assembler struct {
	layout Layout
}

func NewAssembler(layout Layout) *Assembler {
	return &Assembler{layout: layout}
}

func (a *Assembler) Layout() Layout {
	return a.layout
}

// Render draws doc onto sink: header, patient and report info, test results,
// interpretation, pathologist analysis, medicine suggestions.
func (a *Assembler) Render(sink Sink, doc domain.ReportDocument, meta Meta) Summary {
	if meta.MedicineTitle == "" {
		meta.MedicineTitle = DefaultMedicineTitle
	}

	r := &renderer{
		sink:   sink,
		cursor: NewCursor(a.layout.InfoY, a.layout.TopMargin, sink),
		layout: a.layout,
	}

	steps := []struct {
		name SectionName
		draw func() bool
	}{
		{SectionHeader, func() bool { r.header(doc.ReportType, meta); return true }},
		{SectionInfo, func() bool { r.info(doc.PatientInformation, doc.ReportDetails); return true }},
		{SectionTestResults, func() bool { return r.testResults(doc.TestResults) }},
		{SectionInterpretation, func() bool { return r.interpretation(doc.Interpretation) }},
		{SectionPathologist, func() bool { return r.pathologist(doc.PathologistAnalysis) }},
		{SectionMedicines, func() bool { return r.medicines(doc.MedicineSuggestions, meta.MedicineTitle) }},
	}

	var summary Summary
	for _, step := range steps {
		if step.draw() {
			summary.Sections = append(summary.Sections, step.name)
		}
	}
	summary.Pages = sink.PageCount()
	summary.FinalY = r.cursor.Position()
	return summary
}
