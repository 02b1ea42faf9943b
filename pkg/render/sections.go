package render

import (
	"fmt"

	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/mediai/report-dashboard/pkg/render/text"
)

const (
	FallbackTitle   = "Medical Report Analysis"
	FallbackPatient = "Patient"

	bullet = "•"
)

var (
	resultColumns   = []string{"Test Name", "Value", "Unit", "Ref. Range", "Status"}
	medicineColumns = []string{"Medicine", "Formula", "Purpose"}
)

// renderer draws the individual report sections. Each section method checks
// its own data and draws nothing, consuming no space, when it is absent.
type renderer struct {
	sink   Sink
	cursor *Cursor
	layout Layout
}

func (r *renderer) heading(title string) {
	r.sink.SetFont(FontNormal, r.layout.HeadingFontSize)
	r.sink.SetTextColor(ColorBrand)
	r.sink.Text(r.layout.MarginLeft, r.cursor.Position(), AlignLeft, title)
}

func (r *renderer) header(reportType string, meta Meta) {
	l := r.layout

	r.sink.SetFont(FontNormal, l.TitleFontSize)
	r.sink.SetTextColor(ColorBrand)
	r.sink.Text(l.CenterX, l.TitleY, AlignCenter, domain.Or(reportType, FallbackTitle))

	r.sink.SetFont(FontNormal, l.SubtitleFontSize)
	r.sink.SetTextColor(ColorMuted)
	subtitle := fmt.Sprintf("Generated for %s | %s", domain.Or(meta.GeneratedFor, FallbackPatient), meta.date())
	r.sink.Text(l.CenterX, l.SubtitleY, AlignCenter, subtitle)

	r.sink.SetDrawColor(ColorRule)
	r.sink.Line(l.MarginLeft, l.RuleY, l.MarginRight, l.RuleY)
}

func (r *renderer) info(patient *domain.PatientInformation, details *domain.ReportDetails) {
	l := r.layout
	y := r.cursor.Position()

	var p domain.PatientInformation
	if patient != nil {
		p = *patient
	}
	var d domain.ReportDetails
	if details != nil {
		d = *details
	}
	v := func(s string) string { return domain.Or(s, domain.Placeholder) }

	r.sink.SetFont(FontNormal, l.HeadingFontSize)
	r.sink.SetTextColor(ColorInk)
	r.sink.Text(l.MarginLeft, y, AlignLeft, "Patient Details")
	r.sink.Text(l.ColumnX, y, AlignLeft, "Report Details")

	r.sink.SetFont(FontNormal, l.InfoFontSize)
	r.sink.SetTextColor(ColorLabel)

	left := []string{
		"Name: " + v(p.Name),
		fmt.Sprintf("Age/Sex: %s / %s", v(p.Age), v(p.Sex)),
		"Ref By: " + v(p.ReferredBy),
	}
	right := []string{
		"Lab: " + v(d.LabName),
		"Collected: " + v(d.CollectedOn),
		"Reported: " + v(d.ReportedOn),
	}
	for i, gap := range l.InfoLineGaps {
		r.sink.Text(l.MarginLeft, y+gap, AlignLeft, left[i])
		r.sink.Text(l.ColumnX, y+gap, AlignLeft, right[i])
	}

	r.cursor.Advance(l.InfoBandDepth)
}

func (r *renderer) testResults(results []domain.TestResult) bool {
	if len(results) == 0 {
		return false
	}

	r.heading("Test Results")

	body := make([][]string, 0, len(results))
	for _, t := range results {
		body = append(body, []string{t.TestName, t.Value, t.Unit, t.ReferenceRange, t.Status})
	}

	end := DrawTable(r.sink, r.layout, Table{
		StartY:   r.cursor.Position() + r.layout.TableGap,
		Head:     resultColumns,
		Body:     body,
		Theme:    ThemeStriped,
		HeadFill: ColorResultHead,
		FontSize: r.layout.TableFontSize,
	})
	r.cursor.MoveTo(end + r.layout.TableTrailing)
	return true
}

func (r *renderer) interpretation(summary *domain.InterpretationSummary) bool {
	if summary == nil {
		return false
	}
	l := r.layout

	r.cursor.EnsureRoom(l.InterpretationThreshold)
	r.heading("Interpretation & Analysis")
	r.cursor.Advance(l.HeadingGap)

	r.sink.SetFont(FontNormal, l.StatusFontSize)
	r.sink.SetTextColor(ColorInk)
	r.sink.Text(l.MarginLeft, r.cursor.Position(), AlignLeft,
		"Overall Status: "+domain.Or(summary.OverallStatus, domain.Placeholder))
	r.cursor.Advance(l.StatusGap)

	if len(summary.AbnormalFindings) == 0 {
		return true
	}

	r.sink.SetFont(FontNormal, l.BodyFontSize)
	r.sink.SetTextColor(ColorAlert)
	r.sink.Text(l.MarginLeft, r.cursor.Position(), AlignLeft, "Abnormal Findings:")
	r.cursor.Advance(l.FindingsLabelGap)

	for _, f := range summary.AbnormalFindings {
		entry := fmt.Sprintf("%s %s: %s", bullet,
			domain.Or(f.Parameter, domain.Placeholder),
			domain.Or(f.ClinicalSignificance, domain.Placeholder))
		lines := text.Wrap(entry, l.FindingWidth, r.sink)
		r.sink.Text(l.FindingIndent, r.cursor.Position(), AlignLeft, lines...)
		r.cursor.Advance(float64(len(lines)) * l.FindingLineHeight)
	}
	r.cursor.Advance(l.FindingsTrailing)
	return true
}

func (r *renderer) pathologist(analysis *domain.PathologistAnalysis) bool {
	if analysis == nil {
		return false
	}
	l := r.layout

	r.cursor.EnsureRoom(l.PathologistThreshold)
	r.heading("Pathologist Analysis")
	r.cursor.Advance(l.HeadingGap)

	r.sink.SetFont(FontNormal, l.BodyFontSize)
	r.sink.SetTextColor(ColorInk)

	r.bulletList("Key Findings:", analysis.KeyFindings)
	r.bulletList("Recommendations:", analysis.Recommendations)
	return true
}

func (r *renderer) bulletList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	l := r.layout

	r.sink.SetFont(FontBold, l.BodyFontSize)
	r.sink.Text(l.MarginLeft, r.cursor.Position(), AlignLeft, title)
	r.sink.SetFont(FontNormal, l.BodyFontSize)
	r.cursor.Advance(l.SubsectionTitleGap)

	for _, item := range items {
		lines := text.Wrap(bullet+" "+item, l.BulletWidth, r.sink)
		r.sink.Text(l.BulletIndent, r.cursor.Position(), AlignLeft, lines...)
		r.cursor.Advance(float64(len(lines))*l.BulletLineHeight + l.BulletGap)
	}
	r.cursor.Advance(l.SubsectionTrailing)
}

func (r *renderer) medicines(suggestions []domain.MedicineSuggestion, title string) bool {
	if len(suggestions) == 0 {
		return false
	}
	l := r.layout

	r.cursor.EnsureRoom(l.MedicineThreshold)
	r.heading(title)

	body := make([][]string, 0, len(suggestions))
	for _, m := range suggestions {
		body = append(body, []string{m.Name, m.Formula, m.Purpose})
	}

	end := DrawTable(r.sink, l, Table{
		StartY:   r.cursor.Position() + l.TableGap,
		Head:     medicineColumns,
		Body:     body,
		Theme:    ThemeGrid,
		HeadFill: ColorMedicine,
		FontSize: l.TableFontSize,
	})
	r.cursor.MoveTo(end)
	return true
}
