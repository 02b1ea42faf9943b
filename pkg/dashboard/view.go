// Package dashboard builds the on-screen report detail page.
package dashboard

import (
	"fmt"

	"github.com/mediai/report-dashboard/pkg/chart"
	"github.com/mediai/report-dashboard/pkg/models/domain"
)

const (
	PendingReview     = "Pending Review"
	MedicinesHeading  = "Regional Medicine Suggestions"
	Disclaimer        = "Disclaimer: This analysis is generated by AI and is not a substitute for professional medical advice. Always consult with a qualified healthcare provider."
	reportedOnLayout  = "1/2/2006"
	reportedOnPattern = "Reported on %s"
)

type Field struct {
	Label string
	Value string
}

type ResultRow struct {
	TestName       string
	Value          string
	Unit           string
	ReferenceRange string
	Status         string
	Tone           string
}

type Finding struct {
	Title        string
	Significance string
}

type Medicine struct {
	Name    string
	Formula string
	Purpose string
	Link    string
}

// View is everything the detail page shows, already resolved to strings.
type View struct {
	ID               string
	Title            string
	ReportedOn       string
	PatientDetails   []Field
	ReportDetails    []Field
	Bars             []chart.Bar
	Results          []ResultRow
	OverallStatus    string
	AbnormalFindings []Finding
	KeyFindings      []string
	Recommendations  []string
	Medicines        []Medicine
	Disclaimer       string
}

func (v View) HasChart() bool {
	return len(v.Bars) > 0
}

func (v View) HasMedicines() bool {
	return len(v.Medicines) > 0
}

func (v View) MedicinesHeading() string {
	return MedicinesHeading
}

// BadgeTone is the table badge colour of a status. Normal results are green.
func BadgeTone(status string) string {
	switch domain.ToneOf(status) {
	case domain.ToneHigh:
		return "red"
	case domain.ToneLow:
		return "orange"
	default:
		return "green"
	}
}

func NewView(report domain.Report) View {
	doc := report.Document

	v := View{
		ID:            report.ID,
		Title:         domain.Or(doc.ReportType, report.ReportType),
		ReportedOn:    fmt.Sprintf(reportedOnPattern, formatDate(report)),
		Bars:          chart.Bars(doc.TestResults),
		OverallStatus: PendingReview,
		Disclaimer:    Disclaimer,
	}

	var p domain.PatientInformation
	if doc.PatientInformation != nil {
		p = *doc.PatientInformation
	}
	v.PatientDetails = []Field{
		{Label: "Name", Value: dash(p.Name)},
		{Label: "Age / Sex", Value: dash(p.Age) + " / " + dash(p.Sex)},
		{Label: "Ref. By", Value: dash(p.ReferredBy)},
	}

	var d domain.ReportDetails
	if doc.ReportDetails != nil {
		d = *doc.ReportDetails
	}
	v.ReportDetails = []Field{
		{Label: "Lab Name", Value: dash(d.LabName)},
		{Label: "Collected", Value: dash(d.CollectedOn)},
		{Label: "Reported", Value: dash(d.ReportedOn)},
	}

	for _, r := range doc.TestResults {
		v.Results = append(v.Results, ResultRow{
			TestName:       r.TestName,
			Value:          r.Value,
			Unit:           r.Unit,
			ReferenceRange: r.ReferenceRange,
			Status:         r.Status,
			Tone:           BadgeTone(r.Status),
		})
	}

	if in := doc.Interpretation; in != nil {
		v.OverallStatus = domain.Or(in.OverallStatus, PendingReview)
		for _, f := range in.AbnormalFindings {
			v.AbnormalFindings = append(v.AbnormalFindings, Finding{
				Title:        fmt.Sprintf("%s (%s)", dash(f.Parameter), dash(f.Value)),
				Significance: f.ClinicalSignificance,
			})
		}
	}

	if pa := doc.PathologistAnalysis; pa != nil {
		v.KeyFindings = pa.KeyFindings
		v.Recommendations = pa.Recommendations
	}

	for _, m := range doc.MedicineSuggestions {
		v.Medicines = append(v.Medicines, Medicine{
			Name:    m.Name,
			Formula: m.Formula,
			Purpose: m.Purpose,
			Link:    m.Link,
		})
	}

	return v
}

func dash(s string) string {
	return domain.Or(s, domain.Placeholder)
}

func formatDate(report domain.Report) string {
	if report.ReportDate == nil {
		return domain.Placeholder
	}
	return report.ReportDate.Format(reportedOnLayout)
}
