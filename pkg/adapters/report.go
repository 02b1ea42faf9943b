package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mediai/report-dashboard/pkg/models/api"
	"github.com/mediai/report-dashboard/pkg/models/domain"
)

var reportDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DecodeStructuredData decodes the structuredData payload of a report.
// A missing or null payload decodes to an empty document.
func DecodeStructuredData(raw json.RawMessage) (api.StructuredData, error) {
	var data api.StructuredData
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return api.StructuredData{}, fmt.Errorf("failed to decode structured data: %w", err)
	}
	return data, nil
}

func ParseReportDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

func MapApiReportToDomain(report api.Report, data api.StructuredData) domain.Report {
	var patient string
	if report.User != nil {
		patient = report.User.Name.String()
	}

	return domain.Report{
		ID:          report.ID,
		PatientName: patient,
		ReportDate:  ParseReportDate(report.ReportDate.String()),
		ReportType:  report.ReportType.String(),
		Document:    MapStructuredDataToDomain(data),
	}
}

func MapStructuredDataToDomain(data api.StructuredData) domain.ReportDocument {
	doc := domain.ReportDocument{
		ReportType: data.ReportType.String(),
	}

	if p := data.PatientInformation; p != nil {
		doc.PatientInformation = &domain.PatientInformation{
			Name:       p.Name.String(),
			Age:        p.Age.String(),
			Sex:        p.Sex.String(),
			ReferredBy: p.ReferredBy.String(),
		}
	}

	if r := data.ReportDetails; r != nil {
		doc.ReportDetails = &domain.ReportDetails{
			LabName:     r.LabName.String(),
			CollectedOn: r.CollectedOn.String(),
			ReportedOn:  r.ReportedOn.String(),
		}
	}

	for _, t := range data.TestResults {
		doc.TestResults = append(doc.TestResults, domain.TestResult{
			TestName:       t.TestName.String(),
			Value:          t.Value.String(),
			Unit:           t.Unit.String(),
			ReferenceRange: t.ReferenceRange.String(),
			Status:         t.Status.String(),
			NumericValue:   t.NumericValue.Ptr(),
		})
	}

	if s := data.InterpretationSummary; s != nil {
		summary := &domain.InterpretationSummary{OverallStatus: s.OverallStatus.String()}
		for _, f := range s.AbnormalFindings {
			summary.AbnormalFindings = append(summary.AbnormalFindings, domain.AbnormalFinding{
				Parameter:            f.Parameter.String(),
				Value:                f.Value.String(),
				ClinicalSignificance: f.ClinicalSignificance.String(),
			})
		}
		doc.Interpretation = summary
	}

	if a := data.DiagnosticPathologistAnalysis; a != nil {
		doc.PathologistAnalysis = &domain.PathologistAnalysis{
			KeyFindings:     textsToStrings(a.KeyFindings),
			Recommendations: textsToStrings(a.Recommendations),
		}
	}

	for _, m := range data.MedicineSuggestions {
		doc.MedicineSuggestions = append(doc.MedicineSuggestions, domain.MedicineSuggestion{
			Name:    m.Name.String(),
			Formula: m.Formula.String(),
			Purpose: m.Purpose.String(),
			Link:    m.Link.String(),
		})
	}

	return doc
}

func MapDomainReportToApi(report domain.Report) (api.Report, error) {
	data, err := json.Marshal(MapDomainDocumentToApi(report.Document))
	if err != nil {
		return api.Report{}, fmt.Errorf("failed to encode structured data: %w", err)
	}

	out := api.Report{
		ID:             report.ID,
		ReportType:     api.Text(report.ReportType),
		StructuredData: data,
	}
	if report.PatientName != "" {
		out.User = &api.ReportOwner{Name: api.Text(report.PatientName)}
	}
	if report.ReportDate != nil {
		out.ReportDate = api.Text(report.ReportDate.Format(time.RFC3339))
	}
	return out, nil
}

func MapDomainDocumentToApi(doc domain.ReportDocument) api.StructuredData {
	data := api.StructuredData{
		ReportType:          api.Text(doc.ReportType),
		TestResults:         []api.TestResult{},
		MedicineSuggestions: []api.MedicineSuggestion{},
	}

	if p := doc.PatientInformation; p != nil {
		data.PatientInformation = &api.PatientInformation{
			Name:       api.Text(p.Name),
			Age:        api.Text(p.Age),
			Sex:        api.Text(p.Sex),
			ReferredBy: api.Text(p.ReferredBy),
		}
	}

	if r := doc.ReportDetails; r != nil {
		data.ReportDetails = &api.ReportDetails{
			LabName:     api.Text(r.LabName),
			CollectedOn: api.Text(r.CollectedOn),
			ReportedOn:  api.Text(r.ReportedOn),
		}
	}

	for _, t := range doc.TestResults {
		result := api.TestResult{
			TestName:       api.Text(t.TestName),
			Value:          api.Text(t.Value),
			Unit:           api.Text(t.Unit),
			ReferenceRange: api.Text(t.ReferenceRange),
			Status:         api.Text(t.Status),
		}
		if t.NumericValue != nil {
			result.NumericValue = api.Number{Value: *t.NumericValue, Valid: true}
		}
		data.TestResults = append(data.TestResults, result)
	}

	if s := doc.Interpretation; s != nil {
		summary := &api.InterpretationSummary{
			OverallStatus:    api.Text(s.OverallStatus),
			AbnormalFindings: []api.AbnormalFinding{},
		}
		for _, f := range s.AbnormalFindings {
			summary.AbnormalFindings = append(summary.AbnormalFindings, api.AbnormalFinding{
				Parameter:            api.Text(f.Parameter),
				Value:                api.Text(f.Value),
				ClinicalSignificance: api.Text(f.ClinicalSignificance),
			})
		}
		data.InterpretationSummary = summary
	}

	if a := doc.PathologistAnalysis; a != nil {
		data.DiagnosticPathologistAnalysis = &api.PathologistAnalysis{
			KeyFindings:     stringsToTexts(a.KeyFindings),
			Recommendations: stringsToTexts(a.Recommendations),
		}
	}

	for _, m := range doc.MedicineSuggestions {
		data.MedicineSuggestions = append(data.MedicineSuggestions, api.MedicineSuggestion{
			Name:    api.Text(m.Name),
			Formula: api.Text(m.Formula),
			Purpose: api.Text(m.Purpose),
			Link:    api.Text(m.Link),
		})
	}

	return data
}

func MapApiUserToDomain(user *api.User) domain.User {
	if user == nil {
		return domain.User{}
	}
	return domain.User{
		Name:     user.Name.String(),
		Country:  user.Country.String(),
		Language: user.Language.String(),
	}
}

func MapDomainUserToApi(user domain.User) api.User {
	return api.User{
		Name:     api.Text(user.Name),
		Country:  api.Text(user.Country),
		Language: api.Text(user.Language),
	}
}

// Empty strings are dropped: a blank bullet carries no finding.
func textsToStrings(texts []api.Text) []string {
	var out []string
	for _, t := range texts {
		if t == "" {
			continue
		}
		out = append(out, t.String())
	}
	return out
}

func stringsToTexts(values []string) []api.Text {
	out := make([]api.Text, 0, len(values))
	for _, v := range values {
		out = append(out, api.Text(v))
	}
	return out
}
