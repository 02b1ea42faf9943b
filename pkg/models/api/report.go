package api

import (
	"bytes"
	"encoding/json"
)

// Report is the report record exchanged with the analysis backend.
type Report struct {
	ID             string          `json:"_id"`
	User           *ReportOwner    `json:"userId,omitempty"`
	ReportDate     Text            `json:"reportDate"`
	ReportType     Text            `json:"reportType"`
	StructuredData json.RawMessage `json:"structuredData,omitempty"`
}

// ReportOwner is the user reference of a report. The backend sends either
// the bare user id or the populated user document.
type ReportOwner struct {
	ID   string `json:"_id,omitempty"`
	Name Text   `json:"name"`
}

func (o *ReportOwner) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*o = ReportOwner{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] != '{' {
		var id Text
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		o.ID = id.String()
		return nil
	}

	type owner ReportOwner
	var populated owner
	if err := json.Unmarshal(data, &populated); err != nil {
		return err
	}
	*o = ReportOwner(populated)
	return nil
}

// UploadResponse wraps the report produced by an upload-and-analyse call.
type UploadResponse struct {
	Report Report `json:"report"`
}

type DashboardResponse struct {
	User *User `json:"user"`
}

type User struct {
	Name     Text `json:"name"`
	Country  Text `json:"country"`
	Language Text `json:"language"`
}

// ErrorResponse is the error body used by the backend and by this service.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StructuredData is the AI-extracted document inside a report.
type StructuredData struct {
	ReportType                    Text                   `json:"report_type"`
	PatientInformation            *PatientInformation    `json:"patient_information,omitempty"`
	ReportDetails                 *ReportDetails         `json:"report_details,omitempty"`
	TestResults                   []TestResult           `json:"test_results"`
	InterpretationSummary         *InterpretationSummary `json:"interpretation_summary,omitempty"`
	DiagnosticPathologistAnalysis *PathologistAnalysis   `json:"diagnostic_pathologist_analysis,omitempty"`
	MedicineSuggestions           []MedicineSuggestion   `json:"medicineSuggestions"`
}

type PatientInformation struct {
	Name       Text `json:"name"`
	Age        Text `json:"age"`
	Sex        Text `json:"sex"`
	ReferredBy Text `json:"referred_by"`
}

type ReportDetails struct {
	LabName     Text `json:"lab_name"`
	CollectedOn Text `json:"collected_on"`
	ReportedOn  Text `json:"reported_on"`
}

type TestResult struct {
	TestName       Text   `json:"test_name"`
	Value          Text   `json:"value"`
	Unit           Text   `json:"unit"`
	ReferenceRange Text   `json:"reference_range"`
	Status         Text   `json:"status"`
	NumericValue   Number `json:"numeric_value"`
}

type InterpretationSummary struct {
	OverallStatus    Text              `json:"overall_status"`
	AbnormalFindings []AbnormalFinding `json:"abnormal_findings"`
}

type AbnormalFinding struct {
	Parameter            Text `json:"parameter"`
	Value                Text `json:"value"`
	ClinicalSignificance Text `json:"clinical_significance"`
}

type PathologistAnalysis struct {
	KeyFindings     []Text `json:"key_findings"`
	Recommendations []Text `json:"recommendations"`
}

type MedicineSuggestion struct {
	Name    Text `json:"name"`
	Formula Text `json:"formula"`
	Purpose Text `json:"purpose"`
	Link    Text `json:"link,omitempty"`
}
