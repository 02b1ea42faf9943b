package domain

import (
	"strings"
	"time"
)

// Placeholder is what every absent field renders as.
const Placeholder = "-"

// Report is a single analysed lab report as returned by the analysis backend.
type Report struct {
	ID          string
	PatientName string
	ReportDate  *time.Time
	ReportType  string // the type selected at upload time
	Document    ReportDocument
}

// ReportDocument is the AI-structured content of a lab report.
// Optional records are pointers; a nil pointer means the section is absent.
type ReportDocument struct {
	ReportType          string
	PatientInformation  *PatientInformation
	ReportDetails       *ReportDetails
	TestResults         []TestResult
	Interpretation      *InterpretationSummary
	PathologistAnalysis *PathologistAnalysis
	MedicineSuggestions []MedicineSuggestion
}

type PatientInformation struct {
	Name       string
	Age        string
	Sex        string
	ReferredBy string
}

type ReportDetails struct {
	LabName     string
	CollectedOn string
	ReportedOn  string
}

type TestResult struct {
	TestName       string
	Value          string
	Unit           string
	ReferenceRange string
	Status         string
	NumericValue   *float64
}

// Charted reports whether the result carries a numeric value.
func (t TestResult) Charted() bool {
	return t.NumericValue != nil
}

type InterpretationSummary struct {
	OverallStatus    string
	AbnormalFindings []AbnormalFinding
}

type AbnormalFinding struct {
	Parameter            string
	Value                string
	ClinicalSignificance string
}

type PathologistAnalysis struct {
	KeyFindings     []string
	Recommendations []string
}

type MedicineSuggestion struct {
	Name    string
	Formula string
	Purpose string
	Link    string
}

// StatusTone classifies a free-text result status.
type StatusTone string

const (
	ToneHigh   StatusTone = "high"
	ToneLow    StatusTone = "low"
	ToneNormal StatusTone = "normal"
)

// ToneOf matches "high" before "low", case-insensitively, anywhere in the status.
func ToneOf(status string) StatusTone {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "high"):
		return ToneHigh
	case strings.Contains(s, "low"):
		return ToneLow
	default:
		return ToneNormal
	}
}

// Or returns value, or fallback when value is blank.
func Or(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// ReportTypes lists the report types the backend accepts on upload.
var ReportTypes = []string{
	"CBC / Blood",
	"Urine Analysis",
	"Radiology",
	"Other",
}

func IsReportType(t string) bool {
	for _, rt := range ReportTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// User is the signed-in account the dashboard is configured for.
type User struct {
	Name     string
	Country  string
	Language string
}
