package adapters

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mediai/report-dashboard/pkg/models/api"
	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStructuredData_LooseTypes(t *testing.T) {
	raw := json.RawMessage(`{
		"report_type": "Complete Blood Count",
		"patient_information": {"name": "Asha", "age": 42, "sex": "F", "referred_by": null},
		"test_results": [
			{"test_name": "Hemoglobin", "value": 13.5, "unit": "g/dL", "reference_range": "13-17", "status": "normal", "numeric_value": 13.5},
			{"test_name": "Platelets", "value": "2.1 lakh", "unit": "", "reference_range": "1.5-4", "status": "Normal", "numeric_value": "2.1"},
			{"test_name": "Blood group", "value": "B+", "status": "-", "numeric_value": null}
		],
		"diagnostic_pathologist_analysis": {"key_findings": [], "recommendations": ["Repeat CBC", ""]},
		"medicineSuggestions": []
	}`)

	data, err := DecodeStructuredData(raw)
	require.NoError(t, err)

	doc := MapStructuredDataToDomain(data)
	assert.Equal(t, "Complete Blood Count", doc.ReportType)
	require.NotNil(t, doc.PatientInformation)
	assert.Equal(t, "42", doc.PatientInformation.Age)
	assert.Equal(t, "", doc.PatientInformation.ReferredBy)
	assert.Nil(t, doc.ReportDetails)
	assert.Nil(t, doc.Interpretation)

	require.Len(t, doc.TestResults, 3)
	assert.Equal(t, "13.5", doc.TestResults[0].Value)
	require.NotNil(t, doc.TestResults[0].NumericValue)
	assert.Equal(t, 13.5, *doc.TestResults[0].NumericValue)
	require.NotNil(t, doc.TestResults[1].NumericValue)
	assert.Equal(t, 2.1, *doc.TestResults[1].NumericValue)
	assert.False(t, doc.TestResults[2].Charted())

	require.NotNil(t, doc.PathologistAnalysis)
	assert.Empty(t, doc.PathologistAnalysis.KeyFindings)
	assert.Equal(t, []string{"Repeat CBC"}, doc.PathologistAnalysis.Recommendations)
	assert.Empty(t, doc.MedicineSuggestions)
}

func TestDecodeStructuredData_EmptyPayload(t *testing.T) {
	for _, raw := range []string{"", "null", "  "} {
		data, err := DecodeStructuredData(json.RawMessage(raw))
		require.NoError(t, err)
		assert.Equal(t, domain.ReportDocument{}, MapStructuredDataToDomain(data))
	}
}

func TestDecodeStructuredData_Malformed(t *testing.T) {
	_, err := DecodeStructuredData(json.RawMessage(`{"test_results": "oops"}`))
	assert.Error(t, err)
}

func TestMapApiReportToDomain(t *testing.T) {
	report := api.Report{
		ID:         "65f1",
		User:       &api.ReportOwner{Name: "Ravi"},
		ReportDate: "2024-03-05T00:00:00.000Z",
		ReportType: "CBC / Blood",
	}

	got := MapApiReportToDomain(report, api.StructuredData{})

	assert.Equal(t, "65f1", got.ID)
	assert.Equal(t, "Ravi", got.PatientName)
	assert.Equal(t, "CBC / Blood", got.ReportType)
	require.NotNil(t, got.ReportDate)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got.ReportDate.UTC())
}

func TestMapApiReportToDomain_OwnerReference(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		wantOwnerID string
		wantPatient string
	}{
		{name: "bare id", userID: `"65f1c0ffee"`, wantOwnerID: "65f1c0ffee"},
		{name: "populated user", userID: `{"_id": "65f1c0ffee", "name": "Asha"}`, wantOwnerID: "65f1c0ffee", wantPatient: "Asha"},
		{name: "null", userID: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var report api.Report
			raw := `{"_id": "r1", "userId": ` + tt.userID + `, "reportType": "CBC / Blood"}`
			require.NoError(t, json.Unmarshal([]byte(raw), &report))

			if tt.wantOwnerID != "" {
				require.NotNil(t, report.User)
				assert.Equal(t, tt.wantOwnerID, report.User.ID)
			}

			got := MapApiReportToDomain(report, api.StructuredData{})
			assert.Equal(t, "r1", got.ID)
			assert.Equal(t, tt.wantPatient, got.PatientName)
		})
	}
}

func TestParseReportDate(t *testing.T) {
	assert.Nil(t, ParseReportDate(""))
	assert.Nil(t, ParseReportDate("yesterday"))

	d := ParseReportDate("2024-11-02")
	require.NotNil(t, d)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.November, d.Month())
}

func TestMapDomainReportToApi_RoundTripKeepsNumericPresence(t *testing.T) {
	v := 13.5
	report := domain.Report{
		ID: "r1",
		Document: domain.ReportDocument{
			TestResults: []domain.TestResult{
				{TestName: "Hemoglobin", NumericValue: &v},
				{TestName: "Blood group"},
			},
		},
	}

	out, err := MapDomainReportToApi(report)
	require.NoError(t, err)
	assert.Nil(t, out.User)

	data, err := DecodeStructuredData(out.StructuredData)
	require.NoError(t, err)
	doc := MapStructuredDataToDomain(data)
	require.Len(t, doc.TestResults, 2)
	assert.True(t, doc.TestResults[0].Charted())
	assert.False(t, doc.TestResults[1].Charted())
}
