package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	v := 13.5
	err := NewReporter(&buf).Handle(domain.Report{
		ID: "65f1c",
		Document: domain.ReportDocument{
			ReportType: "Complete Blood Count",
			TestResults: []domain.TestResult{{
				TestName: "Hemoglobin", Value: "13.5", Unit: "g/dL",
				ReferenceRange: "13-17", Status: "normal", NumericValue: &v,
			}},
			PathologistAnalysis: &domain.PathologistAnalysis{Recommendations: []string{"Repeat in 3 months"}},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Complete Blood Count")
	assert.Contains(t, out, "| Hemoglobin ")
	assert.Contains(t, out, "| 13-17 ")
	assert.Contains(t, out, "Overall Status: Pending Review")
	assert.Contains(t, out, "Recommendations:\n- Repeat in 3 months")
	assert.NotContains(t, out, "Key Findings:")
	assert.NotContains(t, out, "Regional Medicine Suggestions")
}

func TestReporter_RowsStayAligned(t *testing.T) {
	var buf bytes.Buffer
	err := NewReporter(&buf).Handle(domain.Report{Document: domain.ReportDocument{
		TestResults: []domain.TestResult{
			{TestName: "Mean Corpuscular Hemoglobin Concentration", Value: "33"},
			{TestName: "RBC", Value: "4.8"},
		},
	}})
	require.NoError(t, err)

	var widths []int
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "|") || strings.HasPrefix(line, "+") {
			widths = append(widths, len([]rune(line)))
		}
	}
	require.NotEmpty(t, widths)
	for _, w := range widths {
		assert.Equal(t, widths[0], w)
	}
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "ab...", clip("abcdefgh", 5))
	assert.Equal(t, "ab", clip("abcdefgh", 2))
}
