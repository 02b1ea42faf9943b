package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/mediai/report-dashboard/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPutter struct {
	mock.Mock
}

func (m *mockPutter) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func sampleReport() domain.Report {
	v := 13.5
	return domain.Report{
		ID:          "65f1c",
		PatientName: "Asha",
		Document: domain.ReportDocument{
			ReportType: "CBC",
			TestResults: []domain.TestResult{{
				TestName: "Hemoglobin", Value: "13.5", Unit: "g/dL",
				ReferenceRange: "13-17", Status: "normal", NumericValue: &v,
			}},
			MedicineSuggestions: []domain.MedicineSuggestion{{Name: "Ferrous sulfate", Formula: "FeSO4", Purpose: "Iron"}},
		},
	}
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
}

func TestVariant(t *testing.T) {
	assert.Equal(t, "MediAI_Report_65f1c.pdf", Detail.Filename("65f1c"))
	assert.Equal(t, "MediAI_Detailed_Report_65f1c.pdf", Upload.Filename("65f1c"))
	assert.Equal(t, "Suggested Medicines", Detail.MedicineTitle())
	assert.Equal(t, "Suggested Medicines (Regional)", Upload.MedicineTitle())
}

func TestExporter_RenderUsesVariantHeading(t *testing.T) {
	exp := NewExporter(render.DefaultLayout()).WithClock(fixedClock)

	detail := render.NewRecorder()
	exp.Render(detail, sampleReport(), Detail, "")
	_, ok := detail.FindText("Suggested Medicines")
	assert.True(t, ok)
	_, ok = detail.FindText("Suggested Medicines (Regional)")
	assert.False(t, ok)

	upload := render.NewRecorder()
	exp.Render(upload, sampleReport(), Upload, "Asha")
	_, ok = upload.FindText("Suggested Medicines (Regional)")
	assert.True(t, ok)
}

func TestExporter_MetaPerVariant(t *testing.T) {
	exp := NewExporter(render.DefaultLayout()).WithClock(fixedClock)

	reportDate := time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC)
	dated := sampleReport()
	dated.ReportDate = &reportDate

	tests := []struct {
		name    string
		report  domain.Report
		variant Variant
		user    string
		want    string
	}{
		{name: "detail uses report date and patient", report: dated, variant: Detail, user: "Ravi", want: "Generated for Asha | 11/2/2023"},
		{name: "detail without report date", report: sampleReport(), variant: Detail, want: "Generated for Asha | -"},
		{name: "upload uses today and signed-in user", report: dated, variant: Upload, user: "Ravi", want: "Generated for Ravi | 3/5/2024"},
		{name: "upload without user falls back to patient", report: dated, variant: Upload, want: "Generated for Asha | 3/5/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := render.NewRecorder()
			exp.Render(rec, tt.report, tt.variant, tt.user)
			_, ok := rec.FindText(tt.want)
			assert.True(t, ok, tt.want)
		})
	}
}

func TestExporter_Write(t *testing.T) {
	var buf bytes.Buffer
	summary, err := NewExporter(render.DefaultLayout()).Write(&buf, sampleReport(), Detail, "")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Pages)
	assert.True(t, summary.Has(render.SectionMedicines))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExporter_DeliverToDirectory(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(render.DefaultLayout())

	location, err := exp.Deliver(context.Background(), Directory{Path: filepath.Join(dir, "out")}, sampleReport(), Upload, "Asha")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "out", "MediAI_Detailed_Report_65f1c.pdf"), location)
	content, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestBucket_Deliver(t *testing.T) {
	putter := new(mockPutter)
	putter.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "reports" &&
			*in.Key == "exports/2024/MediAI_Report_65f1c.pdf" &&
			*in.ContentType == "application/pdf"
	})).Return(&s3.PutObjectOutput{}, nil)

	location, err := NewExporter(render.DefaultLayout()).Deliver(
		context.Background(),
		Bucket{Client: putter, Name: "reports", Prefix: "exports/2024/"},
		sampleReport(),
		Detail,
		"",
	)
	require.NoError(t, err)
	assert.Equal(t, "s3://reports/exports/2024/MediAI_Report_65f1c.pdf", location)
	putter.AssertExpectations(t)
}

func TestBucket_DeliverError(t *testing.T) {
	putter := new(mockPutter)
	putter.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := Bucket{Client: putter, Name: "reports"}.Deliver(context.Background(), "a.pdf", []byte("%PDF-"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://reports/a.pdf")
}

func TestParseS3(t *testing.T) {
	tests := []struct {
		target     string
		wantBucket string
		wantPrefix string
		wantErr    bool
	}{
		{target: "s3://reports", wantBucket: "reports"},
		{target: "s3://reports/", wantBucket: "reports"},
		{target: "s3://reports/a/b/", wantBucket: "reports", wantPrefix: "a/b"},
		{target: "s3:///a", wantErr: true},
		{target: "./out", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			bucket, prefix, err := ParseS3(tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantPrefix, prefix)
		})
	}
}

func TestNewDestination_Local(t *testing.T) {
	dest, err := NewDestination(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, Directory{Path: "."}, dest)
}

func TestExporter_DeliverWithoutID(t *testing.T) {
	_, err := NewExporter(render.DefaultLayout()).Deliver(context.Background(), Directory{Path: t.TempDir()}, domain.Report{}, Detail, "")
	assert.ErrorIs(t, err, ErrNoReport)
}
