package terminal

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mediai/report-dashboard/pkg/export"
	"github.com/mediai/report-dashboard/pkg/store/client"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportJSON = `{
	"_id": "65f1c",
	"userId": {"name": "Asha"},
	"reportDate": "2024-03-05",
	"reportType": "CBC / Blood",
	"structuredData": {
		"report_type": "Complete Blood Count",
		"test_results": [
			{"test_name": "Hemoglobin", "value": "13.5", "unit": "g/dL", "reference_range": "13-17", "status": "normal", "numeric_value": 13.5}
		],
		"medicineSuggestions": [{"name": "Ferrous sulfate", "formula": "FeSO4", "purpose": "Iron"}]
	}
}`

func backend(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/reports/65f1c":
			_, _ = io.WriteString(w, reportJSON)
		case r.URL.Path == "/api/reports/upload":
			_, _ = io.WriteString(w, `{"report": `+reportJSON+`}`)
		case r.URL.Path == "/api/users/dashboard":
			_, _ = io.WriteString(w, `{"user": {"name": "Asha"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"Report not found"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestCLI(t *testing.T, out io.Writer, baseURL string) *CLI {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	t.Setenv("MEDIAI_BACKEND_BASE_URL", baseURL)
	return NewCLI(Options{Output: out, Logger: &logger})
}

func run(t *testing.T, cli *CLI, args ...string) error {
	cli.SetArgs(args)
	return cli.ExecuteContext(context.Background())
}

func TestCLI_Show(t *testing.T) {
	srv := backend(t)
	var out bytes.Buffer

	require.NoError(t, run(t, newTestCLI(t, &out, srv.URL+"/api"), "show", "65f1c"))

	assert.Contains(t, out.String(), "Complete Blood Count")
	assert.Contains(t, out.String(), "| Hemoglobin ")
	assert.Contains(t, out.String(), "Reported on 3/5/2024")
}

func TestCLI_ShowNotFound(t *testing.T) {
	srv := backend(t)
	err := run(t, newTestCLI(t, io.Discard, srv.URL+"/api"), "show", "gone")

	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrNotFound)
}

func TestCLI_ExportToDirectory(t *testing.T) {
	srv := backend(t)
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, run(t, newTestCLI(t, &out, srv.URL+"/api"), "export", "65f1c", "--to", dir))

	path := filepath.Join(dir, "MediAI_Report_65f1c.pdf")
	assert.Equal(t, path, strings.TrimSpace(out.String()))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestCLI_ExportUsesDestinationFactory(t *testing.T) {
	srv := backend(t)
	logger := zerolog.New(zerolog.NewTestWriter(t))
	t.Setenv("MEDIAI_BACKEND_BASE_URL", srv.URL+"/api")

	var gotTarget, gotProfile string
	dir := t.TempDir()
	cli := NewCLI(Options{
		Output: io.Discard,
		Logger: &logger,
		NewDestination: func(_ context.Context, target, awsProfile string) (export.Destination, error) {
			gotTarget, gotProfile = target, awsProfile
			return export.Directory{Path: dir}, nil
		},
	})

	require.NoError(t, run(t, cli, "export", "65f1c", "--to", "s3://reports/exports", "--aws-profile", "lab", "--variant", "upload"))
	assert.Equal(t, "s3://reports/exports", gotTarget)
	assert.Equal(t, "lab", gotProfile)
	assert.FileExists(t, filepath.Join(dir, "MediAI_Detailed_Report_65f1c.pdf"))
}

func TestCLI_ExportRejectsUnknownVariant(t *testing.T) {
	err := run(t, newTestCLI(t, io.Discard, "http://127.0.0.1:1"), "export", "65f1c", "--variant", "summary")
	assert.Error(t, err)
}

func TestCLI_UploadValidation(t *testing.T) {
	srv := backend(t)
	file := filepath.Join(t.TempDir(), "cbc.pdf")
	require.NoError(t, os.WriteFile(file, []byte("%PDF-1.4"), 0o600))

	err := run(t, newTestCLI(t, io.Discard, srv.URL+"/api"), "upload", file, "--type", "Other")
	require.Error(t, err)
	assert.Equal(t, "Select report date", err.Error())

	err = run(t, newTestCLI(t, io.Discard, srv.URL+"/api"), "upload", filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Equal(t, "Please select a file", err.Error())
}

func TestCLI_UploadAndExport(t *testing.T) {
	srv := backend(t)
	file := filepath.Join(t.TempDir(), "cbc.pdf")
	require.NoError(t, os.WriteFile(file, []byte("%PDF-1.4"), 0o600))
	dir := t.TempDir()
	var out bytes.Buffer

	err := run(t, newTestCLI(t, &out, srv.URL+"/api"),
		"upload", file, "--date", "2024-03-05", "--type", "CBC / Blood", "--export", dir)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Regional Medicine Suggestions")
	assert.FileExists(t, filepath.Join(dir, "MediAI_Detailed_Report_65f1c.pdf"))
}

func TestCLI_RenderAndLayoutOffline(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(input, []byte(reportJSON), 0o600))
	cli := newTestCLI(t, io.Discard, "http://127.0.0.1:1")

	output := filepath.Join(dir, "out.pdf")
	require.NoError(t, run(t, cli, "render", input, "-o", output))
	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))

	var out bytes.Buffer
	cli = newTestCLI(t, &out, "http://127.0.0.1:1")
	require.NoError(t, run(t, cli, "layout", input, "--variant", "upload"))
	assert.Contains(t, out.String(), "Suggested Medicines (Regional)")
	assert.Contains(t, out.String(), "sections: header, info, test_results, medicines")
	assert.Contains(t, out.String(), "pages: 1")
}

func TestCLI_LayoutAcceptsBareStructuredData(t *testing.T) {
	input := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"report_type": "Urine Analysis"}`), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(t, newTestCLI(t, &out, "http://127.0.0.1:1"), "layout", input))
	assert.Contains(t, out.String(), "Urine Analysis")
	assert.Contains(t, out.String(), "sections: header, info")
}

func TestCLI_Profile(t *testing.T) {
	srv := backend(t)
	profiles := filepath.Join(t.TempDir(), ".mediaicfg")
	require.NoError(t, os.WriteFile(profiles, []byte("[lab]\nbase_url = "+srv.URL+"/api\ntoken = abc\n"), 0o600))

	var out bytes.Buffer
	cli := newTestCLI(t, &out, "http://127.0.0.1:1")
	require.NoError(t, run(t, cli, "--profiles-file", profiles, "--profile", "lab", "show", "65f1c"))
	assert.Contains(t, out.String(), "Complete Blood Count")

	err := run(t, newTestCLI(t, io.Discard, srv.URL+"/api"), "--profiles-file", profiles, "--profile", "missing", "show", "65f1c")
	assert.Error(t, err)
}
