package reports

import (
	"bytes"
	"context"
	"testing"

	"github.com/mediai/report-dashboard/pkg/export"
	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/mediai/report-dashboard/pkg/render"
	"github.com/mediai/report-dashboard/pkg/store/client"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestViewer_LoadAndExport(t *testing.T) {
	ctx := testContext(t)
	c := new(mockClient)
	c.On("GetReport", mock.Anything, "65f1c").Return(domain.Report{
		ID: "65f1c", PatientName: "Asha",
		Document: domain.ReportDocument{ReportType: "CBC"},
	}, nil)

	notes := &Collector{}
	v := NewViewer(c, export.NewExporter(render.DefaultLayout()), notes)
	assert.Equal(t, StateLoading, v.State())
	assert.Empty(t, v.Filename())

	require.NoError(t, v.Load(ctx, "65f1c"))
	assert.Equal(t, StateLoaded, v.State())
	assert.Equal(t, "MediAI_Report_65f1c.pdf", v.Filename())
	assert.Empty(t, notes.Notifications)

	var buf bytes.Buffer
	ok, err := v.Export(&buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	c.AssertExpectations(t)
}

func TestViewer_LoadFailureNotifiesOnce(t *testing.T) {
	ctx := testContext(t)
	c := new(mockClient)
	c.On("GetReport", mock.Anything, "gone").
		Return(domain.Report{}, &client.APIError{StatusCode: 404, Message: "Report not found"}).Once()

	notes := &Collector{}
	v := NewViewer(c, export.NewExporter(render.DefaultLayout()), notes)

	err := v.Load(ctx, "gone")
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, StateNotFound, v.State())
	assert.Equal(t, []Notification{{Level: LevelError, Message: MsgFetchFailed}}, notes.Notifications)

	_, ok := v.Report()
	assert.False(t, ok)
	c.AssertNumberOfCalls(t, "GetReport", 1)
}

func TestViewer_ExportWithoutReportIsNoop(t *testing.T) {
	v := NewViewer(new(mockClient), export.NewExporter(render.DefaultLayout()), &Collector{})

	var buf bytes.Buffer
	ok, err := v.Export(&buf)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, buf.Len())
}
