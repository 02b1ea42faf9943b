package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mediai/report-dashboard/pkg/export"
	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/mediai/report-dashboard/pkg/store/client"
	"github.com/rs/zerolog"
)

// ValidationError is a form problem caught before anything is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrMissingFile = &ValidationError{Message: "Please select a file"}
	ErrMissingDate = &ValidationError{Message: "Select report date"}
	ErrMissingType = &ValidationError{Message: "Select report type"}
)

// UploadForm is what the user picked on the upload page.
type UploadForm struct {
	FileName   string
	Content    io.Reader
	ReportDate string
	ReportType string
}

// Validate checks the form fields in the order they appear on the page.
func (f UploadForm) Validate() error {
	if f.Content == nil || f.FileName == "" {
		return ErrMissingFile
	}
	if f.ReportDate == "" {
		return ErrMissingDate
	}
	if f.ReportType == "" {
		return ErrMissingType
	}
	return nil
}

// Uploader sends a report file for analysis and keeps the latest result for
// export.
type Uploader struct {
	client   client.ReportsClient
	exporter *export.Exporter
	notifier Notifier

	mu     sync.RWMutex
	result *domain.Report
	user   string
}

func NewUploader(c client.ReportsClient, exporter *export.Exporter, notifier Notifier) *Uploader {
	return &Uploader{
		client:   c,
		exporter: exporter,
		notifier: notifier,
	}
}

// Submit validates the form, uploads it and stores the analysed report.
func (u *Uploader) Submit(ctx context.Context, form UploadForm) (domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	if err := form.Validate(); err != nil {
		u.notifier.Notify(ctx, Notification{Level: LevelError, Message: err.Error()})
		return domain.Report{}, err
	}
	if !domain.IsReportType(form.ReportType) {
		logger.Warn().Str("report_type", form.ReportType).Msg("uploading report with unknown type")
	}

	report, err := u.client.UploadReport(ctx, client.UploadRequest{
		FileName:   form.FileName,
		Content:    form.Content,
		ReportDate: form.ReportDate,
		ReportType: form.ReportType,
	})
	if err != nil {
		logger.Error().Err(err).Str("file", form.FileName).Msg("report analysis failed")
		u.notifier.Notify(ctx, Notification{Level: LevelError, Message: failureMessage(err)})
		return domain.Report{}, fmt.Errorf("failed to analyse report: %w", err)
	}

	user := u.signedInUser(ctx)

	u.mu.Lock()
	u.result = &report
	u.user = user
	u.mu.Unlock()

	logger.Info().Str("report_id", report.ID).Msg("report analysed")
	u.notifier.Notify(ctx, Notification{Level: LevelSuccess, Message: MsgAnalysisDone})
	return report, nil
}

// signedInUser names the user the detailed export is generated for. A failed
// lookup only costs the name in the PDF header.
func (u *Uploader) signedInUser(ctx context.Context) string {
	user, err := u.client.GetDashboardUser(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to load signed-in user")
		return ""
	}
	return user.Name
}

// User is the signed-in user recorded with the latest result.
func (u *Uploader) User() string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.user
}

func (u *Uploader) Result() (domain.Report, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.result == nil {
		return domain.Report{}, false
	}
	return *u.result, true
}

// Filename is the name of the detailed export, empty before an upload succeeded.
func (u *Uploader) Filename() string {
	report, ok := u.Result()
	if !ok {
		return ""
	}
	return export.Upload.Filename(report.ID)
}

// Export writes the detailed PDF of the latest result into w. Without a
// result it does nothing and returns false.
func (u *Uploader) Export(w io.Writer) (bool, error) {
	report, ok := u.Result()
	if !ok {
		return false, nil
	}
	if _, err := u.exporter.Write(w, report, export.Upload, u.User()); err != nil {
		return false, err
	}
	return true, nil
}

func failureMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return MsgAnalysisFailed
}
