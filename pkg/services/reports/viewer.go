package reports

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/mediai/report-dashboard/pkg/export"
	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/mediai/report-dashboard/pkg/store/client"
	"github.com/rs/zerolog"
)

type State string

const (
	StateLoading  State = "loading"
	StateLoaded   State = "loaded"
	StateNotFound State = "not_found"
)

// Viewer backs the report detail view. It fetches one report, once, and
// offers it for export.
type Viewer struct {
	client   client.ReportsClient
	exporter *export.Exporter
	notifier Notifier

	mu     sync.RWMutex
	state  State
	report *domain.Report
}

func NewViewer(c client.ReportsClient, exporter *export.Exporter, notifier Notifier) *Viewer {
	return &Viewer{
		client:   c,
		exporter: exporter,
		notifier: notifier,
		state:    StateLoading,
	}
}

// Load fetches the report. A failure is reported once through the notifier
// and leaves the viewer in StateNotFound; there is no retry.
func (v *Viewer) Load(ctx context.Context, id string) error {
	v.mu.Lock()
	v.state = StateLoading
	v.report = nil
	v.mu.Unlock()

	report, err := v.client.GetReport(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("report_id", id).Msg("failed to fetch report")
		v.notifier.Notify(ctx, Notification{Level: LevelError, Message: MsgFetchFailed})

		v.mu.Lock()
		v.state = StateNotFound
		v.mu.Unlock()
		return fmt.Errorf("failed to fetch report %s: %w", id, err)
	}

	v.mu.Lock()
	v.state = StateLoaded
	v.report = &report
	v.mu.Unlock()
	return nil
}

func (v *Viewer) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *Viewer) Report() (domain.Report, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.report == nil {
		return domain.Report{}, false
	}
	return *v.report, true
}

// Filename is the name of the detail export, empty before a report is loaded.
func (v *Viewer) Filename() string {
	report, ok := v.Report()
	if !ok {
		return ""
	}
	return export.Detail.Filename(report.ID)
}

// Export writes the detail PDF into w. Without a loaded report it does
// nothing and returns false.
func (v *Viewer) Export(w io.Writer) (bool, error) {
	report, ok := v.Report()
	if !ok {
		return false, nil
	}
	if _, err := v.exporter.Write(w, report, export.Detail, ""); err != nil {
		return false, err
	}
	return true, nil
}
