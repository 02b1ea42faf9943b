// Package export turns a report into its downloadable PDF and delivers it.
package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/mediai/report-dashboard/pkg/render"
	"github.com/mediai/report-dashboard/pkg/render/pdf"
)

var ErrNoReport = errors.New("no report to export")

// Variant selects between the two call sites that produce a PDF.
type Variant int

const (
	// Detail is the export offered on the report detail view.
	Detail Variant = iota
	// Upload is the export offered right after an upload was analysed.
	Upload
)

func (v Variant) Filename(id string) string {
	if v == Upload {
		return fmt.Sprintf("MediAI_Detailed_Report_%s.pdf", id)
	}
	return fmt.Sprintf("MediAI_Report_%s.pdf", id)
}

func (v Variant) MedicineTitle() string {
	if v == Upload {
		return render.DefaultMedicineTitle + " (Regional)"
	}
	return render.DefaultMedicineTitle
}

func (v Variant) String() string {
	if v == Upload {
		return "upload"
	}
	return "detail"
}

// Exporter renders reports to PDF with a fixed layout.
type Exporter struct {
	assembler *render.Assembler
	now       func() time.Time
}

func NewExporter(layout render.Layout) *Exporter {
	return &Exporter{
		assembler: render.NewAssembler(layout),
		now:       time.Now,
	}
}

// WithClock replaces the clock used for the "generated on" date.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

// Meta is the header line for a variant. The detail export is addressed to
// the patient and dated with the report date. The upload export is addressed
// to the signed-in user and dated today; without a user it falls back to the
// patient.
func (e *Exporter) Meta(report domain.Report, variant Variant, user string) render.Meta {
	meta := render.Meta{MedicineTitle: variant.MedicineTitle()}
	if variant == Upload {
		meta.GeneratedFor = domain.Or(user, report.PatientName)
		meta.GeneratedOn = e.now()
		return meta
	}

	meta.GeneratedFor = report.PatientName
	if report.ReportDate != nil {
		meta.GeneratedOn = *report.ReportDate
	}
	return meta
}

// Render draws report onto sink without writing any bytes. user is the
// signed-in user and only matters for the Upload variant.
func (e *Exporter) Render(sink render.Sink, report domain.Report, variant Variant, user string) render.Summary {
	return e.assembler.Render(sink, report.Document, e.Meta(report, variant, user))
}

// Write renders report as a PDF into w.
func (e *Exporter) Write(w io.Writer, report domain.Report, variant Variant, user string) (render.Summary, error) {
	sink := pdf.NewSink(pdf.Options{
		Title:   "MediAI " + domain.Or(report.Document.ReportType, render.FallbackTitle),
		Author:  domain.Or(report.PatientName, render.FallbackPatient),
		Creator: "MediAI",
	})
	summary := e.Render(sink, report, variant, user)
	if err := sink.Output(w); err != nil {
		return summary, err
	}
	return summary, nil
}
