package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mediai/report-dashboard/pkg/adapters"
	"github.com/mediai/report-dashboard/pkg/chart"
	"github.com/mediai/report-dashboard/pkg/dashboard"
	"github.com/mediai/report-dashboard/pkg/export"
	"github.com/mediai/report-dashboard/pkg/models/api"
	"github.com/mediai/report-dashboard/pkg/models/domain"
	reportsvc "github.com/mediai/report-dashboard/pkg/services/reports"
	"github.com/mediai/report-dashboard/pkg/store/client"
	"github.com/rs/zerolog"
)

const (
	DefaultMaxUploadBytes = 20 << 20
	formatPDF             = "pdf"
	pdfContentType        = "application/pdf"
)

type Handler struct {
	client         client.ReportsClient
	exporter       *export.Exporter
	maxUploadBytes int64
	sessionCookie  string
}

func NewHandler(c client.ReportsClient, exporter *export.Exporter, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		client:         c,
		exporter:       exporter,
		maxUploadBytes: maxUploadBytes,
		sessionCookie:  client.DefaultCookieName,
	}
}

// WithSessionCookie sets the name of the visitor cookie holding the backend
// session token.
func (h *Handler) WithSessionCookie(name string) *Handler {
	if name != "" {
		h.sessionCookie = name
	}
	return h
}

// sessionContext forwards the visitor's backend session to the client.
func (h *Handler) sessionContext(r *http.Request) context.Context {
	ctx := h.sessionContext(r)
	cookie, err := r.Cookie(h.sessionCookie)
	if err != nil || cookie.Value == "" {
		return ctx
	}
	return client.WithSessionToken(ctx, cookie.Value)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionContext(r)
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "id")

	report, err := h.client.GetReport(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response, err := adapters.MapDomainReportToApi(report)
	if err != nil {
		logger.Error().Err(err).Str("report_id", id).Msg("failed to map report")
		http.Error(w, "failed to map report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetReportPDF(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionContext(r)
	id := chi.URLParam(r, "id")

	viewer := reportsvc.NewViewer(h.client, h.exporter, reportsvc.LogNotifier{})
	if err := viewer.Load(ctx, id); err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if _, err := viewer.Export(&buf); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("report_id", id).Msg("failed to export report")
		http.Error(w, "failed to export report", http.StatusInternalServerError)
		return
	}
	writePDF(w, r, viewer.Filename(), buf.Bytes())
}

func (h *Handler) GetReportChart(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionContext(r)
	id := chi.URLParam(r, "id")

	report, err := h.client.GetReport(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	ok, err := chart.Render(&buf, domain.Or(report.Document.ReportType, report.ReportType), report.Document.TestResults)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("report_id", id).Msg("failed to render chart")
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	writeBody(w, r, buf.Bytes())
}

func (h *Handler) GetReportPage(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionContext(r)
	id := chi.URLParam(r, "id")

	report, err := h.client.GetReport(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("report_id", id).Msg(reportsvc.MsgFetchFailed)
		http.Error(w, "Report Not Found", statusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := dashboard.Render(&buf, report); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("report_id", id).Msg("failed to render dashboard")
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	writeBody(w, r, buf.Bytes())
}

// UploadReport accepts the multipart form of the upload page. With
// ?format=pdf it answers with the detailed PDF instead of JSON.
func (h *Handler) UploadReport(w http.ResponseWriter, r *http.Request) {
	ctx := h.sessionContext(r)
	logger := zerolog.Ctx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		logger.Warn().Err(err).Msg("failed to parse upload form")
		writeJSON(w, r, http.StatusBadRequest, api.ErrorResponse{Error: "invalid upload form"})
		return
	}

	form := reportsvc.UploadForm{
		ReportDate: r.FormValue("reportDate"),
		ReportType: r.FormValue("reportType"),
	}
	file, header, err := r.FormFile("file")
	if err == nil {
		defer func(f io.Closer) {
			if err := f.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close uploaded file")
			}
		}(file)
		form.FileName = header.Filename
		form.Content = file
	}

	notes := &reportsvc.Collector{}
	uploader := reportsvc.NewUploader(h.client, h.exporter, notes)
	report, err := uploader.Submit(ctx, form)
	if err != nil {
		status := statusFor(err)
		var validation *reportsvc.ValidationError
		if errors.As(err, &validation) {
			status = http.StatusBadRequest
		}
		message := reportsvc.MsgAnalysisFailed
		if last, ok := notes.Last(); ok {
			message = last.Message
		}
		writeJSON(w, r, status, api.ErrorResponse{Error: message})
		return
	}

	if r.URL.Query().Get("format") == formatPDF {
		var buf bytes.Buffer
		if _, err := uploader.Export(&buf); err != nil {
			logger.Error().Err(err).Str("report_id", report.ID).Msg("failed to export report")
			http.Error(w, "failed to export report", http.StatusInternalServerError)
			return
		}
		writePDF(w, r, uploader.Filename(), buf.Bytes())
		return
	}

	response, err := adapters.MapDomainReportToApi(report)
	if err != nil {
		logger.Error().Err(err).Str("report_id", report.ID).Msg("failed to map report")
		http.Error(w, "failed to map report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusCreated, api.UploadResponse{Report: response})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.client.GetDashboardUser(h.sessionContext(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapDomainUserToApi(user))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, client.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, client.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Warn().Err(err).Msg("request failed")

	message := http.StatusText(statusFor(err))
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = apiErr.Message
	}
	writeJSON(w, r, statusFor(err), api.ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writePDF(w http.ResponseWriter, r *http.Request, filename string, content []byte) {
	w.Header().Set("Content-Type", pdfContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeBody(w, r, content)
}

func writeBody(w http.ResponseWriter, r *http.Request, content []byte) {
	if _, err := w.Write(content); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}
