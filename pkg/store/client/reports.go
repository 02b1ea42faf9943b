package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/mediai/report-dashboard/pkg/adapters"
	"github.com/mediai/report-dashboard/pkg/models/api"
	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound     = errors.New("report not found")
	ErrUnauthorized = errors.New("not authorized")
)

// APIError is a non-2xx answer from the analysis backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("analysis backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("analysis backend returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	return nil
}

// ReportsClient talks to the report analysis backend.
type ReportsClient interface {
	GetReport(ctx context.Context, id string) (domain.Report, error)
	UploadReport(ctx context.Context, req UploadRequest) (domain.Report, error)
	GetDashboardUser(ctx context.Context) (domain.User, error)
}

// UploadRequest is a lab report file to analyse.
type UploadRequest struct {
	FileName   string
	Content    io.Reader
	ReportDate string
	ReportType string
}

// Settings configures the backend client. Token is the fallback session
// used when the request context carries none, as in the CLI.
type Settings struct {
	BaseURL    string
	Token      string
	CookieName string
	Timeout    time.Duration
	HTTPClient *http.Client
}

const (
	DefaultCookieName = "token"
	DefaultTimeout    = 2 * time.Minute
)

type httpClient struct {
	baseURL    *url.URL
	token      string
	cookieName string
	http       *http.Client
}

func NewReportsClient(settings Settings) (ReportsClient, error) {
	if settings.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	base, err := url.Parse(strings.TrimRight(settings.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}

	c := settings.HTTPClient
	if c == nil {
		timeout := settings.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c = &http.Client{Timeout: timeout}
	}

	cookieName := settings.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	return &httpClient{
		baseURL:    base,
		token:      settings.Token,
		cookieName: cookieName,
		http:       c,
	}, nil
}

func (c *httpClient) GetReport(ctx context.Context, id string) (domain.Report, error) {
	if id == "" {
		return domain.Report{}, ErrNotFound
	}

	var report api.Report
	if err := c.do(ctx, http.MethodGet, "/reports/"+url.PathEscape(id), nil, "", &report); err != nil {
		return domain.Report{}, err
	}
	return c.toDomain(ctx, report), nil
}

func (c *httpClient) UploadReport(ctx context.Context, req UploadRequest) (domain.Report, error) {
	body, contentType, err := encodeUpload(req)
	if err != nil {
		return domain.Report{}, err
	}

	var resp api.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/reports/upload", body, contentType, &resp); err != nil {
		return domain.Report{}, err
	}
	return c.toDomain(ctx, resp.Report), nil
}

func (c *httpClient) GetDashboardUser(ctx context.Context) (domain.User, error) {
	var resp api.DashboardResponse
	if err := c.do(ctx, http.MethodGet, "/users/dashboard", nil, "", &resp); err != nil {
		return domain.User{}, err
	}
	return adapters.MapApiUserToDomain(resp.User), nil
}

func (c *httpClient) toDomain(ctx context.Context, report api.Report) domain.Report {
	data, err := adapters.DecodeStructuredData(report.StructuredData)
	if err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("report_id", report.ID).
			Msg("structured data unreadable, rendering report without it")
	}
	return adapters.MapApiReportToDomain(report, data)
}

func (c *httpClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	logger := zerolog.Ctx(ctx)

	endpoint := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	token := c.token
	if session, ok := SessionToken(ctx); ok {
		token = session
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: token})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("analysis backend request failed")
		return fmt.Errorf("failed to call analysis backend: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read analysis backend response: %w", err)
	}

	logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("analysis backend responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if json.Unmarshal(payload, &errResp) == nil {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode analysis backend response: %w", err)
	}
	return nil
}

func encodeUpload(req UploadRequest) (io.Reader, string, error) {
	if req.Content == nil {
		return nil, "", fmt.Errorf("upload content is required")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(req.FileName)))
	header.Set("Content-Type", fileContentType(req.FileName))
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, req.Content); err != nil {
		return nil, "", fmt.Errorf("failed to copy report file: %w", err)
	}

	if err := w.WriteField("reportDate", req.ReportDate); err != nil {
		return nil, "", fmt.Errorf("failed to write report date: %w", err)
	}
	if err := w.WriteField("reportType", req.ReportType); err != nil {
		return nil, "", fmt.Errorf("failed to write report type: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

func fileContentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
