package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mediai/report-dashboard/pkg/adapters"
	"github.com/mediai/report-dashboard/pkg/export"
	"github.com/mediai/report-dashboard/pkg/models/api"
	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/mediai/report-dashboard/pkg/runtime/terminal/reporter"
	"github.com/mediai/report-dashboard/pkg/services/config"
	"github.com/mediai/report-dashboard/pkg/store/client"
	"github.com/rs/zerolog"
)

type ClientFactory func(settings client.Settings) (client.ReportsClient, error)

type DestinationFactory func(ctx context.Context, target, awsProfile string) (export.Destination, error)

// Env is what every command shares: resolved settings, output and factories.
type Env struct {
	ConfigPath   string
	Profile      string
	ProfilesPath string

	Output         io.Writer
	Reporter       *reporter.Reporter
	Exporter       *export.Exporter
	NewClient      ClientFactory
	NewDestination DestinationFactory
}

// Config loads the YAML config and lays the selected profile over it.
func (e *Env) Config(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(e.ConfigPath)
	if err != nil {
		return nil, err
	}
	if e.Profile == "" {
		return cfg, nil
	}

	path := e.ProfilesPath
	if path == "" {
		path, err = config.DefaultProfilesPath()
		if err != nil {
			return nil, err
		}
	}
	registry, err := config.NewRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles from %s: %w", path, err)
	}
	profile, err := registry.GetProfile(ctx, e.Profile)
	if err != nil {
		return nil, err
	}
	profile.Apply(&cfg.Backend)

	zerolog.Ctx(ctx).Debug().Str("profile", e.Profile).Str("base_url", cfg.Backend.BaseURL).Msg("profile applied")
	return cfg, nil
}

func (e *Env) Client(ctx context.Context) (client.ReportsClient, *config.Config, error) {
	cfg, err := e.Config(ctx)
	if err != nil {
		return nil, nil, err
	}
	c, err := e.NewClient(client.Settings{
		BaseURL:    cfg.Backend.BaseURL,
		Token:      cfg.Backend.Token,
		CookieName: cfg.Backend.CookieName,
		Timeout:    cfg.Backend.Timeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return c, cfg, nil
}

// LoadReportFile reads a report saved as JSON. The file may hold either the
// backend report record or just its structured data.
func LoadReportFile(path string) (domain.Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Report{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var envelope api.Report
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return domain.Report{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(envelope.StructuredData) == 0 {
		envelope.StructuredData = raw
	}

	data, err := adapters.DecodeStructuredData(envelope.StructuredData)
	if err != nil {
		return domain.Report{}, fmt.Errorf("failed to parse structured data in %s: %w", path, err)
	}
	return adapters.MapApiReportToDomain(envelope, data), nil
}

func parseVariant(name string) (export.Variant, error) {
	switch name {
	case "", export.Detail.String():
		return export.Detail, nil
	case export.Upload.String():
		return export.Upload, nil
	}
	return 0, errors.New("variant must be \"detail\" or \"upload\"")
}
