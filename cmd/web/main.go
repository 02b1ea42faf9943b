package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mediai/report-dashboard/pkg/export"
	"github.com/mediai/report-dashboard/pkg/render"
	"github.com/mediai/report-dashboard/pkg/server"
	"github.com/mediai/report-dashboard/pkg/services/config"
	"github.com/mediai/report-dashboard/pkg/store/client"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	profile      string
	profilesPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the MediAI report dashboard",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&profile, "profile", "", "Profile name in the profiles file")
	rootCmd.Flags().StringVar(&profilesPath, "profiles-file", "",
		"Path to the profiles file (default is $HOME/.mediaicfg)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	if err := godotenv.Load(); err != nil {
		logger.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if profile != "" {
		path := profilesPath
		if path == "" {
			path, err = config.DefaultProfilesPath()
			if err != nil {
				return err
			}
		}
		registry, err := config.NewRegistry(path)
		if err != nil {
			return fmt.Errorf("failed to create config registry: %w", err)
		}
		p, err := registry.GetProfile(ctx, profile)
		if err != nil {
			return err
		}
		p.Apply(&cfg.Backend)
		logger.Info().Msgf("Profile `%s` from `%s` successfully loaded.", profile, path)
	}

	// Visitors bring their own backend session cookie.
	if cfg.Backend.Token != "" {
		logger.Warn().Msg("backend token is ignored by the web server")
	}
	reports, err := client.NewReportsClient(client.Settings{
		BaseURL:    cfg.Backend.BaseURL,
		CookieName: cfg.Backend.CookieName,
		Timeout:    cfg.Backend.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	logger.Info().Str("backend", cfg.Backend.BaseURL).Msg("analysis backend configured")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxUploadBytes:  cfg.Server.MaxUploadBytes,
		SessionCookie:   cfg.Backend.CookieName,
		Dependencies: server.Dependencies{
			Reports:  reports,
			Exporter: export.NewExporter(render.DefaultLayout()),
			Logger:   logger,
		},
	})

	return api.Start()
}
