package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/mediai/report-dashboard/pkg/export"
	"github.com/mediai/report-dashboard/pkg/models/domain"
	"github.com/mediai/report-dashboard/pkg/services/reports"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type UploadCmd struct {
	env        *Env
	reportDate string
	reportType string
	exportTo   string
	awsProfile string
}

func NewUploadCmd(env *Env) *cobra.Command {
	uc := &UploadCmd{env: env}
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a lab report for analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  uc.run,
	}

	cmd.Flags().StringVar(&uc.reportDate, "date", "", "Report date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&uc.reportType, "type", "",
		fmt.Sprintf("Report type, one of: %s", strings.Join(domain.ReportTypes, ", ")))
	cmd.Flags().StringVar(&uc.exportTo, "export", "", "Also export the detailed PDF to a directory or s3:// location")
	cmd.Flags().StringVar(&uc.awsProfile, "aws-profile", "", "AWS shared config profile for s3:// targets")

	return cmd
}

func (uc *UploadCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	c, cfg, err := uc.env.Client(ctx)
	if err != nil {
		return err
	}

	form := reports.UploadForm{
		FileName:   args[0],
		ReportDate: uc.reportDate,
		ReportType: uc.reportType,
	}
	file, err := os.Open(args[0])
	if err == nil {
		defer func(f *os.File) {
			if err := f.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close report file")
			}
		}(file)
		form.Content = file
	} else {
		logger.Warn().Err(err).Str("file", args[0]).Msg("failed to open report file")
	}

	uploader := reports.NewUploader(c, uc.env.Exporter, reports.LogNotifier{})
	report, err := uploader.Submit(ctx, form)
	if err != nil {
		return err
	}

	if err := uc.env.Reporter.Handle(report); err != nil {
		return err
	}
	if uc.exportTo == "" {
		return nil
	}

	awsProfile := uc.awsProfile
	if awsProfile == "" {
		awsProfile = cfg.Export.AWSProfile
	}
	dest, err := uc.env.NewDestination(ctx, uc.exportTo, awsProfile)
	if err != nil {
		return err
	}
	location, err := uc.env.Exporter.Deliver(ctx, dest, report, export.Upload, uploader.User())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(uc.env.Output, location)
	return err
}
