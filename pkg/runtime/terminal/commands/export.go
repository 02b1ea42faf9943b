package commands

import (
	"fmt"

	"github.com/mediai/report-dashboard/pkg/export"
	"github.com/mediai/report-dashboard/pkg/services/reports"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	env        *Env
	target     string
	variant    string
	awsProfile string
}

func NewExportCmd(env *Env) *cobra.Command {
	ec := &ExportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "export <report-id>",
		Short: "Export a report as PDF to a directory or an s3:// location",
		Args:  cobra.ExactArgs(1),
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.target, "to", "", "Output directory or s3://bucket/prefix (defaults to export.destination)")
	cmd.Flags().StringVar(&ec.variant, "variant", "detail", "PDF variant: detail or upload")
	cmd.Flags().StringVar(&ec.awsProfile, "aws-profile", "", "AWS shared config profile for s3:// targets")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	variant, err := parseVariant(ec.variant)
	if err != nil {
		return err
	}

	c, cfg, err := ec.env.Client(ctx)
	if err != nil {
		return err
	}

	viewer := reports.NewViewer(c, ec.env.Exporter, reports.LogNotifier{})
	if err := viewer.Load(ctx, args[0]); err != nil {
		return err
	}
	report, _ := viewer.Report()

	target := ec.target
	if target == "" {
		target = cfg.Export.Destination
	}
	awsProfile := ec.awsProfile
	if awsProfile == "" {
		awsProfile = cfg.Export.AWSProfile
	}

	dest, err := ec.env.NewDestination(ctx, target, awsProfile)
	if err != nil {
		return err
	}
	var user string
	if variant == export.Upload {
		if u, err := c.GetDashboardUser(ctx); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to load signed-in user")
		} else {
			user = u.Name
		}
	}

	location, err := ec.env.Exporter.Deliver(ctx, dest, report, variant, user)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(ec.env.Output, location)
	return err
}
