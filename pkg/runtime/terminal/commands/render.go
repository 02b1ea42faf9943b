package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type RenderCmd struct {
	env     *Env
	out     string
	variant string
	user    string
}

func NewRenderCmd(env *Env) *cobra.Command {
	rc := &RenderCmd{env: env}
	cmd := &cobra.Command{
		Use:   "render <report.json>",
		Short: "Render a saved report JSON file to PDF without contacting the backend",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.out, "out", "o", "", "Output file (defaults to the variant's file name)")
	cmd.Flags().StringVar(&rc.variant, "variant", "detail", "PDF variant: detail or upload")
	cmd.Flags().StringVar(&rc.user, "user", "", "Signed-in user named in the upload variant header")

	return cmd
}

func (rc *RenderCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	variant, err := parseVariant(rc.variant)
	if err != nil {
		return err
	}
	report, err := LoadReportFile(args[0])
	if err != nil {
		return err
	}

	out := rc.out
	if out == "" {
		out = variant.Filename(report.ID)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer func(f *os.File) {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Str("path", out).Msg("failed to close output file")
		}
	}(f)

	summary, err := rc.env.Exporter.Write(f, report, variant, rc.user)
	if err != nil {
		return err
	}

	logger.Info().Str("path", out).Int("pages", summary.Pages).Msg("report rendered")
	_, err = fmt.Fprintln(rc.env.Output, out)
	return err
}
