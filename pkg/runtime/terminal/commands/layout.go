package commands

import (
	"fmt"
	"strings"

	"github.com/mediai/report-dashboard/pkg/render"
	"github.com/spf13/cobra"
)

type LayoutCmd struct {
	env     *Env
	variant string
	user    string
}

func NewLayoutCmd(env *Env) *cobra.Command {
	lc := &LayoutCmd{env: env}
	cmd := &cobra.Command{
		Use:   "layout <report.json>",
		Short: "Print the draw instructions a report would produce, without writing a PDF",
		Args:  cobra.ExactArgs(1),
		RunE:  lc.run,
	}

	cmd.Flags().StringVar(&lc.variant, "variant", "detail", "PDF variant: detail or upload")
	cmd.Flags().StringVar(&lc.user, "user", "", "Signed-in user named in the upload variant header")

	return cmd
}

func (lc *LayoutCmd) run(_ *cobra.Command, args []string) error {
	variant, err := parseVariant(lc.variant)
	if err != nil {
		return err
	}
	report, err := LoadReportFile(args[0])
	if err != nil {
		return err
	}

	recorder := render.NewRecorder()
	summary := lc.env.Exporter.Render(recorder, report, variant, lc.user)

	if err := recorder.Output(lc.env.Output); err != nil {
		return err
	}

	sections := make([]string, 0, len(summary.Sections))
	for _, s := range summary.Sections {
		sections = append(sections, string(s))
	}
	_, err = fmt.Fprintf(lc.env.Output, "\nsections: %s\npages: %d\nfinal y: %.2f\n",
		strings.Join(sections, ", "), summary.Pages, summary.FinalY)
	return err
}
