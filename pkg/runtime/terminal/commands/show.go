package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type ShowCmd struct {
	env *Env
}

func NewShowCmd(env *Env) *cobra.Command {
	sc := &ShowCmd{env: env}
	return &cobra.Command{
		Use:   "show <report-id>",
		Short: "Fetch a report and print it",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}
}

func (sc *ShowCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, _, err := sc.env.Client(ctx)
	if err != nil {
		return err
	}

	report, err := c.GetReport(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to fetch report: %w", err)
	}
	return sc.env.Reporter.Handle(report)
}
