package sftemplate

import (
	"fmt"
	"os"

	"github.com/jdcrensh/sftemplate/pkg/style"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	var (
		flags  buildFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: MsgPlanShort,
		Long:  MsgPlanLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := style.ParseFormat(format)
			if err != nil {
				return fmt.Errorf(MsgErrBadFormat, err)
			}
			f = style.Resolve(f, os.Stdout)

			_, _, c, err := flags.prepare(cmd, afero.NewReadOnlyFs(afero.NewOsFs()), true)
			if err != nil {
				return err
			}
			if _, err := c.Run(cmd.Context()); err != nil {
				return err
			}

			plan := style.Plan{Hooks: c.Hooks()}
			for _, a := range c.Artifacts() {
				plan.Artifacts = append(plan.Artifacts, style.PlanRow{
					Kind:     a.Kind.String(),
					Template: a.Template.String(),
					Filename: a.Filename,
				})
			}
			if len(plan.Artifacts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNothingPlanned)
				return nil
			}

			out, err := style.RenderPlan(plan, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	return cmd
}
