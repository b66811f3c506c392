package cli

import (
	"github.com/liquis-finance/liq-deploy/internal/cli/render"
	"github.com/liquis-finance/liq-deploy/internal/config"
	"github.com/spf13/cobra"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the deployment order and wiring sequence",
		Long: `Print the deployment order, each constructor's arguments and the wiring
sequence without connecting to a chain. Contracts that do not exist yet
are shown by name. With --network, that network's project overrides apply.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			env := app.Config.Environment
			if env == nil {
				env, err = config.ResolveEnvironment(app.Config.Project, "")
				if err != nil {
					return err
				}
			}

			plan, err := app.DescribePlan.Execute(env)
			if err != nil {
				return err
			}
			return render.NewPlanRenderer(cmd.OutOrStdout()).Render(plan, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "Output format (text, json, yaml)")

	return cmd
}
