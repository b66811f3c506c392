package cli

import (
	"github.com/liquis-finance/liq-deploy/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the contract addresses recorded for a network",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if err := ensureNetwork(ctx, app); err != nil {
				return err
			}

			result, err := app.ShowDeployments.Execute(ctx, app.Config.Network.Name)
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout())
			if jsonOutput {
				return renderer.RenderJSON(result)
			}
			return renderer.RenderDeployments(result)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output addresses as JSON")

	return cmd
}
