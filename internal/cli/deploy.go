package cli

import (
	"github.com/liquis-finance/liq-deploy/internal/cli/render"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command group
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy contract systems",
	}
	cmd.AddCommand(newDeployPrelaunchCmd())
	return cmd
}

func newDeployPrelaunchCmd() *cobra.Command {
	var wireFrom string

	cmd := &cobra.Command{
		Use:   "prelaunch",
		Short: "Deploy and wire the prelaunch system",
		Long: `Deploy the eight prelaunch contracts in dependency order and run the
wiring sequence that hands control to the multisigs.

Each address is written to the network's ledger as soon as its deployment
confirms. Without --resume every contract is redeployed. With --resume,
ledger addresses that still hold code are reused.

Examples:
  liqdeploy deploy prelaunch --network hardhat
  liqdeploy deploy prelaunch --network mainnet --confirmations 5
  liqdeploy deploy prelaunch --network mainnet --resume
  liqdeploy deploy prelaunch --network mainnet --wire-from boosterSetFees`,
		Annotations: map[string]string{annotationProgress: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if err := ensureNetwork(ctx, app); err != nil {
				return err
			}

			cfg := app.Config
			env := cfg.Environment
			params := usecase.PrelaunchParams{
				Network:       cfg.Network.Name,
				Naming:        env.Naming,
				External:      env.External,
				Multisigs:     env.Multisigs,
				Debug:         cfg.Debug,
				Confirmations: cfg.ConfirmationsToWait(),
				Resume:        cfg.Resume,
				WireFrom:      wireFrom,
			}

			renderer := render.NewPrelaunchRenderer(cmd.OutOrStdout())
			renderer.RenderBanner(cfg.Network, app.Chain.Deployer().Hex(), params)

			result, err := app.DeployPrelaunch.Execute(ctx, params)
			if err != nil {
				renderer.RenderFailure(result, err)
				return err
			}
			return renderer.RenderResult(result)
		},
	}

	cmd.Flags().Uint64("confirmations", 0, "Blocks to wait after each transaction (default: network setting)")
	cmd.Flags().Bool("resume", false, "Reuse ledger addresses that still have code")
	cmd.Flags().StringVar(&wireFrom, "wire-from", "", "Skip deployment and re-run wiring from this step (implies --resume)")

	return cmd
}
