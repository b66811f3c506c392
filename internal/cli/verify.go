package cli

import (
	"fmt"

	"github.com/liquis-finance/liq-deploy/internal/cli/render"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the on-chain configuration of a prelaunch deployment",
		Long: `Read back every configured value of the deployed prelaunch contracts and
compare it with what the wiring sequence should have set. Only the ledger
and read-only calls are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if err := ensureNetwork(ctx, app); err != nil {
				return err
			}

			env := app.Config.Environment
			result, err := app.VerifyPrelaunch.Execute(ctx, usecase.VerifyParams{
				Network:   app.Config.Network.Name,
				Naming:    env.Naming,
				External:  env.External,
				Multisigs: env.Multisigs,
			})
			if err != nil {
				return err
			}

			if err := render.NewVerifyRenderer(cmd.OutOrStdout(), all).RenderResult(result); err != nil {
				return err
			}
			if !result.Passed() {
				return fmt.Errorf("%d checks failed", result.Failed())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List passing checks too")

	return cmd
}
