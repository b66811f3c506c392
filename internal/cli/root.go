package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/liquis-finance/liq-deploy/internal/adapters/progress"
	"github.com/liquis-finance/liq-deploy/internal/app"
	"github.com/liquis-finance/liq-deploy/internal/config"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// annotationProgress marks commands that stream transaction progress
const annotationProgress = "progress"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "liqdeploy",
		Short: "Prelaunch deployment and wiring for the Liquis protocol",
		Long: `liqdeploy deploys the Liquis prelaunch contracts in dependency order,
records every address in a per-network ledger as soon as it is confirmed,
and wires the contracts together with a fixed sequence of admin calls.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot := os.Getenv("LIQ_PROJECT_ROOT")
			if projectRoot == "" {
				var err error
				if projectRoot, err = config.FindProjectRoot(); err != nil {
					return err
				}
			}

			v := config.SetupViper(projectRoot, cmd)

			var sink usecase.ProgressSink = usecase.NopProgress{}
			if cmd.Annotations[annotationProgress] == "true" {
				interactive := !v.GetBool("non_interactive") && !color.NoColor
				sink = progress.NewDeployProgress(cmd.ErrOrStderr(), interactive)
			}

			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (mainnet, hardhat, localhost, tenderly)")
	rootCmd.PersistentFlags().String("artifacts-dir", "", "Directory of compiled contract artifacts (default \"artifacts\")")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Stop issuing new transactions after this long; 0 disables the limit")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	verifyCmd := NewVerifyCmd()
	verifyCmd.GroupID = "main"
	rootCmd.AddCommand(verifyCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "main"
	rootCmd.AddCommand(showCmd)

	planCmd := NewPlanCmd()
	planCmd.GroupID = "management"
	rootCmd.AddCommand(planCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}

// ensureNetwork prompts for a network when none was given on the command line
func ensureNetwork(ctx context.Context, a *app.App) error {
	if a.Config.Network != nil {
		return nil
	}

	name, err := a.Selector.SelectNetwork(ctx, a.Networks.GetNetworks(ctx))
	if err != nil {
		return err
	}
	return config.SelectNetwork(a.Config, name)
}
