package app

import (
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Selector usecase.NetworkSelector
	Networks usecase.NetworkResolver
	Chain    usecase.ChainClient

	// Use cases
	DeployPrelaunch *usecase.DeployPrelaunch
	VerifyPrelaunch *usecase.VerifyPrelaunch
	ShowDeployments *usecase.ShowDeployments
	ListNetworks    *usecase.ListNetworks
	DescribePlan    *usecase.DescribePlan
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	selector usecase.NetworkSelector,
	networks usecase.NetworkResolver,
	chain usecase.ChainClient,
	deployPrelaunch *usecase.DeployPrelaunch,
	verifyPrelaunch *usecase.VerifyPrelaunch,
	showDeployments *usecase.ShowDeployments,
	listNetworks *usecase.ListNetworks,
	describePlan *usecase.DescribePlan,
) (*App, error) {
	return &App{
		Config:          cfg,
		Selector:        selector,
		Networks:        networks,
		Chain:           chain,
		DeployPrelaunch: deployPrelaunch,
		VerifyPrelaunch: verifyPrelaunch,
		ShowDeployments: showDeployments,
		ListNetworks:    listNetworks,
		DescribePlan:    describePlan,
	}, nil
}
