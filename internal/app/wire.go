//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/liquis-finance/liq-deploy/internal/adapters"
	"github.com/liquis-finance/liq-deploy/internal/config"
	"github.com/liquis-finance/liq-deploy/internal/logging"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveNetwork,
		usecase.NewContractSequencer,
		usecase.NewWiringPipeline,
		usecase.NewDeployPrelaunch,
		usecase.NewVerifyPrelaunch,
		usecase.NewShowDeployments,
		usecase.NewListNetworks,
		usecase.NewDescribePlan,

		// App
		NewApp,
	)
	return nil, nil
}
