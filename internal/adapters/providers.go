package adapters

import (
	"github.com/google/wire"
	"github.com/liquis-finance/liq-deploy/internal/adapters/artifacts"
	"github.com/liquis-finance/liq-deploy/internal/adapters/chain"
	"github.com/liquis-finance/liq-deploy/internal/adapters/fs"
	"github.com/liquis-finance/liq-deploy/internal/adapters/interactive"
	"github.com/liquis-finance/liq-deploy/internal/adapters/network"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewLedgerStoreAdapter,
	wire.Bind(new(usecase.LedgerStore), new(*fs.LedgerStoreAdapter)),
)

// ChainSet provides the RPC client and the artifacts it deploys
var ChainSet = wire.NewSet(
	artifacts.NewStore,
	chain.NewClient,
	wire.Bind(new(usecase.ChainClient), new(*chain.Client)),
)

// NetworkSet provides network resolution
var NetworkSet = wire.NewSet(
	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ChainSet,
	NetworkSet,
	InteractiveSet,
)
