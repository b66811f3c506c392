package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

// ResolveNetwork selects the network definition and its persisted ledger record
type ResolveNetwork struct {
	networks NetworkResolver
	ledger   LedgerStore
}

// NewResolveNetwork creates a new ResolveNetwork use case
func NewResolveNetwork(networks NetworkResolver, ledger LedgerStore) *ResolveNetwork {
	return &ResolveNetwork{
		networks: networks,
		ledger:   ledger,
	}
}

// ResolvedNetwork is a network together with its current ledger record
type ResolvedNetwork struct {
	Network *config.Network
	Record  *config.NetworkConfig
}

// LedgerPath is the file the record is persisted to
func (r *ResolvedNetwork) LedgerPath() string {
	return r.Network.LedgerPath
}

// Resolve looks up a network and loads its ledger. A missing ledger yields an
// empty record; an unreadable one is a configuration error.
func (uc *ResolveNetwork) Resolve(ctx context.Context, networkName string) (*ResolvedNetwork, error) {
	network, err := uc.networks.ResolveNetwork(ctx, networkName)
	if err != nil {
		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, &domain.ConfigurationError{Network: networkName, Err: err}
	}

	record, err := uc.ledger.Load(ctx, network.LedgerPath)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		record = &config.NetworkConfig{}
	case err != nil:
		return nil, &domain.ConfigurationError{
			Network: network.Name,
			Err:     fmt.Errorf("failed to read ledger %s: %w", network.LedgerPath, err),
		}
	}

	if record.ChainID != 0 && record.ChainID != network.ChainID {
		return nil, &domain.ConfigurationError{
			Network: network.Name,
			Err:     fmt.Errorf("ledger %s belongs to chain %d, network is chain %d", network.LedgerPath, record.ChainID, network.ChainID),
		}
	}

	record.Network = network.Name
	record.ChainID = network.ChainID
	if record.Deployments == nil {
		record.Deployments = make(map[string]common.Address)
	}

	return &ResolvedNetwork{Network: network, Record: record}, nil
}
