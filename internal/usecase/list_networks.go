package usecase

import (
	"context"

	"github.com/liquis-finance/liq-deploy/internal/domain"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus describes one supported network and the state of its ledger
type NetworkStatus struct {
	Name          string
	ChainID       uint64
	Confirmations uint64
	LedgerPath    string
	RPCURL        string
	Deployed      int
	Error         error
}

// ListNetworks is a use case for listing supported networks
type ListNetworks struct {
	resolver *ResolveNetwork
	networks NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver *ResolveNetwork, networks NetworkResolver) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
		networks: networks,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	names := uc.networks.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		status := NetworkStatus{Name: name}

		resolved, err := uc.resolver.Resolve(ctx, name)
		if err != nil {
			status.Error = err
			networks = append(networks, status)
			continue
		}

		status.ChainID = resolved.Network.ChainID
		status.Confirmations = resolved.Network.Confirmations
		status.LedgerPath = resolved.LedgerPath()
		status.RPCURL = resolved.Network.RPCURL
		state := domain.NewDeploymentState(resolved.Record)
		for _, contract := range domain.PrelaunchContracts {
			if _, ok := state.Lookup(contract); ok {
				status.Deployed++
			}
		}

		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}
