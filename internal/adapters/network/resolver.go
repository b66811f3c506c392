package network

import (
	"context"

	"github.com/liquis-finance/liq-deploy/internal/config"
	domainconfig "github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
)

// Resolver resolves supported networks against the loaded project file
type Resolver struct {
	cfg *domainconfig.RuntimeConfig
}

// NewResolver creates a new network resolver
func NewResolver(cfg *domainconfig.RuntimeConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// GetNetworks returns the supported network names
func (r *Resolver) GetNetworks(ctx context.Context) []string {
	return config.SupportedNetworks()
}

// ResolveNetwork resolves a network by name (case-insensitive)
func (r *Resolver) ResolveNetwork(ctx context.Context, name string) (*domainconfig.Network, error) {
	network, err := config.ResolveNetwork(r.cfg.ProjectRoot, r.cfg.Project, name)
	if err != nil {
		return nil, err
	}

	// The --confirmations flag applies to whichever network the run targets
	if r.cfg.Confirmations != nil {
		network.Confirmations = *r.cfg.Confirmations
	}
	return network, nil
}

var _ usecase.NetworkResolver = (*Resolver)(nil)
