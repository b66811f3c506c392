package usecase

import (
	"context"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/samber/lo"
)

// ShowDeployments lists the addresses recorded in a network's ledger
type ShowDeployments struct {
	resolver *ResolveNetwork
}

// NewShowDeployments creates a new ShowDeployments use case
func NewShowDeployments(resolver *ResolveNetwork) *ShowDeployments {
	return &ShowDeployments{resolver: resolver}
}

// LedgerEntry is one contract slot of the ledger
type LedgerEntry struct {
	Name     string         `json:"name"`
	Artifact string         `json:"artifact,omitempty"`
	Address  common.Address `json:"address"`
	Deployed bool           `json:"deployed"`
}

// ShowDeploymentsResult contains the ledger view of a network
type ShowDeploymentsResult struct {
	Network    *config.Network
	LedgerPath string
	Version    uint64
	Entries    []*LedgerEntry
}

// Execute returns the ledger entries in plan order, followed by any keys the
// plan does not know in alphabetical order.
func (uc *ShowDeployments) Execute(ctx context.Context, networkName string) (*ShowDeploymentsResult, error) {
	resolved, err := uc.resolver.Resolve(ctx, networkName)
	if err != nil {
		return nil, err
	}

	steps, err := NewPrelaunchPlan().Order()
	if err != nil {
		return nil, err
	}

	record := resolved.Record
	result := &ShowDeploymentsResult{
		Network:    resolved.Network,
		LedgerPath: resolved.LedgerPath(),
		Version:    record.Version,
	}

	for _, step := range steps {
		addr, ok := record.Deployments[string(step.Name)]
		result.Entries = append(result.Entries, &LedgerEntry{
			Name:     string(step.Name),
			Artifact: step.Artifact,
			Address:  addr,
			Deployed: ok && addr != (common.Address{}),
		})
	}

	known := lo.Map(steps, func(s *PlanStep, _ int) string { return string(s.Name) })
	extra := lo.Filter(lo.Keys(record.Deployments), func(k string, _ int) bool {
		return !slices.Contains(known, k)
	})
	slices.Sort(extra)
	for _, name := range extra {
		addr := record.Deployments[name]
		result.Entries = append(result.Entries, &LedgerEntry{
			Name:     name,
			Address:  addr,
			Deployed: addr != (common.Address{}),
		})
	}

	return result, nil
}
