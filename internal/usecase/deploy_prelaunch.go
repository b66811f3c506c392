package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

// DeployPrelaunch deploys and wires the prelaunch system on one network
type DeployPrelaunch struct {
	resolver  *ResolveNetwork
	sequencer *ContractSequencer
	wiring    *WiringPipeline
	log       *slog.Logger
}

// NewDeployPrelaunch creates a new DeployPrelaunch use case
func NewDeployPrelaunch(
	resolver *ResolveNetwork,
	sequencer *ContractSequencer,
	wiring *WiringPipeline,
	log *slog.Logger,
) *DeployPrelaunch {
	return &DeployPrelaunch{
		resolver:  resolver,
		sequencer: sequencer,
		wiring:    wiring,
		log:       log,
	}
}

// PrelaunchParams contains parameters for a prelaunch run
type PrelaunchParams struct {
	Network       string
	Naming        config.NamingConfig
	External      config.ExternalConfig
	Multisigs     config.MultisigConfig
	Debug         bool
	Confirmations uint64
	// Resume reuses ledger addresses that still have code instead of redeploying
	Resume bool
	// WireFrom re-runs wiring from the named step against the ledger's
	// contracts. It implies Resume.
	WireFrom string
	// Fees overrides the default booster fee schedule
	Fees *domain.FeeSchedule
}

// PrelaunchResult contains the result of a prelaunch run.
// After a failure it reports everything completed up to that point.
type PrelaunchResult struct {
	Network    *config.Network
	LedgerPath string
	Deployed   []*DeployedStep
	Contracts  *domain.DeployedContractSet
	Wiring     []*domain.WiringOutcome
}

// LastStep describes the last step that completed successfully, if any
func (r *PrelaunchResult) LastStep() string {
	for i := len(r.Wiring) - 1; i >= 0; i-- {
		if r.Wiring[i].Status == domain.WiringApplied {
			return "wiring " + r.Wiring[i].Step
		}
	}
	if n := len(r.Deployed); n > 0 {
		return fmt.Sprintf("deploy %s at %s", r.Deployed[n-1].Name, r.Deployed[n-1].Address.Hex())
	}
	return ""
}

// Execute resolves the network, deploys the plan and wires the contracts
func (uc *DeployPrelaunch) Execute(ctx context.Context, params PrelaunchParams) (*PrelaunchResult, error) {
	fees := domain.DefaultFeeSchedule
	if params.Fees != nil {
		fees = *params.Fees
	}
	if err := fees.Validate(); err != nil {
		return nil, err
	}

	resolved, err := uc.resolver.Resolve(ctx, params.Network)
	if err != nil {
		return nil, err
	}

	result := &PrelaunchResult{
		Network:    resolved.Network,
		LedgerPath: resolved.LedgerPath(),
	}

	uc.log.Info("starting prelaunch deployment",
		"network", resolved.Network.Name,
		"chainId", resolved.Network.ChainID,
		"ledger", resolved.LedgerPath(),
		"confirmations", params.Confirmations,
	)

	env := &config.Environment{
		Naming:    params.Naming,
		External:  params.External,
		Multisigs: params.Multisigs,
	}
	state := domain.NewDeploymentState(resolved.Record).WithEnvironment(params.External, params.Multisigs)
	tx := TxOptions{Confirmations: params.Confirmations, Debug: params.Debug}

	sequenced, err := uc.sequencer.Run(ctx, SequenceParams{
		Plan:        NewPrelaunchPlan(),
		Environment: env,
		State:       state,
		LedgerPath:  resolved.LedgerPath(),
		Tx:          tx,
		Resume:      params.Resume || params.WireFrom != "",
	})
	if sequenced != nil {
		result.Deployed = sequenced.Steps
	}
	if err != nil {
		return result, err
	}

	contracts, err := domain.AssembleContractSet(sequenced.Addresses())
	if err != nil {
		return result, err
	}
	result.Contracts = contracts

	outcomes, err := uc.wiring.Run(ctx, WiringParams{
		Steps:     NewPrelaunchWiring(),
		Contracts: contracts,
		Multisigs: params.Multisigs,
		Fees:      fees,
		Tx:        tx,
		FromStep:  params.WireFrom,
	})
	result.Wiring = outcomes
	if err != nil {
		return result, err
	}

	uc.log.Info("prelaunch deployment complete", "network", resolved.Network.Name)
	return result, nil
}
