package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

// ContractSequencer deploys the plan in topological order, persisting the
// ledger after every confirmed deployment.
type ContractSequencer struct {
	chain    ChainClient
	ledger   LedgerStore
	progress ProgressSink
	log      *slog.Logger
}

// NewContractSequencer creates a new ContractSequencer
func NewContractSequencer(chain ChainClient, ledger LedgerStore, progress ProgressSink, log *slog.Logger) *ContractSequencer {
	return &ContractSequencer{
		chain:    chain,
		ledger:   ledger,
		progress: progress,
		log:      log,
	}
}

// SequenceParams contains parameters for one sequencer run
type SequenceParams struct {
	Plan        *DeployPlan
	Environment *config.Environment
	State       domain.DeploymentState
	LedgerPath  string
	Tx          TxOptions
	// Resume reuses ledger addresses that still have code on chain
	Resume bool
}

// DeployedStep records how one plan step was satisfied
type DeployedStep struct {
	Name     domain.ContractName   `json:"name"`
	Artifact string                `json:"artifact"`
	Address  common.Address        `json:"address"`
	Reused   bool                  `json:"reused"`
	Receipt  *domain.DeployReceipt `json:"receipt,omitempty"`
}

// SequenceResult is the final state of a sequencer run.
// On failure it holds the steps completed before the failing one.
type SequenceResult struct {
	State domain.DeploymentState
	Steps []*DeployedStep
}

// Addresses returns the deployed addresses keyed by contract name
func (r *SequenceResult) Addresses() map[domain.ContractName]common.Address {
	out := make(map[domain.ContractName]common.Address, len(r.Steps))
	for _, s := range r.Steps {
		out[s.Name] = s.Address
	}
	return out
}

// Run deploys every step of the plan
func (s *ContractSequencer) Run(ctx context.Context, params SequenceParams) (*SequenceResult, error) {
	steps, err := params.Plan.Order()
	if err != nil {
		return nil, fmt.Errorf("invalid deployment plan: %w", err)
	}

	result := &SequenceResult{State: params.State}

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		s.progress.OnProgress(ctx, ProgressEvent{
			Stage:   StageDeployStarting,
			Current: i + 1,
			Total:   len(steps),
			Message: fmt.Sprintf("Deploying %s", step.Artifact),
			Spinner: true,
			Metadata: map[string]any{
				"name":     string(step.Name),
				"artifact": step.Artifact,
			},
		})

		if params.Resume {
			reused, err := s.reuse(ctx, step, result.State)
			if err != nil {
				return result, &domain.DeploymentFailure{Contract: step.Name, Artifact: step.Artifact, Err: err}
			}
			if reused != nil {
				result.Steps = append(result.Steps, reused)
				s.log.Info("reusing deployment", "contract", step.Name, "address", reused.Address.Hex())
				s.progress.OnProgress(ctx, ProgressEvent{
					Stage:    StageDeploySkipped,
					Current:  i + 1,
					Total:    len(steps),
					Metadata: reused,
				})
				continue
			}
		}

		args, err := step.Args(params.Environment, result.State)
		if err != nil {
			return result, &domain.DeploymentFailure{Contract: step.Name, Artifact: step.Artifact, Err: err}
		}

		opts := params.Tx
		opts.Label = step.Artifact
		receipt, err := s.chain.DeployContract(ctx, step.Artifact, args, opts)
		if err != nil {
			return result, &domain.DeploymentFailure{Contract: step.Name, Artifact: step.Artifact, Err: err}
		}

		s.log.Info("deployed contract",
			"contract", step.Name,
			"address", receipt.Address.Hex(),
			"tx", receipt.TxHash.Hex(),
		)
		if params.Tx.Debug {
			s.log.Debug("deployment receipt",
				"contract", step.Name,
				"block", receipt.BlockNumber,
				"gas", receipt.GasUsed,
				"confirmations", receipt.Confirmations,
			)
		}

		// The ledger must reflect this address before the next step starts
		next := result.State.WithDeployment(step.Name, receipt.Address)
		if err := s.ledger.Save(ctx, params.LedgerPath, next.Snapshot()); err != nil {
			return result, &domain.PersistenceFailure{
				Path: params.LedgerPath,
				Err:  fmt.Errorf("%s deployed at %s but not recorded: %w", step.Name, receipt.Address.Hex(), err),
			}
		}
		result.State = next

		deployed := &DeployedStep{
			Name:     step.Name,
			Artifact: step.Artifact,
			Address:  receipt.Address,
			Receipt:  receipt,
		}
		result.Steps = append(result.Steps, deployed)

		s.progress.OnProgress(ctx, ProgressEvent{
			Stage:    StageDeployCompleted,
			Current:  i + 1,
			Total:    len(steps),
			Metadata: deployed,
		})
	}

	return result, nil
}

// reuse returns a step satisfied by a ledger address that still has code, or nil
func (s *ContractSequencer) reuse(ctx context.Context, step *PlanStep, state domain.DeploymentState) (*DeployedStep, error) {
	addr, ok := state.Lookup(step.Name)
	if !ok {
		return nil, nil
	}

	exists, err := s.chain.HasCode(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", addr.Hex(), err)
	}
	if !exists {
		s.log.Warn("ledger address has no code, redeploying", "contract", step.Name, "address", addr.Hex())
		return nil, nil
	}

	return &DeployedStep{
		Name:     step.Name,
		Artifact: step.Artifact,
		Address:  addr,
		Reused:   true,
	}, nil
}
