package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

// Wiring step names in execution order
const (
	StepSetApprovals           = "setApprovals"
	StepProxySetOperator       = "proxySetOperator"
	StepLiqInit                = "liqInit"
	StepLiqLitSetOperator      = "liqLitSetOperator"
	StepProxySetDepositor      = "proxySetDepositor"
	StepProxySetOwner          = "proxySetOwner"
	StepDepositorSetFeeManager = "depositorSetFeeManager"
	StepBoosterSetVoteDelegate = "boosterSetVoteDelegate"
	StepBoosterSetFees         = "boosterSetFees"
	StepBoosterSetFeeManager   = "boosterSetFeeManager"
	StepRewardsPoolSetOwner    = "rewardsPoolSetOwner"
	StepTreasuryTransfer       = "treasuryTransfer"
)

// WiringEnv is what a wiring step can read while preparing its call
type WiringEnv struct {
	Chain     ChainClient
	Contracts *domain.DeployedContractSet
	Multisigs config.MultisigConfig
	Fees      domain.FeeSchedule
}

// Prepare returns the transaction of a wiring step. A nil call with a reason
// skips the step without submitting anything.
type Prepare func(ctx context.Context, env *WiringEnv) (call *domain.ContractCall, skipReason string, err error)

// WiringStep is one administrative transaction of the pipeline
type WiringStep struct {
	Name    string
	Target  domain.ContractName
	Method  string
	Prepare Prepare
}

// callOn builds a Prepare for a fixed method with arguments taken from env
func callOn(target domain.ContractName, method string, args func(env *WiringEnv) []any) Prepare {
	return func(_ context.Context, env *WiringEnv) (*domain.ContractCall, string, error) {
		addr, _ := env.Contracts.Address(target)
		return &domain.ContractCall{
			Artifact: domain.Artifacts[target],
			Address:  addr,
			Method:   method,
			Args:     args(env),
		}, "", nil
	}
}

func noArgs(*WiringEnv) []any { return nil }

func daoMultisig(env *WiringEnv) []any { return []any{env.Multisigs.DaoMultisig} }

// NewPrelaunchWiring returns the twelve wiring steps in their required order
func NewPrelaunchWiring() []*WiringStep {
	return []*WiringStep{
		{
			Name: StepSetApprovals, Target: domain.LitDepositorHelper, Method: "setApprovals",
			Prepare: callOn(domain.LitDepositorHelper, "setApprovals", noArgs),
		},
		{
			Name: StepProxySetOperator, Target: domain.VoterProxy, Method: "setOperator",
			Prepare: callOn(domain.VoterProxy, "setOperator", func(env *WiringEnv) []any {
				return []any{env.Contracts.Booster}
			}),
		},
		{
			Name: StepLiqInit, Target: domain.Liq, Method: "init",
			Prepare: callOn(domain.Liq, "init", func(env *WiringEnv) []any {
				return []any{env.Chain.Deployer(), env.Contracts.Minter}
			}),
		},
		{
			Name: StepLiqLitSetOperator, Target: domain.LiqLit, Method: "setOperator",
			Prepare: callOn(domain.LiqLit, "setOperator", func(env *WiringEnv) []any {
				return []any{env.Contracts.CrvDepositor}
			}),
		},
		{
			Name: StepProxySetDepositor, Target: domain.VoterProxy, Method: "setDepositor",
			Prepare: callOn(domain.VoterProxy, "setDepositor", func(env *WiringEnv) []any {
				return []any{env.Contracts.CrvDepositor}
			}),
		},
		{
			Name: StepProxySetOwner, Target: domain.VoterProxy, Method: "setOwner",
			Prepare: callOn(domain.VoterProxy, "setOwner", daoMultisig),
		},
		{
			Name: StepDepositorSetFeeManager, Target: domain.CrvDepositor, Method: "setFeeManager",
			Prepare: callOn(domain.CrvDepositor, "setFeeManager", daoMultisig),
		},
		{
			Name: StepBoosterSetVoteDelegate, Target: domain.Booster, Method: "setVoteDelegate",
			Prepare: callOn(domain.Booster, "setVoteDelegate", daoMultisig),
		},
		{
			Name: StepBoosterSetFees, Target: domain.Booster, Method: "setFees",
			Prepare: func(ctx context.Context, env *WiringEnv) (*domain.ContractCall, string, error) {
				if err := env.Fees.Validate(); err != nil {
					return nil, "", err
				}
				return callOn(domain.Booster, "setFees", func(env *WiringEnv) []any {
					return env.Fees.Args()
				})(ctx, env)
			},
		},
		{
			Name: StepBoosterSetFeeManager, Target: domain.Booster, Method: "setFeeManager",
			Prepare: callOn(domain.Booster, "setFeeManager", daoMultisig),
		},
		{
			Name: StepRewardsPoolSetOwner, Target: domain.PrelaunchRewardsPool, Method: "setOwner",
			Prepare: callOn(domain.PrelaunchRewardsPool, "setOwner", daoMultisig),
		},
		{
			Name: StepTreasuryTransfer, Target: domain.Liq, Method: "transfer",
			Prepare: prepareTreasuryTransfer,
		},
	}
}

// prepareTreasuryTransfer moves the deployer's whole LIQ balance to the
// treasury. A zero balance skips the step.
func prepareTreasuryTransfer(ctx context.Context, env *WiringEnv) (*domain.ContractCall, string, error) {
	deployer := env.Chain.Deployer()
	out, err := env.Chain.Call(ctx, domain.ContractCall{
		Artifact: domain.Artifacts[domain.Liq],
		Address:  env.Contracts.Liq,
		Method:   "balanceOf",
		Args:     []any{deployer},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to read deployer balance: %w", err)
	}
	if len(out) != 1 {
		return nil, "", fmt.Errorf("balanceOf returned %d values", len(out))
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, "", fmt.Errorf("balanceOf returned %T", out[0])
	}
	if balance.Sign() == 0 {
		return nil, "deployer holds no LIQ", nil
	}

	return &domain.ContractCall{
		Artifact: domain.Artifacts[domain.Liq],
		Address:  env.Contracts.Liq,
		Method:   "transfer",
		Args:     []any{env.Multisigs.TreasuryMultisig, new(big.Int).Set(balance)},
	}, "", nil
}

// ValidateWiringOrder checks that the booster becomes the proxy operator before
// any other proxy mutation and that no proxy mutation follows the ownership transfer.
func ValidateWiringOrder(steps []*WiringStep) error {
	var proxySteps []*WiringStep
	seen := make(map[string]bool, len(steps))
	for _, s := range steps {
		if seen[s.Name] {
			return fmt.Errorf("wiring step '%s' is declared twice", s.Name)
		}
		seen[s.Name] = true
		if s.Target == domain.VoterProxy {
			proxySteps = append(proxySteps, s)
		}
	}

	if len(proxySteps) == 0 {
		return nil
	}
	if first := proxySteps[0]; first.Method != "setOperator" {
		return fmt.Errorf("first proxy mutation must be setOperator, got %s (%s)", first.Method, first.Name)
	}
	for i, s := range proxySteps {
		if s.Method == "setOwner" && i != len(proxySteps)-1 {
			return fmt.Errorf("proxy setOwner (%s) must be the last proxy mutation", s.Name)
		}
	}
	return nil
}

// WiringPipeline issues wiring steps one at a time, each confirmed before the next
type WiringPipeline struct {
	chain    ChainClient
	progress ProgressSink
	log      *slog.Logger
}

// NewWiringPipeline creates a new WiringPipeline
func NewWiringPipeline(chain ChainClient, progress ProgressSink, log *slog.Logger) *WiringPipeline {
	return &WiringPipeline{
		chain:    chain,
		progress: progress,
		log:      log,
	}
}

// WiringParams contains parameters for one pipeline run
type WiringParams struct {
	Steps     []*WiringStep
	Contracts *domain.DeployedContractSet
	Multisigs config.MultisigConfig
	Fees      domain.FeeSchedule
	Tx        TxOptions
	// FromStep skips every step before the named one
	FromStep string
}

// Run executes the steps and returns one outcome per step attempted or skipped.
// The first failing step halts the pipeline with a WiringFailure.
func (p *WiringPipeline) Run(ctx context.Context, params WiringParams) ([]*domain.WiringOutcome, error) {
	if err := ValidateWiringOrder(params.Steps); err != nil {
		return nil, err
	}

	start := 0
	if params.FromStep != "" {
		start = -1
		for i, s := range params.Steps {
			if s.Name == params.FromStep {
				start = i
				break
			}
		}
		if start < 0 {
			return nil, fmt.Errorf("%w: wiring step %q", domain.ErrNotFound, params.FromStep)
		}
	}

	env := &WiringEnv{
		Chain:     p.chain,
		Contracts: params.Contracts,
		Multisigs: params.Multisigs,
		Fees:      params.Fees,
	}

	outcomes := make([]*domain.WiringOutcome, 0, len(params.Steps))
	for i, step := range params.Steps {
		if i < start {
			outcomes = append(outcomes, &domain.WiringOutcome{
				Step:   step.Name,
				Target: step.Target,
				Method: step.Method,
				Status: domain.WiringSkipped,
				Reason: fmt.Sprintf("before %s", params.FromStep),
			})
			continue
		}

		p.progress.OnProgress(ctx, ProgressEvent{
			Stage:   StageWiringStarting,
			Current: i + 1,
			Total:   len(params.Steps),
			Message: fmt.Sprintf("%s.%s", step.Target, step.Method),
			Spinner: true,
			Metadata: map[string]any{
				"step": step.Name,
			},
		})

		outcome := p.runStep(ctx, env, step, params.Tx)
		outcomes = append(outcomes, outcome)

		p.log.Info("wiring step", "step", step.Name, "status", outcome.Status, "tx", txHash(outcome.Receipt))
		p.progress.OnProgress(ctx, ProgressEvent{
			Stage:    StageWiringCompleted,
			Current:  i + 1,
			Total:    len(params.Steps),
			Metadata: outcome,
		})

		if outcome.Status == domain.WiringFailed {
			return outcomes, &domain.WiringFailure{Step: step.Name, Err: outcome.Err}
		}
	}

	return outcomes, nil
}

func (p *WiringPipeline) runStep(ctx context.Context, env *WiringEnv, step *WiringStep, tx TxOptions) *domain.WiringOutcome {
	outcome := &domain.WiringOutcome{
		Step:   step.Name,
		Target: step.Target,
		Method: step.Method,
	}

	fail := func(err error) *domain.WiringOutcome {
		outcome.Status = domain.WiringFailed
		outcome.Reason = err.Error()
		outcome.Err = err
		return outcome
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	call, reason, err := step.Prepare(ctx, env)
	if err != nil {
		return fail(err)
	}
	if call == nil {
		outcome.Status = domain.WiringSkipped
		outcome.Reason = reason
		return outcome
	}
	if call.Address == (common.Address{}) {
		return fail(fmt.Errorf("%w: %s has no address", domain.ErrMissingInput, step.Target))
	}

	tx.Label = step.Name
	receipt, err := p.chain.SubmitAndWait(ctx, *call, tx)
	if err != nil {
		return fail(err)
	}
	if tx.Debug {
		p.log.Debug("wiring receipt", "step", step.Name, "block", receipt.BlockNumber, "gas", receipt.GasUsed)
	}

	outcome.Status = domain.WiringApplied
	outcome.Receipt = receipt
	return outcome
}

func txHash(r *domain.TxReceipt) string {
	if r == nil {
		return ""
	}
	return r.TxHash.Hex()
}
