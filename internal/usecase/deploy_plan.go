package usecase

import (
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

// ArgsBuilder produces constructor arguments from the run environment and the
// addresses of the step's declared inputs.
type ArgsBuilder func(env *config.Environment, inputs map[domain.ContractName]common.Address) ([]any, error)

// PlanStep is one contract deployment in the plan
type PlanStep struct {
	Name     domain.ContractName
	Artifact string
	Inputs   []domain.ContractName
	Build    ArgsBuilder
}

// Args collects the step's inputs from state and builds the constructor arguments.
func (s *PlanStep) Args(env *config.Environment, state domain.DeploymentState) ([]any, error) {
	inputs := make(map[domain.ContractName]common.Address, len(s.Inputs))
	for _, dep := range s.Inputs {
		addr, ok := state.Lookup(dep)
		if !ok {
			return nil, fmt.Errorf("%w: %s needs %s", domain.ErrMissingInput, s.Name, dep)
		}
		inputs[dep] = addr
	}
	return s.Build(env, inputs)
}

// DeployPlan is a directed acyclic graph of deployment steps
type DeployPlan struct {
	steps []*PlanStep
}

// NewDeployPlan creates a plan from steps in declaration order
func NewDeployPlan(steps ...*PlanStep) *DeployPlan {
	return &DeployPlan{steps: steps}
}

// Steps returns the steps in declaration order
func (p *DeployPlan) Steps() []*PlanStep {
	return slices.Clone(p.steps)
}

// Step returns the step deploying the named contract
func (p *DeployPlan) Step(name domain.ContractName) (*PlanStep, bool) {
	for _, s := range p.steps {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Validate checks for duplicate names, self-dependencies and unknown inputs
func (p *DeployPlan) Validate() error {
	seen := make(map[domain.ContractName]bool, len(p.steps))
	for _, s := range p.steps {
		if seen[s.Name] {
			return fmt.Errorf("step '%s' is declared twice", s.Name)
		}
		seen[s.Name] = true
	}

	for _, s := range p.steps {
		if s.Artifact == "" {
			return fmt.Errorf("step '%s' must specify an artifact", s.Name)
		}
		for _, dep := range s.Inputs {
			if dep == s.Name {
				return fmt.Errorf("step '%s' cannot depend on itself", s.Name)
			}
			if !seen[dep] {
				return fmt.Errorf("step '%s' depends on non-existent step '%s'", s.Name, dep)
			}
		}
	}
	return nil
}

// Order performs a topological sort of the plan. Ties are broken by
// declaration order, so an already-sorted declaration is returned unchanged.
func (p *DeployPlan) Order() ([]*PlanStep, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	position := make(map[domain.ContractName]int, len(p.steps))
	inDegree := make(map[domain.ContractName]int, len(p.steps))
	dependents := make(map[domain.ContractName][]domain.ContractName)
	for i, s := range p.steps {
		position[s.Name] = i
		inDegree[s.Name] = len(s.Inputs)
		for _, dep := range s.Inputs {
			dependents[dep] = append(dependents[dep], s.Name)
		}
	}

	byPosition := func(a, b domain.ContractName) int { return position[a] - position[b] }

	var queue []domain.ContractName
	for _, s := range p.steps {
		if inDegree[s.Name] == 0 {
			queue = append(queue, s.Name)
		}
	}

	result := make([]*PlanStep, 0, len(p.steps))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, p.steps[position[current]])

		for _, dependent := range dependents[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
				slices.SortFunc(queue, byPosition)
			}
		}
	}

	if len(result) != len(p.steps) {
		var cycle []domain.ContractName
		for _, s := range p.steps {
			if inDegree[s.Name] > 0 {
				cycle = append(cycle, s.Name)
			}
		}
		return nil, fmt.Errorf("%w involving steps: %v", domain.ErrCyclicPlan, cycle)
	}

	return result, nil
}

// NewPrelaunchPlan declares the eight prelaunch contracts and their constructor inputs
func NewPrelaunchPlan() *DeployPlan {
	return NewDeployPlan(
		&PlanStep{
			Name:     domain.VoterProxy,
			Artifact: domain.Artifacts[domain.VoterProxy],
			Build: func(env *config.Environment, _ map[domain.ContractName]common.Address) ([]any, error) {
				ext := env.External
				return []any{ext.Minter, ext.Token, ext.TokenBpt, ext.VotingEscrow, ext.GaugeController}, nil
			},
		},
		&PlanStep{
			Name:     domain.Liq,
			Artifact: domain.Artifacts[domain.Liq],
			Inputs:   []domain.ContractName{domain.VoterProxy},
			Build: func(env *config.Environment, in map[domain.ContractName]common.Address) ([]any, error) {
				return []any{in[domain.VoterProxy], env.Naming.CvxName, env.Naming.CvxSymbol}, nil
			},
		},
		&PlanStep{
			Name:     domain.Minter,
			Artifact: domain.Artifacts[domain.Minter],
			Inputs:   []domain.ContractName{domain.Liq},
			Build: func(env *config.Environment, in map[domain.ContractName]common.Address) ([]any, error) {
				return []any{in[domain.Liq], env.Multisigs.DaoMultisig}, nil
			},
		},
		&PlanStep{
			Name:     domain.Booster,
			Artifact: domain.Artifacts[domain.Booster],
			Inputs:   []domain.ContractName{domain.VoterProxy, domain.Liq},
			Build: func(env *config.Environment, in map[domain.ContractName]common.Address) ([]any, error) {
				return []any{in[domain.VoterProxy], in[domain.Liq], env.External.Token}, nil
			},
		},
		&PlanStep{
			Name:     domain.LiqLit,
			Artifact: domain.Artifacts[domain.LiqLit],
			Build: func(env *config.Environment, _ map[domain.ContractName]common.Address) ([]any, error) {
				return []any{env.Naming.CvxCrvName, env.Naming.CvxCrvSymbol}, nil
			},
		},
		&PlanStep{
			Name:     domain.CrvDepositor,
			Artifact: domain.Artifacts[domain.CrvDepositor],
			Inputs:   []domain.ContractName{domain.VoterProxy, domain.LiqLit},
			Build: func(env *config.Environment, in map[domain.ContractName]common.Address) ([]any, error) {
				return []any{
					in[domain.VoterProxy],
					in[domain.LiqLit],
					env.External.TokenBpt,
					env.External.VotingEscrow,
					env.Multisigs.DaoMultisig,
				}, nil
			},
		},
		&PlanStep{
			Name:     domain.LitDepositorHelper,
			Artifact: domain.Artifacts[domain.LitDepositorHelper],
			Inputs:   []domain.ContractName{domain.CrvDepositor},
			Build: func(env *config.Environment, in map[domain.ContractName]common.Address) ([]any, error) {
				ext := env.External
				return []any{in[domain.CrvDepositor], ext.BalancerVault, ext.Lit, ext.Weth, [32]byte(ext.BalancerPoolID)}, nil
			},
		},
		&PlanStep{
			Name:     domain.PrelaunchRewardsPool,
			Artifact: domain.Artifacts[domain.PrelaunchRewardsPool],
			Inputs:   []domain.ContractName{domain.Liq, domain.LitDepositorHelper, domain.CrvDepositor, domain.VoterProxy},
			Build: func(env *config.Environment, in map[domain.ContractName]common.Address) ([]any, error) {
				return []any{
					env.External.TokenBpt,
					in[domain.Liq],
					in[domain.LitDepositorHelper],
					env.External.Lit,
					in[domain.CrvDepositor],
					in[domain.VoterProxy],
					env.External.VotingEscrow,
				}, nil
			},
		},
	)
}
