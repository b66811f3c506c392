package usecase

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/samber/lo"
)

// PlanDescription is the static shape of a prelaunch run
type PlanDescription struct {
	Deploy []PlanEntry   `json:"deploy" yaml:"deploy"`
	Wiring []WiringEntry `json:"wiring" yaml:"wiring"`
}

// PlanEntry describes one deployment
type PlanEntry struct {
	Order    int      `json:"order" yaml:"order"`
	Name     string   `json:"name" yaml:"name"`
	Artifact string   `json:"artifact" yaml:"artifact"`
	Inputs   []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	// Args are the constructor arguments with upstream contracts shown by name
	Args []string `json:"args" yaml:"args"`
}

// WiringEntry describes one wiring step
type WiringEntry struct {
	Order  int    `json:"order" yaml:"order"`
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target" yaml:"target"`
	Method string `json:"method" yaml:"method"`
}

// DescribePlan renders the deployment DAG and wiring sequence without touching a chain
type DescribePlan struct{}

// NewDescribePlan creates a new DescribePlan use case
func NewDescribePlan() *DescribePlan {
	return &DescribePlan{}
}

// Execute orders the plan and resolves constructor arguments against env
func (uc *DescribePlan) Execute(env *config.Environment) (*PlanDescription, error) {
	steps, err := NewPrelaunchPlan().Order()
	if err != nil {
		return nil, err
	}

	// Placeholders stand in for contracts that do not exist yet, so every
	// argument can be shown by name.
	placeholders := make(map[string]string, len(steps))
	state := domain.NewDeploymentState(nil)
	for i, step := range steps {
		addr := placeholderAddress(i + 1)
		placeholders[addr.Hex()] = "<" + string(step.Name) + ">"
		state = state.WithDeployment(step.Name, addr)
	}

	desc := &PlanDescription{}
	for i, step := range steps {
		args, err := step.Args(env, state)
		if err != nil {
			return nil, err
		}
		desc.Deploy = append(desc.Deploy, PlanEntry{
			Order:    i + 1,
			Name:     string(step.Name),
			Artifact: step.Artifact,
			Inputs:   lo.Map(step.Inputs, func(n domain.ContractName, _ int) string { return string(n) }),
			Args: lo.Map(args, func(a any, _ int) string {
				s := formatValue(a)
				if name, ok := placeholders[s]; ok {
					return name
				}
				return s
			}),
		})
	}

	desc.Wiring = lo.Map(NewPrelaunchWiring(), func(s *WiringStep, i int) WiringEntry {
		return WiringEntry{
			Order:  i + 1,
			Name:   s.Name,
			Target: string(s.Target),
			Method: s.Method,
		}
	})

	return desc, nil
}

func placeholderAddress(n int) common.Address {
	var addr common.Address
	addr[0] = 0xde
	addr[common.AddressLength-1] = byte(n)
	return addr
}
