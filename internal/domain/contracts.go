package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ContractName is the ledger key of a deployed contract
type ContractName string

const (
	VoterProxy           ContractName = "voterProxy"
	Liq                  ContractName = "liq"
	Minter               ContractName = "minter"
	Booster              ContractName = "booster"
	LiqLit               ContractName = "liqLit"
	CrvDepositor         ContractName = "crvDepositor"
	LitDepositorHelper   ContractName = "litDepositorHelper"
	PrelaunchRewardsPool ContractName = "prelaunchRewardsPool"
)

// PrelaunchContracts lists the ledger keys in deployment order.
var PrelaunchContracts = []ContractName{
	VoterProxy,
	Liq,
	Minter,
	Booster,
	LiqLit,
	CrvDepositor,
	LitDepositorHelper,
	PrelaunchRewardsPool,
}

// Artifacts maps each ledger key to the compiled contract it is deployed from.
var Artifacts = map[ContractName]string{
	VoterProxy:           "VoterProxy",
	Liq:                  "LiqToken",
	Minter:               "LiqMinter",
	Booster:              "Booster",
	LiqLit:               "CvxCrvToken",
	CrvDepositor:         "CrvDepositor",
	LitDepositorHelper:   "LitDepositorHelper",
	PrelaunchRewardsPool: "PrelaunchRewardsPool",
}

// DeployedContractSet is the result of one prelaunch run.
type DeployedContractSet struct {
	VoterProxy           common.Address `json:"voterProxy"`
	Liq                  common.Address `json:"liq"`
	Minter               common.Address `json:"minter"`
	Booster              common.Address `json:"booster"`
	LiqLit               common.Address `json:"liqLit"`
	CrvDepositor         common.Address `json:"crvDepositor"`
	LitDepositorHelper   common.Address `json:"litDepositorHelper"`
	PrelaunchRewardsPool common.Address `json:"prelaunchRewardsPool"`
}

// AssembleContractSet builds the result record from an address map. Every
// prelaunch contract must be present and non-zero.
func AssembleContractSet(addresses map[ContractName]common.Address) (*DeployedContractSet, error) {
	for _, name := range PrelaunchContracts {
		addr, ok := addresses[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		if addr == (common.Address{}) {
			return nil, fmt.Errorf("%w: %s has zero address", ErrInvalidAddress, name)
		}
	}

	return &DeployedContractSet{
		VoterProxy:           addresses[VoterProxy],
		Liq:                  addresses[Liq],
		Minter:               addresses[Minter],
		Booster:              addresses[Booster],
		LiqLit:               addresses[LiqLit],
		CrvDepositor:         addresses[CrvDepositor],
		LitDepositorHelper:   addresses[LitDepositorHelper],
		PrelaunchRewardsPool: addresses[PrelaunchRewardsPool],
	}, nil
}

// Address returns the address stored for the given ledger key.
func (s *DeployedContractSet) Address(name ContractName) (common.Address, bool) {
	switch name {
	case VoterProxy:
		return s.VoterProxy, true
	case Liq:
		return s.Liq, true
	case Minter:
		return s.Minter, true
	case Booster:
		return s.Booster, true
	case LiqLit:
		return s.LiqLit, true
	case CrvDepositor:
		return s.CrvDepositor, true
	case LitDepositorHelper:
		return s.LitDepositorHelper, true
	case PrelaunchRewardsPool:
		return s.PrelaunchRewardsPool, true
	}
	return common.Address{}, false
}

// Addresses returns the set as a map keyed by ledger name.
func (s *DeployedContractSet) Addresses() map[ContractName]common.Address {
	out := make(map[ContractName]common.Address, len(PrelaunchContracts))
	for _, name := range PrelaunchContracts {
		addr, _ := s.Address(name)
		out[name] = addr
	}
	return out
}
