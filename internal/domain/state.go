package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

// DeploymentState is an immutable, versioned view of a network's deployment
// record. Every change returns a new value; the ledger writer persists snapshots.
type DeploymentState struct {
	record *config.NetworkConfig
}

// NewDeploymentState starts a state from a resolved network record.
func NewDeploymentState(record *config.NetworkConfig) DeploymentState {
	if record == nil {
		record = &config.NetworkConfig{}
	}
	clone := record.Clone()
	return DeploymentState{record: clone}
}

// Version is incremented on every recorded deployment.
func (s DeploymentState) Version() uint64 {
	return s.record.Version
}

// Lookup returns a previously recorded address.
func (s DeploymentState) Lookup(name ContractName) (common.Address, bool) {
	addr, ok := s.record.Deployments[string(name)]
	if !ok || addr == (common.Address{}) {
		return common.Address{}, false
	}
	return addr, true
}

// WithDeployment returns a new state with the address recorded under name.
func (s DeploymentState) WithDeployment(name ContractName, addr common.Address) DeploymentState {
	next := s.record.Clone()
	next.Deployments[string(name)] = addr
	next.Version++
	return DeploymentState{record: next}
}

// WithEnvironment returns a new state carrying the external and multisig
// configuration of the current run.
func (s DeploymentState) WithEnvironment(external config.ExternalConfig, multisigs config.MultisigConfig) DeploymentState {
	next := s.record.Clone()
	next.ExternalAddresses = external
	next.Multisigs = multisigs
	return DeploymentState{record: next}
}

// Snapshot returns a copy that can be serialized without aliasing the state.
func (s DeploymentState) Snapshot() *config.NetworkConfig {
	return s.record.Clone()
}
