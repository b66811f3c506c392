package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrNetworkNotFound is returned when a network identifier is not in the supported set
	ErrNetworkNotFound = errors.New("network not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrMissingInput is returned when a deploy step needs an address that has not been produced yet
	ErrMissingInput = errors.New("missing input")

	// ErrCyclicPlan is returned when the deployment graph contains a cycle
	ErrCyclicPlan = errors.New("circular dependency")

	// ErrReverted is returned when a mined transaction has a failed receipt status
	ErrReverted = errors.New("transaction reverted")

	// ErrInvalidFeeSchedule is returned when fee values exceed the booster ceiling
	ErrInvalidFeeSchedule = errors.New("invalid fee schedule")
)

// ConfigurationError is returned when the target network cannot be resolved.
// No transaction is attempted once it is raised.
type ConfigurationError struct {
	Network string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for network %q: %v", e.Network, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DeploymentFailure is returned when a constructor transaction fails to submit,
// reverts or never confirms.
type DeploymentFailure struct {
	Contract ContractName
	Artifact string
	Err      error
}

func (e *DeploymentFailure) Error() string {
	return fmt.Sprintf("failed to deploy %s (%s): %v", e.Contract, e.Artifact, e.Err)
}

func (e *DeploymentFailure) Unwrap() error { return e.Err }

// WiringFailure is returned when an administrative transaction fails. Contracts
// wired by earlier steps stay as they are on chain.
type WiringFailure struct {
	Step string
	Err  error
}

func (e *WiringFailure) Error() string {
	return fmt.Sprintf("wiring step %s failed: %v", e.Step, e.Err)
}

func (e *WiringFailure) Unwrap() error { return e.Err }

// PersistenceFailure is returned when the ledger file cannot be written.
type PersistenceFailure struct {
	Path string
	Err  error
}

func (e *PersistenceFailure) Error() string {
	return fmt.Sprintf("failed to persist ledger %s: %v", e.Path, e.Err)
}

func (e *PersistenceFailure) Unwrap() error { return e.Err }
