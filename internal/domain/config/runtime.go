package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	ArtifactsDir string

	// Context settings
	NetworkName string
	Network     *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration
	Resume         bool

	// Confirmations overrides the network default when set
	Confirmations *uint64

	// Signer settings
	PrivateKey string

	// Resolved project file and deployment inputs
	Project     *ProjectConfig
	Environment *Environment // nil if no network specified
}

// Network represents a supported deployment target
type Network struct {
	Name          string `json:"name"`
	ChainID       uint64 `json:"chainId"`
	RPCURL        string `json:"rpcUrl"`
	LedgerPath    string `json:"ledgerPath"`
	Confirmations uint64 `json:"confirmations"`
}

// ConfirmationsToWait returns the effective confirmation count for this run.
func (c *RuntimeConfig) ConfirmationsToWait() uint64 {
	if c.Confirmations != nil {
		return *c.Confirmations
	}
	if c.Network != nil {
		return c.Network.Confirmations
	}
	return 0
}
