package config

import (
	"maps"

	"github.com/ethereum/go-ethereum/common"
)

// ExternalConfig holds the addresses of the external protocol the system is built on.
type ExternalConfig struct {
	Token           common.Address `json:"token"`
	Lit             common.Address `json:"lit"`
	TokenBpt        common.Address `json:"tokenBpt"`
	Minter          common.Address `json:"minter"`
	VotingEscrow    common.Address `json:"votingEscrow"`
	FeeDistribution common.Address `json:"feeDistribution"`
	GaugeController common.Address `json:"gaugeController"`
	BalancerVault   common.Address `json:"balancerVault"`
	BalancerPoolID  common.Hash    `json:"balancerPoolId"`
	Weth            common.Address `json:"weth"`
}

// NamingConfig holds names and symbols of the issued tokens.
type NamingConfig struct {
	CvxName                 string `json:"cvxName" toml:"cvx_name" yaml:"cvx_name"`
	CvxSymbol               string `json:"cvxSymbol" toml:"cvx_symbol" yaml:"cvx_symbol"`
	VlCvxName               string `json:"vlCvxName" toml:"vl_cvx_name" yaml:"vl_cvx_name"`
	VlCvxSymbol             string `json:"vlCvxSymbol" toml:"vl_cvx_symbol" yaml:"vl_cvx_symbol"`
	CvxCrvName              string `json:"cvxCrvName" toml:"cvx_crv_name" yaml:"cvx_crv_name"`
	CvxCrvSymbol            string `json:"cvxCrvSymbol" toml:"cvx_crv_symbol" yaml:"cvx_crv_symbol"`
	TokenFactoryNamePostfix string `json:"tokenFactoryNamePostfix" toml:"token_factory_name_postfix" yaml:"token_factory_name_postfix"`
}

// MultisigConfig holds the role addresses that receive authority during wiring.
type MultisigConfig struct {
	VestingMultisig  common.Address `json:"vestingMultisig"`
	TreasuryMultisig common.Address `json:"treasuryMultisig"`
	DaoMultisig      common.Address `json:"daoMultisig"`
}

// NetworkConfig is the per-network record mirrored by the ledger file.
// Deployments is keyed by the ledger contract names (voterProxy, liq, ...).
type NetworkConfig struct {
	Network           string                    `json:"network"`
	ChainID           uint64                    `json:"chainId"`
	Version           uint64                    `json:"version"`
	ExternalAddresses ExternalConfig            `json:"externalAddresses"`
	Multisigs         MultisigConfig            `json:"multisigs"`
	Deployments       map[string]common.Address `json:"Deployments"`
}

// Clone returns a deep copy of the record.
func (c *NetworkConfig) Clone() *NetworkConfig {
	out := *c
	out.Deployments = make(map[string]common.Address, len(c.Deployments))
	maps.Copy(out.Deployments, c.Deployments)
	return &out
}
