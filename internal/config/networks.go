package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

// networkSpec describes one supported deployment target
type networkSpec struct {
	Name          string
	ChainID       uint64
	Ledger        string
	Confirmations uint64
	DefaultRPC    string
}

// supportedNetworks is the closed set of deployment targets. Each network owns
// exactly one ledger file.
var supportedNetworks = []networkSpec{
	{Name: "mainnet", ChainID: 1, Ledger: "scripts/contracts.json", Confirmations: 3},
	{Name: "hardhat", ChainID: 31337, Ledger: "scripts/contracts.hardhat.json", DefaultRPC: "http://127.0.0.1:8545"},
	{Name: "localhost", ChainID: 31337, Ledger: "scripts/contracts.localhost.json", DefaultRPC: "http://127.0.0.1:8545"},
	// Tenderly forks do not mine on their own, so confirmations must stay at 0
	{Name: "tenderly", ChainID: 1, Ledger: "scripts/contracts.tenderly.json"},
}

// SupportedNetworks returns the names of all supported networks in table order
func SupportedNetworks() []string {
	names := make([]string, len(supportedNetworks))
	for i, n := range supportedNetworks {
		names[i] = n.Name
	}
	return names
}

// LookupNetwork returns the static definition of a network.
// Ledger paths are relative to the project root.
func LookupNetwork(name string) (*config.Network, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, n := range supportedNetworks {
		if n.Name == key {
			return &config.Network{
				Name:          n.Name,
				ChainID:       n.ChainID,
				RPCURL:        n.DefaultRPC,
				LedgerPath:    n.Ledger,
				Confirmations: n.Confirmations,
			}, nil
		}
	}
	return nil, &domain.ConfigurationError{Network: name, Err: domain.ErrNetworkNotFound}
}

// RPCEnvVar returns the environment variable consulted for a network's RPC URL.
// Examples: mainnet -> MAINNET_RPC_URL, tenderly -> TENDERLY_RPC_URL
func RPCEnvVar(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// ResolveNetwork looks up a network and applies project file and environment
// overrides. The returned ledger path is absolute. RPCURL may be empty for
// networks without a default endpoint; dialing reports that.
func ResolveNetwork(projectRoot string, project *config.ProjectConfig, name string) (*config.Network, error) {
	network, err := LookupNetwork(name)
	if err != nil {
		return nil, err
	}

	if override := projectNetwork(project, network.Name); override != nil {
		if override.RPCURL != "" {
			network.RPCURL = override.RPCURL
		}
		if override.Confirmations != nil {
			network.Confirmations = *override.Confirmations
		}
	}

	if rpc := os.Getenv(RPCEnvVar(network.Name)); rpc != "" {
		network.RPCURL = rpc
	}

	network.LedgerPath = ledgerPath(projectRoot, project, network.Name, network.LedgerPath)
	for _, other := range supportedNetworks {
		if other.Name == network.Name {
			continue
		}
		if ledgerPath(projectRoot, project, other.Name, other.Ledger) == network.LedgerPath {
			return nil, &domain.ConfigurationError{
				Network: network.Name,
				Err:     fmt.Errorf("ledger %s is also used by network %s", network.LedgerPath, other.Name),
			}
		}
	}

	return network, nil
}

func projectNetwork(project *config.ProjectConfig, name string) *config.ProjectNetworkConfig {
	if project == nil {
		return nil
	}
	return project.Networks[name]
}

// ledgerPath returns the absolute ledger file of a network, honoring the project file
func ledgerPath(projectRoot string, project *config.ProjectConfig, name, fallback string) string {
	path := fallback
	if override := projectNetwork(project, name); override != nil && override.Ledger != "" {
		path = override.Ledger
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectRoot, path)
	}
	return filepath.Clean(path)
}
