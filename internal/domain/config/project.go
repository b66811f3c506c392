package config

// ProjectConfig is the parsed liq.toml / liq.yaml project file.
// Address values are kept as strings here and validated on resolution.
type ProjectConfig struct {
	ArtifactsDir string                           `toml:"artifacts_dir" yaml:"artifacts_dir"`
	Naming       *NamingConfig                    `toml:"naming" yaml:"naming"`
	Networks     map[string]*ProjectNetworkConfig `toml:"networks" yaml:"networks"`
}

// ProjectNetworkConfig carries the per-network overrides of the project file.
type ProjectNetworkConfig struct {
	RPCURL        string            `toml:"rpc_url" yaml:"rpc_url"`
	Ledger        string            `toml:"ledger" yaml:"ledger"`
	Confirmations *uint64           `toml:"confirmations" yaml:"confirmations"`
	External      map[string]string `toml:"external" yaml:"external"`
	Multisigs     map[string]string `toml:"multisigs" yaml:"multisigs"`
}

// Environment is the resolved set of inputs for one prelaunch run.
type Environment struct {
	Naming    NamingConfig
	External  ExternalConfig
	Multisigs MultisigConfig
}
