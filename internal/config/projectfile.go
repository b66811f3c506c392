package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"gopkg.in/yaml.v3"
)

// ProjectFileNames are the accepted project file names, in lookup order.
var ProjectFileNames = []string{"liq.toml", "liq.yaml", "liq.yml"}

// loadProjectConfig loads liq.toml or liq.yaml from the project root.
// Returns an empty config when neither file exists.
func loadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	for _, name := range ProjectFileNames {
		path := filepath.Join(projectRoot, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		var cfg config.ProjectConfig
		switch filepath.Ext(name) {
		case ".toml":
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", name, err)
			}
		default:
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", name, err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", name, err)
			}
		}

		expandProjectEnv(&cfg)
		return &cfg, nil
	}

	return &config.ProjectConfig{}, nil
}

// expandProjectEnv expands ${VAR} references in every string value
func expandProjectEnv(cfg *config.ProjectConfig) {
	cfg.ArtifactsDir = os.ExpandEnv(cfg.ArtifactsDir)
	for _, network := range cfg.Networks {
		if network == nil {
			continue
		}
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.Ledger = os.ExpandEnv(network.Ledger)
		for k, v := range network.External {
			network.External[k] = os.ExpandEnv(v)
		}
		for k, v := range network.Multisigs {
			network.Multisigs[k] = os.ExpandEnv(v)
		}
	}
}
