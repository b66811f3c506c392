package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultArtifactsDir is the hardhat artifacts directory relative to the project root
const DefaultArtifactsDir = "artifacts"

// projectMarkers identify the root of a deployment project, in lookup order
var projectMarkers = []string{"liq.toml", "liq.yaml", "liq.yml", "hardhat.config.ts", "hardhat.config.js"}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// .env is optional; real environment variables win over it
	if err := godotenv.Load(filepath.Join(projectRoot, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	project, err := loadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		NetworkName:    v.GetString("network"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		Resume:         v.GetBool("resume"),
		PrivateKey:     v.GetString("private_key"),
		Project:        project,
	}

	cfg.ArtifactsDir = v.GetString("artifacts_dir")
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = project.ArtifactsDir
	}
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = DefaultArtifactsDir
	}
	if !filepath.IsAbs(cfg.ArtifactsDir) {
		cfg.ArtifactsDir = filepath.Join(projectRoot, cfg.ArtifactsDir)
	}

	if v.IsSet("confirmations") {
		n := v.GetUint64("confirmations")
		cfg.Confirmations = &n
	}

	if cfg.NetworkName != "" {
		if err := SelectNetwork(cfg, cfg.NetworkName); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// SelectNetwork resolves name and sets it as the target network of cfg,
// along with its deployment environment
func SelectNetwork(cfg *config.RuntimeConfig, name string) error {
	network, err := ResolveNetwork(cfg.ProjectRoot, cfg.Project, name)
	if err != nil {
		return err
	}

	env, err := ResolveEnvironment(cfg.Project, network.Name)
	if err != nil {
		return err
	}

	cfg.NetworkName = network.Name
	cfg.Network = network
	cfg.Environment = env
	return nil
}

// FindProjectRoot walks up from the current directory to find a project marker
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findProjectRootFrom(dir)
}

func findProjectRootFrom(dir string) (string, error) {
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Liquis project (none of %s found)", strings.Join(projectMarkers, ", "))
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("LIQ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("resume", false)
	v.SetDefault("project_root", projectRoot)

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}
