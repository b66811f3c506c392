package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

// ResolveEnvironment builds the naming, external addresses and multisigs for a
// network, starting from the mainnet defaults and applying project overrides.
func ResolveEnvironment(project *config.ProjectConfig, networkName string) (*config.Environment, error) {
	env := &config.Environment{
		Naming:    DefaultNaming,
		External:  MainnetExternalAddresses,
		Multisigs: DefaultMultisigs,
	}
	if project == nil {
		return env, nil
	}

	if project.Naming != nil {
		mergeNaming(&env.Naming, project.Naming)
	}

	override, ok := project.Networks[strings.ToLower(networkName)]
	if !ok || override == nil {
		return env, nil
	}

	for key, value := range override.External {
		if err := setExternal(&env.External, key, value); err != nil {
			return nil, &domain.ConfigurationError{Network: networkName, Err: err}
		}
	}
	for key, value := range override.Multisigs {
		if err := setMultisig(&env.Multisigs, key, value); err != nil {
			return nil, &domain.ConfigurationError{Network: networkName, Err: err}
		}
	}

	return env, nil
}

func mergeNaming(dst *config.NamingConfig, src *config.NamingConfig) {
	if src.CvxName != "" {
		dst.CvxName = src.CvxName
	}
	if src.CvxSymbol != "" {
		dst.CvxSymbol = src.CvxSymbol
	}
	if src.VlCvxName != "" {
		dst.VlCvxName = src.VlCvxName
	}
	if src.VlCvxSymbol != "" {
		dst.VlCvxSymbol = src.VlCvxSymbol
	}
	if src.CvxCrvName != "" {
		dst.CvxCrvName = src.CvxCrvName
	}
	if src.CvxCrvSymbol != "" {
		dst.CvxCrvSymbol = src.CvxCrvSymbol
	}
	if src.TokenFactoryNamePostfix != "" {
		dst.TokenFactoryNamePostfix = src.TokenFactoryNamePostfix
	}
}

func setExternal(ext *config.ExternalConfig, key, value string) error {
	key = normalizeKey(key)
	if key == "balancer_pool_id" {
		if !isHexOfLength(value, common.HashLength) {
			return fmt.Errorf("external.%s: %w: %q", key, domain.ErrInvalidAddress, value)
		}
		ext.BalancerPoolID = common.HexToHash(value)
		return nil
	}

	addr, err := parseAddress(value)
	if err != nil {
		return fmt.Errorf("external.%s: %w", key, err)
	}

	switch key {
	case "token":
		ext.Token = addr
	case "lit":
		ext.Lit = addr
	case "token_bpt":
		ext.TokenBpt = addr
	case "minter":
		ext.Minter = addr
	case "voting_escrow":
		ext.VotingEscrow = addr
	case "fee_distribution":
		ext.FeeDistribution = addr
	case "gauge_controller":
		ext.GaugeController = addr
	case "balancer_vault":
		ext.BalancerVault = addr
	case "weth":
		ext.Weth = addr
	default:
		return fmt.Errorf("unknown external address %q", key)
	}
	return nil
}

func setMultisig(ms *config.MultisigConfig, key, value string) error {
	key = normalizeKey(key)
	addr, err := parseAddress(value)
	if err != nil {
		return fmt.Errorf("multisigs.%s: %w", key, err)
	}

	switch strings.TrimSuffix(key, "_multisig") {
	case "vesting":
		ms.VestingMultisig = addr
	case "treasury":
		ms.TreasuryMultisig = addr
	case "dao":
		ms.DaoMultisig = addr
	default:
		return fmt.Errorf("unknown multisig %q", key)
	}
	return nil
}

// parseAddress accepts a 0x-prefixed 20 byte hex string. The zero address is rejected.
func parseAddress(value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, value)
	}
	addr := common.HexToAddress(value)
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: zero address", domain.ErrInvalidAddress)
	}
	return addr, nil
}

func isHexOfLength(value string, n int) bool {
	s := strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	if len(s) != 2*n {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

// normalizeKey maps camelCase and kebab-case keys onto snake_case
func normalizeKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '-':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
