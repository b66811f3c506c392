package config

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	t.Run("defaults without project", func(t *testing.T) {
		env, err := ResolveEnvironment(nil, "mainnet")
		require.NoError(t, err)
		assert.Equal(t, DefaultNaming, env.Naming)
		assert.Equal(t, MainnetExternalAddresses, env.External)
		assert.Equal(t, DefaultMultisigs, env.Multisigs)
	})

	t.Run("overrides apply per network", func(t *testing.T) {
		treasury := "0x000000000000000000000000000000000000dEaD"
		project := &config.ProjectConfig{
			Naming: &config.NamingConfig{CvxSymbol: "tLIQ"},
			Networks: map[string]*config.ProjectNetworkConfig{
				"hardhat": {
					External: map[string]string{
						"balancerPoolId": "0x" + common.Bytes2Hex(make([]byte, 32)),
						"weth":           "0x1111111111111111111111111111111111111111",
					},
					Multisigs: map[string]string{"treasury": treasury},
				},
			},
		}

		env, err := ResolveEnvironment(project, "hardhat")
		require.NoError(t, err)
		assert.Equal(t, "tLIQ", env.Naming.CvxSymbol)
		assert.Equal(t, DefaultNaming.CvxName, env.Naming.CvxName)
		assert.Equal(t, common.Hash{}, env.External.BalancerPoolID)
		assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), env.External.Weth)
		assert.Equal(t, MainnetExternalAddresses.Lit, env.External.Lit)
		assert.Equal(t, common.HexToAddress(treasury), env.Multisigs.TreasuryMultisig)
		assert.Equal(t, DefaultMultisigs.DaoMultisig, env.Multisigs.DaoMultisig)

		// other networks keep defaults
		mainnet, err := ResolveEnvironment(project, "mainnet")
		require.NoError(t, err)
		assert.Equal(t, MainnetExternalAddresses, mainnet.External)
	})

	t.Run("invalid address is rejected", func(t *testing.T) {
		project := &config.ProjectConfig{
			Networks: map[string]*config.ProjectNetworkConfig{
				"localhost": {External: map[string]string{"lit": "0x1234"}},
			},
		}

		_, err := ResolveEnvironment(project, "localhost")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})

	t.Run("zero multisig is rejected", func(t *testing.T) {
		project := &config.ProjectConfig{
			Networks: map[string]*config.ProjectNetworkConfig{
				"localhost": {Multisigs: map[string]string{"dao_multisig": "0x0000000000000000000000000000000000000000"}},
			},
		}

		_, err := ResolveEnvironment(project, "localhost")
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		project := &config.ProjectConfig{
			Networks: map[string]*config.ProjectNetworkConfig{
				"localhost": {External: map[string]string{"oracle": "0x1111111111111111111111111111111111111111"}},
			},
		}

		_, err := ResolveEnvironment(project, "localhost")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "oracle")
	})
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "balancer_pool_id", normalizeKey("balancerPoolId"))
	assert.Equal(t, "voting_escrow", normalizeKey("voting-escrow"))
	assert.Equal(t, "token_bpt", normalizeKey("token_bpt"))
}
