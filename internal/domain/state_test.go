package domain

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploymentState(t *testing.T) {
	proxy := common.HexToAddress("0x1111111111111111111111111111111111111111")
	liq := common.HexToAddress("0x2222222222222222222222222222222222222222")

	record := &config.NetworkConfig{Network: "hardhat", ChainID: 31337, Version: 4}
	base := NewDeploymentState(record)

	t.Run("starts from the record without aliasing it", func(t *testing.T) {
		assert.Equal(t, uint64(4), base.Version())
		_, ok := base.Lookup(VoterProxy)
		assert.False(t, ok)

		base.Snapshot().Deployments["voterProxy"] = proxy
		_, ok = base.Lookup(VoterProxy)
		assert.False(t, ok)
		assert.Nil(t, record.Deployments)
	})

	t.Run("with deployment returns a new version", func(t *testing.T) {
		one := base.WithDeployment(VoterProxy, proxy)
		two := one.WithDeployment(Liq, liq)

		assert.Equal(t, uint64(5), one.Version())
		assert.Equal(t, uint64(6), two.Version())

		_, ok := one.Lookup(Liq)
		assert.False(t, ok, "earlier state is unchanged")

		got, ok := two.Lookup(VoterProxy)
		require.True(t, ok)
		assert.Equal(t, proxy, got)

		snap := two.Snapshot()
		assert.Equal(t, uint64(6), snap.Version)
		assert.Equal(t, map[string]common.Address{"voterProxy": proxy, "liq": liq}, snap.Deployments)
	})

	t.Run("zero address is not a deployment", func(t *testing.T) {
		s := base.WithDeployment(Minter, common.Address{})
		_, ok := s.Lookup(Minter)
		assert.False(t, ok)
	})

	t.Run("with environment keeps version", func(t *testing.T) {
		ms := config.MultisigConfig{DaoMultisig: proxy}
		s := base.WithEnvironment(config.ExternalConfig{Lit: liq}, ms)
		assert.Equal(t, base.Version(), s.Version())
		assert.Equal(t, ms, s.Snapshot().Multisigs)
		assert.Equal(t, liq, s.Snapshot().ExternalAddresses.Lit)
	})

	t.Run("nil record", func(t *testing.T) {
		s := NewDeploymentState(nil)
		assert.Zero(t, s.Version())
		assert.NotNil(t, s.Snapshot().Deployments)
	})
}

func TestAssembleContractSet(t *testing.T) {
	addresses := make(map[ContractName]common.Address)
	for i, name := range PrelaunchContracts {
		addresses[name] = common.BigToAddress(big.NewInt(int64(i + 1)))
	}

	set, err := AssembleContractSet(addresses)
	require.NoError(t, err)
	assert.Equal(t, addresses, set.Addresses())

	got, ok := set.Address(Booster)
	require.True(t, ok)
	assert.Equal(t, addresses[Booster], got)

	_, ok = set.Address("unknown")
	assert.False(t, ok)

	t.Run("missing contract", func(t *testing.T) {
		partial := make(map[ContractName]common.Address)
		for k, v := range addresses {
			partial[k] = v
		}
		delete(partial, LitDepositorHelper)
		_, err := AssembleContractSet(partial)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("zero address", func(t *testing.T) {
		zeroed := make(map[ContractName]common.Address)
		for k, v := range addresses {
			zeroed[k] = v
		}
		zeroed[Minter] = common.Address{}
		_, err := AssembleContractSet(zeroed)
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})
}

func TestFeeSchedule(t *testing.T) {
	require.NoError(t, DefaultFeeSchedule.Validate())
	assert.Equal(t, uint64(2500), DefaultFeeSchedule.Total())

	atCeiling := FeeSchedule{LockIncentive: 4000}
	assert.NoError(t, atCeiling.Validate())

	over := FeeSchedule{LockIncentive: 3000, StakerIncentive: 1000, EarmarkIncentive: 1}
	assert.ErrorIs(t, over.Validate(), ErrInvalidFeeSchedule)

	args := DefaultFeeSchedule.Args()
	require.Len(t, args, 4)
	assert.Equal(t, big.NewInt(2150), args[0])
}
