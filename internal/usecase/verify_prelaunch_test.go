package usecase

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifyParams() VerifyParams {
	return VerifyParams{
		Network:   "hardhat",
		Naming:    testNaming,
		External:  testExternal,
		Multisigs: testMultisigs,
	}
}

func TestVerifyPrelaunch(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh deployment passes every check", func(t *testing.T) {
		f := newPrelaunchFixture()
		_, err := f.uc.Execute(ctx, prelaunchParams("hardhat"))
		require.NoError(t, err)

		uc := NewVerifyPrelaunch(NewResolveNetwork(testNetworks(), f.ledger), f.chain)
		result, err := uc.Execute(ctx, verifyParams())
		require.NoError(t, err)

		for _, c := range result.Checks {
			assert.True(t, c.OK, "%s.%s: expected %s, got %s", c.Contract, c.Field, c.Expected, c.Actual)
		}
		assert.True(t, result.Passed())
		assert.Len(t, result.Checks, 50)
	})

	t.Run("drift is reported per field", func(t *testing.T) {
		f := newPrelaunchFixture()
		res, err := f.uc.Execute(ctx, prelaunchParams("hardhat"))
		require.NoError(t, err)

		f.chain.contractAt(res.Contracts.Booster).fields["platformFee"] = big.NewInt(200)
		delete(f.chain.contractAt(res.Contracts.Minter).fields, "owner")

		uc := NewVerifyPrelaunch(NewResolveNetwork(testNetworks(), f.ledger), f.chain)
		result, err := uc.Execute(ctx, verifyParams())
		require.NoError(t, err)
		assert.False(t, result.Passed())
		assert.Equal(t, 2, result.Failed())

		for _, c := range result.Checks {
			if c.OK {
				continue
			}
			switch c.Contract {
			case domain.Booster:
				assert.Equal(t, "platformFee", c.Field)
				assert.Equal(t, "0", c.Expected)
				assert.Equal(t, "200", c.Actual)
			case domain.Minter:
				assert.Equal(t, "owner", c.Field)
				assert.Contains(t, c.Actual, "error:")
			default:
				t.Errorf("unexpected failure %s.%s", c.Contract, c.Field)
			}
		}
	})

	t.Run("incomplete ledger", func(t *testing.T) {
		f := newPrelaunchFixture()
		f.chain.failDeploy["Booster"] = assert.AnError
		_, err := f.uc.Execute(ctx, prelaunchParams("hardhat"))
		require.Error(t, err)

		uc := NewVerifyPrelaunch(NewResolveNetwork(testNetworks(), f.ledger), f.chain)
		_, err = uc.Execute(ctx, verifyParams())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "booster")
	})
}

func TestFormatValue(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000000000da")
	assert.Equal(t, addr.Hex(), formatValue(addr))
	assert.Equal(t, "50000000000000000000000000", formatValue(LiqTotalSupply))
	assert.Equal(t, common.Hash{1}.Hex(), formatValue([32]byte{1}))
	assert.Equal(t, "false", formatValue(false))
	assert.Equal(t, "7", formatValue(uint8(7)))
	assert.Equal(t, "liqLIT", formatValue("liqLIT"))
}
