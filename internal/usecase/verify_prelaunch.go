package usecase

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/samber/lo"
)

// LiqTotalSupply is the amount minted to the deployer by init, 50M with 18 decimals
var LiqTotalSupply = new(big.Int).Mul(big.NewInt(50_000_000), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// VerifyPrelaunch reads the deployed contracts' getters and compares them with
// the configuration they were deployed and wired with.
type VerifyPrelaunch struct {
	resolver *ResolveNetwork
	chain    ChainClient
}

// NewVerifyPrelaunch creates a new VerifyPrelaunch use case
func NewVerifyPrelaunch(resolver *ResolveNetwork, chain ChainClient) *VerifyPrelaunch {
	return &VerifyPrelaunch{
		resolver: resolver,
		chain:    chain,
	}
}

// VerifyParams contains parameters for verification
type VerifyParams struct {
	Network   string
	Naming    config.NamingConfig
	External  config.ExternalConfig
	Multisigs config.MultisigConfig
	Fees      *domain.FeeSchedule
}

// CheckResult is the outcome of comparing one getter with its expected value
type CheckResult struct {
	Contract domain.ContractName `json:"contract"`
	Field    string              `json:"field"`
	Expected string              `json:"expected"`
	Actual   string              `json:"actual"`
	OK       bool                `json:"ok"`
}

// VerifyResult contains the result of verification
type VerifyResult struct {
	Network   *config.Network
	Contracts *domain.DeployedContractSet
	Checks    []*CheckResult
}

// Failed returns the number of failed checks
func (r *VerifyResult) Failed() int {
	return lo.CountBy(r.Checks, func(c *CheckResult) bool { return !c.OK })
}

// Passed reports whether every check succeeded
func (r *VerifyResult) Passed() bool {
	return r.Failed() == 0
}

type getterCheck struct {
	contract domain.ContractName
	field    string
	args     []any
	want     any
}

// Execute runs all getter checks against the contracts in the network's ledger
func (uc *VerifyPrelaunch) Execute(ctx context.Context, params VerifyParams) (*VerifyResult, error) {
	resolved, err := uc.resolver.Resolve(ctx, params.Network)
	if err != nil {
		return nil, err
	}

	state := domain.NewDeploymentState(resolved.Record)
	addresses := make(map[domain.ContractName]common.Address, len(domain.PrelaunchContracts))
	for _, name := range domain.PrelaunchContracts {
		if addr, ok := state.Lookup(name); ok {
			addresses[name] = addr
		}
	}
	contracts, err := domain.AssembleContractSet(addresses)
	if err != nil {
		return nil, fmt.Errorf("ledger %s is incomplete: %w", resolved.LedgerPath(), err)
	}

	fees := domain.DefaultFeeSchedule
	if params.Fees != nil {
		fees = *params.Fees
	}

	result := &VerifyResult{
		Network:   resolved.Network,
		Contracts: contracts,
	}
	for _, check := range prelaunchChecks(contracts, params, fees, uc.chain.Deployer()) {
		result.Checks = append(result.Checks, uc.run(ctx, contracts, check))
	}
	return result, nil
}

func (uc *VerifyPrelaunch) run(ctx context.Context, contracts *domain.DeployedContractSet, check getterCheck) *CheckResult {
	addr, _ := contracts.Address(check.contract)
	res := &CheckResult{
		Contract: check.contract,
		Field:    check.field,
		Expected: formatValue(check.want),
	}

	out, err := uc.chain.Call(ctx, domain.ContractCall{
		Artifact: domain.Artifacts[check.contract],
		Address:  addr,
		Method:   check.field,
		Args:     check.args,
	})
	switch {
	case err != nil:
		res.Actual = "error: " + err.Error()
	case len(out) == 0:
		res.Actual = "no value"
	default:
		res.Actual = formatValue(out[0])
		res.OK = res.Actual == res.Expected
	}
	return res
}

func prelaunchChecks(c *domain.DeployedContractSet, p VerifyParams, fees domain.FeeSchedule, deployer common.Address) []getterCheck {
	ext, ms := p.External, p.Multisigs
	u := func(v uint64) *big.Int { return new(big.Int).SetUint64(v) }

	return []getterCheck{
		{domain.VoterProxy, "mintr", nil, ext.Minter},
		{domain.VoterProxy, "crv", nil, ext.Token},
		{domain.VoterProxy, "crvBpt", nil, ext.TokenBpt},
		{domain.VoterProxy, "escrow", nil, ext.VotingEscrow},
		{domain.VoterProxy, "gaugeController", nil, ext.GaugeController},
		{domain.VoterProxy, "rewardDeposit", nil, common.Address{}},
		{domain.VoterProxy, "withdrawer", nil, common.Address{}},
		{domain.VoterProxy, "owner", nil, ms.DaoMultisig},
		{domain.VoterProxy, "operator", nil, c.Booster},
		{domain.VoterProxy, "depositor", nil, c.CrvDepositor},

		{domain.Liq, "operator", nil, c.Booster},
		{domain.Liq, "vecrvProxy", nil, c.VoterProxy},
		{domain.Liq, "minter", nil, c.Minter},
		{domain.Liq, "totalSupply", nil, LiqTotalSupply},
		{domain.Liq, "balanceOf", []any{ms.TreasuryMultisig}, LiqTotalSupply},

		{domain.Minter, "liq", nil, c.Liq},
		{domain.Minter, "owner", nil, ms.DaoMultisig},

		{domain.Booster, "crv", nil, ext.Token},
		{domain.Booster, "lockIncentive", nil, u(fees.LockIncentive)},
		{domain.Booster, "stakerIncentive", nil, u(fees.StakerIncentive)},
		{domain.Booster, "earmarkIncentive", nil, u(fees.EarmarkIncentive)},
		{domain.Booster, "platformFee", nil, u(fees.PlatformFee)},
		{domain.Booster, "MaxFees", nil, u(domain.MaxFees)},
		{domain.Booster, "FEE_DENOMINATOR", nil, u(domain.FeeDenominator)},
		{domain.Booster, "owner", nil, deployer},
		{domain.Booster, "feeManager", nil, ms.DaoMultisig},
		{domain.Booster, "staker", nil, c.VoterProxy},
		{domain.Booster, "minter", nil, c.Liq},
		{domain.Booster, "voteDelegate", nil, ms.DaoMultisig},
		{domain.Booster, "isShutdown", nil, false},

		{domain.LiqLit, "operator", nil, c.CrvDepositor},
		{domain.LiqLit, "name", nil, p.Naming.CvxCrvName},
		{domain.LiqLit, "symbol", nil, p.Naming.CvxCrvSymbol},

		{domain.CrvDepositor, "crvBpt", nil, ext.TokenBpt},
		{domain.CrvDepositor, "escrow", nil, ext.VotingEscrow},
		{domain.CrvDepositor, "feeManager", nil, ms.DaoMultisig},
		{domain.CrvDepositor, "daoOperator", nil, ms.DaoMultisig},
		{domain.CrvDepositor, "staker", nil, c.VoterProxy},
		{domain.CrvDepositor, "minter", nil, c.LiqLit},

		{domain.LitDepositorHelper, "crvDeposit", nil, c.CrvDepositor},
		{domain.LitDepositorHelper, "BALANCER_VAULT", nil, ext.BalancerVault},
		{domain.LitDepositorHelper, "LIT", nil, ext.Lit},
		{domain.LitDepositorHelper, "WETH", nil, ext.Weth},
		{domain.LitDepositorHelper, "BAL_ETH_POOL_ID", nil, ext.BalancerPoolID},

		{domain.PrelaunchRewardsPool, "stakingToken", nil, ext.TokenBpt},
		{domain.PrelaunchRewardsPool, "rewardToken", nil, c.Liq},
		{domain.PrelaunchRewardsPool, "litConvertor", nil, c.LitDepositorHelper},
		{domain.PrelaunchRewardsPool, "lit", nil, ext.Lit},
		{domain.PrelaunchRewardsPool, "voterProxy", nil, c.VoterProxy},
		{domain.PrelaunchRewardsPool, "escrow", nil, ext.VotingEscrow},
	}
}

// formatValue renders ABI return values and expectations in a comparable form
func formatValue(v any) string {
	switch x := v.(type) {
	case common.Address:
		return x.Hex()
	case common.Hash:
		return x.Hex()
	case [32]byte:
		return common.Hash(x).Hex()
	case *big.Int:
		if x == nil {
			return "0"
		}
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	case uint8, uint16, uint32, uint64, int8, int16, int32, int64:
		return fmt.Sprintf("%d", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
