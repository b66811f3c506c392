package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

var (
	testDeployer  = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	testDao       = common.HexToAddress("0x00000000000000000000000000000000000000da")
	testTreasury  = common.HexToAddress("0x00000000000000000000000000000000000000ee")
	testVesting   = common.HexToAddress("0x00000000000000000000000000000000000000f1")
	testMultisigs = config.MultisigConfig{
		VestingMultisig:  testVesting,
		TreasuryMultisig: testTreasury,
		DaoMultisig:      testDao,
	}
	testNaming = config.NamingConfig{
		CvxName:      "Liquis",
		CvxSymbol:    "LIQ",
		CvxCrvName:   "Liquis LIT",
		CvxCrvSymbol: "liqLIT",
	}
	testExternal = config.ExternalConfig{
		Token:           common.HexToAddress("0x0000000000000000000000000000000000000a01"),
		Lit:             common.HexToAddress("0x0000000000000000000000000000000000000a02"),
		TokenBpt:        common.HexToAddress("0x0000000000000000000000000000000000000a03"),
		Minter:          common.HexToAddress("0x0000000000000000000000000000000000000a04"),
		VotingEscrow:    common.HexToAddress("0x0000000000000000000000000000000000000a05"),
		FeeDistribution: common.HexToAddress("0x0000000000000000000000000000000000000a06"),
		GaugeController: common.HexToAddress("0x0000000000000000000000000000000000000a07"),
		BalancerVault:   common.HexToAddress("0x0000000000000000000000000000000000000a08"),
		BalancerPoolID:  common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000000b1"),
		Weth:            common.HexToAddress("0x0000000000000000000000000000000000000a09"),
	}
	testEnvironment = &config.Environment{
		Naming:    testNaming,
		External:  testExternal,
		Multisigs: testMultisigs,
	}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeContract is the simulated state of one deployed contract
type fakeContract struct {
	artifact    string
	args        []any
	fields      map[string]any
	balances    map[common.Address]*big.Int
	initialized bool
}

func (c *fakeContract) address(field string) common.Address {
	addr, _ := c.fields[field].(common.Address)
	return addr
}

// fakeChain simulates the prelaunch contracts closely enough to exercise
// ordering rules: the proxy only accepts calls from its owner and the token
// init reads the booster from the proxy's operator.
type fakeChain struct {
	mu sync.Mutex

	deployer  common.Address
	nonce     uint64
	block     uint64
	contracts map[common.Address]*fakeContract

	// log records every write as "deploy:<artifact>" or "tx:<method>"
	log        []string
	deployOpts []TxOptions
	txOpts     []TxOptions

	failDeploy map[string]error
	failTx     map[string]error
	// mintOnInit controls the supply init routes to the deployer
	mintOnInit *big.Int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		deployer:   testDeployer,
		contracts:  make(map[common.Address]*fakeContract),
		failDeploy: make(map[string]error),
		failTx:     make(map[string]error),
		mintOnInit: new(big.Int).Set(LiqTotalSupply),
	}
}

func (f *fakeChain) Deployer() common.Address { return f.deployer }

func (f *fakeChain) DeployContract(_ context.Context, artifact string, args []any, opts TxOptions) (*domain.DeployReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failDeploy[artifact]; err != nil {
		return nil, err
	}

	f.nonce++
	f.block++
	addr := common.BigToAddress(new(big.Int).SetUint64(0x100000 + f.nonce))
	c := &fakeContract{
		artifact: artifact,
		args:     args,
		fields:   make(map[string]any),
		balances: make(map[common.Address]*big.Int),
	}
	f.construct(c, args)
	f.contracts[addr] = c
	f.log = append(f.log, "deploy:"+artifact)
	f.deployOpts = append(f.deployOpts, opts)

	return &domain.DeployReceipt{
		TxReceipt: domain.TxReceipt{
			TxHash:        common.BigToHash(new(big.Int).SetUint64(f.nonce)),
			BlockNumber:   f.block,
			GasUsed:       1_000_000,
			Confirmations: opts.Confirmations,
		},
		Address: addr,
	}, nil
}

func (f *fakeChain) construct(c *fakeContract, args []any) {
	set := func(names ...string) {
		for i, name := range names {
			c.fields[name] = args[i]
		}
	}
	switch c.artifact {
	case "VoterProxy":
		set("mintr", "crv", "crvBpt", "escrow", "gaugeController")
		c.fields["owner"] = f.deployer
		c.fields["rewardDeposit"] = common.Address{}
		c.fields["withdrawer"] = common.Address{}
	case "LiqToken":
		set("vecrvProxy", "name", "symbol")
		c.fields["operator"] = f.deployer
		c.fields["totalSupply"] = new(big.Int)
	case "LiqMinter":
		set("liq", "owner")
	case "Booster":
		set("staker", "minter", "crv")
		c.fields["owner"] = f.deployer
		c.fields["feeManager"] = f.deployer
		c.fields["voteDelegate"] = f.deployer
		c.fields["isShutdown"] = false
		c.fields["MaxFees"] = big.NewInt(domain.MaxFees)
		c.fields["FEE_DENOMINATOR"] = big.NewInt(domain.FeeDenominator)
	case "CvxCrvToken":
		set("name", "symbol")
		c.fields["operator"] = f.deployer
	case "CrvDepositor":
		set("staker", "minter", "crvBpt", "escrow", "daoOperator")
		c.fields["feeManager"] = f.deployer
	case "LitDepositorHelper":
		set("crvDeposit", "BALANCER_VAULT", "LIT", "WETH", "BAL_ETH_POOL_ID")
	case "PrelaunchRewardsPool":
		set("stakingToken", "rewardToken", "litConvertor", "lit", "crvDepositor", "voterProxy", "escrow")
		c.fields["owner"] = f.deployer
	}
}

func (f *fakeChain) SubmitAndWait(_ context.Context, call domain.ContractCall, opts TxOptions) (*domain.TxReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failTx[call.Method]; err != nil {
		return nil, err
	}

	c, ok := f.contracts[call.Address]
	if !ok {
		return nil, fmt.Errorf("no contract at %s", call.Address.Hex())
	}
	if err := f.apply(c, call); err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %v", domain.ErrReverted, c.artifact, call.Method, err)
	}

	f.nonce++
	f.block++
	f.log = append(f.log, "tx:"+call.Method)
	f.txOpts = append(f.txOpts, opts)

	return &domain.TxReceipt{
		TxHash:        common.BigToHash(new(big.Int).SetUint64(f.nonce)),
		BlockNumber:   f.block,
		GasUsed:       50_000,
		Confirmations: opts.Confirmations,
	}, nil
}

func (f *fakeChain) apply(c *fakeContract, call domain.ContractCall) error {
	onlyOwner := func() error {
		if c.address("owner") != f.deployer {
			return fmt.Errorf("!auth")
		}
		return nil
	}
	arg := func(i int) common.Address { return call.Args[i].(common.Address) }

	switch call.Method {
	case "setApprovals":
		return nil
	case "setOperator", "setDepositor", "setOwner", "setVoteDelegate", "setFeeManager":
		if c.artifact == "VoterProxy" || c.artifact == "PrelaunchRewardsPool" {
			if err := onlyOwner(); err != nil {
				return err
			}
		}
		field := map[string]string{
			"setOperator":     "operator",
			"setDepositor":    "depositor",
			"setOwner":        "owner",
			"setVoteDelegate": "voteDelegate",
			"setFeeManager":   "feeManager",
		}[call.Method]
		c.fields[field] = arg(0)
		return nil
	case "init":
		if c.initialized {
			return fmt.Errorf("Only once")
		}
		proxy, ok := f.contracts[c.address("vecrvProxy")]
		if !ok || proxy.address("operator") == (common.Address{}) {
			return fmt.Errorf("proxy operator not set")
		}
		c.initialized = true
		c.fields["minter"] = arg(1)
		c.fields["operator"] = proxy.address("operator")
		c.fields["totalSupply"] = new(big.Int).Set(f.mintOnInit)
		c.balances[arg(0)] = new(big.Int).Set(f.mintOnInit)
		return nil
	case "setFees":
		total := new(big.Int)
		for _, v := range call.Args {
			total.Add(total, v.(*big.Int))
		}
		if total.Cmp(big.NewInt(domain.MaxFees)) > 0 {
			return fmt.Errorf(">MaxFees")
		}
		for i, name := range []string{"lockIncentive", "stakerIncentive", "earmarkIncentive", "platformFee"} {
			c.fields[name] = call.Args[i]
		}
		return nil
	case "transfer":
		to, amount := arg(0), call.Args[1].(*big.Int)
		from := c.balances[f.deployer]
		if from == nil || from.Cmp(amount) < 0 {
			return fmt.Errorf("insufficient balance")
		}
		if amount.Sign() == 0 {
			return fmt.Errorf("zero transfer")
		}
		from.Sub(from, amount)
		if c.balances[to] == nil {
			c.balances[to] = new(big.Int)
		}
		c.balances[to].Add(c.balances[to], amount)
		return nil
	}
	return fmt.Errorf("unknown method %s", call.Method)
}

func (f *fakeChain) Call(_ context.Context, call domain.ContractCall) ([]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.contracts[call.Address]
	if !ok {
		return nil, fmt.Errorf("no contract at %s", call.Address.Hex())
	}
	if call.Method == "balanceOf" {
		if b := c.balances[call.Args[0].(common.Address)]; b != nil {
			return []any{new(big.Int).Set(b)}, nil
		}
		return []any{new(big.Int)}, nil
	}
	v, ok := c.fields[call.Method]
	if !ok {
		return nil, fmt.Errorf("execution reverted: %s has no %s", c.artifact, call.Method)
	}
	return []any{v}, nil
}

func (f *fakeChain) HasCode(_ context.Context, addr common.Address) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.contracts[addr]
	return ok, nil
}

func (f *fakeChain) contractAt(addr common.Address) *fakeContract {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contracts[addr]
}

func (f *fakeChain) writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.log...)
}

// memLedger is an in-memory LedgerStore that keeps every saved snapshot
type memLedger struct {
	mu      sync.Mutex
	records map[string]*config.NetworkConfig
	saves   []*config.NetworkConfig
	// chain, when set, receives "save" entries interleaved with its writes
	chain   *fakeChain
	loadErr error
}

func newMemLedger(chain *fakeChain) *memLedger {
	return &memLedger{records: make(map[string]*config.NetworkConfig), chain: chain}
}

func (m *memLedger) Load(_ context.Context, path string) (*config.NetworkConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	rec, ok := m.records[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec.Clone(), nil
}

func (m *memLedger) Save(_ context.Context, path string, record *config.NetworkConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[path] = record.Clone()
	m.saves = append(m.saves, record.Clone())
	if m.chain != nil {
		m.chain.mu.Lock()
		m.chain.log = append(m.chain.log, "save")
		m.chain.mu.Unlock()
	}
	return nil
}

// staticNetworks resolves a fixed set of networks
type staticNetworks map[string]*config.Network

func (s staticNetworks) GetNetworks(context.Context) []string {
	names := make([]string, 0, len(s))
	for _, n := range []string{"mainnet", "hardhat", "localhost", "tenderly"} {
		if _, ok := s[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

func (s staticNetworks) ResolveNetwork(_ context.Context, name string) (*config.Network, error) {
	n, ok := s[name]
	if !ok {
		return nil, &domain.ConfigurationError{Network: name, Err: domain.ErrNetworkNotFound}
	}
	copied := *n
	return &copied, nil
}

func testNetworks() staticNetworks {
	return staticNetworks{
		"hardhat": {Name: "hardhat", ChainID: 31337, LedgerPath: "/ledger/contracts.hardhat.json"},
		"mainnet": {Name: "mainnet", ChainID: 1, LedgerPath: "/ledger/contracts.json", Confirmations: 3},
	}
}

// recordingProgress keeps the stages it receives
type recordingProgress struct {
	NopProgress
	mu     sync.Mutex
	stages []string
}

func (r *recordingProgress) OnProgress(_ context.Context, event ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, event.Stage)
}
