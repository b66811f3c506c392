package chain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/liquis-finance/liq-deploy/internal/adapters/artifacts"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
)

// Backend is the subset of an RPC client the adapter needs
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// ArtifactSource resolves compiled contracts by name
type ArtifactSource interface {
	Get(name string) (*artifacts.Artifact, error)
}

// DialFunc opens a backend for an RPC endpoint
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// blockNumberReader is what confirmation polling needs
type blockNumberReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

// Client implements usecase.ChainClient against a JSON-RPC node.
// The connection and signer are established on first use so commands
// that never touch the chain work without an RPC endpoint.
type Client struct {
	cfg       *config.RuntimeConfig
	artifacts ArtifactSource
	log       *slog.Logger
	dial      DialFunc

	pollInterval time.Duration

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
	signer  *LocalSigner
}

// NewClient creates a lazily connected chain client
func NewClient(cfg *config.RuntimeConfig, store *artifacts.Store, log *slog.Logger) *Client {
	return &Client{
		cfg:          cfg,
		artifacts:    store,
		log:          log.With("component", "chain"),
		dial:         DialRPC,
		pollInterval: 2 * time.Second,
	}
}

// DialRPC connects to an endpoint with ethclient
func DialRPC(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return client, nil
}

// connect dials the configured network once and verifies its chain id
func (c *Client) connect(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, nil
	}

	network := c.cfg.Network
	if network == nil {
		return nil, &domain.ConfigurationError{Err: fmt.Errorf("no network selected")}
	}
	if network.RPCURL == "" {
		return nil, &domain.ConfigurationError{
			Network: network.Name,
			Err:     fmt.Errorf("no RPC URL configured (set rpc_url in the project file or an RPC URL environment variable)"),
		}
	}

	backend, err := c.dial(ctx, network.RPCURL)
	if err != nil {
		return nil, &domain.ConfigurationError{Network: network.Name, Err: err}
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, &domain.ConfigurationError{Network: network.Name, Err: fmt.Errorf("failed to get chain ID: %w", err)}
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		return nil, &domain.ConfigurationError{
			Network: network.Name,
			Err:     fmt.Errorf("chain ID mismatch: expected %d, got %d", network.ChainID, chainID.Uint64()),
		}
	}

	c.log.Debug("connected", "network", network.Name, "chainId", chainID)
	c.backend = backend
	c.chainID = chainID
	return backend, nil
}

func (c *Client) loadSigner() (*LocalSigner, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.signer != nil {
		return c.signer, nil
	}

	var chainID uint64
	if c.cfg.Network != nil {
		chainID = c.cfg.Network.ChainID
	}
	signer, err := NewLocalSigner(c.cfg.PrivateKey, chainID)
	if err != nil {
		return nil, err
	}
	c.signer = signer
	return signer, nil
}

// Deployer returns the signer address, or the zero address when no key is configured
func (c *Client) Deployer() common.Address {
	signer, err := c.loadSigner()
	if err != nil {
		c.log.Warn("no deployer account", "error", err)
		return common.Address{}
	}
	return signer.Address()
}

func (c *Client) transactOpts(ctx context.Context) (Backend, *bind.TransactOpts, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	signer, err := c.loadSigner()
	if err != nil {
		return nil, nil, err
	}
	opts, err := signer.TransactOpts(c.chainID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return backend, opts, nil
}

// DeployContract sends a contract creation and waits for it to confirm
func (c *Client) DeployContract(ctx context.Context, artifactName string, args []any, opts usecase.TxOptions) (*domain.DeployReceipt, error) {
	a, err := c.artifacts.Get(artifactName)
	if err != nil {
		return nil, err
	}
	if len(a.Bytecode) == 0 {
		return nil, fmt.Errorf("artifact %s has no bytecode (abstract contract or interface?)", artifactName)
	}
	if _, err := a.ABI.Pack("", args...); err != nil {
		return nil, fmt.Errorf("invalid constructor arguments: %w", err)
	}

	backend, txOpts, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(txOpts, a.ABI, a.Bytecode, backend, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send deployment: %w", err)
	}
	c.log.Info("deployment sent", "label", opts.Label, "tx", tx.Hash(), "address", address)

	receipt, err := c.waitFor(ctx, backend, tx, opts)
	if err != nil {
		return nil, err
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}

	return &domain.DeployReceipt{
		TxReceipt: toTxReceipt(receipt, opts.Confirmations),
		Address:   address,
	}, nil
}

// SubmitAndWait sends a state-changing call and waits for it to confirm
func (c *Client) SubmitAndWait(ctx context.Context, call domain.ContractCall, opts usecase.TxOptions) (*domain.TxReceipt, error) {
	a, err := c.artifacts.Get(call.Artifact)
	if err != nil {
		return nil, err
	}
	if _, err := a.ABI.Pack(call.Method, call.Args...); err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %w", call.Method, err)
	}

	backend, txOpts, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(call.Address, a.ABI, backend, backend, backend)
	tx, err := contract.Transact(txOpts, call.Method, call.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s: %w", call.Method, err)
	}
	c.log.Info("transaction sent", "label", opts.Label, "method", call.Method, "to", call.Address, "tx", tx.Hash())

	receipt, err := c.waitFor(ctx, backend, tx, opts)
	if err != nil {
		return nil, err
	}
	r := toTxReceipt(receipt, opts.Confirmations)
	return &r, nil
}

// Call performs a read-only contract call at the latest block
func (c *Client) Call(ctx context.Context, call domain.ContractCall) ([]any, error) {
	a, err := c.artifacts.Get(call.Artifact)
	if err != nil {
		return nil, err
	}
	if _, ok := a.ABI.Methods[call.Method]; !ok {
		return nil, fmt.Errorf("%w: method %s on %s", domain.ErrNotFound, call.Method, call.Artifact)
	}

	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(call.Address, a.ABI, backend, backend, backend)
	var out []any
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, call.Method, call.Args...); err != nil {
		return nil, fmt.Errorf("call %s.%s failed: %w", call.Artifact, call.Method, err)
	}
	return out, nil
}

// HasCode reports whether an address holds contract code
func (c *Client) HasCode(ctx context.Context, addr common.Address) (bool, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return false, err
	}
	code, err := backend.CodeAt(ctx, addr, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return len(code) > 0, nil
}

// waitFor blocks until a sent transaction is mined and confirmed. It ignores
// cancellation of ctx: once sent, a transaction is always followed to its receipt.
func (c *Client) waitFor(ctx context.Context, backend Backend, tx *types.Transaction, opts usecase.TxOptions) (*types.Receipt, error) {
	ctx = context.WithoutCancel(ctx)

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash(), err)
	}
	if err := checkReceipt(receipt); err != nil {
		return nil, err
	}

	if opts.Debug {
		c.log.Debug("mined", "label", opts.Label, "tx", tx.Hash(), "block", receipt.BlockNumber, "gasUsed", receipt.GasUsed)
	}

	var minedAt uint64
	if receipt.BlockNumber != nil {
		minedAt = receipt.BlockNumber.Uint64()
	}
	if err := waitConfirmations(ctx, backend, minedAt, opts.Confirmations, c.pollInterval); err != nil {
		return nil, err
	}
	return receipt, nil
}

// checkReceipt turns a failed receipt status into domain.ErrReverted
func checkReceipt(receipt *types.Receipt) error {
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: tx %s in block %v", domain.ErrReverted, receipt.TxHash, receipt.BlockNumber)
	}
	return nil
}

// waitConfirmations blocks until the transaction mined at minedAt has the given
// number of confirmations. The mining block counts as the first one.
func waitConfirmations(ctx context.Context, reader blockNumberReader, minedAt, confirmations uint64, interval time.Duration) error {
	if confirmations == 0 {
		return nil
	}
	target := minedAt + confirmations - 1

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		head, err := reader.BlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to read block number: %w", err)
		}
		if head >= target {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %d confirmations: %w", confirmations, ctx.Err())
		case <-ticker.C:
		}
	}
}

func toTxReceipt(receipt *types.Receipt, confirmations uint64) domain.TxReceipt {
	r := domain.TxReceipt{
		TxHash:        receipt.TxHash,
		GasUsed:       receipt.GasUsed,
		Confirmations: confirmations,
	}
	if receipt.BlockNumber != nil {
		r.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return r
}

var _ usecase.ChainClient = (*Client)(nil)
