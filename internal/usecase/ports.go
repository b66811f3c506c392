package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
)

// TxOptions controls how a transaction is awaited
type TxOptions struct {
	// Label names the transaction in logs
	Label string
	// Confirmations is the number of blocks to wait on top of the mining block
	Confirmations uint64
	// Debug logs gas and block details of every receipt
	Debug bool
}

// ChainClient submits transactions and reads contract state. Every write
// blocks until the receipt is mined and confirmed.
type ChainClient interface {
	// Deployer is the address transactions are sent from
	Deployer() common.Address
	DeployContract(ctx context.Context, artifact string, args []any, opts TxOptions) (*domain.DeployReceipt, error)
	SubmitAndWait(ctx context.Context, call domain.ContractCall, opts TxOptions) (*domain.TxReceipt, error)
	Call(ctx context.Context, call domain.ContractCall) ([]any, error)
	HasCode(ctx context.Context, addr common.Address) (bool, error)
}

// LedgerStore persists per-network deployment records.
// Load returns domain.ErrNotFound when the ledger does not exist yet.
type LedgerStore interface {
	Load(ctx context.Context, path string) (*config.NetworkConfig, error)
	Save(ctx context.Context, path string, record *config.NetworkConfig) error
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// NetworkSelector handles interactive selection of a network
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string) (string, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata any
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Progress stages emitted by the prelaunch flow
const (
	StageDeployStarting  = "deploy_starting"
	StageDeploySkipped   = "deploy_skipped"
	StageDeployCompleted = "deploy_completed"
	StageWiringStarting  = "wiring_starting"
	StageWiringCompleted = "wiring_completed"
)
