package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

// ContractCall identifies a method invocation on a deployed contract.
// Artifact selects the ABI used to encode the call.
type ContractCall struct {
	Artifact string
	Address  common.Address
	Method   string
	Args     []any
}

// TxReceipt is the confirmed outcome of a submitted transaction.
type TxReceipt struct {
	TxHash        common.Hash `json:"txHash"`
	BlockNumber   uint64      `json:"blockNumber"`
	GasUsed       uint64      `json:"gasUsed"`
	Confirmations uint64      `json:"confirmations"`
}

// DeployReceipt is the confirmed outcome of a contract creation.
type DeployReceipt struct {
	TxReceipt
	Address common.Address `json:"address"`
}
