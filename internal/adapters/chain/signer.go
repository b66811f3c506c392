package chain

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DevChainID is the chain id of local hardhat and anvil nodes
const DevChainID = 31337

// devPrivateKey is the first account of the standard hardhat/anvil mnemonic
const devPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// LocalSigner signs transactions with an in-memory private key
type LocalSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewLocalSigner parses a hex private key, with or without 0x prefix.
// On the dev chain an empty key falls back to the first dev account.
func NewLocalSigner(privateKey string, chainID uint64) (*LocalSigner, error) {
	privateKey = strings.TrimPrefix(strings.TrimSpace(privateKey), "0x")
	if privateKey == "" {
		if chainID != DevChainID {
			return nil, fmt.Errorf("no private key configured (set LIQ_PRIVATE_KEY)")
		}
		privateKey = devPrivateKey
	}

	key, err := crypto.HexToECDSA(privateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &LocalSigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the signer's address
func (s *LocalSigner) Address() common.Address {
	return s.address
}

// TransactOpts builds bound-contract transaction options for chainID
func (s *LocalSigner) TransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(s.key, chainID)
}
