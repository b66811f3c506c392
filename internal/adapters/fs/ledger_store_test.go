package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerStore_LoadMissing(t *testing.T) {
	store := NewLedgerStoreAdapter()

	_, err := store.Load(context.Background(), filepath.Join(t.TempDir(), "contracts.json"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedgerStore_SaveAndLoad(t *testing.T) {
	store := NewLedgerStoreAdapter()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scripts", "contracts.hardhat.json")

	record := &config.NetworkConfig{
		Network: "hardhat",
		ChainID: 31337,
		Version: 2,
		Multisigs: config.MultisigConfig{
			DaoMultisig: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		},
		ExternalAddresses: config.ExternalConfig{
			BalancerPoolID: common.HexToHash("0x9232a548dd9e81bac65500b5e0d918f8ba93675c000200000000000000000423"),
		},
		Deployments: map[string]common.Address{
			"voterProxy": common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
			"liq":        common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"),
		},
	}

	require.NoError(t, store.Save(ctx, path, record))

	loaded, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, record, loaded)

	// no temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLedgerStore_FileFormat(t *testing.T) {
	store := NewLedgerStoreAdapter()
	path := filepath.Join(t.TempDir(), "contracts.json")

	proxy := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	require.NoError(t, store.Save(context.Background(), path, &config.NetworkConfig{
		Deployments: map[string]common.Address{"voterProxy": proxy},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"Deployments\": {\n    \"voterProxy\": \""+strings.ToLower(proxy.Hex())+"\"")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "externalAddresses")
	assert.Contains(t, raw, "multisigs")
}

func TestLedgerStore_Overwrite(t *testing.T) {
	store := NewLedgerStoreAdapter()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "contracts.json")

	first := &config.NetworkConfig{Version: 1, Deployments: map[string]common.Address{
		"voterProxy": common.HexToAddress("0x01"),
		"liq":        common.HexToAddress("0x02"),
	}}
	second := &config.NetworkConfig{Version: 2, Deployments: map[string]common.Address{
		"voterProxy": common.HexToAddress("0x03"),
	}}

	require.NoError(t, store.Save(ctx, path, first))
	require.NoError(t, store.Save(ctx, path, second))

	loaded, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, second.Deployments, loaded.Deployments)
	assert.Equal(t, uint64(2), loaded.Version)
}

func TestLedgerStore_Malformed(t *testing.T) {
	store := NewLedgerStoreAdapter()
	path := filepath.Join(t.TempDir(), "contracts.json")
	require.NoError(t, os.WriteFile(path, []byte("{\"Deployments\": "), 0644))

	_, err := store.Load(context.Background(), path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to parse ledger file")
}

func TestLedgerStore_FailedWriteKeepsLastGood(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	store := NewLedgerStoreAdapter()
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "contracts.json")

	good := &config.NetworkConfig{Version: 1, Deployments: map[string]common.Address{"voterProxy": common.HexToAddress("0x01")}}
	require.NoError(t, store.Save(ctx, path, good))

	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	err := store.Save(ctx, path, &config.NetworkConfig{Version: 2})
	require.Error(t, err)

	loaded, err := store.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, good.Deployments, loaded.Deployments)
}
