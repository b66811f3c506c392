package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerABI = `[{"type":"constructor","inputs":[{"name":"owner","type":"address"}],"stateMutability":"nonpayable"},` +
	`{"type":"function","name":"setOwner","inputs":[{"name":"_owner","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}]`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestStore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "contracts", "core", "VoterProxy.sol", "VoterProxy.json"),
		`{"contractName":"VoterProxy","abi":`+ownerABI+`,"bytecode":"0x6080604052"}`)
	writeFile(t, filepath.Join(root, "contracts", "core", "VoterProxy.sol", "VoterProxy.dbg.json"),
		`{"buildInfo":"../../build-info/abc.json"}`)
	writeFile(t, filepath.Join(root, "build-info", "abc.json"), `{"input":{}}`)
	writeFile(t, filepath.Join(root, "out", "Booster.sol", "Booster.json"),
		`{"abi":`+ownerABI+`,"bytecode":{"object":"0x60806040","linkReferences":{}}}`)
	writeFile(t, filepath.Join(root, "a", "Token.json"), `{"abi":[],"bytecode":"0x00"}`)
	writeFile(t, filepath.Join(root, "b", "Token.json"), `{"abi":[],"bytecode":"0x00"}`)
	writeFile(t, filepath.Join(root, "c", "Linked.json"),
		`{"abi":[],"bytecode":"0x6080__$abcdef$__6040"}`)

	store := NewStoreAt(root)

	t.Run("hardhat layout", func(t *testing.T) {
		a, err := store.Get("VoterProxy")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, a.Bytecode)
		assert.Contains(t, a.ABI.Methods, "setOwner")
		require.Len(t, a.ABI.Constructor.Inputs, 1)
	})

	t.Run("foundry layout", func(t *testing.T) {
		a, err := store.Get("Booster")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40}, a.Bytecode)
	})

	t.Run("cached", func(t *testing.T) {
		a, err := store.Get("Booster")
		require.NoError(t, err)
		b, err := store.Get("Booster")
		require.NoError(t, err)
		assert.Same(t, a, b)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := store.Get("LiqToken")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, err := store.Get("Token")
		assert.ErrorContains(t, err, "ambiguous")
	})

	t.Run("unlinked", func(t *testing.T) {
		_, err := store.Get("Linked")
		assert.ErrorContains(t, err, "unlinked libraries")
	})

	t.Run("names skip debug and build info files", func(t *testing.T) {
		names, err := store.Names()
		require.NoError(t, err)
		assert.Equal(t, []string{"Booster", "Linked", "Token", "VoterProxy"}, names)
	})
}

func TestStoreMissingDirectory(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "artifacts"))

	_, err := store.Get("VoterProxy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifacts directory")
}
