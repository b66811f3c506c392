package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
)

// LedgerStoreAdapter implements LedgerStore with one JSON file per network
type LedgerStoreAdapter struct{}

// NewLedgerStoreAdapter creates a new LedgerStoreAdapter
func NewLedgerStoreAdapter() *LedgerStoreAdapter {
	return &LedgerStoreAdapter{}
}

// Load reads a ledger file. Returns domain.ErrNotFound if it does not exist.
func (s *LedgerStoreAdapter) Load(_ context.Context, path string) (*config.NetworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	var record config.NetworkConfig
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse ledger file: %w", err)
	}

	return &record, nil
}

// Save writes the full record, replacing the previous file. The data goes to a
// temporary file in the same directory first, so a failed write leaves the last
// good ledger in place.
func (s *LedgerStoreAdapter) Save(_ context.Context, path string, record *config.NetworkConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary ledger file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write ledger file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close ledger file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set ledger permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}

	return nil
}

// Ensure LedgerStoreAdapter implements LedgerStore
var _ usecase.LedgerStore = (*LedgerStoreAdapter)(nil)
