// Package storage provides the top-level StorageManager owning the
// durable ledger store.
package storage

import (
	"fmt"

	"github.com/pmoiseev/moneta/internal/common"
	"github.com/pmoiseev/moneta/internal/interfaces"
	"github.com/pmoiseev/moneta/internal/storage/ledgerdb"
)

// Manager implements interfaces.StorageManager.
type Manager struct {
	ledger *ledgerdb.Store
	logger *common.Logger
}

// NewManager creates a new StorageManager from configuration.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ledgerStore, err := ledgerdb.NewStore(logger, config.Storage.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger store: %w", err)
	}

	logger.Info().
		Str("ledger", config.Storage.Ledger.Path).
		Msg("Storage manager initialized")

	return &Manager{
		ledger: ledgerStore,
		logger: logger,
	}, nil
}

func (m *Manager) Ledger() interfaces.LedgerStore {
	return m.ledger
}

func (m *Manager) Close() error {
	if m.ledger != nil {
		return m.ledger.Close()
	}
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
