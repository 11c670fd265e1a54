// Package interfaces defines collaborator contracts for Moneta
package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/pmoiseev/moneta/internal/models"
)

// LedgerStore is the durable, authoritative copy of the ledger. The SQL or
// key-value engine behind it is an implementation detail; the merge engine
// only relies on this contract.
type LedgerStore interface {
	LedgerWriter

	// CreateTables prepares empty tables for all six record kinds.
	CreateTables(ctx context.Context) error
	// DropTables destroys all six tables and their contents. Irreversible.
	DropTables(ctx context.Context) error

	GetAllIcons(ctx context.Context) ([]models.Icon, error)
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetAllCurrencies(ctx context.Context) ([]models.Currency, error)
	GetAllContacts(ctx context.Context) ([]models.Contact, error)
	GetAllAccounts(ctx context.Context) ([]models.Account, error)
	GetAllTransactions(ctx context.Context) ([]models.Transaction, error)

	// Batch runs fn inside a single storage transaction. Writes issued
	// through the LedgerWriter passed to fn become visible atomically on
	// commit; any error from fn rolls everything back.
	Batch(ctx context.Context, fn func(tx LedgerWriter) error) error

	Close() error
}

// LedgerWriter is the write surface shared by direct store access and the
// transactional batch.
type LedgerWriter interface {
	Insert(rec models.Record) error
	Update(rec models.Record) error
	Delete(kind models.Kind, id uuid.UUID) error
}

// StorageManager coordinates the storage areas.
type StorageManager interface {
	Ledger() LedgerStore
	Close() error
}
