// Package ledgerdb implements interfaces.LedgerStore using BadgerHold.
// Records are keyed by UUID string; BadgerHold namespaces the six record
// types so identical UUIDs in different tables never collide.
package ledgerdb

import (
	"context"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/pmoiseev/moneta/internal/common"
	"github.com/pmoiseev/moneta/internal/interfaces"
	"github.com/pmoiseev/moneta/internal/models"
)

// Store implements interfaces.LedgerStore using BadgerHold.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a new LedgerStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger db path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger db at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("LedgerDB opened")
	return &Store{db: db, logger: logger}, nil
}

// zeroValue returns the empty record value used to address a table.
func zeroValue(kind models.Kind) (interface{}, error) {
	switch kind {
	case models.KindIcon:
		return models.Icon{}, nil
	case models.KindCategory:
		return models.Category{}, nil
	case models.KindCurrency:
		return models.Currency{}, nil
	case models.KindContact:
		return models.Contact{}, nil
	case models.KindAccount:
		return models.Account{}, nil
	case models.KindTransaction:
		return models.Transaction{}, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
}

// CreateTables prepares the store for a fresh dataset. BadgerHold creates
// tables lazily on first insert, so this only verifies the store is open.
func (s *Store) CreateTables(_ context.Context) error {
	if s.db == nil {
		return fmt.Errorf("ledger db is closed")
	}
	s.logger.Debug().Msg("Ledger tables ready")
	return nil
}

// DropTables deletes every record of every kind. Irreversible.
func (s *Store) DropTables(_ context.Context) error {
	for _, kind := range models.Kinds {
		zero, err := zeroValue(kind)
		if err != nil {
			return err
		}
		if err := s.db.DeleteMatching(zero, nil); err != nil {
			return fmt.Errorf("failed to drop %s table: %w", kind, err)
		}
	}
	s.logger.Info().Msg("Ledger tables dropped")
	return nil
}

func (s *Store) Insert(rec models.Record) error {
	if err := s.db.Insert(rec.Key().String(), rec); err != nil {
		return fmt.Errorf("failed to insert record %s: %w", rec.Key(), err)
	}
	return nil
}

func (s *Store) Update(rec models.Record) error {
	if err := s.db.Update(rec.Key().String(), rec); err != nil {
		return fmt.Errorf("failed to update record %s: %w", rec.Key(), err)
	}
	return nil
}

func (s *Store) Delete(kind models.Kind, id uuid.UUID) error {
	zero, err := zeroValue(kind)
	if err != nil {
		return err
	}
	if err := s.db.Delete(id.String(), zero); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	return nil
}

func (s *Store) GetAllIcons(_ context.Context) ([]models.Icon, error) {
	var out []models.Icon
	if err := s.db.Find(&out, nil); err != nil {
		return nil, fmt.Errorf("failed to load icons: %w", err)
	}
	return out, nil
}

func (s *Store) GetAllCategories(_ context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := s.db.Find(&out, nil); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return out, nil
}

func (s *Store) GetAllCurrencies(_ context.Context) ([]models.Currency, error) {
	var out []models.Currency
	if err := s.db.Find(&out, nil); err != nil {
		return nil, fmt.Errorf("failed to load currencies: %w", err)
	}
	return out, nil
}

func (s *Store) GetAllContacts(_ context.Context) ([]models.Contact, error) {
	var out []models.Contact
	if err := s.db.Find(&out, nil); err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	return out, nil
}

func (s *Store) GetAllAccounts(_ context.Context) ([]models.Account, error) {
	var out []models.Account
	if err := s.db.Find(&out, nil); err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	return out, nil
}

func (s *Store) GetAllTransactions(_ context.Context) ([]models.Transaction, error) {
	var out []models.Transaction
	if err := s.db.Find(&out, nil); err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return out, nil
}

// txWriter adapts a Badger transaction to the LedgerWriter contract.
type txWriter struct {
	db *badgerhold.Store
	tx *badger.Txn
}

func (w *txWriter) Insert(rec models.Record) error {
	if err := w.db.TxInsert(w.tx, rec.Key().String(), rec); err != nil {
		return fmt.Errorf("failed to insert record %s: %w", rec.Key(), err)
	}
	return nil
}

func (w *txWriter) Update(rec models.Record) error {
	if err := w.db.TxUpdate(w.tx, rec.Key().String(), rec); err != nil {
		return fmt.Errorf("failed to update record %s: %w", rec.Key(), err)
	}
	return nil
}

func (w *txWriter) Delete(kind models.Kind, id uuid.UUID) error {
	zero, err := zeroValue(kind)
	if err != nil {
		return err
	}
	if err := w.db.TxDelete(w.tx, id.String(), zero); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	return nil
}

// Batch runs fn inside a single Badger transaction. All writes commit
// together; any error from fn discards every write.
func (s *Store) Batch(_ context.Context, fn func(tx interfaces.LedgerWriter) error) error {
	return s.db.Badger().Update(func(tx *badger.Txn) error {
		return fn(&txWriter{db: s.db, tx: tx})
	})
}

// Close shuts down the BadgerHold database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check
var _ interfaces.LedgerStore = (*Store)(nil)
