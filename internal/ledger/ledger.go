// Package ledger is the merge engine: the single write path that keeps the
// durable store and the in-memory cache in agreement. All imports are applied
// inside one storage transaction and published to the cache only after commit,
// so readers never observe a partial import.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pmoiseev/moneta/internal/cache"
	"github.com/pmoiseev/moneta/internal/common"
	"github.com/pmoiseev/moneta/internal/interfaces"
	"github.com/pmoiseev/moneta/internal/models"
)

// Ledger coordinates the durable store and the cache.
type Ledger struct {
	logger *common.Logger
	store  interfaces.LedgerStore
	cache  *cache.DataCache

	// importMu serializes imports process-wide. Reads stay concurrent.
	importMu sync.Mutex
}

// New wires the merge engine to its store and cache.
func New(logger *common.Logger, store interfaces.LedgerStore, dataCache *cache.DataCache) *Ledger {
	return &Ledger{
		logger: logger,
		store:  store,
		cache:  dataCache,
	}
}

// Cache exposes the read side.
func (l *Ledger) Cache() *cache.DataCache {
	return l.cache
}

// TableCounts tallies the merge outcome for one table.
type TableCounts struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Ignored  int `json:"ignored"`
}

// ImportSummary reports per-table merge outcomes.
type ImportSummary map[models.Kind]TableCounts

// Total sums the summary across tables.
func (s ImportSummary) Total() TableCounts {
	var total TableCounts
	for _, c := range s {
		total.Inserted += c.Inserted
		total.Updated += c.Updated
		total.Ignored += c.Ignored
	}
	return total
}

// orderedRecords returns the snapshot's records for one table in apply order.
// Transactions come top-level first so a split child never precedes its
// parent.
func orderedRecords(snap *models.Snapshot, kind models.Kind) []models.Record {
	var out []models.Record
	switch kind {
	case models.KindIcon:
		for _, r := range snap.Icons {
			out = append(out, r)
		}
	case models.KindCategory:
		for _, r := range snap.Categories {
			out = append(out, r)
		}
	case models.KindCurrency:
		for _, r := range snap.Currencies {
			out = append(out, r)
		}
	case models.KindContact:
		for _, r := range snap.Contacts {
			out = append(out, r)
		}
	case models.KindAccount:
		for _, r := range snap.Accounts {
			out = append(out, r)
		}
	case models.KindTransaction:
		for _, r := range snap.TopLevelTransactions() {
			out = append(out, r)
		}
		for _, r := range snap.ChildTransactions() {
			out = append(out, r)
		}
	}
	return out
}

// incomingIndex builds a per-table UUID index over the snapshot.
func incomingIndex(snap *models.Snapshot) map[models.Kind]map[uuid.UUID]models.Record {
	idx := make(map[models.Kind]map[uuid.UUID]models.Record, len(models.Kinds))
	for _, kind := range models.Kinds {
		table := make(map[uuid.UUID]models.Record)
		for _, rec := range orderedRecords(snap, kind) {
			table[rec.Key()] = rec
		}
		idx[kind] = table
	}
	return idx
}

// ImportFullDump replaces the entire ledger with the snapshot. Existing
// records are removed and the snapshot's records inserted in one storage
// transaction; the cache is rebuilt only after the commit succeeds.
func (l *Ledger) ImportFullDump(ctx context.Context, snap *models.Snapshot) error {
	l.importMu.Lock()
	defer l.importMu.Unlock()

	// A full dump must be self-contained: references resolve within the
	// snapshot alone.
	idx := incomingIndex(snap)
	resolve := func(kind models.Kind, id uuid.UUID) bool {
		_, ok := idx[kind][id]
		return ok
	}
	for _, kind := range models.Kinds {
		for _, rec := range orderedRecords(snap, kind) {
			if err := checkReferences(rec, resolve); err != nil {
				return err
			}
		}
	}

	current := l.cache.Snapshot()
	err := l.store.Batch(ctx, func(tx interfaces.LedgerWriter) error {
		for _, kind := range models.Kinds {
			for _, rec := range orderedRecords(current, kind) {
				if err := tx.Delete(kind, rec.Key()); err != nil {
					return err
				}
			}
		}
		for _, kind := range models.Kinds {
			for _, rec := range orderedRecords(snap, kind) {
				if err := tx.Insert(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: full import failed: %v", ErrStorage, err)
	}

	l.cache.ReplaceAll(snap)
	l.logger.Info().Int("records", snap.RecordCount()).Msg("Full import applied")
	return nil
}

// ImportRecords merges an incremental batch into the ledger. Each incoming
// record is inserted if absent, replaces the local copy if strictly newer,
// and is ignored otherwise. References must resolve against the merged view:
// locally present records plus the batch itself. The whole batch commits or
// rolls back as a unit.
func (l *Ledger) ImportRecords(ctx context.Context, snap *models.Snapshot) (ImportSummary, error) {
	l.importMu.Lock()
	defer l.importMu.Unlock()

	idx := incomingIndex(snap)
	resolve := func(kind models.Kind, id uuid.UUID) bool {
		if _, ok := idx[kind][id]; ok {
			return true
		}
		_, ok := l.cache.Lookup(kind, id)
		return ok
	}

	type change struct {
		rec    models.Record
		action Action
	}

	summary := make(ImportSummary, len(models.Kinds))
	var applied []change
	for _, kind := range models.Kinds {
		counts := TableCounts{}
		for _, rec := range orderedRecords(snap, kind) {
			local, found := l.cache.Lookup(kind, rec.Key())
			action := calculateAction(local, found, rec)
			switch action {
			case ActionInsert:
				counts.Inserted++
			case ActionUpdate:
				counts.Updated++
			case ActionIgnore:
				counts.Ignored++
				continue
			}
			if err := checkReferences(rec, resolve); err != nil {
				return nil, err
			}
			applied = append(applied, change{rec: rec, action: action})
		}
		summary[kind] = counts
	}

	if len(applied) > 0 {
		err := l.store.Batch(ctx, func(tx interfaces.LedgerWriter) error {
			for _, ch := range applied {
				var err error
				if ch.action == ActionInsert {
					err = tx.Insert(ch.rec)
				} else {
					err = tx.Update(ch.rec)
				}
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: incremental import failed: %v", ErrStorage, err)
		}
		for _, ch := range applied {
			l.cache.Put(ch.rec)
		}
	}

	total := summary.Total()
	l.logger.Info().
		Int("inserted", total.Inserted).
		Int("updated", total.Updated).
		Int("ignored", total.Ignored).
		Msg("Incremental import applied")
	return summary, nil
}

// Insert writes a single new record through to the store and cache.
func (l *Ledger) Insert(ctx context.Context, rec models.Record) error {
	l.importMu.Lock()
	defer l.importMu.Unlock()

	resolve := func(kind models.Kind, id uuid.UUID) bool {
		_, ok := l.cache.Lookup(kind, id)
		return ok
	}
	if err := checkReferences(rec, resolve); err != nil {
		return err
	}
	if err := l.store.Insert(rec); err != nil {
		return fmt.Errorf("%w: insert %s %s: %v", ErrStorage, kindOf(rec), rec.Key(), err)
	}
	l.cache.Put(rec)
	return nil
}

// Update replaces a single record in the store and cache.
func (l *Ledger) Update(ctx context.Context, rec models.Record) error {
	l.importMu.Lock()
	defer l.importMu.Unlock()

	resolve := func(kind models.Kind, id uuid.UUID) bool {
		_, ok := l.cache.Lookup(kind, id)
		return ok
	}
	if err := checkReferences(rec, resolve); err != nil {
		return err
	}
	if err := l.store.Update(rec); err != nil {
		return fmt.Errorf("%w: update %s %s: %v", ErrStorage, kindOf(rec), rec.Key(), err)
	}
	l.cache.Put(rec)
	return nil
}

// Delete removes a single record from the store and cache.
func (l *Ledger) Delete(ctx context.Context, kind models.Kind, id uuid.UUID) error {
	l.importMu.Lock()
	defer l.importMu.Unlock()

	if err := l.store.Delete(kind, id); err != nil {
		return fmt.Errorf("%w: delete %s %s: %v", ErrStorage, kind, id, err)
	}
	l.cache.Remove(kind, id)
	return nil
}
