// Package cache holds the in-memory copy of the ledger: one concurrent
// collection per record type, keyed by UUID, rebuilt from the durable store
// at process start and kept synchronized by the merge engine.
//
// The cache is an explicit object constructed once and passed by reference;
// there is no package-level instance. Readers may use it concurrently; all
// mutation goes through the merge engine's apply-then-publish path.
package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pmoiseev/moneta/internal/interfaces"
	"github.com/pmoiseev/moneta/internal/models"
)

// DataCache owns the six in-memory collections.
type DataCache struct {
	mu           sync.RWMutex
	icons        map[uuid.UUID]models.Icon
	categories   map[uuid.UUID]models.Category
	currencies   map[uuid.UUID]models.Currency
	contacts     map[uuid.UUID]models.Contact
	accounts     map[uuid.UUID]models.Account
	transactions map[uuid.UUID]models.Transaction
}

// New returns an empty DataCache.
func New() *DataCache {
	c := &DataCache{}
	c.reset()
	return c
}

// reset replaces all collections with empty maps. Caller must hold mu.
func (c *DataCache) reset() {
	c.icons = make(map[uuid.UUID]models.Icon)
	c.categories = make(map[uuid.UUID]models.Category)
	c.currencies = make(map[uuid.UUID]models.Currency)
	c.contacts = make(map[uuid.UUID]models.Contact)
	c.accounts = make(map[uuid.UUID]models.Account)
	c.transactions = make(map[uuid.UUID]models.Transaction)
}

// Clear empties all collections.
func (c *DataCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Reload rebuilds the cache from the durable store.
func (c *DataCache) Reload(ctx context.Context, store interfaces.LedgerStore) error {
	icons, err := store.GetAllIcons(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload cache: %w", err)
	}
	categories, err := store.GetAllCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload cache: %w", err)
	}
	currencies, err := store.GetAllCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload cache: %w", err)
	}
	contacts, err := store.GetAllContacts(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload cache: %w", err)
	}
	accounts, err := store.GetAllAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload cache: %w", err)
	}
	transactions, err := store.GetAllTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload cache: %w", err)
	}

	c.ReplaceAll(&models.Snapshot{
		Icons:        icons,
		Categories:   categories,
		Currencies:   currencies,
		Contacts:     contacts,
		Accounts:     accounts,
		Transactions: transactions,
	})
	return nil
}

// ReplaceAll swaps the entire cache contents for the snapshot's records.
func (c *DataCache) ReplaceAll(snap *models.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	for _, r := range snap.Icons {
		c.icons[r.UUID] = r
	}
	for _, r := range snap.Categories {
		c.categories[r.UUID] = r
	}
	for _, r := range snap.Currencies {
		c.currencies[r.UUID] = r
	}
	for _, r := range snap.Contacts {
		c.contacts[r.UUID] = r
	}
	for _, r := range snap.Accounts {
		c.accounts[r.UUID] = r
	}
	for _, r := range snap.Transactions {
		c.transactions[r.UUID] = r
	}
}

// Put stores the latest value for a record, inserting or replacing by UUID.
func (c *DataCache) Put(rec models.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch r := rec.(type) {
	case models.Icon:
		c.icons[r.UUID] = r
	case models.Category:
		c.categories[r.UUID] = r
	case models.Currency:
		c.currencies[r.UUID] = r
	case models.Contact:
		c.contacts[r.UUID] = r
	case models.Account:
		c.accounts[r.UUID] = r
	case models.Transaction:
		c.transactions[r.UUID] = r
	}
}

// Remove evicts a record by kind and UUID.
func (c *DataCache) Remove(kind models.Kind, id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch kind {
	case models.KindIcon:
		delete(c.icons, id)
	case models.KindCategory:
		delete(c.categories, id)
	case models.KindCurrency:
		delete(c.currencies, id)
	case models.KindContact:
		delete(c.contacts, id)
	case models.KindAccount:
		delete(c.accounts, id)
	case models.KindTransaction:
		delete(c.transactions, id)
	}
}

//
// Lookups
//

func (c *DataCache) Icon(id uuid.UUID) (models.Icon, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.icons[id]
	return r, ok
}

func (c *DataCache) Category(id uuid.UUID) (models.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.categories[id]
	return r, ok
}

func (c *DataCache) Currency(id uuid.UUID) (models.Currency, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.currencies[id]
	return r, ok
}

func (c *DataCache) Contact(id uuid.UUID) (models.Contact, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.contacts[id]
	return r, ok
}

func (c *DataCache) Account(id uuid.UUID) (models.Account, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.accounts[id]
	return r, ok
}

func (c *DataCache) Transaction(id uuid.UUID) (models.Transaction, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.transactions[id]
	return r, ok
}

// DefaultCurrency returns the currency flagged as default, if any.
func (c *DataCache) DefaultCurrency() (models.Currency, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, cur := range c.currencies {
		if cur.Default {
			return cur, true
		}
	}
	return models.Currency{}, false
}

// CategoriesByType returns all categories with one of the given types.
func (c *DataCache) CategoriesByType(types ...models.CategoryType) []models.Category {
	wanted := make(map[models.CategoryType]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Category
	for _, cat := range c.categories {
		if wanted[cat.Type] {
			out = append(out, cat)
		}
	}
	return out
}

// AccountsByCategory returns all accounts belonging to the category.
func (c *DataCache) AccountsByCategory(categoryUUID uuid.UUID) []models.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Account
	for _, acc := range c.accounts {
		if acc.CategoryUUID == categoryUUID {
			out = append(out, acc)
		}
	}
	return out
}

// TransactionsByAccount returns all transactions where the account is the
// debited or credited party, split children included.
func (c *DataCache) TransactionsByAccount(accountUUID uuid.UUID) []models.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Transaction
	for _, tx := range c.transactions {
		if tx.AccountDebitedUUID == accountUUID || tx.AccountCreditedUUID == accountUUID {
			out = append(out, tx)
		}
	}
	return out
}

// TransactionDetails returns the split children of a detailed transaction.
func (c *DataCache) TransactionDetails(parent models.Transaction) []models.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Transaction
	for _, tx := range c.transactions {
		if tx.ParentUUID == parent.UUID {
			out = append(out, tx)
		}
	}
	return out
}

// Snapshot returns a copy of all collections with each slice sorted by UUID,
// so repeated snapshots of identical contents are identical. Exports consume
// this; the caller owns the result.
func (c *DataCache) Snapshot() *models.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := &models.Snapshot{
		Icons:        make([]models.Icon, 0, len(c.icons)),
		Categories:   make([]models.Category, 0, len(c.categories)),
		Currencies:   make([]models.Currency, 0, len(c.currencies)),
		Contacts:     make([]models.Contact, 0, len(c.contacts)),
		Accounts:     make([]models.Account, 0, len(c.accounts)),
		Transactions: make([]models.Transaction, 0, len(c.transactions)),
	}
	for _, r := range c.icons {
		snap.Icons = append(snap.Icons, r)
	}
	for _, r := range c.categories {
		snap.Categories = append(snap.Categories, r)
	}
	for _, r := range c.currencies {
		snap.Currencies = append(snap.Currencies, r)
	}
	for _, r := range c.contacts {
		snap.Contacts = append(snap.Contacts, r)
	}
	for _, r := range c.accounts {
		snap.Accounts = append(snap.Accounts, r)
	}
	for _, r := range c.transactions {
		snap.Transactions = append(snap.Transactions, r)
	}

	sort.Slice(snap.Icons, func(i, j int) bool { return snap.Icons[i].UUID.String() < snap.Icons[j].UUID.String() })
	sort.Slice(snap.Categories, func(i, j int) bool { return snap.Categories[i].UUID.String() < snap.Categories[j].UUID.String() })
	sort.Slice(snap.Currencies, func(i, j int) bool { return snap.Currencies[i].UUID.String() < snap.Currencies[j].UUID.String() })
	sort.Slice(snap.Contacts, func(i, j int) bool { return snap.Contacts[i].UUID.String() < snap.Contacts[j].UUID.String() })
	sort.Slice(snap.Accounts, func(i, j int) bool { return snap.Accounts[i].UUID.String() < snap.Accounts[j].UUID.String() })
	sort.Slice(snap.Transactions, func(i, j int) bool { return snap.Transactions[i].UUID.String() < snap.Transactions[j].UUID.String() })

	return snap
}

// Lookup finds the cached record of the given kind, if present. Used by the
// merge engine to compare incoming records against local state.
func (c *DataCache) Lookup(kind models.Kind, id uuid.UUID) (models.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch kind {
	case models.KindIcon:
		r, ok := c.icons[id]
		return r, ok
	case models.KindCategory:
		r, ok := c.categories[id]
		return r, ok
	case models.KindCurrency:
		r, ok := c.currencies[id]
		return r, ok
	case models.KindContact:
		r, ok := c.contacts[id]
		return r, ok
	case models.KindAccount:
		r, ok := c.accounts[id]
		return r, ok
	case models.KindTransaction:
		r, ok := c.transactions[id]
		return r, ok
	}
	return nil, false
}
