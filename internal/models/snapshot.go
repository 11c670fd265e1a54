package models

// Kind identifies one of the six record tables.
type Kind string

const (
	KindIcon        Kind = "icon"
	KindCategory    Kind = "category"
	KindCurrency    Kind = "currency"
	KindContact     Kind = "contact"
	KindAccount     Kind = "account"
	KindTransaction Kind = "transaction"
)

// Kinds lists the tables in dependency order: referenced tables come before
// the tables that reference them, so inserts in this order never break a
// foreign key. Transactions additionally require parents before children.
var Kinds = []Kind{
	KindIcon,
	KindCategory,
	KindCurrency,
	KindAccount,
	KindContact,
	KindTransaction,
}

// Snapshot is a read-only copy of all six collections. Exports serialize it
// in dependency order so any export is re-importable; imports produce one
// from the raw source before reconciliation starts.
type Snapshot struct {
	Icons        []Icon
	Categories   []Category
	Currencies   []Currency
	Contacts     []Contact
	Accounts     []Account
	Transactions []Transaction
}

// RecordCount returns the total number of records across all collections.
func (s *Snapshot) RecordCount() int {
	return len(s.Icons) + len(s.Categories) + len(s.Currencies) +
		len(s.Contacts) + len(s.Accounts) + len(s.Transactions)
}

// TopLevelTransactions returns transactions without a parent reference.
func (s *Snapshot) TopLevelTransactions() []Transaction {
	var out []Transaction
	for _, t := range s.Transactions {
		if !t.IsChild() {
			out = append(out, t)
		}
	}
	return out
}

// ChildTransactions returns split children, which must be applied after
// their parents exist.
func (s *Snapshot) ChildTransactions() []Transaction {
	var out []Transaction
	for _, t := range s.Transactions {
		if t.IsChild() {
			out = append(out, t)
		}
	}
	return out
}
