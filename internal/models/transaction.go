package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a double-entry record naming exactly one debited and one
// credited account. Amount is always denominated in the debited account's
// currency; Rate and RateDirection are snapshotted at creation time so that
// historical balances stay stable when a currency's live rate changes later.
//
// A detailed transaction owns child transactions whose ParentUUID equals its
// own UUID. Children are informational; only top-level transactions
// contribute to balances.
type Transaction struct {
	UUID                       uuid.UUID       `json:"uuid"`
	Amount                     decimal.Decimal `json:"amount"`
	CreditAmount               decimal.Decimal `json:"credit_amount"`
	Date                       time.Time       `json:"date"`
	Type                       TransactionType `json:"type"`
	Comment                    string          `json:"comment"`
	Checked                    bool            `json:"checked"`
	AccountDebitedUUID         uuid.UUID       `json:"account_debited_uuid"`
	AccountCreditedUUID        uuid.UUID       `json:"account_credited_uuid"`
	AccountDebitedType         CategoryType    `json:"account_debited_type"`
	AccountCreditedType        CategoryType    `json:"account_credited_type"`
	AccountDebitedCategoryUUID uuid.UUID       `json:"account_debited_category_uuid"`
	AccountCreditedCategoryUUID uuid.UUID      `json:"account_credited_category_uuid"`
	ContactUUID                uuid.UUID       `json:"contact_uuid"`
	Rate                       decimal.Decimal `json:"rate"`
	RateDirection              int             `json:"rate_direction"`
	InvoiceNumber              string          `json:"invoice_number"`
	ParentUUID                 uuid.UUID       `json:"parent_uuid"` // uuid.Nil for top-level
	Detailed                   bool            `json:"detailed"`
	StatementDate              time.Time       `json:"statement_date"`
	Created                    int64           `json:"created"`
	Modified                   int64           `json:"modified"`
}

func (t Transaction) Key() uuid.UUID      { return t.UUID }
func (t Transaction) LastModified() int64 { return t.Modified }

// ConvertedAmount returns the credited-side contribution: the amount scaled
// by the snapshotted rate. Rate zero is the sentinel for "accounts share a
// currency" and leaves the amount unchanged.
func (t Transaction) ConvertedAmount() decimal.Decimal {
	if t.Rate.IsZero() {
		return t.Amount
	}
	switch t.RateDirection {
	case RateMultiply:
		return normalizeAmount(t.Amount.Mul(t.Rate))
	default:
		return t.Amount.DivRound(t.Rate, MoneyScale)
	}
}

// NegatedAmount returns the debited-side contribution. No conversion: the
// amount is already in the debited account's currency.
func (t Transaction) NegatedAmount() decimal.Decimal {
	return t.Amount.Neg()
}

// IsChild reports whether the transaction is a split child.
func (t Transaction) IsChild() bool {
	return t.ParentUUID != uuid.Nil
}

// SignedAmount renders the amount with a sign reflecting flow direction
// across category types, matching how statements present it.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.AccountCreditedType != t.AccountDebitedType && t.AccountDebitedType != CategoryIncomes {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionBuilder assembles a Transaction. The zero value is not valid:
// both account references and the date are required.
type TransactionBuilder struct {
	UUID                        uuid.UUID
	Amount                      decimal.Decimal
	CreditAmount                decimal.Decimal
	Date                        time.Time
	Type                        TransactionType
	Comment                     string
	Checked                     bool
	AccountDebitedUUID          uuid.UUID
	AccountCreditedUUID         uuid.UUID
	AccountDebitedType          CategoryType
	AccountCreditedType         CategoryType
	AccountDebitedCategoryUUID  uuid.UUID
	AccountCreditedCategoryUUID uuid.UUID
	ContactUUID                 uuid.UUID
	Rate                        decimal.Decimal
	RateDirection               int
	InvoiceNumber               string
	ParentUUID                  uuid.UUID
	Detailed                    bool
	StatementDate               time.Time
	Created                     int64
	Modified                    int64
}

// Build validates the builder and returns the immutable Transaction value.
func (b TransactionBuilder) Build() (Transaction, error) {
	if b.AccountDebitedUUID == uuid.Nil {
		return Transaction{}, fmt.Errorf("%w: debited account cannot be empty", ErrValidation)
	}
	if b.AccountCreditedUUID == uuid.Nil {
		return Transaction{}, fmt.Errorf("%w: credited account cannot be empty", ErrValidation)
	}
	if b.AccountDebitedUUID == b.AccountCreditedUUID {
		return Transaction{}, fmt.Errorf("%w: debited and credited accounts must differ", ErrValidation)
	}
	if b.Amount.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: transaction amount cannot be negative, got %s", ErrValidation, b.Amount)
	}
	if b.CreditAmount.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: transaction credit amount cannot be negative, got %s", ErrValidation, b.CreditAmount)
	}
	if b.Rate.IsNegative() {
		return Transaction{}, fmt.Errorf("%w: transaction rate cannot be negative, got %s", ErrValidation, b.Rate)
	}
	if !ValidRateDirection(b.RateDirection) {
		return Transaction{}, fmt.Errorf("%w: transaction rate direction must be 0 or 1, got %d", ErrValidation, b.RateDirection)
	}
	if b.Date.IsZero() {
		return Transaction{}, fmt.Errorf("%w: transaction date cannot be empty", ErrValidation)
	}
	b.Date = dateOnly(b.Date)
	b.StatementDate = dateOnly(b.StatementDate)
	if b.Type == "" {
		b.Type = TxUndefined
	}
	if !ValidTransactionType(b.Type) {
		return Transaction{}, fmt.Errorf("%w: unknown transaction type %q", ErrValidation, b.Type)
	}
	if b.StatementDate.IsZero() {
		b.StatementDate = b.Date
	}

	id, created, modified := resolveIdentity(b.UUID, b.Created, b.Modified)
	return Transaction{
		UUID:                        id,
		Amount:                      normalizeAmount(b.Amount),
		CreditAmount:                normalizeAmount(b.CreditAmount),
		Date:                        b.Date,
		Type:                        b.Type,
		Comment:                     b.Comment,
		Checked:                     b.Checked,
		AccountDebitedUUID:          b.AccountDebitedUUID,
		AccountCreditedUUID:         b.AccountCreditedUUID,
		AccountDebitedType:          b.AccountDebitedType,
		AccountCreditedType:         b.AccountCreditedType,
		AccountDebitedCategoryUUID:  b.AccountDebitedCategoryUUID,
		AccountCreditedCategoryUUID: b.AccountCreditedCategoryUUID,
		ContactUUID:                 b.ContactUUID,
		Rate:                        normalizeAmount(b.Rate),
		RateDirection:               b.RateDirection,
		InvoiceNumber:               b.InvoiceNumber,
		ParentUUID:                  b.ParentUUID,
		Detailed:                    b.Detailed,
		StatementDate:               b.StatementDate,
		Created:                     created,
		Modified:                    modified,
	}, nil
}

// Builder returns a builder seeded from the existing record.
func (t Transaction) Builder() TransactionBuilder {
	return TransactionBuilder{
		UUID:                        t.UUID,
		Amount:                      t.Amount,
		CreditAmount:                t.CreditAmount,
		Date:                        t.Date,
		Type:                        t.Type,
		Comment:                     t.Comment,
		Checked:                     t.Checked,
		AccountDebitedUUID:          t.AccountDebitedUUID,
		AccountCreditedUUID:         t.AccountCreditedUUID,
		AccountDebitedType:          t.AccountDebitedType,
		AccountCreditedType:         t.AccountCreditedType,
		AccountDebitedCategoryUUID:  t.AccountDebitedCategoryUUID,
		AccountCreditedCategoryUUID: t.AccountCreditedCategoryUUID,
		ContactUUID:                 t.ContactUUID,
		Rate:                        t.Rate,
		RateDirection:               t.RateDirection,
		InvoiceNumber:               t.InvoiceNumber,
		ParentUUID:                  t.ParentUUID,
		Detailed:                    t.Detailed,
		StatementDate:               t.StatementDate,
		Created:                     t.Created,
		Modified:                    t.Modified,
	}
}
