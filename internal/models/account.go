package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account belongs to exactly one category and holds its money in at most one
// currency or one security, never both.
type Account struct {
	UUID           uuid.UUID       `json:"uuid"`
	Name           string          `json:"name"`
	Comment        string          `json:"comment"`
	AccountNumber  string          `json:"account_number"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	AccountLimit   decimal.Decimal `json:"account_limit"`
	CurrencyRate   decimal.Decimal `json:"currency_rate"`
	Type           CategoryType    `json:"type"`
	CategoryUUID   uuid.UUID       `json:"category_uuid"`
	CurrencyUUID   uuid.UUID       `json:"currency_uuid"`
	SecurityUUID   uuid.UUID       `json:"security_uuid"`
	Enabled        bool            `json:"enabled"`
	Interest       decimal.Decimal `json:"interest"`
	ClosingDate    time.Time       `json:"closing_date"` // zero when open
	IconUUID       uuid.UUID       `json:"icon_uuid"`
	CardType       CardType        `json:"card_type"`
	CardNumber     string          `json:"card_number"`
	Created        int64           `json:"created"`
	Modified       int64           `json:"modified"`
}

func (a Account) Key() uuid.UUID      { return a.UUID }
func (a Account) LastModified() int64 { return a.Modified }

// AccountBuilder assembles an Account. The zero value describes a new,
// enabled record with zero balances and a unity currency rate.
type AccountBuilder struct {
	UUID           uuid.UUID
	Name           string
	Comment        string
	AccountNumber  string
	OpeningBalance decimal.Decimal
	AccountLimit   decimal.Decimal
	CurrencyRate   decimal.Decimal
	Type           CategoryType
	CategoryUUID   uuid.UUID
	CurrencyUUID   uuid.UUID
	SecurityUUID   uuid.UUID
	Disabled       bool
	Interest       decimal.Decimal
	ClosingDate    time.Time
	IconUUID       uuid.UUID
	CardType       CardType
	CardNumber     string
	Created        int64
	Modified       int64
}

// Build validates the builder and returns the immutable Account value.
func (b AccountBuilder) Build() (Account, error) {
	if b.Name == "" {
		return Account{}, fmt.Errorf("%w: account name cannot be blank", ErrValidation)
	}
	if !ValidCategoryType(b.Type) {
		return Account{}, fmt.Errorf("%w: unknown account type %q", ErrValidation, b.Type)
	}
	if b.CategoryUUID == uuid.Nil {
		return Account{}, fmt.Errorf("%w: account category cannot be empty", ErrValidation)
	}
	if b.CurrencyUUID != uuid.Nil && b.SecurityUUID != uuid.Nil {
		return Account{}, fmt.Errorf("%w: account currency and security references are mutually exclusive", ErrValidation)
	}
	if b.CardType == "" {
		b.CardType = CardNone
	}
	if !ValidCardType(b.CardType) {
		return Account{}, fmt.Errorf("%w: unknown card type %q", ErrValidation, b.CardType)
	}
	if b.CurrencyRate.IsZero() {
		b.CurrencyRate = decimal.New(1, 0)
	}
	b.ClosingDate = dateOnly(b.ClosingDate)

	id, created, modified := resolveIdentity(b.UUID, b.Created, b.Modified)
	return Account{
		UUID:           id,
		Name:           b.Name,
		Comment:        b.Comment,
		AccountNumber:  b.AccountNumber,
		OpeningBalance: normalizeAmount(b.OpeningBalance),
		AccountLimit:   normalizeAmount(b.AccountLimit),
		CurrencyRate:   normalizeAmount(b.CurrencyRate),
		Type:           b.Type,
		CategoryUUID:   b.CategoryUUID,
		CurrencyUUID:   b.CurrencyUUID,
		SecurityUUID:   b.SecurityUUID,
		Enabled:        !b.Disabled,
		Interest:       normalizeAmount(b.Interest),
		ClosingDate:    b.ClosingDate,
		IconUUID:       b.IconUUID,
		CardType:       b.CardType,
		CardNumber:     b.CardNumber,
		Created:        created,
		Modified:       modified,
	}, nil
}

// Builder returns a builder seeded from the existing record.
func (a Account) Builder() AccountBuilder {
	return AccountBuilder{
		UUID:           a.UUID,
		Name:           a.Name,
		Comment:        a.Comment,
		AccountNumber:  a.AccountNumber,
		OpeningBalance: a.OpeningBalance,
		AccountLimit:   a.AccountLimit,
		CurrencyRate:   a.CurrencyRate,
		Type:           a.Type,
		CategoryUUID:   a.CategoryUUID,
		CurrencyUUID:   a.CurrencyUUID,
		SecurityUUID:   a.SecurityUUID,
		Disabled:       !a.Enabled,
		Interest:       a.Interest,
		ClosingDate:    a.ClosingDate,
		IconUUID:       a.IconUUID,
		CardType:       a.CardType,
		CardNumber:     a.CardNumber,
		Created:        a.Created,
		Modified:       a.Modified,
	}
}
