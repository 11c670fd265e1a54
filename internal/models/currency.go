package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency describes a currency with display formatting flags and the live
// exchange rate against the default currency. The default flag is advisory:
// lookups take the first currency carrying it.
type Currency struct {
	UUID                 uuid.UUID       `json:"uuid"`
	Symbol               string          `json:"symbol"`
	Description          string          `json:"description"`
	FormatSymbol         string          `json:"format_symbol"`
	FormatSymbolPosition int             `json:"format_symbol_position"`
	ShowFormatSymbol     bool            `json:"show_format_symbol"`
	Default              bool            `json:"default"`
	Rate                 decimal.Decimal `json:"rate"`
	Direction            int             `json:"direction"`
	UseThousandSeparator bool            `json:"use_thousand_separator"`
	Created              int64           `json:"created"`
	Modified             int64           `json:"modified"`
}

func (c Currency) Key() uuid.UUID      { return c.UUID }
func (c Currency) LastModified() int64 { return c.Modified }

// CurrencyBuilder assembles a Currency. The zero value describes a new record
// except Rate, which must be set explicitly.
type CurrencyBuilder struct {
	UUID                 uuid.UUID
	Symbol               string
	Description          string
	FormatSymbol         string
	FormatSymbolPosition int
	ShowFormatSymbol     bool
	Default              bool
	Rate                 decimal.Decimal
	Direction            int
	UseThousandSeparator bool
	Created              int64
	Modified             int64
}

// Build validates the builder and returns the immutable Currency value.
func (b CurrencyBuilder) Build() (Currency, error) {
	if b.Symbol == "" {
		return Currency{}, fmt.Errorf("%w: currency symbol cannot be blank", ErrValidation)
	}
	if !b.Rate.IsPositive() {
		return Currency{}, fmt.Errorf("%w: currency rate must be positive, got %s", ErrValidation, b.Rate)
	}
	if !ValidRateDirection(b.Direction) {
		return Currency{}, fmt.Errorf("%w: currency rate direction must be 0 or 1, got %d", ErrValidation, b.Direction)
	}

	id, created, modified := resolveIdentity(b.UUID, b.Created, b.Modified)
	return Currency{
		UUID:                 id,
		Symbol:               b.Symbol,
		Description:          b.Description,
		FormatSymbol:         b.FormatSymbol,
		FormatSymbolPosition: b.FormatSymbolPosition,
		ShowFormatSymbol:     b.ShowFormatSymbol,
		Default:              b.Default,
		Rate:                 normalizeAmount(b.Rate),
		Direction:            b.Direction,
		UseThousandSeparator: b.UseThousandSeparator,
		Created:              created,
		Modified:             modified,
	}, nil
}

// Builder returns a builder seeded from the existing record.
func (c Currency) Builder() CurrencyBuilder {
	return CurrencyBuilder{
		UUID:                 c.UUID,
		Symbol:               c.Symbol,
		Description:          c.Description,
		FormatSymbol:         c.FormatSymbol,
		FormatSymbolPosition: c.FormatSymbolPosition,
		ShowFormatSymbol:     c.ShowFormatSymbol,
		Default:              c.Default,
		Rate:                 c.Rate,
		Direction:            c.Direction,
		UseThousandSeparator: c.UseThousandSeparator,
		Created:              c.Created,
		Modified:             c.Modified,
	}
}
