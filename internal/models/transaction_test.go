package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTxBuilder() TransactionBuilder {
	return TransactionBuilder{
		Amount:              decimal.RequireFromString("100"),
		CreditAmount:        decimal.RequireFromString("100"),
		Date:                time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		AccountDebitedUUID:  uuid.New(),
		AccountCreditedUUID: uuid.New(),
	}
}

func TestTransactionBuilder_TruncatesDatesToDay(t *testing.T) {
	b := validTxBuilder()
	b.Date = time.Date(2024, time.May, 11, 13, 45, 30, 123456789, time.UTC)
	b.StatementDate = time.Date(2024, time.May, 12, 23, 59, 59, 0, time.UTC)

	tx, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.May, 11, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC), tx.StatementDate)
}

func TestTransactionBuilder_Defaults(t *testing.T) {
	tx, err := validTxBuilder().Build()
	require.NoError(t, err)

	assert.Equal(t, TxUndefined, tx.Type)
	assert.Equal(t, tx.Date, tx.StatementDate)
	assert.Equal(t, uuid.Nil, tx.ParentUUID)
	assert.False(t, tx.Detailed)
	assert.Equal(t, tx.Created, tx.Modified)
}

func TestTransactionBuilder_Validation(t *testing.T) {
	shared := uuid.New()

	tests := []struct {
		name   string
		mutate func(*TransactionBuilder)
	}{
		{"missing debited account", func(b *TransactionBuilder) { b.AccountDebitedUUID = uuid.Nil }},
		{"missing credited account", func(b *TransactionBuilder) { b.AccountCreditedUUID = uuid.Nil }},
		{"same account on both sides", func(b *TransactionBuilder) {
			b.AccountDebitedUUID = shared
			b.AccountCreditedUUID = shared
		}},
		{"negative amount", func(b *TransactionBuilder) { b.Amount = decimal.RequireFromString("-1") }},
		{"negative credit amount", func(b *TransactionBuilder) { b.CreditAmount = decimal.RequireFromString("-1") }},
		{"negative rate", func(b *TransactionBuilder) { b.Rate = decimal.RequireFromString("-2") }},
		{"bad rate direction", func(b *TransactionBuilder) { b.RateDirection = 2 }},
		{"missing date", func(b *TransactionBuilder) { b.Date = time.Time{} }},
		{"unknown type", func(b *TransactionBuilder) { b.Type = "wire" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validTxBuilder()
			tt.mutate(&b)
			_, err := b.Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestTransaction_ConvertedAmount(t *testing.T) {
	tests := []struct {
		name      string
		rate      string
		direction int
		want      string
	}{
		{"no conversion sentinel", "0", RateDivide, "100"},
		{"multiply", "2", RateMultiply, "200"},
		{"divide", "2", RateDivide, "50"},
		{"divide with repeating fraction", "3", RateDivide, "33.333333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validTxBuilder()
			b.Rate = decimal.RequireFromString(tt.rate)
			b.RateDirection = tt.direction
			tx, err := b.Build()
			require.NoError(t, err)
			assert.True(t, tx.ConvertedAmount().Equal(decimal.RequireFromString(tt.want)),
				"converted = %s, want %s", tx.ConvertedAmount(), tt.want)
		})
	}
}

func TestTransaction_NegatedAmount(t *testing.T) {
	tx, err := validTxBuilder().Build()
	require.NoError(t, err)
	assert.True(t, tx.NegatedAmount().Equal(decimal.RequireFromString("-100")))
}

func TestTransaction_CheckedCopy(t *testing.T) {
	tx, err := validTxBuilder().Build()
	require.NoError(t, err)

	b := tx.Builder()
	b.Checked = true
	b.Modified = TimestampMillis() + 1
	checked, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, tx.UUID, checked.UUID)
	assert.True(t, checked.Checked)
	assert.False(t, tx.Checked)
	assert.Greater(t, checked.Modified, tx.Modified)
}

func TestDisplayAmount_RoundsHalfUpToTwoDigits(t *testing.T) {
	assert.Equal(t, "10.13", DisplayAmount(decimal.RequireFromString("10.125")).StringFixed(2))
	assert.Equal(t, "10.12", DisplayAmount(decimal.RequireFromString("10.124999")).StringFixed(2))
}
