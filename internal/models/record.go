// Package models defines the six ledger record types and their invariants.
//
// Records are immutable values: an edit never mutates in place, it goes
// through a builder seeded from the existing value and produces a full
// replacement carrying the same UUID and an advanced modified timestamp.
package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrValidation is wrapped by every builder rejection.
var ErrValidation = errors.New("validation failed")

// Record is implemented by all six ledger record types.
type Record interface {
	// Key returns the record's globally unique identifier.
	Key() uuid.UUID
	// LastModified returns the modification timestamp in milliseconds
	// since epoch. It is non-decreasing per UUID across valid edits.
	LastModified() int64
}

// MoneyScale is the fixed fractional scale for all monetary values and rates.
const MoneyScale = 6

// TimestampMillis returns the current wall clock in milliseconds since epoch.
// Edit timestamps are assigned from this on whichever device performs the edit.
func TimestampMillis() int64 {
	return time.Now().UnixMilli()
}

// normalizeAmount rescales a monetary value to MoneyScale fractional digits.
func normalizeAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// DisplayAmount rounds a monetary value half-up to 2 fractional digits for
// presentation. Stored values always keep the full MoneyScale precision.
func DisplayAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// dateOnly truncates a timestamp to day granularity in UTC. Transaction and
// closing dates are calendar dates; any time-of-day component would be lost
// on export, so builders strip it up front.
func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// resolveIdentity fills in UUID and timestamps for a freshly built record:
// zero UUID gets a random one, zero created/modified get the current time.
func resolveIdentity(id uuid.UUID, created, modified int64) (uuid.UUID, int64, int64) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := TimestampMillis()
	if created == 0 {
		created = now
	}
	if modified == 0 {
		modified = now
	}
	return id, created, modified
}
