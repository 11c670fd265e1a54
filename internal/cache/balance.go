package cache

import (
	"github.com/shopspring/decimal"

	"github.com/pmoiseev/moneta/internal/models"
)

// TransactionFilter selects which transactions contribute to a balance.
type TransactionFilter func(models.Transaction) bool

// AllTransactions accepts every transaction.
func AllTransactions(models.Transaction) bool { return true }

// CheckedOnly accepts reconciled transactions.
func CheckedOnly(t models.Transaction) bool { return t.Checked }

// UncheckedOnly accepts transactions not yet reconciled.
func UncheckedOnly(t models.Transaction) bool { return !t.Checked }

// CalculateBalance computes an account balance from cached transactions.
//
// When includeOpening is set the balance is seeded with the account's opening
// balance plus its credit limit; otherwise it starts at zero. Only top-level
// transactions are counted, so split children never contribute twice. For a
// credited account the transaction's converted amount is added; for a debited
// account the raw amount is subtracted, since the amount is always expressed
// in the debited account's currency.
func (c *DataCache) CalculateBalance(account models.Account, includeOpening bool, filter TransactionFilter) decimal.Decimal {
	if filter == nil {
		filter = AllTransactions
	}

	balance := decimal.Zero
	if includeOpening {
		balance = account.OpeningBalance.Add(account.AccountLimit)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, tx := range c.transactions {
		if tx.IsChild() || !filter(tx) {
			continue
		}
		switch account.UUID {
		case tx.AccountCreditedUUID:
			balance = balance.Add(tx.ConvertedAmount())
		case tx.AccountDebitedUUID:
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// CalculateTotal sums the full balances of the given accounts, converting
// each into the default currency via the account's stored exchange rate.
func (c *DataCache) CalculateTotal(includeOpening bool, accounts ...models.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		balance := c.CalculateBalance(acc, includeOpening, AllTransactions)
		rate := acc.CurrencyRate
		if rate.IsZero() {
			rate = decimal.NewFromInt(1)
		}
		total = total.Add(balance.Mul(rate).Round(models.MoneyScale))
	}
	return total
}

// TotalAmount sums the signed amounts of the given transactions, as shown in
// statement views.
func TotalAmount(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.SignedAmount())
	}
	return total
}

// DetailDelta reports how far the split children diverge from their parent:
// the parent amount minus the sum of child amounts. Zero means the split is
// fully allocated.
func DetailDelta(parent models.Transaction, children []models.Transaction) decimal.Decimal {
	delta := parent.Amount
	for _, child := range children {
		delta = delta.Sub(child.Amount)
	}
	return delta
}
