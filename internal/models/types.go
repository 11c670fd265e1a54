package models

// CategoryType classifies categories and the accounts that belong to them.
type CategoryType string

const (
	CategoryBanksAndCash CategoryType = "banks_and_cash"
	CategoryIncomes      CategoryType = "incomes"
	CategoryExpenses     CategoryType = "expenses"
	CategoryDebts        CategoryType = "debts"
	CategoryPortfolio    CategoryType = "portfolio"
	CategoryAssets       CategoryType = "assets"
)

// validCategoryTypes lists all accepted category types.
var validCategoryTypes = map[CategoryType]bool{
	CategoryBanksAndCash: true,
	CategoryIncomes:      true,
	CategoryExpenses:     true,
	CategoryDebts:        true,
	CategoryPortfolio:    true,
	CategoryAssets:       true,
}

// ValidCategoryType returns true if t is a recognized category type.
func ValidCategoryType(t CategoryType) bool {
	return validCategoryTypes[t]
}

// TransactionType categorizes the purpose of a transaction.
type TransactionType string

const (
	TxCardPayment   TransactionType = "card_payment"
	TxCashPurchase  TransactionType = "cash_purchase"
	TxCheque        TransactionType = "cheque"
	TxWithdrawal    TransactionType = "withdrawal"
	TxDeposit       TransactionType = "deposit"
	TxTransfer      TransactionType = "transfer"
	TxInterest      TransactionType = "interest"
	TxDividend      TransactionType = "dividend"
	TxDirectBilling TransactionType = "direct_billing"
	TxCharge        TransactionType = "charge"
	TxFee           TransactionType = "fee"
	TxIncome        TransactionType = "income"
	TxSale          TransactionType = "sale"
	TxRefund        TransactionType = "refund"
	TxUndefined     TransactionType = "undefined"
)

var validTransactionTypes = map[TransactionType]bool{
	TxCardPayment:   true,
	TxCashPurchase:  true,
	TxCheque:        true,
	TxWithdrawal:    true,
	TxDeposit:       true,
	TxTransfer:      true,
	TxInterest:      true,
	TxDividend:      true,
	TxDirectBilling: true,
	TxCharge:        true,
	TxFee:           true,
	TxIncome:        true,
	TxSale:          true,
	TxRefund:        true,
	TxUndefined:     true,
}

// ValidTransactionType returns true if t is a recognized transaction type.
func ValidTransactionType(t TransactionType) bool {
	return validTransactionTypes[t]
}

// ContactType classifies contacts.
type ContactType string

const (
	ContactPersonal ContactType = "personal"
	ContactClient   ContactType = "client"
	ContactSupplier ContactType = "supplier"
	ContactEmployee ContactType = "employee"
	ContactEmployer ContactType = "employer"
	ContactService  ContactType = "service"
)

var validContactTypes = map[ContactType]bool{
	ContactPersonal: true,
	ContactClient:   true,
	ContactSupplier: true,
	ContactEmployee: true,
	ContactEmployer: true,
	ContactService:  true,
}

// ValidContactType returns true if t is a recognized contact type.
func ValidContactType(t ContactType) bool {
	return validContactTypes[t]
}

// CardType classifies the payment card attached to an account.
type CardType string

const (
	CardNone       CardType = "none"
	CardVisa       CardType = "visa"
	CardMastercard CardType = "mastercard"
	CardAmex       CardType = "amex"
	CardMir        CardType = "mir"
)

var validCardTypes = map[CardType]bool{
	CardNone:       true,
	CardVisa:       true,
	CardMastercard: true,
	CardAmex:       true,
	CardMir:        true,
}

// ValidCardType returns true if t is a recognized card type.
func ValidCardType(t CardType) bool {
	return validCardTypes[t]
}

// Rate direction values, snapshotted on transactions and stored on currencies.
// RateDivide means "amount / rate"; RateMultiply means "amount * rate".
const (
	RateDivide   = 0
	RateMultiply = 1
)

// ValidRateDirection returns true for the two recognized direction values.
func ValidRateDirection(d int) bool {
	return d == RateDivide || d == RateMultiply
}
