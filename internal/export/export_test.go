package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmoiseev/moneta/internal/models"
)

func fullSnapshot(t *testing.T) *models.Snapshot {
	t.Helper()

	icon, err := models.IconBuilder{
		Name:  "wallet.png",
		Bytes: []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff},
	}.Build()
	require.NoError(t, err)

	category, err := models.CategoryBuilder{
		Name:     "Cash",
		Comment:  "pocket money",
		Type:     models.CategoryBanksAndCash,
		IconUUID: icon.UUID,
	}.Build()
	require.NoError(t, err)

	currency, err := models.CurrencyBuilder{
		Symbol:      "EUR",
		Description: "Euro",
		Default:     true,
		Rate:        decimal.RequireFromString("1.0825"),
	}.Build()
	require.NoError(t, err)

	contact, err := models.ContactBuilder{
		Name:  "Corner Shop",
		Type:  models.ContactSupplier,
		Email: "shop@example.com",
		City:  "Lisbon",
	}.Build()
	require.NoError(t, err)

	debited, err := models.AccountBuilder{
		Name:           "Checking",
		Type:           models.CategoryBanksAndCash,
		CategoryUUID:   category.UUID,
		CurrencyUUID:   currency.UUID,
		OpeningBalance: decimal.RequireFromString("1500.50"),
		AccountLimit:   decimal.RequireFromString("200"),
	}.Build()
	require.NoError(t, err)

	credited, err := models.AccountBuilder{
		Name:         "Groceries",
		Type:         models.CategoryExpenses,
		CategoryUUID: category.UUID,
		CurrencyUUID: currency.UUID,
	}.Build()
	require.NoError(t, err)

	parent, err := models.TransactionBuilder{
		Amount:              decimal.RequireFromString("42.37"),
		Date:                time.Date(2024, time.May, 11, 0, 0, 0, 0, time.UTC),
		Type:                models.TxCardPayment,
		Comment:             "weekly shop",
		Checked:             true,
		AccountDebitedUUID:  debited.UUID,
		AccountCreditedUUID: credited.UUID,
		AccountDebitedType:  debited.Type,
		AccountCreditedType: credited.Type,
		ContactUUID:         contact.UUID,
		Rate:                decimal.RequireFromString("1.0825"),
		RateDirection:       models.RateMultiply,
		Detailed:            true,
	}.Build()
	require.NoError(t, err)

	child, err := models.TransactionBuilder{
		Amount:              decimal.RequireFromString("12.37"),
		Date:                parent.Date,
		Type:                parent.Type,
		AccountDebitedUUID:  debited.UUID,
		AccountCreditedUUID: credited.UUID,
		ParentUUID:          parent.UUID,
	}.Build()
	require.NoError(t, err)

	return &models.Snapshot{
		Icons:        []models.Icon{icon},
		Categories:   []models.Category{category},
		Currencies:   []models.Currency{currency},
		Contacts:     []models.Contact{contact},
		Accounts:     []models.Account{debited, credited},
		Transactions: []models.Transaction{parent, child},
	}
}

func TestRoundTrip(t *testing.T) {
	snap := fullSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, snap))

	got, err := Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, snap.Icons, got.Icons)
	assert.Equal(t, snap.Categories, got.Categories)
	assert.Equal(t, snap.Currencies, got.Currencies)
	assert.Equal(t, snap.Contacts, got.Contacts)
	assert.Equal(t, snap.Accounts, got.Accounts)
	assert.Equal(t, snap.Transactions, got.Transactions)
}

func TestRoundTrip_TransactionWithTimeOfDay(t *testing.T) {
	snap := fullSnapshot(t)
	accounts := snap.Accounts

	tx, err := models.TransactionBuilder{
		Amount:              decimal.RequireFromString("7.5"),
		Date:                time.Date(2024, time.May, 11, 13, 45, 30, 0, time.UTC),
		Type:                models.TxCashPurchase,
		AccountDebitedUUID:  accounts[0].UUID,
		AccountCreditedUUID: accounts[1].UUID,
	}.Build()
	require.NoError(t, err)
	snap.Transactions = []models.Transaction{tx}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, snap))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, tx, got.Transactions[0], "dates survive the wire at day granularity")
}

func TestWriteOrdersTablesForImport(t *testing.T) {
	snap := fullSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, snap))
	doc := buf.String()

	// Referenced tables precede the tables that reference them.
	order := []string{"<Icons>", "<Categories>", "<Currencies>", "<Accounts>", "<Contacts>", "<Transactions>"}
	last := -1
	for _, tag := range order {
		pos := strings.Index(doc, tag)
		require.NotEqual(t, -1, pos, "missing %s", tag)
		assert.Greater(t, pos, last, "%s out of order", tag)
		last = pos
	}
}

func TestWritePutsTopLevelTransactionsFirst(t *testing.T) {
	snap := fullSnapshot(t)
	// Reverse the slice so the child comes first in memory.
	snap.Transactions[0], snap.Transactions[1] = snap.Transactions[1], snap.Transactions[0]

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, snap))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got.Transactions, 2)
	assert.Equal(t, uuid.Nil, got.Transactions[0].ParentUUID)
	assert.NotEqual(t, uuid.Nil, got.Transactions[1].ParentUUID)
}

func TestReadRejectsMalformedRecord(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<Money>
    <Categories>
        <Category>
            <name></name>
            <type>expenses</type>
            <guid>6e2b1f9a-64a4-4a77-9a36-fd6d0f4f3f10</guid>
            <created>1715000000000</created>
            <modified>1715000000000</modified>
        </Category>
    </Categories>
</Money>`

	_, err := Read(strings.NewReader(doc))
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestReadRejectsBadUUID(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<Money>
    <Icons>
        <Icon>
            <uuid>not-a-uuid</uuid>
            <name>x.png</name>
            <bytes></bytes>
            <created>1</created>
            <modified>1</modified>
        </Icon>
    </Icons>
</Money>`

	_, err := Read(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid icon uuid")
}
