package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmoiseev/moneta/internal/app"
	"github.com/pmoiseev/moneta/internal/cache"
	"github.com/pmoiseev/moneta/internal/common"
	"github.com/pmoiseev/moneta/internal/export"
	"github.com/pmoiseev/moneta/internal/ledger"
	"github.com/pmoiseev/moneta/internal/models"
	"github.com/pmoiseev/moneta/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Storage.Ledger.Path = t.TempDir()
	logger := common.NewSilentLogger()

	manager, err := storage.NewManager(logger, config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	dataCache := cache.New()
	a := &app.App{
		Config:      config,
		Logger:      logger,
		Storage:     manager,
		Cache:       dataCache,
		Ledger:      ledger.New(logger, manager.Ledger(), dataCache),
		StartupTime: time.Now(),
	}
	return NewServer(a)
}

// seedLedger imports a small dataset and returns the accounts involved.
func seedLedger(t *testing.T, s *Server) (models.Account, models.Account) {
	t.Helper()

	category, err := models.CategoryBuilder{
		Name: "Cash",
		Type: models.CategoryBanksAndCash,
	}.Build()
	require.NoError(t, err)

	checking, err := models.AccountBuilder{
		Name:           "Checking",
		Type:           models.CategoryBanksAndCash,
		CategoryUUID:   category.UUID,
		OpeningBalance: decimal.RequireFromString("100"),
	}.Build()
	require.NoError(t, err)

	savings, err := models.AccountBuilder{
		Name:         "Savings",
		Type:         models.CategoryBanksAndCash,
		CategoryUUID: category.UUID,
	}.Build()
	require.NoError(t, err)

	transfer, err := models.TransactionBuilder{
		Amount:              decimal.RequireFromString("40"),
		Date:                time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		Type:                models.TxTransfer,
		AccountDebitedUUID:  checking.UUID,
		AccountCreditedUUID: savings.UUID,
	}.Build()
	require.NoError(t, err)

	_, err = s.app.Ledger.ImportRecords(context.Background(), &models.Snapshot{
		Categories:   []models.Category{category},
		Accounts:     []models.Account{checking, savings},
		Transactions: []models.Transaction{transfer},
	})
	require.NoError(t, err)
	return checking, savings
}

func mustUUID(s string) uuid.UUID {
	return uuid.MustParse(s)
}

func doRequest(s *Server, method, path string, body *bytes.Buffer) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestVersion(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/version", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["version"])
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodDelete, "/api/export", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
}

func TestAccountBalance(t *testing.T) {
	s := newTestServer(t)
	checking, savings := seedLedger(t, s)

	rec := doRequest(s, http.MethodGet, fmt.Sprintf("/api/accounts/%s/balance", checking.UUID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Balance decimal.Decimal `json:"balance"`
		Waiting decimal.Decimal `json:"waiting"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Balance.Equal(decimal.RequireFromString("60")), "100 opening - 40 transfer, got %s", body.Balance)
	assert.True(t, body.Waiting.Equal(decimal.RequireFromString("-40")))

	rec = doRequest(s, http.MethodGet, fmt.Sprintf("/api/accounts/%s/balance?opening=false", savings.UUID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Balance.Equal(decimal.RequireFromString("40")))
}

func TestAccountBalance_UnknownAccount(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/accounts/adc38ba5-6d16-4b62-9b2b-cbcbba8a3b82/balance", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountBalance_BadFilter(t *testing.T) {
	s := newTestServer(t)
	checking, _ := seedLedger(t, s)

	rec := doRequest(s, http.MethodGet, fmt.Sprintf("/api/accounts/%s/balance?filter=bogus", checking.UUID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestServer(t)
	seedLedger(t, s)

	exported := doRequest(s, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, exported.Code)
	assert.Equal(t, "application/xml", exported.Header().Get("Content-Type"))

	snap, err := export.Read(bytes.NewReader(exported.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 4, snap.RecordCount())

	// Feed the export into a fresh server as a full dump.
	fresh := newTestServer(t)
	rec := doRequest(fresh, http.MethodPost, "/api/import/full?confirm=true", bytes.NewBuffer(exported.Body.Bytes()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 4, fresh.app.Cache.Snapshot().RecordCount())
}

func TestImportFull_RequiresConfirmation(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/import/full", bytes.NewBufferString("<Money></Money>"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImport_Incremental(t *testing.T) {
	s := newTestServer(t)
	checking, savings := seedLedger(t, s)

	tx, err := models.TransactionBuilder{
		Amount:              decimal.RequireFromString("5"),
		Date:                time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC),
		Type:                models.TxTransfer,
		AccountDebitedUUID:  savings.UUID,
		AccountCreditedUUID: checking.UUID,
	}.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, &models.Snapshot{Transactions: []models.Transaction{tx}}))

	rec := doRequest(s, http.MethodPost, "/api/import", &buf)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Inserted int `json:"inserted"`
		Updated  int `json:"updated"`
		Ignored  int `json:"ignored"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Inserted)
	assert.Zero(t, body.Updated)
}

func TestImport_UnresolvedReference(t *testing.T) {
	s := newTestServer(t)

	// Transaction between accounts nobody has ever heard of.
	tx, err := models.TransactionBuilder{
		Amount:              decimal.RequireFromString("5"),
		Date:                time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC),
		AccountDebitedUUID:  mustUUID("11111111-1111-4111-8111-111111111111"),
		AccountCreditedUUID: mustUUID("22222222-2222-4222-8222-222222222222"),
	}.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, &models.Snapshot{Transactions: []models.Transaction{tx}}))

	rec := doRequest(s, http.MethodPost, "/api/import", &buf)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTransactionDetails(t *testing.T) {
	s := newTestServer(t)
	checking, savings := seedLedger(t, s)

	parent, err := models.TransactionBuilder{
		Amount:              decimal.RequireFromString("30"),
		Date:                time.Date(2024, time.July, 3, 0, 0, 0, 0, time.UTC),
		AccountDebitedUUID:  checking.UUID,
		AccountCreditedUUID: savings.UUID,
		Detailed:            true,
	}.Build()
	require.NoError(t, err)
	child, err := models.TransactionBuilder{
		Amount:              decimal.RequireFromString("10"),
		Date:                parent.Date,
		AccountDebitedUUID:  checking.UUID,
		AccountCreditedUUID: savings.UUID,
		ParentUUID:          parent.UUID,
	}.Build()
	require.NoError(t, err)

	_, err = s.app.Ledger.ImportRecords(context.Background(), &models.Snapshot{
		Transactions: []models.Transaction{parent, child},
	})
	require.NoError(t, err)

	rec := doRequest(s, http.MethodGet, fmt.Sprintf("/api/transactions/%s/details", parent.UUID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Details []models.Transaction `json:"details"`
		Delta   decimal.Decimal      `json:"delta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Details, 1)
	assert.True(t, body.Delta.Equal(decimal.RequireFromString("20")))
}

func TestCategoryList_FilterByType(t *testing.T) {
	s := newTestServer(t)
	seedLedger(t, s)

	rec := doRequest(s, http.MethodGet, "/api/categories?type=banks_and_cash", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Categories []models.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Categories, 1)

	rec = doRequest(s, http.MethodGet, "/api/categories?type=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
