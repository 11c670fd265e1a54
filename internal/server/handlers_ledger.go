package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/pmoiseev/moneta/internal/cache"
	"github.com/pmoiseev/moneta/internal/export"
	"github.com/pmoiseev/moneta/internal/ledger"
	"github.com/pmoiseev/moneta/internal/models"
)

// --- Snapshot transfer handlers ---

// handleExport streams the full ledger as an XML document.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snap := s.app.Cache.Snapshot()
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="moneta-export.xml"`)
	if err := export.Write(w, snap); err != nil {
		s.logger.Error().Err(err).Msg("Export failed")
	}
}

// handleImport merges an incremental XML batch into the ledger.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	snap, err := export.Read(r.Body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid import document: %v", err))
		return
	}

	summary, err := s.app.Ledger.ImportRecords(r.Context(), snap)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	total := summary.Total()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"tables":   summary,
		"inserted": total.Inserted,
		"updated":  total.Updated,
		"ignored":  total.Ignored,
	})
}

// handleImportFull replaces the entire ledger with the posted XML document.
// The confirm=true query parameter is required: the operation destroys all
// existing records.
func (s *Server) handleImportFull(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		WriteError(w, http.StatusBadRequest, "Full import replaces all data; pass confirm=true to proceed")
		return
	}

	snap, err := export.Read(r.Body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid import document: %v", err))
		return
	}

	if err := s.app.Ledger.ImportFullDump(r.Context(), snap); err != nil {
		writeLedgerError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"records": snap.RecordCount(),
	})
}

// writeLedgerError maps merge engine errors to HTTP statuses.
func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrReference):
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrValidation):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// --- Record handlers ---

func (s *Server) handleIconList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"icons": s.app.Cache.Snapshot().Icons,
	})
}

func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snap := s.app.Cache.Snapshot()
	categories := snap.Categories
	if t := r.URL.Query().Get("type"); t != "" {
		if !models.ValidCategoryType(models.CategoryType(t)) {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("Unknown category type %q", t))
			return
		}
		categories = s.app.Cache.CategoriesByType(models.CategoryType(t))
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

func (s *Server) handleCurrencyList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"currencies": s.app.Cache.Snapshot().Currencies,
	})
}

func (s *Server) handleContactList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"contacts": s.app.Cache.Snapshot().Contacts,
	})
}

func (s *Server) handleAccountList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": s.app.Cache.Snapshot().Accounts,
	})
}

func (s *Server) handleAccountGet(w http.ResponseWriter, r *http.Request, rawUUID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id, err := uuid.Parse(rawUUID)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid account uuid %q", rawUUID))
		return
	}
	account, ok := s.app.Cache.Account(id)
	if !ok {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Account %s not found", id))
		return
	}
	WriteJSON(w, http.StatusOK, account)
}

// handleAccountBalance computes an account balance from the cache. Query
// parameters: opening=false excludes the opening balance and credit limit,
// filter=checked|unchecked restricts the counted transactions. The waiting
// figure is always the unchecked-only balance without opening.
func (s *Server) handleAccountBalance(w http.ResponseWriter, r *http.Request, rawUUID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id, err := uuid.Parse(rawUUID)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid account uuid %q", rawUUID))
		return
	}
	account, ok := s.app.Cache.Account(id)
	if !ok {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Account %s not found", id))
		return
	}

	includeOpening := r.URL.Query().Get("opening") != "false"
	filter := cache.AllTransactions
	switch r.URL.Query().Get("filter") {
	case "":
	case "checked":
		filter = cache.CheckedOnly
	case "unchecked":
		filter = cache.UncheckedOnly
	default:
		WriteError(w, http.StatusBadRequest, "filter must be checked or unchecked")
		return
	}

	balance := s.app.Cache.CalculateBalance(account, includeOpening, filter)
	waiting := s.app.Cache.CalculateBalance(account, false, cache.UncheckedOnly)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"uuid":    account.UUID,
		"balance": balance,
		"waiting": waiting,
		"display": models.DisplayAmount(balance),
	})
}

func (s *Server) handleAccountTransactions(w http.ResponseWriter, r *http.Request, rawUUID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id, err := uuid.Parse(rawUUID)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid account uuid %q", rawUUID))
		return
	}
	if _, ok := s.app.Cache.Account(id); !ok {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Account %s not found", id))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": s.app.Cache.TransactionsByAccount(id),
	})
}

func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": s.app.Cache.Snapshot().Transactions,
	})
}

func (s *Server) handleTransactionGet(w http.ResponseWriter, r *http.Request, rawUUID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id, err := uuid.Parse(rawUUID)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid transaction uuid %q", rawUUID))
		return
	}
	tx, ok := s.app.Cache.Transaction(id)
	if !ok {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Transaction %s not found", id))
		return
	}
	WriteJSON(w, http.StatusOK, tx)
}

// handleTransactionDetails returns the split children of a detailed
// transaction along with the unallocated remainder.
func (s *Server) handleTransactionDetails(w http.ResponseWriter, r *http.Request, rawUUID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	id, err := uuid.Parse(rawUUID)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid transaction uuid %q", rawUUID))
		return
	}
	parent, ok := s.app.Cache.Transaction(id)
	if !ok {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Transaction %s not found", id))
		return
	}

	children := s.app.Cache.TransactionDetails(parent)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"parent":  parent,
		"details": children,
		"delta":   cache.DetailDelta(parent, children),
	})
}
