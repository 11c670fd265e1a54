package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/pmoiseev/moneta/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Snapshot transfer
	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/api/import/full", s.handleImportFull)
	mux.HandleFunc("/api/import", s.handleImport)

	// Records
	mux.HandleFunc("/api/icons", s.handleIconList)
	mux.HandleFunc("/api/categories", s.handleCategoryList)
	mux.HandleFunc("/api/currencies", s.handleCurrencyList)
	mux.HandleFunc("/api/contacts", s.handleContactList)
	mux.HandleFunc("/api/accounts/", s.routeAccounts)
	mux.HandleFunc("/api/accounts", s.handleAccountList)
	mux.HandleFunc("/api/transactions/", s.routeTransactions)
	mux.HandleFunc("/api/transactions", s.handleTransactionList)
}

// routeAccounts dispatches /api/accounts/{uuid} and /api/accounts/{uuid}/balance.
func (s *Server) routeAccounts(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/accounts/")
	switch {
	case strings.HasSuffix(rest, "/balance"):
		s.handleAccountBalance(w, r, strings.TrimSuffix(rest, "/balance"))
	case strings.HasSuffix(rest, "/transactions"):
		s.handleAccountTransactions(w, r, strings.TrimSuffix(rest, "/transactions"))
	case !strings.Contains(rest, "/"):
		s.handleAccountGet(w, r, rest)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// routeTransactions dispatches /api/transactions/{uuid} and
// /api/transactions/{uuid}/details.
func (s *Server) routeTransactions(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	switch {
	case strings.HasSuffix(rest, "/details"):
		s.handleTransactionDetails(w, r, strings.TrimSuffix(rest, "/details"))
	case !strings.Contains(rest, "/"):
		s.handleTransactionGet(w, r, rest)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// --- System handlers ---

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"records": s.app.Cache.Snapshot().RecordCount(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
