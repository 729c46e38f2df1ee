package server

import (
	"net/http"
	"time"

	"financepro/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Auth
	mux.HandleFunc("/api/auth/signup", s.handleAuthSignup)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)

	// Ledger
	mux.HandleFunc("/api/ledger", s.handleLedger)

	// Bank accounts
	mux.HandleFunc("/api/accounts", s.handleAccounts)
	mux.HandleFunc("/api/accounts/", s.handleAccountByID)

	// Expenses
	mux.HandleFunc("/api/expenses", s.handleExpenses)
	mux.HandleFunc("/api/expenses/", s.handleExpenseByID)

	// Income
	mux.HandleFunc("/api/income", s.handleIncome)
	mux.HandleFunc("/api/income/", s.handleIncomeByID)

	// Investments
	mux.HandleFunc("/api/investments", s.handleInvestments)
	mux.HandleFunc("/api/investments/", s.handleInvestmentByID)

	// Goals
	mux.HandleFunc("/api/goals", s.handleGoals)
	mux.HandleFunc("/api/goals/", s.routeGoals)

	// Analytics
	mux.HandleFunc("/api/analytics/balance-series", s.handleBalanceSeries)
	mux.HandleFunc("/api/analytics/categories", s.handleCategoryTotals)
	mux.HandleFunc("/api/analytics/expense-stats", s.handleExpenseStats)
	mux.HandleFunc("/api/analytics/portfolio", s.handlePortfolioOverview)
	mux.HandleFunc("/api/analytics/holdings", s.handleHoldings)
	mux.HandleFunc("/api/analytics/income-by-month", s.handleIncomeByMonth)
	mux.HandleFunc("/api/analytics/recent", s.handleRecentEntries)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// requireUser resolves the authenticated user ID, writing a 401 when absent.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := common.ResolveUserID(r.Context())
	if userID == "" {
		WriteError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}
