package server

import (
	"net/http"
	"strconv"
)

// handleBalanceSeries handles GET /api/analytics/balance-series.
// Query: account (required), year, month.
func (s *Server) handleBalanceSeries(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	accountID := r.URL.Query().Get("account")
	if accountID == "" {
		WriteError(w, http.StatusBadRequest, "account query parameter is required")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "year query parameter is required")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "month query parameter is required")
		return
	}

	points, err := s.app.AnalyticsService.BalanceSeries(r.Context(), userID, accountID, year, month)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, points)
}

// handleCategoryTotals handles GET /api/analytics/categories.
// Query: from, to (optional, YYYY-MM-DD).
func (s *Server) handleCategoryTotals(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	totals, err := s.app.AnalyticsService.CategoryTotals(r.Context(), userID,
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, totals)
}

// handleExpenseStats handles GET /api/analytics/expense-stats.
func (s *Server) handleExpenseStats(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := s.app.AnalyticsService.ExpenseStats(r.Context(), userID,
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// handlePortfolioOverview handles GET /api/analytics/portfolio.
func (s *Server) handlePortfolioOverview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	overview, err := s.app.AnalyticsService.PortfolioOverview(r.Context(), userID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, overview)
}

// handleHoldings handles GET /api/analytics/holdings.
func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	positions, err := s.app.AnalyticsService.Holdings(r.Context(), userID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, positions)
}

// handleIncomeByMonth handles GET /api/analytics/income-by-month.
// Query: year (optional, all years when omitted).
func (s *Server) handleIncomeByMonth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	year := 0
	if y := r.URL.Query().Get("year"); y != "" {
		var err error
		if year, err = strconv.Atoi(y); err != nil {
			WriteError(w, http.StatusBadRequest, "year must be a number")
			return
		}
	}

	out, err := s.app.AnalyticsService.IncomeByMonth(r.Context(), userID, year)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

// handleRecentEntries handles GET /api/analytics/recent.
// Query: limit (optional, default 5).
func (s *Server) handleRecentEntries(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		var err error
		if limit, err = strconv.Atoi(v); err != nil {
			WriteError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
	}

	recent, err := s.app.AnalyticsService.RecentEntries(r.Context(), userID, limit)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, recent)
}
