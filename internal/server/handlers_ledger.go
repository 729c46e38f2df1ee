package server

import (
	"net/http"
	"strconv"
	"strings"

	"financepro/internal/models"
)

// handleLedger handles GET /api/ledger.
func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	l, err := s.app.LedgerService.GetLedger(r.Context(), userID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, l)
}

// handleAccounts handles GET/POST /api/accounts.
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		l, err := s.app.LedgerService.GetLedger(r.Context(), userID)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, l.BankAccounts)
	case http.MethodPost:
		var account models.BankAccount
		if !DecodeJSON(w, r, &account) {
			return
		}
		created, err := s.app.LedgerService.AddAccount(r.Context(), userID, account)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)
	}
}

// handleAccountByID handles PUT/DELETE /api/accounts/{id}.
func (s *Server) handleAccountByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut, http.MethodDelete) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	accountID := PathParam(r, "/api/accounts/", "")
	if accountID == "" {
		WriteError(w, http.StatusBadRequest, "account id is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var account models.BankAccount
		if !DecodeJSON(w, r, &account) {
			return
		}
		account.ID = accountID
		if err := s.app.LedgerService.UpdateAccount(r.Context(), userID, account); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.app.LedgerService.DeleteAccount(r.Context(), userID, accountID); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// handleExpenses handles GET/POST /api/expenses. GET accepts optional
// from/to and category query filters.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		l, err := s.app.LedgerService.GetLedger(r.Context(), userID)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		expenses := l.Expenses
		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")
		category := r.URL.Query().Get("category")
		filtered := make([]models.Expense, 0, len(expenses))
		for _, e := range expenses {
			if from != "" && e.Date < from {
				continue
			}
			if to != "" && e.Date > to {
				continue
			}
			if category != "" && string(e.Category) != category {
				continue
			}
			filtered = append(filtered, e)
		}
		WriteJSON(w, http.StatusOK, filtered)
	case http.MethodPost:
		var expense models.Expense
		if !DecodeJSON(w, r, &expense) {
			return
		}
		instances, err := s.app.LedgerService.AddExpense(r.Context(), userID, expense)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, instances)
	}
}

// handleExpenseByID handles PUT/DELETE /api/expenses/{id}.
func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut, http.MethodDelete) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	expenseID := PathParam(r, "/api/expenses/", "")
	if expenseID == "" {
		WriteError(w, http.StatusBadRequest, "expense id is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var expense models.Expense
		if !DecodeJSON(w, r, &expense) {
			return
		}
		expense.ID = expenseID
		if err := s.app.LedgerService.UpdateExpense(r.Context(), userID, expense); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.app.LedgerService.DeleteExpense(r.Context(), userID, expenseID); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// handleIncome handles GET/POST /api/income. GET accepts optional from/to
// and month/year query filters.
func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		l, err := s.app.LedgerService.GetLedger(r.Context(), userID)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		q := r.URL.Query()
		from, to := q.Get("from"), q.Get("to")
		month := q.Get("month")
		year, _ := strconv.Atoi(q.Get("year"))
		filtered := make([]models.Income, 0, len(l.Income))
		for _, inc := range l.Income {
			if from != "" && inc.Date < from {
				continue
			}
			if to != "" && inc.Date > to {
				continue
			}
			if month != "" && inc.Month != month {
				continue
			}
			if year != 0 && inc.Year != year {
				continue
			}
			filtered = append(filtered, inc)
		}
		WriteJSON(w, http.StatusOK, filtered)
	case http.MethodPost:
		var income models.Income
		if !DecodeJSON(w, r, &income) {
			return
		}
		instances, err := s.app.LedgerService.AddIncome(r.Context(), userID, income)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, instances)
	}
}

// handleIncomeByID handles PUT/DELETE /api/income/{id}.
func (s *Server) handleIncomeByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut, http.MethodDelete) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	incomeID := PathParam(r, "/api/income/", "")
	if incomeID == "" {
		WriteError(w, http.StatusBadRequest, "income id is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var income models.Income
		if !DecodeJSON(w, r, &income) {
			return
		}
		income.ID = incomeID
		if err := s.app.LedgerService.UpdateIncome(r.Context(), userID, income); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.app.LedgerService.DeleteIncome(r.Context(), userID, incomeID); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// handleInvestments handles GET/POST /api/investments.
func (s *Server) handleInvestments(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		l, err := s.app.LedgerService.GetLedger(r.Context(), userID)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, l.Investments)
	case http.MethodPost:
		var inv models.Investment
		if !DecodeJSON(w, r, &inv) {
			return
		}
		created, err := s.app.LedgerService.AddInvestment(r.Context(), userID, inv)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)
	}
}

// handleInvestmentByID handles PUT/DELETE /api/investments/{id}.
func (s *Server) handleInvestmentByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut, http.MethodDelete) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	investmentID := PathParam(r, "/api/investments/", "")
	if investmentID == "" {
		WriteError(w, http.StatusBadRequest, "investment id is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var inv models.Investment
		if !DecodeJSON(w, r, &inv) {
			return
		}
		inv.ID = investmentID
		if err := s.app.LedgerService.UpdateInvestment(r.Context(), userID, inv); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.app.LedgerService.DeleteInvestment(r.Context(), userID, investmentID); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// handleGoals handles GET/POST /api/goals.
func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		l, err := s.app.LedgerService.GetLedger(r.Context(), userID)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, l.Goals)
	case http.MethodPost:
		var goal models.Goal
		if !DecodeJSON(w, r, &goal) {
			return
		}
		created, err := s.app.LedgerService.AddGoal(r.Context(), userID, goal)
		if err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)
	}
}

// routeGoals dispatches /api/goals/{id} and /api/goals/{id}/contribute.
func (s *Server) routeGoals(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/contribute") {
		s.handleGoalContribute(w, r)
		return
	}
	s.handleGoalByID(w, r)
}

// handleGoalByID handles PUT/DELETE /api/goals/{id}.
func (s *Server) handleGoalByID(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPut, http.MethodDelete) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	goalID := PathParam(r, "/api/goals/", "")
	if goalID == "" {
		WriteError(w, http.StatusBadRequest, "goal id is required")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var goal models.Goal
		if !DecodeJSON(w, r, &goal) {
			return
		}
		goal.ID = goalID
		if err := s.app.LedgerService.UpdateGoal(r.Context(), userID, goal); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.app.LedgerService.DeleteGoal(r.Context(), userID, goalID); err != nil {
			WriteDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

type contributeRequest struct {
	Amount float64 `json:"amount"`
}

// handleGoalContribute handles POST /api/goals/{id}/contribute.
func (s *Server) handleGoalContribute(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	goalID := PathParam(r, "/api/goals/", "/contribute")
	if goalID == "" {
		WriteError(w, http.StatusBadRequest, "goal id is required")
		return
	}

	var req contributeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	applied, err := s.app.LedgerService.ContributeToGoal(r.Context(), userID, goalID, req.Amount)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]float64{"applied": applied})
}
