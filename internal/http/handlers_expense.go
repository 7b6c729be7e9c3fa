package http

import (
	"net/http"
	"time"

	"hourly/internal/core"
)

// dayResponse is the hour-ordered view of one day's spending.
type dayResponse struct {
	Date     core.Date      `json:"date"`
	Expenses []core.Expense `json:"expenses"`
	Total    core.Money     `json:"total"`
}

// handleDayExpenses returns the expenses of a single day, sorted by hour,
// with the day's total. The date query parameter defaults to today.
func (s *Server) handleDayExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	dateStr := r.URL.Query().Get("date")
	var date core.Date
	if dateStr == "" {
		now := time.Now().UTC()
		date = core.NewDate(now.Year(), int(now.Month()), now.Day())
	} else {
		var err error
		date, err = core.ParseDate(dateStr)
		if err != nil {
			writeDomainError(w, &core.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"})
			return
		}
	}

	expenses, total := core.DayExpenses(user.Expenses, date)
	if expenses == nil {
		expenses = []core.Expense{}
	}
	NewJSONResponse().Body(dayResponse{
		Date:     date,
		Expenses: expenses,
		Total:    total,
	}).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var payload expensePayload
	if err := decodeJSON(r, &payload); err != nil {
		ErrorResponse(http.StatusBadRequest, "invalid request body").Write(w)
		return
	}
	expense, err := payload.toExpense()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	created, err := s.ledger.CreateExpense(r.Context(), user.Username, expense)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateAnalytics(user.Username)
	NewJSONResponse().Status(http.StatusCreated).Body(created).Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var payload expensePayload
	if err := decodeJSON(r, &payload); err != nil {
		ErrorResponse(http.StatusBadRequest, "invalid request body").Write(w)
		return
	}
	expense, err := payload.toExpense()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	expense.ID = r.PathValue("id")

	updated, err := s.ledger.UpdateExpense(r.Context(), user.Username, expense)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateAnalytics(user.Username)
	NewJSONResponse().Body(updated).Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	if err := s.ledger.DeleteExpense(r.Context(), user.Username, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateAnalytics(user.Username)
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
