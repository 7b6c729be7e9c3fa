package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hourly/internal/core"
	"hourly/internal/log"
)

type yearlyResponse struct {
	Year   int          `json:"year"`
	Months []core.Money `json:"months"`
}

type dailyResponse struct {
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Days  []core.Money `json:"days"`
}

type categoriesResponse struct {
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	Categories []core.CategoryTotal `json:"categories"`
}

// handleYearlyTotals returns twelve per-month totals for the given year.
func (s *Server) handleYearlyTotals(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	year, err := parseYear(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	key := fmt.Sprintf("%s:yearly:%d", user.Username, year)
	s.writeCachedAnalytics(w, r, key, func() any {
		return yearlyResponse{Year: year, Months: core.YearlyTotals(user.Expenses, year)}
	})
}

// handleDailyTotals returns one total per calendar day of the given month.
func (s *Server) handleDailyTotals(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if month < 1 || month > 12 {
		writeDomainError(w, &core.ValidationError{Field: "month", Reason: "must be between 1 and 12"})
		return
	}

	key := fmt.Sprintf("%s:daily:%d-%d", user.Username, year, month)
	s.writeCachedAnalytics(w, r, key, func() any {
		return dailyResponse{Year: year, Month: month, Days: core.DailyTotals(user.Expenses, year, month)}
	})
}

// handleCategoryBreakdown returns the month's top categories with any
// remainder folded into a single trailing bucket.
func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	year, month, err := parseYearMonth(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if month < 1 || month > 12 {
		writeDomainError(w, &core.ValidationError{Field: "month", Reason: "must be between 1 and 12"})
		return
	}

	key := fmt.Sprintf("%s:categories:%d-%d", user.Username, year, month)
	s.writeCachedAnalytics(w, r, key, func() any {
		return categoriesResponse{Year: year, Month: month, Categories: core.CategoryBreakdown(user.Expenses, year, month)}
	})
}

// writeCachedAnalytics serves the response body from the analytics cache,
// computing and caching it on a miss.
func (s *Server) writeCachedAnalytics(w http.ResponseWriter, r *http.Request, key string, compute func() any) {
	logger := log.FromContext(r.Context())

	if body, found := s.analyticsCache.Get(key); found {
		logger.DebugContext(r.Context(), "Analytics cache hit", "key", key)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	body, err := json.Marshal(compute())
	if err != nil {
		fields := append(log.NewFields().WithError(err).ToSlice(), "key", key)
		logger.ErrorContext(r.Context(), "Analytics encoding failed", fields...)
		ErrorResponse(http.StatusInternalServerError, "internal error").Write(w)
		return
	}
	s.analyticsCache.Set(key, body)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
