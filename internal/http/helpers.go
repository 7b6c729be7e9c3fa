package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"hourly/internal/core"
)

// parseYearMonth extracts year and month from query parameters, defaulting
// omitted values to the current year and month. Non-numeric values are
// rejected.
func parseYearMonth(r *http.Request) (year, month int, err error) {
	now := time.Now().UTC()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, convErr := strconv.Atoi(v)
		if convErr != nil {
			return 0, 0, &core.ValidationError{Field: "year", Reason: "must be a number"}
		}
		year = y
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, convErr := strconv.Atoi(v)
		if convErr != nil {
			return 0, 0, &core.ValidationError{Field: "month", Reason: "must be a number"}
		}
		month = m
	}

	return year, month, nil
}

// parseYear extracts the year from query parameters, defaulting to the
// current year. Non-numeric values are rejected.
func parseYear(r *http.Request) (int, error) {
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return 0, &core.ValidationError{Field: "year", Reason: "must be a number"}
		}
		return y, nil
	}
	return time.Now().UTC().Year(), nil
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
