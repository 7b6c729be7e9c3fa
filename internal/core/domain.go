package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError reports which input field was rejected at an entry point.
// Validation happens only at creation/edit boundaries; stored records are
// not re-checked, so readers must tolerate out-of-range values.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

const dateLayout = "2006-01-02"

type (
	// Date is a calendar date with day precision, serialized as YYYY-MM-DD.
	Date struct {
		time.Time
	}

	// Expense is a single logged outgoing, attributed to an hour of a day.
	// Description doubles as the category key for analytics (see Category).
	Expense struct {
		ID          string `json:"id"`
		Date        Date   `json:"date"`
		Hour        int    `json:"hour"`
		Amount      Money  `json:"amount"`
		Description string `json:"description"`
		Notes       string `json:"notes,omitempty"`
	}

	// User is an account record as persisted: credentials, the
	// insertion-ordered expense ledger, and the stored balance. Balance is
	// not derived from the expenses; it is kept reconciled by the ledger
	// service but may be overridden to any value by the user.
	User struct {
		Username string    `json:"username"`
		Password string    `json:"password"`
		Expenses []Expense `json:"expenses"`
		Balance  Money     `json:"balance"`
	}
)

// NewDate builds a Date from calendar components, normalized to UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate checks an expense at the create/edit entry point.
func (e Expense) Validate() error {
	if e.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be a valid calendar date"}
	}
	if e.Hour < 0 || e.Hour > 23 {
		return &ValidationError{Field: "hour", Reason: "must be between 0 and 23"}
	}
	if strings.TrimSpace(e.Description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if len(e.Description) > 200 {
		return &ValidationError{Field: "description", Reason: "too long (max 200 characters)"}
	}
	if e.Amount.Cents <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	return nil
}

// Category returns the normalized analytics category key for the expense:
// the description, whitespace-trimmed and case-folded. Two descriptions that
// differ only in case or surrounding whitespace aggregate into one bucket.
func (e Expense) Category() string {
	return NormalizeCategory(e.Description)
}

// NormalizeCategory applies the category normalization rule. Kept separate
// from aggregation so the rule can change without touching rollup logic.
func NormalizeCategory(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

// FindExpense returns the index of the expense with the given id, or -1.
func (u *User) FindExpense(id string) int {
	for i := range u.Expenses {
		if u.Expenses[i].ID == id {
			return i
		}
	}
	return -1
}
