// Package http provides the JSON API surface of the application.
//
// This file implements utilities for parsing and validating HTTP request
// payloads. All write endpoints accept JSON bodies; sizes are capped to
// keep a hostile client from feeding the decoder unbounded input.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"hourly/internal/core"
)

// maxBodyBytes caps request body size for all JSON endpoints.
const maxBodyBytes = 64 << 10

// decodeJSON parses the request body into dst, rejecting unknown fields
// and trailing garbage.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if dec.More() {
		return errors.New("decode request body: unexpected trailing data")
	}
	return nil
}

// credentialsPayload carries register and login bodies.
type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// expensePayload carries expense create and update bodies. Amount is a
// decimal string so clients never ship floats for money.
type expensePayload struct {
	Date        string `json:"date"`
	Hour        int    `json:"hour"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

// toExpense converts the payload into a domain expense. The returned
// expense has no ID; handlers fill it in where relevant.
func (p expensePayload) toExpense() (core.Expense, error) {
	date, err := core.ParseDate(p.Date)
	if err != nil {
		return core.Expense{}, &core.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	amount, err := core.ParseAmount(p.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Date:        date,
		Hour:        p.Hour,
		Amount:      amount,
		Description: sanitizeInput(p.Description),
		Notes:       sanitizeInput(p.Notes),
	}, nil
}

// balancePayload carries the balance override body. The value may be
// negative; overdrawn is a legal state.
type balancePayload struct {
	Balance string `json:"balance"`
}
