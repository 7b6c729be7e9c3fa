package http

import (
	"net/http"

	"hourly/internal/core"
)

type balanceResponse struct {
	Balance core.Money `json:"balance"`
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	NewJSONResponse().Body(balanceResponse{Balance: user.Balance}).Write(w)
}

// handleSetBalance overrides the balance with an arbitrary value, positive
// or negative. Subsequent expense mutations apply their deltas on top.
func (s *Server) handleSetBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var payload balancePayload
	if err := decodeJSON(r, &payload); err != nil {
		ErrorResponse(http.StatusBadRequest, "invalid request body").Write(w)
		return
	}

	balance, err := core.ParseSignedAmount(payload.Balance)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.ledger.SetBalance(r.Context(), user.Username, balance); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateAnalytics(user.Username)
	NewJSONResponse().Body(balanceResponse{Balance: balance}).Write(w)
}
