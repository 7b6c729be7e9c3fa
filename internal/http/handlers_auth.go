package http

import (
	"net/http"

	"hourly/internal/core"
)

// userResponse is the account shape returned to clients. The stored
// password never leaves the server.
type userResponse struct {
	Username string         `json:"username"`
	Balance  core.Money     `json:"balance"`
	Expenses []core.Expense `json:"expenses"`
}

func newUserResponse(u *core.User) userResponse {
	expenses := u.Expenses
	if expenses == nil {
		expenses = []core.Expense{}
	}
	return userResponse{
		Username: u.Username,
		Balance:  u.Balance,
		Expenses: expenses,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := decodeJSON(r, &payload); err != nil {
		ErrorResponse(http.StatusBadRequest, "invalid request body").Write(w)
		return
	}

	user, err := s.sessions.Register(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	NewJSONResponse().Status(http.StatusCreated).Body(newUserResponse(user)).Write(w)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := decodeJSON(r, &payload); err != nil {
		ErrorResponse(http.StatusBadRequest, "invalid request body").Write(w)
		return
	}

	user, err := s.sessions.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	NewJSONResponse().Body(newUserResponse(user)).Write(w)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

// handleSession reports the resumed session, or 401 when none exists.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	NewJSONResponse().Body(newUserResponse(user)).Write(w)
}

// currentUser resolves the single current session. A missing or dangling
// session writes a 401 and reports false.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*core.User, bool) {
	user, err := s.sessions.Resume(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	if user == nil {
		writeUnauthenticated(w)
		return nil, false
	}
	return user, true
}
