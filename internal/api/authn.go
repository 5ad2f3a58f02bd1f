package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/jx"
)

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUp registers a new user.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	if err := h.users.SignUp(req.Username, req.Password); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Login verifies credentials and returns a session token. The token is the
// only credential-derived value that ever reaches the store routes.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	token, err := h.users.Login(req.Username, req.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("token", func(e *jx.Encoder) { e.Str(token) })
		})
	})
}

// Logout invalidates the session token and discards its store session,
// releasing any stock still reserved in the cart.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	t := sessionToken(r)
	if err := h.sessions.Drop(t); err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.users.Logout(t)
	w.WriteHeader(http.StatusNoContent)
}
