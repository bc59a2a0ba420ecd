package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"photoshare/internal/errs"
)

// errorBody is the machine-usable failure envelope. Type distinguishes the
// bad-password branch so the client knows not to offer registration.
type errorBody struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, typ string) {
	writeJSON(w, status, errorBody{Error: msg, Type: typ})
}

// respondError maps sentinel errors to HTTP statuses. Storage and unexpected
// errors come out as a generic 500 without internal detail.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, errs.ErrNoSession):
		writeError(w, http.StatusBadRequest, "no session", "")
	case errors.Is(err, errs.ErrNoAccount):
		writeError(w, http.StatusUnauthorized, "no such account", "")
	case errors.Is(err, errs.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, "incorrect password", "password")
	case errors.Is(err, errs.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
	case errors.Is(err, errs.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "login name already taken", "")
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found", "")
	case errors.Is(err, errs.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "too many attempts", "")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error", "")
	}
}
