package httpapi

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"photoshare/internal/errs"
	"photoshare/internal/model"
)

type loginRequest struct {
	LoginName string `json:"login_name"`
	Password  string `json:"password"`
}

// handleLogin verifies credentials and issues a session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "")
		return
	}

	account, err := s.auth.Login(r.Context(), req.LoginName, req.Password, remoteIP(r))
	if err != nil {
		respondError(w, err)
		return
	}

	sess, err := s.auth.IssueSession(r.Context(), account)
	if err != nil {
		s.log.Error("issue session", zap.Error(err), zap.String("account_id", account.ID.String()))
		writeError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	setSessionCookie(w, sess)
	writeJSON(w, http.StatusOK, model.SessionView{ID: account.ID, FirstName: account.FirstName})
}

// handleRegister creates the account and then issues a session. A session
// failure after a successful insert is logged and swallowed: the account
// exists, so registration reports success without a cookie.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg model.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "")
		return
	}

	account, err := s.auth.Register(r.Context(), reg)
	if err != nil {
		respondError(w, err)
		return
	}

	if sess, err := s.auth.IssueSession(r.Context(), account); err != nil {
		s.log.Error("issue session after registration", zap.Error(err),
			zap.String("account_id", account.ID.String()))
	} else {
		setSessionCookie(w, sess)
	}
	writeJSON(w, http.StatusOK, model.SessionView{ID: account.ID, FirstName: account.FirstName})
}

// handleLogout destroys the session. The gate lets this path through without
// a session so the missing-session case can be a 400, not a 401.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		respondError(w, errs.ErrNoSession)
		return
	}
	if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
		respondError(w, err)
		return
	}

	clearSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

func setSessionCookie(w http.ResponseWriter, sess *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func remoteIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
