package handler

import (
	"context"
	"net/http"
	"net/url"

	"resume-intake/internal/domain"
)

// SessionCookieName is the cookie carrying "session_<userId>_<issuedAt>".
const SessionCookieName = "session"

// SessionMiddleware resolves the session cookie into a domain.SessionUser
type SessionMiddleware struct {
	logger domain.Logger
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(logger domain.Logger) *SessionMiddleware {
	return &SessionMiddleware{logger: logger}
}

// Middleware rejects requests without a valid session with 401.
func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token, err := url.QueryUnescape(cookie.Value)
		if err != nil {
			m.logger.Debug("Session cookie is not URL encoded", "error", err)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := domain.ParseSessionToken(token)
		if err != nil {
			m.logger.Debug("Rejected session cookie", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
