package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell/internal/auth"
)

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger *slog.Logger
	Tokens *auth.TokenIssuer
}

// Session returns a middleware that authenticates requests from the
// session cookie. Each request is evaluated independently:
//
//   - cookie absent: clear any stale cookie, respond 401 "Access denied"
//   - cookie present but verification fails: clear cookie, respond 401
//     "Invalid token"
//   - verification succeeds: attach the decoded identity to the request
//     context and continue to the handler
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil || cookie.Value == "" {
				cfg.Logger.Warn("session rejected",
					slog.String("reason", "missing_cookie"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				rejectSession(w, "Access denied")
				return
			}

			identity, err := cfg.Tokens.Verify(cookie.Value)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired_token"
				}
				cfg.Logger.Warn("session rejected",
					slog.String("reason", reason),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				rejectSession(w, "Invalid token")
				return
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// rejectSession clears the session cookie and writes a 401 response.
func rejectSession(w http.ResponseWriter, message string) {
	http.SetCookie(w, auth.ClearSessionCookie())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"error":"` + message + `"}`))
}
