package auth

import (
	"net/http"
	"time"
)

// SessionCookieName is the name of the HTTP-only cookie the client
// holds the session token in.
const SessionCookieName = "token"

// NewSessionCookie builds the session cookie for a freshly issued token.
// MaxAge matches the token validity window.
func NewSessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie builds a cookie that instructs the client to drop
// any stale session token. Used on auth failures and self-deletion.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
