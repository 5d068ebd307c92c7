package auth

import "context"

// Identity is the resolved session identity attached to a request after
// the session middleware has verified its token.
type Identity struct {
	UserID string
	Email  string
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// identityKey is the context key for storing the session Identity.
const identityKey contextKey = "session_identity"

// ContextWithIdentity adds the session identity to the context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the session identity from the context.
// Returns nil if the request is not authenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityKey).(*Identity)
	if !ok {
		return nil
	}
	return id
}

// MustIdentityFromContext retrieves the session identity from the context.
// Panics if not present (use only behind the session middleware).
func MustIdentityFromContext(ctx context.Context) *Identity {
	id := IdentityFromContext(ctx)
	if id == nil {
		panic("session identity not found - ensure session middleware is applied")
	}
	return id
}

// UserIDFromContext is a convenience function to get the user id from
// context. Returns empty string if not authenticated.
func UserIDFromContext(ctx context.Context) string {
	id := IdentityFromContext(ctx)
	if id == nil {
		return ""
	}
	return id.UserID
}
