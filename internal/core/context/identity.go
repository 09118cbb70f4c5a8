// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Identity contains the acting admin (salesman) attached to the request.
// It is supplied by the identity collaborator and trusted as given.
type Identity struct {
	AdminID string
	Name    string
	Phone   string
}

type identityKey struct{}

// WithIdentity adds Identity to context.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

// GetIdentity returns Identity from context.
func GetIdentity(ctx context.Context) *Identity {
	if v, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return v
	}
	return nil
}

// GetAdminID returns the acting admin ID from context or empty string.
func GetAdminID(ctx context.Context) string {
	if i := GetIdentity(ctx); i != nil {
		return i.AdminID
	}
	return ""
}
