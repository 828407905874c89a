package services

import "context"

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the authenticated caller
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller attached by WithIdentity
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

func actorFrom(ctx context.Context) string {
	if id, ok := IdentityFromContext(ctx); ok {
		return id.Email
	}
	return ""
}
