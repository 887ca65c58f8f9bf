package profile

import "context"

type contextKey struct{}

// NewContext returns a context carrying the authenticated viewer's profile.
func NewContext(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext retrieves the viewer set by the auth middleware.
func FromContext(ctx context.Context) (*Profile, bool) {
	p, ok := ctx.Value(contextKey{}).(*Profile)
	return p, ok
}
