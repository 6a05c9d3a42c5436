// Package correlationid carries a per-request correlation ID through a context.
package correlationid

import "context"

type ctxKey struct{}

// Header is the HTTP header used to propagate the correlation ID.
const Header = "X-Correlation-Id"

// NewContext returns a copy of ctx carrying the given correlation ID.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the correlation ID from ctx, if any.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok
}
