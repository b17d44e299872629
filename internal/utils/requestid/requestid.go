package requestid

import "context"

// Header is the HTTP header carrying the request id.
const Header = "X-Request-Id"

type contextKey struct{}

// With returns ctx tagged with id.
func With(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, id)
}

// From returns the id stored by With, or "".
func From(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}
