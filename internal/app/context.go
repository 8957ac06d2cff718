package app

import "context"

// contextKey keys the App in a command context
type contextKey struct{}

var appContextKey = contextKey{}

// FromContext retrieves the App from ctx, or nil
func FromContext(ctx context.Context) *App {
	a, ok := ctx.Value(appContextKey).(*App)
	if !ok {
		return nil
	}
	return a
}

// IntoContext stores the App in ctx
func IntoContext(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, appContextKey, a)
}
