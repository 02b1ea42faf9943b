package client

import "context"

type sessionKey struct{}

// WithSessionToken attaches the caller's backend session token to ctx.
// Requests made with that context send it instead of the configured token.
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionKey{}, token)
}

// SessionToken returns the token attached by WithSessionToken.
func SessionToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(sessionKey{}).(string)
	return token, ok && token != ""
}
