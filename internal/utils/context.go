// Package utils provides small helpers shared by the client and the server:
// typed context keys, JSON response writing, the resty HTTP client, JWT
// helpers and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys so they never collide with
// string keys set by other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// PrincipalCtxKey stores the authenticated token subject of a server request.
var PrincipalCtxKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying the token subject.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, PrincipalCtxKey, principal)
}

// GetPrincipalFromContext retrieves the token subject stored by the auth
// middleware. ok is false when the value is missing, empty or of a different
// type.
func GetPrincipalFromContext(ctx context.Context) (string, bool) {
	principal, ok := ctx.Value(PrincipalCtxKey).(string)
	return principal, ok && principal != ""
}
