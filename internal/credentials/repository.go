// Package credentials persists the client's bearer token to durable local
// storage. The token is opaque: it is stored and returned verbatim, never
// inspected.
package credentials

import "context"

// storageKey is the fixed row name the token is stored under.
const storageKey = "slack_connect_token"

// Repository stores at most one bearer token.
//
// Get returns an empty string (and no error) when no token is stored;
// Clear on an empty store is a no-op.
type Repository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
