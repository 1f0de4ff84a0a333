package repository

import "context"

// AuthTokenKey is the key under which the bearer token is persisted.
const AuthTokenKey = "custom-auth-token"

// TokenStore persists small pieces of client state between runs.
// Get returns "" and no error for a missing key.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
