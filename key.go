package cavia

import "context"

// Key is a Symbol that also carries the Go type of the value registered
// under it.
//
// Example:
//
//	var DatabaseKey = cavia.NewKey[*Database]("database")
//
//	providers := []cavia.Provider{
//	    cavia.ValueProvider{Provide: DatabaseKey, UseValue: db},
//	}
//
//	db, ok, err := cavia.FindKey(ctx, c, DatabaseKey)
type Key[T any] struct {
	Symbol
}

// NewKey creates a new typed key.
func NewKey[T any](description string) Key[T] {
	return Key[T]{Symbol: NewSymbol(description)}
}

// FindKey resolves the value registered under key.
func FindKey[T any](ctx context.Context, c *Container, key Key[T]) (T, bool, error) {
	return Find[T](ctx, c, key)
}

// MustFindKey resolves the value registered under key and panics on error or
// when nothing is registered.
func MustFindKey[T any](ctx context.Context, c *Container, key Key[T]) T {
	return MustFind[T](ctx, c, key)
}
