package kv

import (
	"context"
	"errors"
)

var ErrInvalidKey = errors.New("invalid key")

// Repository describes byte-oriented key-value storage.
type Repository interface {
	// Get returns the value stored under key, or nil and no error when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Rename moves the value of from to to in one step, replacing to.
	// Renaming an absent key is not an error.
	Rename(ctx context.Context, from, to string) error

	// List returns all stored pairs.
	List(ctx context.Context) (map[string][]byte, error)

	// Clear removes every key.
	Clear(ctx context.Context) error
}
