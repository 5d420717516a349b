// Package common defines sentinel errors shared by the WarrantyKeeper client
// packages. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Persistence errors.
	ErrMalformedState = errors.New("malformed persisted state")
	ErrPersistence    = errors.New("persistence failure")

	// Input errors raised by the presentation layer before calling the store.
	ErrValidation = errors.New("validation error")
)
