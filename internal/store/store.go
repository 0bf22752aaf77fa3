// internal/store/store.go

// Package store defines the remote document store contract.
// Backends live in subpackages; each addresses exactly one document.
package store

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Update when the document does not exist yet.
var ErrNotFound = errors.New("store: document not found")

// Store is one remote document.
type Store interface {
	// Set replaces the whole document with fields.
	Set(ctx context.Context, fields map[string]interface{}) error

	// Update merges fields into the existing document; other fields are kept.
	Update(ctx context.Context, fields map[string]interface{}) error

	Close() error
}
