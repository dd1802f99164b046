// Package blobstore reads the export document from object storage.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the configured object does not exist in the
// store. Callers treat it as a fatal, pre-extraction condition.
var ErrNotFound = errors.New("object not found")

// Fetcher retrieves the raw export document. Implementations must be safe for
// repeated calls within one run but carry no other state between calls.
type Fetcher interface {
	// Exists reports whether the configured object is present.
	Exists(ctx context.Context) (bool, error)
	// Fetch returns the object's raw bytes.
	Fetch(ctx context.Context) ([]byte, error)
	// Location describes the object for logs and error messages.
	Location() string
}
