// Package repository provides data access layer implementations for the application.
package repository

// BatchResult reports the outcome of one batch upsert. A batch is
// all-or-nothing: either every row committed or the transaction rolled back
// and no rows were written.
type BatchResult struct {
	Attempted int
	Succeeded int
	Failed    int
	// FirstID and LastID bound the identity range of the batch so a failed
	// batch can be replayed manually.
	FirstID string
	LastID  string
	Err     error
}

// OK reports whether the batch committed.
func (r BatchResult) OK() bool {
	return r.Err == nil
}
