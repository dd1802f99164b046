package blobstore

import (
	"context"
	"fmt"
	"os"
)

// FileFetcher reads the export document from the local filesystem. It backs
// the -local flag on the CLI and the end-to-end tests.
type FileFetcher struct {
	Path string
}

// Location describes the file for logs and error messages.
func (f *FileFetcher) Location() string {
	return f.Path
}

// Exists reports whether the file is present.
func (f *FileFetcher) Exists(_ context.Context) (bool, error) {
	_, err := os.Stat(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check %s: %w", f.Path, err)
	}
	return true, nil
}

// Fetch returns the file's raw bytes.
func (f *FileFetcher) Fetch(_ context.Context) ([]byte, error) {
	body, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, f.Path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	return body, nil
}
