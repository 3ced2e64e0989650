package artifact

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when an artifact does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for publishing finished output files to
// shared storage.
//
// Implementations must be safe for concurrent use. Keys use forward
// slashes regardless of platform.
type Store interface {
	// Put writes the contents of r under name, replacing any
	// existing artifact.
	Put(ctx context.Context, name string, r io.Reader) error

	// Get opens the named artifact for reading.
	Get(ctx context.Context, name string) (io.ReadCloser, error)

	// Exists reports whether the named artifact is present.
	Exists(ctx context.Context, name string) (bool, error)

	// Delete removes the named artifact. Deleting a missing artifact
	// is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all artifacts under prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
