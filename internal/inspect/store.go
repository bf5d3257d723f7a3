package inspect

import "io"

// Category names one of the two logical artifact roots.
type Category string

const (
	CategoryReport Category = "reports"
	CategoryPhoto  Category = "photos"
)

// ArtifactStore provides an interface for binary artifact storage backends.
// References are opaque strings minted by Write; callers never inspect
// storage internals.
type ArtifactStore interface {
	// Write stores the bytes read from r under a freshly generated,
	// collision-resistant reference derived from the suggested name.
	// Concurrent writes never collide because every write gets a new
	// reference.
	Write(category Category, name string, r io.Reader) (string, error)

	// Open returns the artifact contents for reading.
	// Returns ErrArtifactNotFound if the reference does not resolve.
	Open(ref string) (io.ReadCloser, error)

	// Exists reports whether the reference resolves to a stored artifact.
	Exists(ref string) (bool, error)

	// Size returns the artifact size in bytes.
	// Returns ErrArtifactNotFound if the reference does not resolve.
	Size(ref string) (int64, error)

	// Delete removes the artifact. Deleting an absent artifact is not an
	// error; Delete is idempotent.
	Delete(ref string) error
}
