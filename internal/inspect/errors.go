package inspect

import (
	"errors"
	"fmt"
)

// ErrArtifactNotFound is returned by ArtifactStore implementations when a
// reference does not resolve to a stored artifact.
var ErrArtifactNotFound = errors.New("artifact not found")

// NotFoundError reports that an entity id does not resolve to a live record.
type NotFoundError struct {
	Kind string // "project", "inspection" or "photo"
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
