package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sitecheck/internal/inspect"

	"github.com/google/uuid"
)

// FileSystemStore is a filesystem-based implementation of the ArtifactStore
// interface. Artifacts live under two category roots:
//
//	<root>/
//	  reports/
//	    <uuid>_<name>   (report documents)
//	  photos/
//	    <uuid>_<name>   (photo files)
//
// References are category-qualified relative paths ("photos/<uuid>_<name>"),
// so a reference alone is enough to locate, size and delete an artifact.
type FileSystemStore struct {
	root string
}

// NewFileSystemStore creates a filesystem store rooted at the given path,
// creating the category directories if needed.
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	for _, category := range []inspect.Category{inspect.CategoryReport, inspect.CategoryPhoto} {
		if err := os.MkdirAll(filepath.Join(root, string(category)), 0755); err != nil {
			return nil, fmt.Errorf("creating %s directory: %w", category, err)
		}
	}
	return &FileSystemStore{root: root}, nil
}

// Write stores the bytes under a freshly generated reference. The uuid
// prefix makes references collision-resistant, so concurrent writes with
// the same suggested name never clash.
func (s *FileSystemStore) Write(category inspect.Category, name string, r io.Reader) (string, error) {
	ref := filepath.Join(string(category), uuid.New().String()+"_"+filepath.Base(name))
	destPath := filepath.Join(s.root, ref)

	if err := writeFileAtomic(destPath, r); err != nil {
		return "", err
	}
	return filepath.ToSlash(ref), nil
}

// Open returns the artifact contents for reading.
func (s *FileSystemStore) Open(ref string) (io.ReadCloser, error) {
	f, err := os.Open(s.resolve(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", ref, inspect.ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("opening artifact: %w", err)
	}
	return f, nil
}

// Exists reports whether the reference resolves to a regular file.
func (s *FileSystemStore) Exists(ref string) (bool, error) {
	info, err := os.Stat(s.resolve(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking artifact: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// Size returns the artifact size in bytes.
func (s *FileSystemStore) Size(ref string) (int64, error) {
	info, err := os.Stat(s.resolve(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%s: %w", ref, inspect.ErrArtifactNotFound)
		}
		return 0, fmt.Errorf("checking artifact: %w", err)
	}
	return info.Size(), nil
}

// Delete removes the artifact. A missing file is a no-op.
func (s *FileSystemStore) Delete(ref string) error {
	err := os.Remove(s.resolve(ref))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting artifact: %w", err)
	}
	return nil
}

// resolve maps a reference to a path under the store root. References were
// minted by Write and never escape the root; path traversal in a stored
// reference still resolves inside the root via Clean.
func (s *FileSystemStore) resolve(ref string) string {
	cleaned := filepath.Clean("/" + filepath.FromSlash(ref))
	return filepath.Join(s.root, cleaned)
}

// writeFileAtomic writes data from r to destPath via temp file + rename so
// a reference never points at a partially written artifact.
func writeFileAtomic(destPath string, r io.Reader) error {
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing artifact data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemStore implements inspect.ArtifactStore.
var _ inspect.ArtifactStore = (*FileSystemStore)(nil)
