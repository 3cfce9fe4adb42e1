// Package structured persists document bytes under the canonical
// owner-partitioned hierarchy. All relative paths use forward slashes
// in persisted form regardless of host OS, and no operation ever
// touches a file outside the configured root.
package structured

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sipi-it/slms/pkg/storage"
	"github.com/sipi-it/slms/pkg/storage/pathgen"
)

// Store writes, reads, moves and deletes files under a single storage
// root. It carries no in-process state; concurrent workers coordinate
// through rename atomicity on the shared filesystem.
type Store struct {
	root string
}

// New creates a Store rooted at the given absolute directory, creating
// it if necessary.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Root returns the configured storage root.
func (s *Store) Root() string {
	return s.root
}

// Write stores the reader's bytes as a file in the canonical directory
// and returns the relative path from the storage root. The filename
// stem is sanitized with the slug rules, the extension kept lowercase.
//
// The write is atomic: bytes go to a uniquely named ".part" file in
// the same directory, then an fsync and a rename publish the file. A
// reader can never observe a partial file; on failure the .part file
// is removed. Concurrent writers to the same name each fill their own
// part file and resolve last-writer-wins at the rename, so the
// published file is always one writer's payload in full.
func (s *Store) Write(dir, filename string, r io.Reader) (string, error) {
	relDir, err := s.resolveRel(dir)
	if err != nil {
		return "", err
	}

	rel := path.Join(relDir, pathgen.SanitizeFilename(filename))
	fullPath := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("%w: create directory %s: %v", storage.ErrWriteFailed, relDir, err)
	}

	// A shared temp name would let a second writer truncate the first
	// writer's in-progress file
	f, err := os.CreateTemp(filepath.Dir(fullPath), filepath.Base(fullPath)+".*.part")
	if err != nil {
		return "", fmt.Errorf("%w: create part file for %s: %v", storage.ErrWriteFailed, rel, err)
	}
	partPath := f.Name()

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(partPath)
		return "", fmt.Errorf("%w: write %s: %v", storage.ErrWriteFailed, rel, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(partPath)
		return "", fmt.Errorf("%w: fsync %s: %v", storage.ErrWriteFailed, rel, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(partPath)
		return "", fmt.Errorf("%w: close %s: %v", storage.ErrWriteFailed, rel, err)
	}

	if err := os.Rename(partPath, fullPath); err != nil {
		os.Remove(partPath)
		return "", fmt.Errorf("%w: rename %s: %v", storage.ErrWriteFailed, rel, err)
	}

	return rel, nil
}

// Read returns the full content of the file at the relative path.
func (s *Store) Read(rel string) ([]byte, error) {
	fullPath, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, rel)
		}
		return nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	return data, nil
}

// GetFileInfo stats the file at the relative path. A missing file is
// reported as a zero FileInfo with Exists=false, not as an error.
func (s *Store) GetFileInfo(rel string) (storage.FileInfo, error) {
	fullPath, err := s.resolve(rel)
	if err != nil {
		return storage.FileInfo{}, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.FileInfo{}, nil
		}
		return storage.FileInfo{}, fmt.Errorf("failed to stat %s: %w", rel, err)
	}
	if info.IsDir() {
		return storage.FileInfo{}, nil
	}

	return storage.FileInfo{
		Exists:      true,
		StoragePath: rel,
		FileSize:    info.Size(),
		MIMEType:    storage.MIMEType(rel),
		Source:      storage.SourceStructured,
	}, nil
}

// Move renames a file within the store, creating destination parents
// as needed. It refuses to overwrite an existing destination.
func (s *Store) Move(oldRel, newRel string) error {
	oldPath, err := s.resolve(oldRel)
	if err != nil {
		return err
	}
	newPath, err := s.resolve(newRel)
	if err != nil {
		return err
	}

	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("%w: destination %s already exists", storage.ErrWriteFailed, newRel)
	}

	if err := os.MkdirAll(filepath.Dir(newPath), 0o750); err != nil {
		return fmt.Errorf("%w: create directory for %s: %v", storage.ErrWriteFailed, newRel, err)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, oldRel)
		}
		return fmt.Errorf("%w: move %s to %s: %v", storage.ErrWriteFailed, oldRel, newRel, err)
	}
	return nil
}

// Delete removes the file at the relative path and prunes now-empty
// parent directories up to the storage root, stopping at the first
// non-empty one. Returns false when the file was already absent.
func (s *Store) Delete(rel string) (bool, error) {
	fullPath, err := s.resolve(rel)
	if err != nil {
		return false, err
	}

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete %s: %w", rel, err)
	}

	s.pruneEmptyParents(filepath.Dir(fullPath))
	return true, nil
}

// pruneEmptyParents removes empty directories from dir upward until the
// storage root or the first non-empty directory. Removal errors stop
// the walk; a concurrent writer claiming the directory is not a fault.
func (s *Store) pruneEmptyParents(dir string) {
	root := filepath.Clean(s.root)
	for {
		dir = filepath.Clean(dir)
		if dir == root || !strings.HasPrefix(dir, root+string(filepath.Separator)) {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

// resolve maps a relative path onto the filesystem, rejecting anything
// that would escape the storage root.
func (s *Store) resolve(rel string) (string, error) {
	clean, err := s.resolveRel(rel)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// resolveRel normalizes a forward-slash relative path and rejects
// absolute paths and parent traversal.
func (s *Store) resolveRel(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("%w: empty path", storage.ErrInvalidPath)
	}

	clean := path.Clean(strings.ReplaceAll(rel, "\\", "/"))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %s escapes storage root", storage.ErrInvalidPath, rel)
	}
	return clean, nil
}
