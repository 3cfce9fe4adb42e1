// Package legacy is a read-only, best-effort compatibility layer over
// the pre-migration flat upload layout. It exists only for the
// migration window and exposes the same read surface as the structured
// store; once the flat store is decommissioned the resolver drops this
// tier with a one-line change.
package legacy

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/sipi-it/slms/pkg/log"
	"github.com/sipi-it/slms/pkg/storage"
)

// Store reads files below the legacy root. No writes, ever.
type Store struct {
	root string
	log  log.LoggerService
}

// New creates a legacy adapter over the given root. The root is not
// created when missing; an absent legacy store simply never matches.
func New(root string, logger log.LoggerService) *Store {
	return &Store{
		root: root,
		log:  logger.Named("legacy-store"),
	}
}

// Read returns the content of the file at the relative path, using the
// same fallback resolution as GetFileInfo.
func (s *Store) Read(rel string) ([]byte, error) {
	fullPath, err := s.locate(rel)
	if err != nil {
		return nil, err
	}
	if fullPath == "" {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, rel)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, rel)
		}
		return nil, fmt.Errorf("failed to read legacy file %s: %w", rel, err)
	}
	return data, nil
}

// GetFileInfo stats the file at the relative path. When the exact path
// does not resolve, it falls back to a basename scan below the legacy
// root; the first match wins, ordered by shortest depth then
// lexicographic. The fallback is logged but is not a failure.
func (s *Store) GetFileInfo(rel string) (storage.FileInfo, error) {
	fullPath, err := s.locate(rel)
	if err != nil {
		return storage.FileInfo{}, err
	}
	if fullPath == "" {
		return storage.FileInfo{}, nil
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.FileInfo{}, nil
		}
		// A reachable-but-unreadable file is a fault, not an orphan
		return storage.FileInfo{}, fmt.Errorf("failed to stat legacy file %s: %w", rel, err)
	}

	relPath, relErr := filepath.Rel(s.root, fullPath)
	if relErr != nil {
		relPath = rel
	}

	return storage.FileInfo{
		Exists:      true,
		StoragePath: filepath.ToSlash(relPath),
		FileSize:    info.Size(),
		MIMEType:    storage.MIMEType(fullPath),
		Source:      storage.SourceLegacy,
	}, nil
}

// locate resolves a relative path to an absolute one, trying the exact
// path first and the basename scan second. An empty return with a nil
// error means not found.
func (s *Store) locate(rel string) (string, error) {
	clean, err := s.resolveRel(rel)
	if err != nil {
		return "", err
	}

	exact := filepath.Join(s.root, filepath.FromSlash(clean))
	info, err := os.Stat(exact)
	switch {
	case err == nil:
		if !info.IsDir() {
			return exact, nil
		}
	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR):
		// Stale recorded path, fall through to the basename scan
	default:
		return "", fmt.Errorf("failed to stat legacy file %s: %w", rel, err)
	}

	match := s.scanBasename(path.Base(clean))
	if match != "" {
		s.log.Warn("Legacy fallback matched %s by basename for %s", match, rel)
	}
	return match, nil
}

// scanBasename walks the legacy root looking for files with the given
// basename. Ambiguous basenames are resolved by shortest depth, then
// lexicographic order.
func (s *Store) scanBasename(base string) string {
	if base == "" || base == "." {
		return ""
	}

	var matches []string
	filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == base {
			matches = append(matches, p)
		}
		return nil
	})
	if len(matches) == 0 {
		return ""
	}

	sort.Slice(matches, func(i, j int) bool {
		di := strings.Count(matches[i], string(filepath.Separator))
		dj := strings.Count(matches[j], string(filepath.Separator))
		if di != dj {
			return di < dj
		}
		return matches[i] < matches[j]
	})
	return matches[0]
}

// resolveRel mirrors the structured store's root confinement: legacy
// lookups reject traversal the same way.
func (s *Store) resolveRel(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("%w: empty path", storage.ErrInvalidPath)
	}

	clean := path.Clean(strings.ReplaceAll(rel, "\\", "/"))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %s escapes legacy root", storage.ErrInvalidPath, rel)
	}
	return clean, nil
}
