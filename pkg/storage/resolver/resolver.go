// Package resolver is the sole public reader over the physical stores.
// It unifies the structured hierarchy and the legacy flat layout
// behind one lookup call; the structured store always wins when both
// hold the same path suffix.
package resolver

import (
	"github.com/sipi-it/slms/pkg/storage"
)

// FileReader is the read surface both stores share.
type FileReader interface {
	Read(rel string) ([]byte, error)
	GetFileInfo(rel string) (storage.FileInfo, error)
}

// Resolver dispatches lookups across the structured and legacy tiers.
type Resolver struct {
	structured FileReader
	legacy     FileReader
}

// New creates a resolver. The legacy tier may be nil once the flat
// store has been decommissioned.
func New(structured, legacy FileReader) *Resolver {
	return &Resolver{structured: structured, legacy: legacy}
}

// Resolve returns the file-info view for a stored relative path. A
// record whose file is absent from both stores is orphaned: the result
// has Exists=false and the error is nil. Only invalid paths error.
func (r *Resolver) Resolve(rel string) (storage.FileInfo, error) {
	info, err := r.structured.GetFileInfo(rel)
	if err != nil {
		return storage.FileInfo{}, err
	}
	if info.Exists {
		return info, nil
	}

	if r.legacy == nil {
		return storage.FileInfo{}, nil
	}

	info, err = r.legacy.GetFileInfo(rel)
	if err != nil {
		return storage.FileInfo{}, err
	}
	if info.Exists {
		return info, nil
	}
	return storage.FileInfo{}, nil
}

// Read returns the file bytes from whichever tier holds the path,
// structured first.
func (r *Resolver) Read(rel string) ([]byte, error) {
	info, err := r.structured.GetFileInfo(rel)
	if err != nil {
		return nil, err
	}
	if info.Exists {
		return r.structured.Read(rel)
	}
	if r.legacy == nil {
		return nil, storage.ErrNotFound
	}
	return r.legacy.Read(rel)
}
