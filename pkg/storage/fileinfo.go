package storage

// Source identifies which physical store answered a lookup.
type Source string

const (
	// SourceStructured is the hierarchical, owner-partitioned layout.
	SourceStructured Source = "structured"
	// SourceLegacy is the pre-migration flat layout.
	SourceLegacy Source = "legacy"
)

// FileInfo is the file-info view returned by stat-style lookups.
// A missing file is reported as Exists=false rather than an error,
// so that orphan detection stays a non-exceptional path.
type FileInfo struct {
	Exists      bool
	StoragePath string
	FileSize    int64
	MIMEType    string
	Source      Source
}
