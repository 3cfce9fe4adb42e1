package legacy

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	config "github.com/sipi-it/slms/internal/config/server"
	"github.com/sipi-it/slms/pkg/log"
	"github.com/sipi-it/slms/pkg/storage"
)

func newTestLogger() log.LoggerService {
	return log.NewLoggerService("test", config.LogServerConfig{
		Level:      "FATAL",
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	})
}

func writeLegacyFile(t *testing.T, root string, rel string, content string) {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o640); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestGetFileInfo_ExactPath(t *testing.T) {
	root := t.TempDir()
	writeLegacyFile(t, root, "uploads/transcript.pdf", "payload")

	s := New(root, newTestLogger())

	info, err := s.GetFileInfo("uploads/transcript.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.Exists {
		t.Fatal("file reported as missing")
	}
	if info.Source != storage.SourceLegacy {
		t.Errorf("expected legacy source, got %s", info.Source)
	}
	if info.MIMEType != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", info.MIMEType)
	}
	if info.FileSize != int64(len("payload")) {
		t.Errorf("unexpected size %d", info.FileSize)
	}
}

func TestGetFileInfo_BasenameFallback(t *testing.T) {
	root := t.TempDir()
	writeLegacyFile(t, root, "old/deep/nested/transcript.pdf", "deep")
	writeLegacyFile(t, root, "old/transcript.pdf", "shallow")

	s := New(root, newTestLogger())

	// The recorded path does not exist; the shallowest basename match wins
	info, err := s.GetFileInfo("Student_Documents/whatever/transcript.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.Exists {
		t.Fatal("fallback did not match")
	}
	if info.StoragePath != "old/transcript.pdf" {
		t.Errorf("expected shallowest match, got %s", info.StoragePath)
	}

	data, err := s.Read("Student_Documents/whatever/transcript.pdf")
	if err != nil {
		t.Fatalf("read via fallback failed: %v", err)
	}
	if !bytes.Equal(data, []byte("shallow")) {
		t.Errorf("expected shallow copy, got %q", data)
	}
}

func TestGetFileInfo_FallbackLexicographicTie(t *testing.T) {
	root := t.TempDir()
	writeLegacyFile(t, root, "b/report.pdf", "from-b")
	writeLegacyFile(t, root, "a/report.pdf", "from-a")

	s := New(root, newTestLogger())

	info, err := s.GetFileInfo("missing/report.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.StoragePath != "a/report.pdf" {
		t.Errorf("expected lexicographically first match, got %s", info.StoragePath)
	}
}

func TestGetFileInfo_NoMatch(t *testing.T) {
	s := New(t.TempDir(), newTestLogger())

	info, err := s.GetFileInfo("uploads/ghost.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Exists {
		t.Error("ghost file reported as existing")
	}

	if _, err := s.Read("uploads/ghost.pdf"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTraversalRejected(t *testing.T) {
	s := New(t.TempDir(), newTestLogger())

	for _, rel := range []string{"../secret", "a/../../b", ""} {
		if _, err := s.GetFileInfo(rel); !errors.Is(err, storage.ErrInvalidPath) {
			t.Errorf("GetFileInfo(%q): expected ErrInvalidPath, got %v", rel, err)
		}
	}
}

func TestGetFileInfo_UnreachableIsAnError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	root := t.TempDir()
	writeLegacyFile(t, root, "locked/secret.pdf", "x")

	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o750) })

	s := New(root, newTestLogger())

	// A reachable-but-unreadable file must surface the fault instead
	// of being misclassified as an orphan
	if _, err := s.GetFileInfo("locked/secret.pdf"); err == nil {
		t.Error("expected error for unreadable legacy path, got not-found")
	}
	if _, err := s.Read("locked/secret.pdf"); err == nil || errors.Is(err, storage.ErrNotFound) {
		t.Error("unreadable path must not be reported as missing")
	}
}

func TestGetFileInfo_FileComponentFallsBackToScan(t *testing.T) {
	root := t.TempDir()
	writeLegacyFile(t, root, "uploads/report.pdf", "payload")

	s := New(root, newTestLogger())

	// The recorded path descends through a regular file; that is a
	// stale path, not a fault, and the basename scan still matches
	info, err := s.GetFileInfo("uploads/report.pdf/report.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.Exists {
		t.Fatal("fallback did not match")
	}
	if info.StoragePath != "uploads/report.pdf" {
		t.Errorf("expected scan match, got %s", info.StoragePath)
	}
}

func TestMissingLegacyRoot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"), newTestLogger())

	info, err := s.GetFileInfo("uploads/a.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Exists {
		t.Error("absent root must never match")
	}
}
