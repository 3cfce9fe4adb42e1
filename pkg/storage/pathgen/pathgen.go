// Package pathgen synthesizes canonical storage paths for uploaded
// documents. Paths are constructed from an owner descriptor and a
// document kind; they are never parsed back. All construction is pure
// and side-effect-free.
package pathgen

import (
	"fmt"
	"path"
	"strings"

	"github.com/sipi-it/slms/pkg/storage"
)

// Kind selects the root segment of a canonical path.
type Kind string

const (
	KindStudent      Kind = "student"
	KindTeacher      Kind = "teacher"
	KindAdmission    Kind = "admission"
	KindDepartmental Kind = "departmental"
)

// rootSegments maps a document kind onto its storage root segment.
var rootSegments = map[Kind]string{
	KindStudent:      "Student_Documents",
	KindTeacher:      "Teacher_Documents",
	KindAdmission:    "Admission_Documents",
	KindDepartmental: "Departmental",
}

// RootSegment returns the top-level directory for the kind, or false
// for an unknown kind.
func (k Kind) RootSegment() (string, bool) {
	seg, ok := rootSegments[k]
	return seg, ok
}

// Descriptor identifies the person or entity that owns a document.
// All six fields are mandatory. OwnerID follows the institute's
// identifier scheme (e.g. "SIPI-889900") and is used verbatim.
type Descriptor struct {
	DeptCode  string
	DeptName  string
	Session   string
	Shift     string
	OwnerName string
	OwnerID   string
}

// OwnerDir returns the canonical leaf directory for the descriptor and
// kind, relative to the storage root, using forward slashes:
//
//	Student_Documents/<code>_<slug(dept)>/<session>/<slug(shift)>/<slug(owner)>_<ownerID>
//
// The department code prefix keeps two departments distinct even when
// their names slugify to the same string; the owner ID suffix does the
// same for owners with identical names. There is no year segment: a
// student's entire dossier stays co-located, the year lives only on
// the Document record.
func OwnerDir(d Descriptor, kind Kind) (string, error) {
	root, ok := kind.RootSegment()
	if !ok {
		return "", fmt.Errorf("%w: unknown document kind %q", storage.ErrInvalidDescriptor, kind)
	}

	code := strings.TrimSpace(d.DeptCode)
	dept := strings.TrimSpace(d.DeptName)
	session := strings.TrimSpace(d.Session)
	shift := strings.TrimSpace(d.Shift)
	owner := strings.TrimSpace(d.OwnerName)
	ownerID := strings.TrimSpace(d.OwnerID)

	for field, value := range map[string]string{
		"dept_code":  code,
		"dept_name":  dept,
		"session":    session,
		"shift":      shift,
		"owner_name": owner,
		"owner_id":   ownerID,
	} {
		if value == "" {
			return "", fmt.Errorf("%w: %s is empty", storage.ErrInvalidDescriptor, field)
		}
	}

	return path.Join(
		root,
		code+"_"+Slug(dept),
		session,
		Slug(shift),
		Slug(owner)+"_"+ownerID,
	), nil
}

// Slug renders free text as a filesystem-safe path segment: lowercase,
// runs of non-alphanumeric characters collapsed to a single hyphen,
// leading and trailing hyphens stripped.
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pending := false
	for _, r := range strings.ToLower(s) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('-')
			pending = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

// SanitizeFilename applies the slug transform to the stem of a
// filename while preserving the extension verbatim in lowercase.
// An empty stem after slugging falls back to "file".
func SanitizeFilename(name string) string {
	ext := path.Ext(name)
	stem := Slug(strings.TrimSuffix(name, ext))
	if stem == "" {
		stem = "file"
	}
	return stem + strings.ToLower(ext)
}
