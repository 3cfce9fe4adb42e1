package pathgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/sipi-it/slms/pkg/storage"
)

func validDescriptor() Descriptor {
	return Descriptor{
		DeptCode:  "85",
		DeptName:  "Computer Science",
		Session:   "2024-2025",
		Shift:     "1st Shift",
		OwnerName: "Md Mahadi",
		OwnerID:   "SIPI-889900",
	}
}

func TestOwnerDir_CanonicalShape(t *testing.T) {
	dir, err := OwnerDir(validDescriptor(), KindStudent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Student_Documents/85_computer-science/2024-2025/1st-shift/md-mahadi_SIPI-889900"
	if dir != want {
		t.Errorf("expected %q, got %q", want, dir)
	}
}

func TestOwnerDir_RootSegments(t *testing.T) {
	for kind, root := range map[Kind]string{
		KindStudent:      "Student_Documents",
		KindTeacher:      "Teacher_Documents",
		KindAdmission:    "Admission_Documents",
		KindDepartmental: "Departmental",
	} {
		dir, err := OwnerDir(validDescriptor(), kind)
		if err != nil {
			t.Fatalf("kind %s: unexpected error: %v", kind, err)
		}
		if !strings.HasPrefix(dir, root+"/") {
			t.Errorf("kind %s: expected prefix %q, got %q", kind, root, dir)
		}
	}
}

func TestOwnerDir_Deterministic(t *testing.T) {
	first, err := OwnerDir(validDescriptor(), KindStudent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := OwnerDir(validDescriptor(), KindStudent)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("synthesis not deterministic: %q vs %q", first, again)
		}
	}
}

func TestOwnerDir_NoTraversalNoWhitespace(t *testing.T) {
	desc := Descriptor{
		DeptCode:  "99",
		DeptName:  "../..",
		Session:   "2024-2025",
		Shift:     "Day / Night",
		OwnerName: "A B\tC",
		OwnerID:   "SIPI-1",
	}

	dir, err := OwnerDir(desc, KindStudent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(dir, "..") {
		t.Errorf("path contains traversal sequence: %q", dir)
	}
	if strings.ContainsAny(dir, " \t\n") {
		t.Errorf("path contains whitespace: %q", dir)
	}
}

func TestOwnerDir_EmptyFieldRejected(t *testing.T) {
	fields := []func(*Descriptor){
		func(d *Descriptor) { d.DeptCode = "" },
		func(d *Descriptor) { d.DeptName = "  " },
		func(d *Descriptor) { d.Session = "" },
		func(d *Descriptor) { d.Shift = "\t" },
		func(d *Descriptor) { d.OwnerName = "" },
		func(d *Descriptor) { d.OwnerID = " " },
	}

	for i, blank := range fields {
		desc := validDescriptor()
		blank(&desc)

		if _, err := OwnerDir(desc, KindStudent); !errors.Is(err, storage.ErrInvalidDescriptor) {
			t.Errorf("case %d: expected ErrInvalidDescriptor, got %v", i, err)
		}
	}
}

func TestOwnerDir_UnknownKind(t *testing.T) {
	if _, err := OwnerDir(validDescriptor(), Kind("archive")); !errors.Is(err, storage.ErrInvalidDescriptor) {
		t.Errorf("expected ErrInvalidDescriptor for unknown kind, got %v", err)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Computer Science":   "computer-science",
		"1st Shift":          "1st-shift",
		"  Md   Mahadi  ":    "md-mahadi",
		"A---B":              "a-b",
		"--leading-trailing": "leading-trailing",
		"ALLCAPS":            "allcaps",
		"":                   "",
		"!!!":                "",
	}

	for input, want := range cases {
		if got := Slug(input); got != want {
			t.Errorf("Slug(%q): expected %q, got %q", input, want, got)
		}
	}
}

func TestSlug_NeverUppercase(t *testing.T) {
	for _, input := range []string{"Electrical Technology", "RAC Dept", "Shift-2 (Evening)"} {
		slug := Slug(input)
		if slug != strings.ToLower(slug) {
			t.Errorf("Slug(%q) contains uppercase: %q", input, slug)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Transcript.PDF":     "transcript.pdf",
		"Admission Form.pdf": "admission-form.pdf",
		"notes.txt":          "notes.txt",
		"weird!!name.JPG":    "weird-name.jpg",
		"no_extension":       "no-extension",
		"...":                "file.",
	}

	for input, want := range cases {
		if got := SanitizeFilename(input); got != want {
			t.Errorf("SanitizeFilename(%q): expected %q, got %q", input, want, got)
		}
	}
}
