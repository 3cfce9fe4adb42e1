package storage

import "testing"

func TestMIMEType(t *testing.T) {
	cases := map[string]string{
		"a/b/notes.txt":     "text/plain",
		"Transcript.PDF":    "application/pdf",
		"photo.JPG":         "image/jpeg",
		"photo.jpeg":        "image/jpeg",
		"scan.png":          "image/png",
		"anim.gif":          "image/gif",
		"pic.webp":          "image/webp",
		"old.doc":           "application/msword",
		"new.docx":          "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"sheet.xls":         "application/vnd.ms-excel",
		"sheet.xlsx":        "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"archive.zip":       "application/octet-stream",
		"no_extension":      "application/octet-stream",
		"dir.with.dots/bin": "application/octet-stream",
	}

	for path, want := range cases {
		if got := MIMEType(path); got != want {
			t.Errorf("MIMEType(%q): expected %q, got %q", path, want, got)
		}
	}
}
