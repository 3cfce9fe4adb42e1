package models

import (
	"reflect"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&Document{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestBeforeSave_DerivedColumns(t *testing.T) {
	db := openDB(t)

	doc := &Document{
		FileName:     "Transcript.PDF",
		FilePath:     "Student_Documents/85_computer-science/2024-2025/1st-shift/md-mahadi_SIPI-889900/transcript.pdf",
		Description:  "Final 2024",
		OwnerName:    "Md Mahadi",
		OwnerID:      "SIPI-889900",
		DocumentType: DocumentTypeStudent,
		SourceType:   SourceTypeStudent,
		UploadDate:   time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	doc.SetTags([]string{"final"})

	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if doc.ID == "" {
		t.Error("expected generated ID")
	}
	if doc.Year != 2025 {
		t.Errorf("expected year 2025, got %d", doc.Year)
	}
	want := "transcript.pdf final 2024 final md mahadi sipi-889900"
	if doc.SearchText != want {
		t.Errorf("search text mismatch:\n  expected %q\n  got      %q", want, doc.SearchText)
	}

	// Derived values must survive the round trip
	var loaded Document
	if err := db.First(&loaded, "id = ?", doc.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Year != 2025 || loaded.SearchText != want {
		t.Errorf("persisted columns differ: year=%d search_text=%q", loaded.Year, loaded.SearchText)
	}
}

func TestBeforeSave_ExplicitYearKept(t *testing.T) {
	db := openDB(t)

	doc := &Document{
		FileName:     "old.pdf",
		FilePath:     "Student_Documents/a/old.pdf",
		DocumentType: DocumentTypeStudent,
		UploadDate:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Year:         2019,
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if doc.Year != 2019 {
		t.Errorf("caller-set year overwritten: got %d", doc.Year)
	}
}

func TestBeforeSave_RecomputeYear(t *testing.T) {
	db := openDB(t)

	doc := &Document{
		FileName:     "old.pdf",
		FilePath:     "Student_Documents/a/old.pdf",
		DocumentType: DocumentTypeStudent,
		UploadDate:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Year:         2019,
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	doc.RecomputeYear = true
	if err := db.Save(doc).Error; err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if doc.Year != 2025 {
		t.Errorf("backfill did not recompute year: got %d", doc.Year)
	}
}

func TestBeforeSave_ZeroUploadDate(t *testing.T) {
	db := openDB(t)

	doc := &Document{
		FileName:     "a.pdf",
		FilePath:     "Student_Documents/a/a.pdf",
		DocumentType: DocumentTypeStudent,
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if doc.Year != time.Now().UTC().Year() {
		t.Errorf("expected current year fallback, got %d", doc.Year)
	}
}

func TestBeforeSave_SearchTextRecomputedOnUpdate(t *testing.T) {
	db := openDB(t)

	doc := &Document{
		FileName:     "a.pdf",
		FilePath:     "Student_Documents/a/a.pdf",
		Description:  "before",
		DocumentType: DocumentTypeStudent,
		UploadDate:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("create failed: %v", err)
	}

	doc.Description = "After Edit"
	if err := db.Save(doc).Error; err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if doc.SearchText != "a.pdf after edit" {
		t.Errorf("search text not recomputed: %q", doc.SearchText)
	}
}

func TestTagsRoundTrip(t *testing.T) {
	var doc Document

	doc.SetTags([]string{"final", "2024", "transcript"})
	if got := doc.Tags(); !reflect.DeepEqual(got, []string{"final", "2024", "transcript"}) {
		t.Errorf("tags mismatch: %v", got)
	}

	doc.SetTags(nil)
	if doc.TagsJSON != "" {
		t.Errorf("expected empty column for no tags, got %q", doc.TagsJSON)
	}
	if doc.Tags() != nil {
		t.Error("expected nil tags for empty column")
	}

	doc.TagsJSON = "not-json"
	if doc.Tags() != nil {
		t.Error("malformed column must yield no tags")
	}
}
