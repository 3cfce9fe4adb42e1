package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document kinds used by the calling subsystems. The storage core
// treats the value as an opaque tag used only for indexing.
const (
	DocumentTypeAdmission    = "admission"
	DocumentTypeStudent      = "student"
	DocumentTypeTeacher      = "teacher"
	DocumentTypeDepartmental = "departmental"
)

// Upstream subsystems that own document records.
const (
	SourceTypeAdmission  = "admission"
	SourceTypeStudent    = "student"
	SourceTypeTeacher    = "teacher"
	SourceTypeDepartment = "department"
)

// Document represents the metadata row for a stored file. Year and
// SearchText are derived columns, recomputed in the BeforeSave hook so
// the derivation lives in a single choke-point instead of at call
// sites.
type Document struct {
	ID       string `gorm:"type:text;primaryKey"`
	FileName string `gorm:"type:text;not null"`
	FilePath string `gorm:"type:text;not null;uniqueIndex"`

	Description string `gorm:"type:text"`
	// Tags are stored as a JSON array in a text column, see Tags/SetTags
	TagsJSON string `gorm:"type:text"`

	// Denormalized owner identity; empty for institutional documents
	OwnerName string `gorm:"type:text"`
	OwnerID   string `gorm:"type:text;index"`

	DocumentType string `gorm:"type:text;not null;index:idx_documents_year_type,priority:2"`
	SourceType   string `gorm:"type:text"`

	UploadDate time.Time
	// Year is the coarse partition key, derived from UploadDate
	Year int `gorm:"index;index:idx_documents_year_type,priority:1"`
	// SearchText is the lowercased denormalized search blob
	SearchText string `gorm:"type:text"`

	// RecomputeYear forces the save hook to re-derive Year from
	// UploadDate even when it is already set. Used by backfills only.
	RecomputeYear bool `gorm:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// BeforeSave derives Year and SearchText. Year is kept when an
// explicit caller already set it, unless a backfill requests
// recomputation; SearchText is unconditionally recomputed on every
// save.
func (d *Document) BeforeSave(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	if d.Year == 0 || d.RecomputeYear {
		if !d.UploadDate.IsZero() {
			d.Year = d.UploadDate.Year()
		} else if d.Year == 0 {
			d.Year = time.Now().UTC().Year()
		}
	}

	d.SearchText = d.deriveSearchText()
	return nil
}

// deriveSearchText joins the searchable fields, lowercased, skipping
// absent ones.
func (d *Document) deriveSearchText() string {
	parts := make([]string, 0, 5+4)
	appendPart := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}

	appendPart(d.FileName)
	appendPart(d.Description)
	for _, tag := range d.Tags() {
		appendPart(tag)
	}
	appendPart(d.OwnerName)
	appendPart(d.OwnerID)

	return strings.ToLower(strings.Join(parts, " "))
}

// Tags decodes the stored tag list. A malformed or empty column yields
// no tags.
func (d *Document) Tags() []string {
	if d.TagsJSON == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(d.TagsJSON), &tags); err != nil {
		return nil
	}
	return tags
}

// SetTags encodes the ordered tag list into the text column.
func (d *Document) SetTags(tags []string) {
	if len(tags) == 0 {
		d.TagsJSON = ""
		return
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return
	}
	d.TagsJSON = string(data)
}
