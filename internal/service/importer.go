package service

import (
	"bytes"
	"context"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/sipi-it/slms/pkg/db/models"
	"github.com/sipi-it/slms/pkg/db/store"
	"github.com/sipi-it/slms/pkg/log"
	legacystore "github.com/sipi-it/slms/pkg/storage/legacy"
	"github.com/sipi-it/slms/pkg/storage/structured"
)

// yearSegment matches the year directory an earlier layout iteration
// embedded right below the root segment. The canonical contract has no
// year in paths; imports strip it so a student's dossier stays
// co-located.
var yearSegment = regexp.MustCompile(`^(19|20)\d{2}$`)

// ImportResult summarizes one legacy import run.
type ImportResult struct {
	Scanned   int
	Imported  int
	Skipped   int
	Failed    int
	Relocated int
	Duration  time.Duration
}

// LegacyImporter re-homes files from the flat pre-migration layout
// into the structured hierarchy, record by record. The structured copy
// becomes authoritative; the legacy file is left untouched for the
// operator to archive.
type LegacyImporter struct {
	records store.DocumentStore
	files   *structured.Store
	legacy  *legacystore.Store
	log     log.LoggerService
}

func NewLegacyImporter(
	records store.DocumentStore,
	files *structured.Store,
	legacy *legacystore.Store,
	logger log.LoggerService,
) *LegacyImporter {
	return &LegacyImporter{
		records: records,
		files:   files,
		legacy:  legacy,
		log:     logger.Named("legacy-import"),
	}
}

// Run walks every document record and imports the ones whose file only
// exists in the legacy store.
func (li *LegacyImporter) Run(ctx context.Context) (*ImportResult, error) {
	start := time.Now()
	result := &ImportResult{}

	err := li.records.ForEachDocument(ctx, 200, func(doc *models.Document) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		result.Scanned++

		// Structured copy already authoritative, nothing to do
		info, err := li.files.GetFileInfo(doc.FilePath)
		if err != nil {
			li.log.Warn("Record %s has invalid path %s: %v", doc.ID, doc.FilePath, err)
			result.Failed++
			return nil
		}
		if info.Exists {
			result.Skipped++
			return nil
		}

		data, err := li.legacy.Read(doc.FilePath)
		if err != nil {
			// Orphans are the reconciler's concern, not the importer's
			result.Skipped++
			return nil
		}

		target := canonicalizePath(doc.FilePath)
		dir, name := path.Split(target)
		rel, err := li.files.Write(strings.TrimSuffix(dir, "/"), name, bytes.NewReader(data))
		if err != nil {
			li.log.Error("Failed to import %s: %v", doc.FilePath, err)
			result.Failed++
			return nil
		}

		if rel != doc.FilePath {
			doc.FilePath = rel
			if err := li.records.UpdateDocument(ctx, doc); err != nil {
				li.log.Error("Imported %s but failed to update record %s: %v", rel, doc.ID, err)
				result.Failed++
				return nil
			}
			result.Relocated++
		}
		result.Imported++
		li.log.Info("Imported %s into structured store as %s", doc.FileName, rel)
		return nil
	})

	result.Duration = time.Since(start)
	return result, err
}

// canonicalizePath strips the obsolete year segment below the root
// segment, if present.
func canonicalizePath(rel string) string {
	segments := strings.Split(path.Clean(rel), "/")
	if len(segments) > 2 && yearSegment.MatchString(segments[1]) {
		segments = append(segments[:1], segments[2:]...)
	}
	return path.Join(segments...)
}
