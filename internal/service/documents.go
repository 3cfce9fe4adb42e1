// Package service orchestrates the document lifecycle across the
// physical stores and the record store. The pair (byte write, record
// save) is not transactional: writes go bytes first, then record, and
// deletes go bytes first, then record. A failed record save leaves
// bytes reachable only by filesystem scan until the reconciler picks
// them up.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"gorm.io/gorm"

	"github.com/sipi-it/slms/pkg/db/models"
	"github.com/sipi-it/slms/pkg/db/store"
	"github.com/sipi-it/slms/pkg/log"
	"github.com/sipi-it/slms/pkg/storage"
	"github.com/sipi-it/slms/pkg/storage/pathgen"
	"github.com/sipi-it/slms/pkg/storage/resolver"
	"github.com/sipi-it/slms/pkg/storage/structured"
)

// DocumentService is the write-side entrypoint the surrounding web
// layer calls. Reads go through the resolver so callers never see the
// physical layout.
type DocumentService struct {
	records  store.DocumentStore
	files    *structured.Store
	resolver *resolver.Resolver
	log      log.LoggerService
}

// UploadParams carries everything needed to store one document.
type UploadParams struct {
	Reader      io.Reader
	FileName    string
	Description string
	Tags        []string

	DocumentType string
	SourceType   string

	// UploadDate defaults to the current time when zero
	UploadDate time.Time
}

func NewDocumentService(
	records store.DocumentStore,
	files *structured.Store,
	res *resolver.Resolver,
	logger log.LoggerService,
) *DocumentService {
	return &DocumentService{
		records:  records,
		files:    files,
		resolver: res,
		log:      logger.Named("documents"),
	}
}

// Upload synthesizes the canonical directory for the owner, persists
// the bytes atomically, then creates the record. The record carries the
// derived year and search text via its save hook.
func (s *DocumentService) Upload(ctx context.Context, desc pathgen.Descriptor, kind pathgen.Kind, params UploadParams) (*models.Document, error) {
	dir, err := pathgen.OwnerDir(desc, kind)
	if err != nil {
		return nil, err
	}

	rel, err := s.files.Write(dir, params.FileName, params.Reader)
	if err != nil {
		return nil, err
	}

	uploadDate := params.UploadDate
	if uploadDate.IsZero() {
		uploadDate = time.Now().UTC()
	}

	doc := &models.Document{
		FileName:     params.FileName,
		FilePath:     rel,
		Description:  params.Description,
		OwnerName:    desc.OwnerName,
		OwnerID:      desc.OwnerID,
		DocumentType: params.DocumentType,
		SourceType:   params.SourceType,
		UploadDate:   uploadDate,
	}
	doc.SetTags(params.Tags)

	if err := s.records.CreateDocument(ctx, doc); err != nil {
		// The bytes stay on disk; the reconciler garbage-collects
		// unreferenced files later.
		s.log.Error("Record save failed after byte write, %s is unreferenced: %v", rel, err)
		return nil, fmt.Errorf("failed to create document record for %s: %w", rel, err)
	}

	s.log.Debug("Stored document %s at %s", doc.ID, rel)
	return doc, nil
}

// Resolve returns the file-info view for a record, annotated with the
// store that holds it. An orphaned record yields Exists=false without
// an error.
func (s *DocumentService) Resolve(ctx context.Context, id string) (storage.FileInfo, error) {
	doc, err := s.getRecord(ctx, id)
	if err != nil {
		return storage.FileInfo{}, err
	}
	return s.resolver.Resolve(doc.FilePath)
}

// Read returns the document bytes from whichever store holds them.
func (s *DocumentService) Read(ctx context.Context, id string) ([]byte, *models.Document, error) {
	doc, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.resolver.Read(doc.FilePath)
	if err != nil {
		return nil, doc, err
	}
	return data, doc, nil
}

// Move relocates a document into the canonical directory of a new
// owner descriptor and updates the record path. Only structured-store
// files move; a legacy-resident file must be re-imported first.
func (s *DocumentService) Move(ctx context.Context, id string, desc pathgen.Descriptor, kind pathgen.Kind) (*models.Document, error) {
	doc, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	dir, err := pathgen.OwnerDir(desc, kind)
	if err != nil {
		return nil, err
	}

	newRel := path.Join(dir, path.Base(doc.FilePath))
	if newRel == doc.FilePath {
		return doc, nil
	}

	if err := s.files.Move(doc.FilePath, newRel); err != nil {
		return nil, err
	}

	doc.FilePath = newRel
	doc.OwnerName = desc.OwnerName
	doc.OwnerID = desc.OwnerID
	if err := s.records.UpdateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to update record after move to %s: %w", newRel, err)
	}
	return doc, nil
}

// Delete removes the bytes first, then the record. A byte deletion
// failure aborts the record deletion; a file that was already absent
// does not — deleting a pre-existing orphan leaves a clean state.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.getRecord(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.files.Delete(doc.FilePath)
	if err != nil {
		return fmt.Errorf("byte deletion failed for %s, record kept: %w", doc.FilePath, err)
	}
	if !deleted {
		s.log.Info("File %s already absent, removing orphaned record %s", doc.FilePath, doc.ID)
	}

	if err := s.records.DeleteDocument(ctx, doc.ID); err != nil {
		return fmt.Errorf("failed to delete document record %s: %w", doc.ID, err)
	}
	return nil
}

func (s *DocumentService) getRecord(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.records.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: document record %s", storage.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load document record %s: %w", id, err)
	}
	return doc, nil
}
