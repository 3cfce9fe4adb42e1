package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/sipi-it/slms/pkg/db/models"
)

// gormStore implements the document operations shared by every
// gorm-backed DocumentStore. Dialect-specific concerns (DSN, pool
// limits) live in the concrete stores.
type gormStore struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Migrate runs database migrations
func (s *gormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Document{},
	)
}

// Health checks database connectivity
func (s *gormStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Document operations

func (s *gormStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	return s.db.WithContext(ctx).Create(doc).Error
}

func (s *gormStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *gormStore) GetDocumentByPath(ctx context.Context, filePath string) (*models.Document, error) {
	var doc models.Document
	err := s.db.WithContext(ctx).Where("file_path = ?", filePath).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *gormStore) ListDocumentsByYear(ctx context.Context, year int, limit, offset int) ([]models.Document, error) {
	var docs []models.Document
	query := s.db.WithContext(ctx).Where("year = ?", year)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Order("upload_date DESC").Find(&docs).Error
	return docs, err
}

func (s *gormStore) ListDocumentsByYearAndType(ctx context.Context, year int, documentType string, limit, offset int) ([]models.Document, error) {
	var docs []models.Document
	query := s.db.WithContext(ctx).
		Where("year = ? AND document_type = ?", year, documentType)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Order("upload_date DESC").Find(&docs).Error
	return docs, err
}

// SearchDocuments matches against the denormalized lowercase search
// blob. The query is lowercased here so callers do not have to.
func (s *gormStore) SearchDocuments(ctx context.Context, query string, limit, offset int) ([]models.Document, error) {
	var docs []models.Document
	q := s.db.WithContext(ctx).
		Where("search_text LIKE ?", "%"+strings.ToLower(strings.TrimSpace(query))+"%")

	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	err := q.Order("upload_date DESC").Find(&docs).Error
	return docs, err
}

func (s *gormStore) UpdateDocument(ctx context.Context, doc *models.Document) error {
	return s.db.WithContext(ctx).Save(doc).Error
}

func (s *gormStore) DeleteDocument(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Document{}, "id = ?", id).Error
}

func (s *gormStore) ForEachDocument(ctx context.Context, batchSize int, fn func(doc *models.Document) error) error {
	if batchSize <= 0 {
		batchSize = 100
	}

	var docs []models.Document
	result := s.db.WithContext(ctx).FindInBatches(&docs, batchSize, func(tx *gorm.DB, batch int) error {
		for i := range docs {
			if err := fn(&docs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return result.Error
}
