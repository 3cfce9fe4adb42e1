package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/sipi-it/slms/pkg/db/models"
)

// DocumentStore defines the interface for document record operations
type DocumentStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// DB exposes the underlying GORM instance for the migrator
	DB() *gorm.DB

	// Document operations
	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	GetDocumentByPath(ctx context.Context, filePath string) (*models.Document, error)
	ListDocumentsByYear(ctx context.Context, year int, limit, offset int) ([]models.Document, error)
	ListDocumentsByYearAndType(ctx context.Context, year int, documentType string, limit, offset int) ([]models.Document, error)
	SearchDocuments(ctx context.Context, query string, limit, offset int) ([]models.Document, error)
	UpdateDocument(ctx context.Context, doc *models.Document) error
	DeleteDocument(ctx context.Context, id string) error

	// ForEachDocument iterates all records in batches; used by the
	// reconciler and backfill migrations.
	ForEachDocument(ctx context.Context, batchSize int, fn func(doc *models.Document) error) error
}
