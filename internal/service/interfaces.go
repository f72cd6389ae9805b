package service

import (
	"context"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/importer"
	"github.com/alexanderramin/menudesk/internal/mapping"
	"github.com/alexanderramin/menudesk/internal/tree"
)

// Document is a loaded menu: the stored record and the working tree built
// from its payload. Save needs the record's version to detect stale edits.
type Document struct {
	Menu *domain.Menu
	Tree *tree.Repository
}

type MenuService interface {
	Create(ctx context.Context, name, defaultLang string) (*domain.Menu, error)
	// Get resolves a menu by id or, failing that, by name.
	Get(ctx context.Context, ref string) (*domain.Menu, error)
	List(ctx context.Context) ([]*domain.Menu, error)
	Load(ctx context.Context, ref string) (*Document, error)
	// Save validates the tree and persists it. On validation failure it
	// returns the document with the validated tree and an error wrapping
	// ErrValidationFailed.
	Save(ctx context.Context, doc *Document) (*Document, error)
	Publish(ctx context.Context, ref string) (*domain.Publication, error)
	Publications(ctx context.Context, ref string) ([]*domain.Publication, error)
	Delete(ctx context.Context, ref string) error
}

type ProviderStageService interface {
	Providers(ctx context.Context) ([]string, error)
	// Collection lists the stages of providerID (all providers when empty)
	// with assignment counts taken from doc, if given, and filter applied.
	Collection(ctx context.Context, providerID string, doc *Document, filter mapping.Filter) (mapping.StageMappingCollection, error)
	Pull(ctx context.Context, providerID, stageID string) (*domain.ProviderStage, error)
}

// ImportResult holds the outcome of a catalog import.
type ImportResult struct {
	Provider   string
	StageCount int
	Menu       *domain.Menu
	NodeCount  int
}

type ImportService interface {
	ImportCatalog(ctx context.Context, filePath string) (*ImportResult, error)
	ImportCatalogFromSchema(ctx context.Context, schema *importer.CatalogSchema) (*ImportResult, error)
}
