package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/menudesk/internal/db"
	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/importer"
	"github.com/alexanderramin/menudesk/internal/repository"
	"github.com/alexanderramin/menudesk/internal/tree"
)

type importService struct {
	uow      db.UnitOfWork
	defaults tree.Config
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, defaults tree.Config, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		defaults: defaults,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportCatalog(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadCatalog(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportCatalogFromSchema(ctx context.Context, schema *importer.CatalogSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.CatalogSchema) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"provider": schema.Provider}
	defer func() { observeUseCase(ctx, s.observer, "import-catalog", startedAt, fields, err) }()

	if errs := importer.ValidateCatalog(schema); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	stages := importer.ProviderStages(schema)
	result = &ImportResult{Provider: schema.Provider, StageCount: len(stages)}

	var menu *domain.Menu
	if schema.Menu != nil {
		lang := importer.MenuLanguage(schema, s.defaults.DefaultLanguage)
		cfg := tree.Config{DefaultLanguage: lang, Languages: s.defaults.Languages}
		t := tree.FromNodes(importer.Bootstrap(schema, domain.NewSequenceGenerator(), lang), cfg)
		payload := t.Serializable()
		assignIDs(payload)

		menu = &domain.Menu{
			ID:              uuid.New().String(),
			Name:            schema.Menu.Name,
			DefaultLanguage: lang,
			Payload:         payload,
			Version:         1,
			CreatedAt:       startedAt,
			UpdatedAt:       startedAt,
		}
		result.NodeCount = t.Len()
		fields["menu"] = menu.Name
		fields["error_nodes"] = len(t.Validated().Errors())
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		stageRepo := repository.NewSQLiteProviderStageRepo(tx)
		for _, st := range stages {
			if err := stageRepo.Upsert(ctx, st); err != nil {
				return err
			}
		}
		if menu != nil {
			if err := repository.NewSQLiteMenuRepo(tx).Create(ctx, menu); err != nil {
				return fmt.Errorf("creating menu %q: %w", menu.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing catalog: %w", err)
	}

	result.Menu = menu
	fields["stage_count"] = result.StageCount
	fields["node_count"] = result.NodeCount
	return result, nil
}
