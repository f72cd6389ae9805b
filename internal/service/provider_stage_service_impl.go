package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/mapping"
	"github.com/alexanderramin/menudesk/internal/repository"
)

type providerStageService struct {
	stages   repository.ProviderStageRepo
	observer UseCaseObserver
}

func NewProviderStageService(stages repository.ProviderStageRepo, observers ...UseCaseObserver) ProviderStageService {
	return &providerStageService{
		stages:   stages,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *providerStageService) Providers(ctx context.Context) ([]string, error) {
	return s.stages.Providers(ctx)
}

func (s *providerStageService) Collection(ctx context.Context, providerID string, doc *Document, filter mapping.Filter) (mapping.StageMappingCollection, error) {
	stages, err := s.stages.List(ctx, providerID)
	if err != nil {
		return mapping.StageMappingCollection{}, err
	}
	mappings := make([]domain.StageMapping, 0, len(stages))
	for _, st := range stages {
		mappings = append(mappings, st.StageMapping)
	}
	c := mapping.NewCollection(mappings)
	if doc != nil {
		c = c.WithCounts(doc.Tree.AssignmentCounter())
	}
	return c.ApplyFilter(filter), nil
}

// Pull records that the provider's data for the stage was requested now.
func (s *providerStageService) Pull(ctx context.Context, providerID, stageID string) (st *domain.ProviderStage, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"provider": providerID, "stage": stageID}
	defer func() { observeUseCase(ctx, s.observer, "pull-provider-stage", startedAt, fields, err) }()

	if err = s.stages.MarkPulled(ctx, providerID, stageID, startedAt); err != nil {
		return nil, fmt.Errorf("pulling provider stage: %w", err)
	}
	return s.stages.Get(ctx, providerID, stageID)
}
