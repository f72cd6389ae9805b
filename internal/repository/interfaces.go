package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/menudesk/internal/domain"
)

type MenuRepo interface {
	Create(ctx context.Context, m *domain.Menu) error
	GetByID(ctx context.Context, id string) (*domain.Menu, error)
	GetByName(ctx context.Context, name string) (*domain.Menu, error)
	List(ctx context.Context) ([]*domain.Menu, error)
	// SavePayload stores a new payload if the menu is still at
	// expectedVersion and returns the new version.
	SavePayload(ctx context.Context, id string, payload []domain.RawNode, expectedVersion int) (int, error)
	// Publish copies the current payload to the publications log.
	Publish(ctx context.Context, id string, at time.Time) (*domain.Publication, error)
	ListPublications(ctx context.Context, id string) ([]*domain.Publication, error)
	Delete(ctx context.Context, id string) error
}

type ProviderStageRepo interface {
	Upsert(ctx context.Context, s *domain.ProviderStage) error
	Get(ctx context.Context, providerID, stageID string) (*domain.ProviderStage, error)
	// List returns every stage of providerID, or of all providers when
	// providerID is empty.
	List(ctx context.Context, providerID string) ([]*domain.ProviderStage, error)
	Providers(ctx context.Context) ([]string, error)
	MarkPulled(ctx context.Context, providerID, stageID string, at time.Time) error
}
