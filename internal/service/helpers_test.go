package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/repository"
	"github.com/alexanderramin/menudesk/internal/testutil"
	"github.com/alexanderramin/menudesk/internal/tree"
	"github.com/stretchr/testify/require"
)

var testDefaults = tree.Config{DefaultLanguage: "en", Languages: []string{"en", "de"}}

type testServices struct {
	menus     MenuService
	stages    ProviderStageService
	imports   ImportService
	menuRepo  repository.MenuRepo
	stageRepo repository.ProviderStageRepo
	ids       domain.IDGenerator
	events    *recordingObserver
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	return setupServicesOn(t, testutil.NewTestDB(t))
}

func setupServicesOn(t *testing.T, database *sql.DB) *testServices {
	t.Helper()
	uow := testutil.NewTestUoW(database)
	ids := domain.NewSequenceGenerator()
	events := &recordingObserver{}

	menuRepo := repository.NewSQLiteMenuRepo(database)
	stageRepo := repository.NewSQLiteProviderStageRepo(database)
	return &testServices{
		menus:     NewMenuService(menuRepo, uow, ids, testDefaults, events),
		stages:    NewProviderStageService(stageRepo, events),
		imports:   NewImportService(uow, testDefaults, events),
		menuRepo:  menuRepo,
		stageRepo: stageRepo,
		ids:       ids,
		events:    events,
	}
}

// buildValidTree inserts Football > Premier League > 2024/25 (primary).
func buildValidTree(doc *Document, ids domain.IDGenerator) *Document {
	cat := testutil.NewTestCategory(ids, "Football", testutil.WithCode("en", "football"))
	stage := testutil.NewTestStage(ids, "Premier League", testutil.WithCode("en", "pl"))
	season := testutil.NewTestSeason(ids, "2024/25", testutil.WithPrimary(),
		testutil.WithMappings(testutil.NewTestMapping("opta", "8")))

	t := doc.Tree.
		Insert(cat, domain.RootID).
		Insert(stage, cat.TreeID).
		Insert(season, stage.TreeID)
	return &Document{Menu: doc.Menu, Tree: t}
}

func createMenu(t *testing.T, s *testServices, name string) *domain.Menu {
	t.Helper()
	m, err := s.menus.Create(context.Background(), name, "")
	require.NoError(t, err)
	return m
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}
