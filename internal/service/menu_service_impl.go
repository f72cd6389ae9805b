package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/menudesk/internal/db"
	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/repository"
	"github.com/alexanderramin/menudesk/internal/tree"
)

type menuService struct {
	menus    repository.MenuRepo
	uow      db.UnitOfWork
	ids      domain.IDGenerator
	defaults tree.Config
	observer UseCaseObserver
}

// NewMenuService wires the menu use cases. defaults supplies the language
// for new menus and the languages every loaded tree tracks; ids hands out
// tree identifiers and is reset after each successful save.
func NewMenuService(
	menus repository.MenuRepo,
	uow db.UnitOfWork,
	ids domain.IDGenerator,
	defaults tree.Config,
	observers ...UseCaseObserver,
) MenuService {
	return &menuService{
		menus:    menus,
		uow:      uow,
		ids:      ids,
		defaults: defaults,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *menuService) treeConfig(m *domain.Menu) tree.Config {
	return tree.Config{
		DefaultLanguage: domain.CoalesceStr(m.DefaultLanguage, s.defaults.DefaultLanguage),
		Languages:       s.defaults.Languages,
	}
}

func (s *menuService) Create(ctx context.Context, name, defaultLang string) (m *domain.Menu, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"menu": name}
	defer func() { observeUseCase(ctx, s.observer, "create-menu", startedAt, fields, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("menu name is required")
	}
	m = &domain.Menu{
		ID:              uuid.New().String(),
		Name:            name,
		DefaultLanguage: domain.CoalesceStr(defaultLang, s.defaults.DefaultLanguage),
		CreatedAt:       startedAt,
		UpdatedAt:       startedAt,
	}
	if err = s.menus.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("creating menu %q: %w", name, err)
	}
	fields["menu_id"] = m.ID
	return m, nil
}

func (s *menuService) Get(ctx context.Context, ref string) (*domain.Menu, error) {
	return resolveMenu(ctx, s.menus, ref)
}

// resolveMenu looks ref up as an id first and as a name second.
func resolveMenu(ctx context.Context, menus repository.MenuRepo, ref string) (*domain.Menu, error) {
	m, err := menus.GetByID(ctx, ref)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return m, err
	}
	m, err = menus.GetByName(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("menu %q: %w", ref, repository.ErrNotFound)
	}
	return m, err
}

func (s *menuService) List(ctx context.Context) ([]*domain.Menu, error) {
	return s.menus.List(ctx)
}

func (s *menuService) Load(ctx context.Context, ref string) (doc *Document, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"menu": ref}
	defer func() { observeUseCase(ctx, s.observer, "load-menu", startedAt, fields, err) }()

	m, err := resolveMenu(ctx, s.menus, ref)
	if err != nil {
		return nil, err
	}
	t := tree.Load(m.Payload, s.treeConfig(m), s.ids)
	fields["version"] = m.Version
	fields["node_count"] = t.Len()
	return &Document{Menu: m, Tree: t}, nil
}

func (s *menuService) Save(ctx context.Context, doc *Document) (saved *Document, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"menu": doc.Menu.Name, "version": doc.Menu.Version}
	defer func() { observeUseCase(ctx, s.observer, "save-menu", startedAt, fields, err) }()

	validated := doc.Tree.Validated()
	if validated.HasErrors() {
		errs := validated.Errors()
		fields["error_nodes"] = len(errs)
		return &Document{Menu: doc.Menu, Tree: validated}, &ValidationError{Errors: errs}
	}

	payload := validated.Serializable()
	fields["assigned_ids"] = assignIDs(payload)

	var version int
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		version, txErr = repository.NewSQLiteMenuRepo(tx).SavePayload(ctx, doc.Menu.ID, payload, doc.Menu.Version)
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("saving menu %q: %w", doc.Menu.Name, err)
	}

	m := *doc.Menu
	m.Payload = payload
	m.Version = version
	m.UpdatedAt = time.Now().UTC()
	fields["new_version"] = version

	// Every tree built from the old sequence is replaced below.
	s.ids.Reset()
	reloaded := tree.Load(payload, s.treeConfig(&m), s.ids)
	if lang := doc.Tree.Language(); lang != reloaded.Language() {
		reloaded = reloaded.WithUpdatedLanguage(lang)
	}
	return &Document{Menu: &m, Tree: reloaded}, nil
}

func (s *menuService) Publish(ctx context.Context, ref string) (pub *domain.Publication, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"menu": ref}
	defer func() { observeUseCase(ctx, s.observer, "publish-menu", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		menus := repository.NewSQLiteMenuRepo(tx)
		m, err := resolveMenu(ctx, menus, ref)
		if err != nil {
			return err
		}
		// Catalog imports store payloads without validating them.
		checked := tree.Load(m.Payload, s.treeConfig(m), domain.NewSequenceGenerator()).Validated()
		if checked.HasErrors() {
			return &ValidationError{Errors: checked.Errors()}
		}
		pub, err = menus.Publish(ctx, m.ID, startedAt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("publishing menu %q: %w", ref, err)
	}
	fields["version"] = pub.Version
	return pub, nil
}

func (s *menuService) Publications(ctx context.Context, ref string) ([]*domain.Publication, error) {
	m, err := resolveMenu(ctx, s.menus, ref)
	if err != nil {
		return nil, err
	}
	return s.menus.ListPublications(ctx, m.ID)
}

func (s *menuService) Delete(ctx context.Context, ref string) error {
	m, err := resolveMenu(ctx, s.menus, ref)
	if err != nil {
		return err
	}
	return s.menus.Delete(ctx, m.ID)
}

// assignIDs gives every node without a persisted id a fresh uuid and
// returns how many it assigned.
func assignIDs(nodes []domain.RawNode) int {
	n := 0
	for i := range nodes {
		if nodes[i].ID == "" {
			nodes[i].ID = uuid.New().String()
			n++
		}
		n += assignIDs(nodes[i].Children)
	}
	return n
}
