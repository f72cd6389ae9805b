package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/menudesk/internal/domain"
)

// TestLanguage is the default language of every fixture.
const TestLanguage = "en"

// Menu options
type MenuOption func(*domain.Menu)

func WithPayload(nodes []domain.RawNode) MenuOption {
	return func(m *domain.Menu) {
		m.Payload = nodes
	}
}

func WithVersion(v int) MenuOption {
	return func(m *domain.Menu) {
		m.Version = v
	}
}

func NewTestMenu(name string, opts ...MenuOption) *domain.Menu {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Menu{
		ID:              uuid.New().String(),
		Name:            name,
		DefaultLanguage: TestLanguage,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StageMapping options
type MappingOption func(*domain.StageMapping)

func WithMappingNames(category, stage, season string) MappingOption {
	return func(m *domain.StageMapping) {
		m.CategoryName = category
		m.StageName = stage
		m.SeasonName = season
	}
}

func WithMappingGender(g domain.Gender) MappingOption {
	return func(m *domain.StageMapping) {
		m.Gender = g
	}
}

func WithMappingRange(start, end time.Time) MappingOption {
	return func(m *domain.StageMapping) {
		m.StartDate = &start
		m.EndDate = &end
	}
}

func NewTestMapping(providerID, stageID string, opts ...MappingOption) domain.StageMapping {
	m := domain.StageMapping{
		ProviderID:   providerID,
		StageID:      stageID,
		CategoryName: "England",
		StageName:    "Premier League",
		SeasonName:   "2024/25",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func NewTestProviderStage(providerID, stageID string, opts ...MappingOption) *domain.ProviderStage {
	return &domain.ProviderStage{StageMapping: NewTestMapping(providerID, stageID, opts...)}
}

// Node options apply to the builder before Build.
type NodeOption func(*domain.NodeBuilder)

func WithPrimary() NodeOption {
	return func(b *domain.NodeBuilder) {
		b.SetPrimary(true)
	}
}

func WithHidden() NodeOption {
	return func(b *domain.NodeBuilder) {
		b.SetHidden(true)
	}
}

func WithCode(lang, code string) NodeOption {
	return func(b *domain.NodeBuilder) {
		b.SetCodeValue(lang, code, false)
	}
}

func WithTranslation(lang, name string) NodeOption {
	return func(b *domain.NodeBuilder) {
		b.SetNameValue(lang, name, false)
	}
}

func WithMappings(mappings ...domain.StageMapping) NodeOption {
	return func(b *domain.NodeBuilder) {
		b.SetStageMappings(mappings)
	}
}

func WithChildren(children ...*domain.MenuNode) NodeOption {
	return func(b *domain.NodeBuilder) {
		b.SetChildren(children)
	}
}

func newTestNode(kind domain.NodeKind, ids domain.IDGenerator, name string, opts []NodeOption) *domain.MenuNode {
	b := domain.NewNodeBuilder(kind, ids, TestLanguage).SetNameValue(TestLanguage, name, false)
	for _, opt := range opts {
		opt(b)
	}
	return b.Build()
}

func NewTestCategory(ids domain.IDGenerator, name string, opts ...NodeOption) *domain.MenuNode {
	return newTestNode(domain.KindCategory, ids, name, opts)
}

func NewTestStage(ids domain.IDGenerator, name string, opts ...NodeOption) *domain.MenuNode {
	return newTestNode(domain.KindStage, ids, name, opts)
}

func NewTestSeason(ids domain.IDGenerator, name string, opts ...NodeOption) *domain.MenuNode {
	return newTestNode(domain.KindSeason, ids, name, opts)
}

// NewTestPayload returns a small valid payload:
// Football > Premier League > 2024/25 (primary, mapped to opta:pl-2425).
func NewTestPayload() []domain.RawNode {
	primary := true
	return []domain.RawNode{{
		Type: string(domain.KindCategory),
		Name: domain.RawText{TestLanguage: {Value: "Football"}},
		Code: domain.RawText{TestLanguage: {Value: "football"}},
		Children: []domain.RawNode{{
			Type: string(domain.KindStage),
			Name: domain.RawText{TestLanguage: {Value: "Premier League"}},
			Children: []domain.RawNode{{
				Type:          string(domain.KindSeason),
				Name:          domain.RawText{TestLanguage: {Value: "2024/25"}},
				Primary:       &primary,
				StageMappings: []domain.RawStageMapping{{ProviderID: "opta", StageID: "pl-2425"}},
			}},
		}},
	}}
}
