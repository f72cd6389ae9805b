package importer

import (
	"github.com/alexanderramin/menudesk/internal/domain"
)

// Mappings turns a validated catalog into stage mappings, in file order.
// Call ValidateCatalog first; Mappings assumes the schema is valid.
func Mappings(schema *CatalogSchema) []domain.StageMapping {
	mappings := make([]domain.StageMapping, 0, len(schema.Stages))
	for _, s := range schema.Stages {
		mappings = append(mappings, domain.StageMapping{
			ProviderID:   schema.Provider,
			StageID:      s.StageID,
			CategoryName: s.Category,
			StageName:    s.Stage,
			SeasonName:   s.Season,
			Gender:       domain.Gender(s.Gender),
			StartDate:    domain.ParseOptionalDate(s.StartDate),
			EndDate:      domain.ParseOptionalDate(s.EndDate),
		})
	}
	return mappings
}

// ProviderStages wraps the catalog mappings for the provider stage store.
func ProviderStages(schema *CatalogSchema) []*domain.ProviderStage {
	mappings := Mappings(schema)
	stages := make([]*domain.ProviderStage, 0, len(mappings))
	for _, m := range mappings {
		stages = append(stages, &domain.ProviderStage{StageMapping: m})
	}
	return stages
}

// Bootstrap builds an initial menu tree from the catalog: one category per
// category name, one stage per competition and one season per catalog entry.
func Bootstrap(schema *CatalogSchema, ids domain.IDGenerator, defaultLang string) []*domain.MenuNode {
	return domain.FromSportData(Mappings(schema), ids, defaultLang)
}

// MenuLanguage is the default language requested by the catalog's menu
// block, or fallback when none is given.
func MenuLanguage(schema *CatalogSchema, fallback string) string {
	if schema.Menu == nil {
		return fallback
	}
	return domain.CoalesceStr(schema.Menu.DefaultLanguage, fallback)
}
