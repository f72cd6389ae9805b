package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// CatalogSchema is the top-level JSON structure of a provider catalog file.
type CatalogSchema struct {
	Provider string        `json:"provider" validate:"required,max=64"`
	Stages   []StageImport `json:"stages" validate:"required,min=1,dive"`
	Menu     *MenuImport   `json:"menu,omitempty"`
}

// StageImport is one provider stage (a season of a competition).
type StageImport struct {
	StageID   string  `json:"stage_id" validate:"required"`
	Category  string  `json:"category" validate:"required"`
	Stage     string  `json:"stage" validate:"required"`
	Season    string  `json:"season,omitempty"`
	Gender    string  `json:"gender,omitempty" validate:"omitempty,oneof=male female mixed"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// MenuImport asks the import to bootstrap a new menu from the catalog.
type MenuImport struct {
	Name            string `json:"name" validate:"required,max=200"`
	DefaultLanguage string `json:"default_language,omitempty"`
}

// LoadCatalog reads and parses a provider catalog JSON file.
func LoadCatalog(path string) (*CatalogSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog parses catalog JSON.
func ParseCatalog(data []byte) (*CatalogSchema, error) {
	var schema CatalogSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return &schema, nil
}
