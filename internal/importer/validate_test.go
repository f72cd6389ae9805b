package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }

func validMinimalCatalog() *CatalogSchema {
	return &CatalogSchema{
		Provider: "opta",
		Stages: []StageImport{
			{StageID: "8", Category: "England", Stage: "Premier League", Season: "2024/25"},
		},
	}
}

func errorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}

func TestValidateCatalog_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateCatalog(validMinimalCatalog()))
}

func TestValidateCatalog_ValidFull(t *testing.T) {
	schema := &CatalogSchema{
		Provider: "opta",
		Stages: []StageImport{
			{StageID: "8", Category: "England", Stage: "Premier League", Season: "2024/25",
				StartDate: ptrStr("2024-08-16"), EndDate: ptrStr("2025-05-25")},
			{StageID: "9", Category: "England", Stage: "Women's Super League", Season: "2024/25",
				Gender: "female", StartDate: ptrStr("2024-09-20")},
		},
		Menu: &MenuImport{Name: "Football", DefaultLanguage: "de"},
	}
	assert.Empty(t, ValidateCatalog(schema))
}

func TestValidateCatalog_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CatalogSchema)
		want   string
	}{
		{"provider", func(s *CatalogSchema) { s.Provider = "" }, "provider is required"},
		{"stages nil", func(s *CatalogSchema) { s.Stages = nil }, "stages is required"},
		{"stages empty", func(s *CatalogSchema) { s.Stages = []StageImport{} }, "stages must have at least 1 entries"},
		{"stage id", func(s *CatalogSchema) { s.Stages[0].StageID = "" }, "stages[0].stage_id is required"},
		{"category", func(s *CatalogSchema) { s.Stages[0].Category = "" }, "stages[0].category is required"},
		{"stage", func(s *CatalogSchema) { s.Stages[0].Stage = "" }, "stages[0].stage is required"},
		{"menu name", func(s *CatalogSchema) { s.Menu = &MenuImport{} }, "menu.name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := validMinimalCatalog()
			tt.mutate(schema)
			assert.Contains(t, errorStrings(ValidateCatalog(schema)), tt.want)
		})
	}
}

func TestValidateCatalog_InvalidGender(t *testing.T) {
	schema := validMinimalCatalog()
	schema.Stages[0].Gender = "other"

	errs := ValidateCatalog(schema)
	require.Len(t, errs, 1)
	assert.Equal(t, `stages[0].gender: invalid value "other"`, errs[0].Error())
}

func TestValidateCatalog_DuplicateStageID(t *testing.T) {
	schema := validMinimalCatalog()
	schema.Stages = append(schema.Stages,
		StageImport{StageID: "9", Category: "Spain", Stage: "La Liga"},
		StageImport{StageID: "8", Category: "Italy", Stage: "Serie A"},
	)

	errs := ValidateCatalog(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `stages[2].stage_id: duplicate stage id "8"`)
}

func TestValidateCatalog_Dates(t *testing.T) {
	t.Run("bad format", func(t *testing.T) {
		schema := validMinimalCatalog()
		schema.Stages[0].StartDate = ptrStr("16/08/2024")
		assert.Equal(t,
			[]string{`stages[0].start_date: invalid date format "16/08/2024" (expected YYYY-MM-DD)`},
			errorStrings(ValidateCatalog(schema)))
	})
	t.Run("end before start", func(t *testing.T) {
		schema := validMinimalCatalog()
		schema.Stages[0].StartDate = ptrStr("2025-05-25")
		schema.Stages[0].EndDate = ptrStr("2024-08-16")
		errs := ValidateCatalog(schema)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "must not be before start_date")
	})
	t.Run("same day", func(t *testing.T) {
		schema := validMinimalCatalog()
		schema.Stages[0].StartDate = ptrStr("2025-05-25")
		schema.Stages[0].EndDate = ptrStr("2025-05-25")
		assert.Empty(t, ValidateCatalog(schema))
	})
}

func TestValidateCatalog_MenuLanguage(t *testing.T) {
	schema := validMinimalCatalog()
	schema.Menu = &MenuImport{Name: "Football", DefaultLanguage: "not a language"}

	errs := ValidateCatalog(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "menu.default_language")
}

func TestValidateCatalog_CollectsAllErrors(t *testing.T) {
	schema := &CatalogSchema{
		Stages: []StageImport{
			{StageID: "1", Category: "England", Stage: "Premier League", Gender: "x"},
			{Category: "Spain", Stage: "La Liga", StartDate: ptrStr("bad")},
		},
	}
	errs := ValidateCatalog(schema)
	assert.Len(t, errs, 4)
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`{
		"provider": "opta",
		"stages": [
			{"stage_id": "8", "category": "England", "stage": "Premier League",
			 "season": "2024/25", "start_date": "2024-08-16"}
		],
		"menu": {"name": "Football"}
	}`)
	schema, err := ParseCatalog(data)
	require.NoError(t, err)
	assert.Equal(t, "opta", schema.Provider)
	require.Len(t, schema.Stages, 1)
	assert.Equal(t, "2024-08-16", *schema.Stages[0].StartDate)
	require.NotNil(t, schema.Menu)
	assert.Equal(t, "Football", schema.Menu.Name)

	_, err = ParseCatalog([]byte(`{"provider": `))
	assert.Error(t, err)
}
