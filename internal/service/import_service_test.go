package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/menudesk/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }

func writeCatalogJSON(t *testing.T, schema *importer.CatalogSchema) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	data, err := json.MarshalIndent(schema, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func footballCatalog() *importer.CatalogSchema {
	return &importer.CatalogSchema{
		Provider: "opta",
		Stages: []importer.StageImport{
			{StageID: "old", Category: "England", Stage: "Premier League", Season: "2023/24",
				StartDate: ptrStr("2023-08-11"), EndDate: ptrStr("2024-05-19")},
			{StageID: "new", Category: "England", Stage: "Premier League", Season: "2024/25",
				StartDate: ptrStr("2024-08-16"), EndDate: ptrStr("2025-05-25")},
			{StageID: "wsl", Category: "England", Stage: "Super League", Season: "2024/25", Gender: "female"},
			{StageID: "liga", Category: "Spain", Stage: "La Liga", Season: "2024/25"},
		},
	}
}

func TestImportCatalog_StagesOnly(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	result, err := s.imports.ImportCatalog(ctx, writeCatalogJSON(t, footballCatalog()))
	require.NoError(t, err)
	assert.Equal(t, "opta", result.Provider)
	assert.Equal(t, 4, result.StageCount)
	assert.Nil(t, result.Menu)

	stages, err := s.stageRepo.List(ctx, "opta")
	require.NoError(t, err)
	assert.Len(t, stages, 4)

	menus, err := s.menus.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, menus)
}

func TestImportCatalog_ReimportUpdatesInPlace(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.imports.ImportCatalogFromSchema(ctx, footballCatalog())
	require.NoError(t, err)

	schema := footballCatalog()
	schema.Stages[3].Season = "2025/26"
	_, err = s.imports.ImportCatalogFromSchema(ctx, schema)
	require.NoError(t, err)

	stages, err := s.stageRepo.List(ctx, "opta")
	require.NoError(t, err)
	assert.Len(t, stages, 4)

	liga, err := s.stageRepo.Get(ctx, "opta", "liga")
	require.NoError(t, err)
	assert.Equal(t, "2025/26", liga.SeasonName)
}

func TestImportCatalog_BootstrapsMenu(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	schema := footballCatalog()
	schema.Menu = &importer.MenuImport{Name: "Football"}
	result, err := s.imports.ImportCatalogFromSchema(ctx, schema)
	require.NoError(t, err)
	require.NotNil(t, result.Menu)
	assert.Equal(t, 9, result.NodeCount)
	assert.Equal(t, 1, result.Menu.Version)

	doc, err := s.menus.Load(ctx, "Football")
	require.NoError(t, err)
	assert.Equal(t, 9, doc.Tree.Len())
	for _, n := range doc.Tree.All() {
		assert.True(t, n.IsSaved())
	}
	assert.Equal(t, 1, doc.Tree.AssignmentCounter().Count("opta:new"))

	validated := doc.Tree.Validated()
	assert.False(t, validated.HasErrors(), "bootstrapped menu should validate: %v", validated.Errors())

	ev, ok := s.events.last("import-catalog")
	require.True(t, ok)
	assert.Equal(t, 0, ev.Fields["error_nodes"])
}

func TestImportCatalog_MenuLanguage(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	schema := footballCatalog()
	schema.Menu = &importer.MenuImport{Name: "Fußball", DefaultLanguage: "de"}
	result, err := s.imports.ImportCatalogFromSchema(ctx, schema)
	require.NoError(t, err)
	assert.Equal(t, "de", result.Menu.DefaultLanguage)

	doc, err := s.menus.Load(ctx, "Fußball")
	require.NoError(t, err)
	assert.Equal(t, "de", doc.Tree.Language())
	assert.Equal(t, "England", doc.Tree.Roots()[0].Name.Get("de"))
}

func TestImportCatalog_ValidationErrors(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	schema := footballCatalog()
	schema.Provider = ""
	schema.Stages[0].Gender = "other"

	_, err := s.imports.ImportCatalogFromSchema(ctx, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "provider is required")

	stages, err := s.stageRepo.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, stages)
}

func TestImportCatalog_DuplicateMenuRollsBack(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	createMenu(t, s, "Football")

	schema := footballCatalog()
	schema.Menu = &importer.MenuImport{Name: "Football"}
	_, err := s.imports.ImportCatalogFromSchema(ctx, schema)
	require.Error(t, err)

	stages, err := s.stageRepo.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, stages, "stage upserts roll back with the failed menu")
}

func TestImportCatalog_MissingFile(t *testing.T) {
	s := setupServices(t)

	_, err := s.imports.ImportCatalog(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
