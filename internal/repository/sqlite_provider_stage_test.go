package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestProviderStageRepo_UpsertAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProviderStageRepo(db)
	ctx := context.Background()

	s := testutil.NewTestProviderStage("opta", "8",
		testutil.WithMappingGender(domain.GenderFemale),
		testutil.WithMappingRange(date("2024-08-16"), date("2025-05-25")),
	)
	require.NoError(t, repo.Upsert(ctx, s))

	got, err := repo.Get(ctx, "opta", "8")
	require.NoError(t, err)
	assert.Equal(t, "England", got.CategoryName)
	assert.Equal(t, "Premier League", got.StageName)
	assert.Equal(t, "2024/25", got.SeasonName)
	assert.Equal(t, domain.GenderFemale, got.Gender)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2024-08-16", got.StartDate.Format(domain.DateLayout))
	assert.Equal(t, "2025-05-25", got.EndDate.Format(domain.DateLayout))
	assert.Nil(t, got.PulledAt)
}

func TestProviderStageRepo_Get_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProviderStageRepo(db)

	_, err := repo.Get(context.Background(), "opta", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProviderStageRepo_Upsert_UpdatesCatalogFieldsKeepsPulledAt(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProviderStageRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProviderStage("opta", "8")))
	pulled := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, repo.MarkPulled(ctx, "opta", "8", pulled))

	renamed := testutil.NewTestProviderStage("opta", "8",
		testutil.WithMappingNames("England", "Premier League", "2025/26"))
	require.NoError(t, repo.Upsert(ctx, renamed))

	got, err := repo.Get(ctx, "opta", "8")
	require.NoError(t, err)
	assert.Equal(t, "2025/26", got.SeasonName)
	require.NotNil(t, got.PulledAt)
	assert.True(t, pulled.Equal(*got.PulledAt))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProviderStageRepo_List_FilterByProvider(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProviderStageRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProviderStage("opta", "8")))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProviderStage("opta", "9",
		testutil.WithMappingNames("Spain", "La Liga", "2024/25"))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProviderStage("sportradar", "sr:1")))

	opta, err := repo.List(ctx, "opta")
	require.NoError(t, err)
	require.Len(t, opta, 2)
	assert.Equal(t, "England", opta[0].CategoryName)
	assert.Equal(t, "Spain", opta[1].CategoryName)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := repo.List(ctx, "statsperform")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProviderStageRepo_List_NewestSeasonFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProviderStageRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProviderStage("opta", "old",
		testutil.WithMappingNames("England", "Premier League", "2023/24"),
		testutil.WithMappingRange(date("2023-08-11"), date("2024-05-19")))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestProviderStage("opta", "new",
		testutil.WithMappingNames("England", "Premier League", "2024/25"),
		testutil.WithMappingRange(date("2024-08-16"), date("2025-05-25")))))

	stages, err := repo.List(ctx, "opta")
	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Equal(t, "new", stages[0].StageID)
	assert.Equal(t, "old", stages[1].StageID)
}

func TestProviderStageRepo_Providers(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProviderStageRepo(db)
	ctx := context.Background()

	for _, s := range []*domain.ProviderStage{
		testutil.NewTestProviderStage("sportradar", "1"),
		testutil.NewTestProviderStage("opta", "1"),
		testutil.NewTestProviderStage("opta", "2"),
	} {
		require.NoError(t, repo.Upsert(ctx, s))
	}

	ids, err := repo.Providers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"opta", "sportradar"}, ids)
}

func TestProviderStageRepo_MarkPulled_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProviderStageRepo(db)

	err := repo.MarkPulled(context.Background(), "opta", "missing", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}
