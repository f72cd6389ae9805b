package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFromSportData_GroupsByCategoryStageAndGender(t *testing.T) {
	mappings := []StageMapping{
		{ProviderID: "opta", StageID: "1", CategoryName: "England", StageName: "Premier League", SeasonName: "2023/24", StartDate: date(2023, 8, 11)},
		{ProviderID: "opta", StageID: "2", CategoryName: "England", StageName: "Premier League", SeasonName: "2024/25", StartDate: date(2024, 8, 16)},
		{ProviderID: "opta", StageID: "3", CategoryName: "England", StageName: "Super League", SeasonName: "2024/25", Gender: GenderFemale},
		{ProviderID: "opta", StageID: "4", CategoryName: "Spain", StageName: "La Liga", SeasonName: "2024/25"},
	}

	roots := FromSportData(mappings, NewSequenceGenerator(), "en")
	require.Len(t, roots, 2)

	england := roots[0]
	assert.Equal(t, KindCategory, england.Kind)
	assert.Equal(t, "england", england.Code.Get("en"))
	require.Len(t, england.Children, 2)

	pl := england.Children[0]
	assert.Equal(t, "england-premier-league", pl.Code.Get("en"))
	require.Len(t, pl.Children, 2)
	assert.Equal(t, "2024/25", pl.Children[0].Name.Get("en"), "newest season first")
	assert.True(t, pl.Children[0].Primary)
	assert.False(t, pl.Children[1].Primary)
	assert.Equal(t, "opta:2", pl.Children[0].StageMappings[0].Key())

	wsl := england.Children[1]
	assert.Equal(t, "Super League (W)", wsl.Title)
	assert.Equal(t, "england-super-league-female", wsl.Code.Get("en"))
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Premier League":  "premier-league",
		"2024/25":         "2024-25",
		"  Copa  del Rey": "copa-del-rey",
		"Bundesliga!":     "bundesliga",
		"Süper Lig":       "süper-lig",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestStageMapping_DisplayName(t *testing.T) {
	m := StageMapping{CategoryName: "England", StageName: "Premier League", SeasonName: "2024/25"}
	assert.Equal(t, "England / Premier League / 2024/25", m.DisplayName())
	assert.Equal(t, "Cup", StageMapping{StageName: "Cup"}.DisplayName())
}
