package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/mapping"
	"github.com/alexanderramin/menudesk/internal/testutil"
	"github.com/alexanderramin/menudesk/internal/tree"
)

var testCfg = tree.Config{DefaultLanguage: "en", Languages: []string{"en", "de"}}

func footballTree(t *testing.T) *tree.Repository {
	t.Helper()
	ids := domain.NewSequenceGenerator()
	pl := testutil.NewTestMapping("opta", "pl-2425")
	root := testutil.NewTestCategory(ids, "Football",
		testutil.WithCode("en", "football"),
		testutil.WithTranslation("de", "Fußball"),
		testutil.WithChildren(
			testutil.NewTestStage(ids, "Premier League",
				testutil.WithChildren(
					testutil.NewTestSeason(ids, "2024/25", testutil.WithPrimary(), testutil.WithMappings(pl)),
					testutil.NewTestSeason(ids, "2023/24", testutil.WithHidden(), testutil.WithMappings(pl)),
				),
			),
		),
	)
	return tree.FromNodes([]*domain.MenuNode{root}, testCfg)
}

func TestFormatTree_RendersNodesInOrder(t *testing.T) {
	out := FormatTree(footballTree(t), TreeOptions{ShowCodes: true})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "#1")
	assert.Contains(t, lines[0], "Football")
	assert.Contains(t, lines[0], "football")
	assert.Contains(t, lines[1], "Premier League")
	assert.Contains(t, lines[2], "★")
	assert.Contains(t, lines[2], "1 mapped")
	assert.Contains(t, lines[3], "◌")
}

func TestFormatTree_UsesViewLanguage(t *testing.T) {
	out := FormatTree(footballTree(t).WithUpdatedLanguage("de"), TreeOptions{})

	assert.Contains(t, out, "Fußball")
}

func TestFormatTree_ShowsValidationErrors(t *testing.T) {
	ids := domain.NewSequenceGenerator()
	repo := tree.FromNodes([]*domain.MenuNode{
		testutil.NewTestCategory(ids, "Empty"),
	}, testCfg).Validated()

	out := FormatTree(repo, TreeOptions{})

	assert.Contains(t, out, "✖")
	assert.Contains(t, out, "! No visible children")
}

func TestFormatTree_Empty(t *testing.T) {
	assert.Contains(t, FormatTree(tree.New(testCfg), TreeOptions{}), "empty menu")
}

func TestFormatValidationErrors(t *testing.T) {
	t.Run("valid tree", func(t *testing.T) {
		out := FormatValidationErrors(footballTree(t).Validated())
		assert.Contains(t, out, "Menu is valid")
	})

	t.Run("lists errors with node path", func(t *testing.T) {
		ids := domain.NewSequenceGenerator()
		repo := tree.FromNodes([]*domain.MenuNode{
			testutil.NewTestCategory(ids, "Football", testutil.WithChildren(
				testutil.NewTestStage(ids, "Premier League", testutil.WithChildren(
					testutil.NewTestSeason(ids, "2024/25"),
				)),
			)),
		}, testCfg).Validated()

		out := FormatValidationErrors(repo)

		assert.Contains(t, out, "1 node(s) with errors")
		assert.Contains(t, out, "#2")
		assert.Contains(t, out, "Football › Premier League")
		assert.Contains(t, out, "No primary season in stage")
	})
}

func TestFormatInvisibleSeasons(t *testing.T) {
	ids := domain.NewSequenceGenerator()
	hidden := testutil.NewTestSeason(ids, "2023/24", testutil.WithHidden())

	assert.Empty(t, FormatInvisibleSeasons(nil))
	assert.Contains(t, FormatInvisibleSeasons([]*domain.MenuNode{hidden}), "1 recent season(s) hidden: 2023/24")
}

func TestFormatStages(t *testing.T) {
	c := mapping.NewCollection([]domain.StageMapping{
		testutil.NewTestMapping("opta", "pl-2425"),
		testutil.NewTestMapping("opta", "ch-2425", testutil.WithMappingNames("England", "Championship", "2024/25")),
	}).WithCounts(mapping.NewCounter().Increment("opta:pl-2425"))

	out := FormatStages(c)

	assert.Contains(t, out, "opta:pl-2425")
	assert.Contains(t, out, "England / Championship / 2024/25")
	assert.Contains(t, FormatStages(mapping.NewCollection(nil)), "No provider stages match")
}

func TestFormatMenuList(t *testing.T) {
	assert.Contains(t, FormatMenuList(nil), "No menus yet")

	out := FormatMenuList([]*domain.Menu{testutil.NewTestMenu("Main", testutil.WithVersion(2))})
	assert.Contains(t, out, "Main")
	assert.Contains(t, out, "Draft")
}
