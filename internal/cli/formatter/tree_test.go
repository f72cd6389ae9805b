package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree_Connectors(t *testing.T) {
	out := RenderTree([]TreeItem{
		{Title: "Football", Level: 0, IsLast: false},
		{Title: "Premier League", Level: 1, IsLast: true},
		{Title: "2024/25", Level: 2, IsLast: false},
		{Title: "2023/24", Level: 2, IsLast: true},
		{Title: "Tennis", Level: 0, IsLast: true},
		{Title: "ATP", Level: 1, IsLast: true},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 6)
	assert.Equal(t, "Football", lines[0])
	assert.Equal(t, "└─ Premier League", lines[1])
	assert.Equal(t, "   ├─ 2024/25", lines[2], "last parent leaves a blank column")
	assert.Equal(t, "   └─ 2023/24", lines[3])
	assert.Equal(t, "└─ ATP", lines[5])
}

func TestRenderTree_PipeUnderOpenSibling(t *testing.T) {
	out := RenderTree([]TreeItem{
		{Title: "Football", Level: 0, IsLast: true},
		{Title: "England", Level: 1, IsLast: false},
		{Title: "Premier League", Level: 2, IsLast: true},
		{Title: "Spain", Level: 1, IsLast: true},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "├─ England", lines[1])
	assert.Equal(t, "│  └─ Premier League", lines[2])
	assert.Equal(t, "└─ Spain", lines[3])
}

func TestRenderTree_BadgesAndNotes(t *testing.T) {
	out := RenderTree([]TreeItem{
		{Title: "Football", Seq: 1, Detail: "category", Status: StatusError, Notes: []string{"No visible children"}},
	})

	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "[ category ]")
	assert.Contains(t, out, "! No visible children")
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}
