package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one row of a rendered tree. Items are given in pre-order.
type TreeItem struct {
	Title  string
	Seq    int // shown as "#n" when > 0
	Level  int // 0 for roots
	IsLast bool
	Status ItemStatus
	Detail string   // right-aligned badge
	Notes  []string // printed under the row, e.g. validation messages
}

type ItemStatus int

const (
	StatusNormal ItemStatus = iota
	StatusPrimary
	StatusHidden
	StatusError
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree draws items with box-drawing connectors. Errors are red with a
// cross, hidden rows are dimmed and the primary season gets a star. Badges
// are right-aligned across all rows.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	indents := make([]string, len(items))
	width := 0
	// lastAt[l] records whether the open item at level l was the last of
	// its siblings, which decides between a pipe and a blank below it.
	var lastAt []bool

	for idx, item := range items {
		if item.Level < len(lastAt) {
			lastAt = lastAt[:item.Level]
		}
		for len(lastAt) < item.Level {
			lastAt = append(lastAt, true)
		}

		var prefix strings.Builder
		for l := 1; l < item.Level; l++ {
			if lastAt[l] {
				prefix.WriteString(treeBlank)
			} else {
				prefix.WriteString(treePipe)
			}
		}
		if item.Level > 0 {
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}
		lastAt = append(lastAt, item.IsLast)

		contents[idx] = prefix.String() + styledTitle(item)
		indents[idx] = childIndent(prefix.String(), item)
		if w := lipgloss.Width(contents[idx]); w > width {
			width = w
		}
	}

	var b strings.Builder
	for idx, item := range items {
		b.WriteString(contents[idx])
		if item.Detail != "" {
			pad := width - lipgloss.Width(contents[idx])
			b.WriteString(strings.Repeat(" ", pad) + "  " + styleBadge.Render(fmt.Sprintf("[ %s ]", item.Detail)))
		}
		b.WriteString("\n")
		for _, note := range item.Notes {
			b.WriteString(indents[idx] + styleError.Render("! "+note) + "\n")
		}
	}
	return b.String()
}

func styledTitle(item TreeItem) string {
	title := item.Title
	if item.Seq > 0 {
		title = styleMuted.Render(fmt.Sprintf("#%d ", item.Seq)) + title
	}
	switch item.Status {
	case StatusError:
		return styleError.Render("✖ ") + styleError.Render(title)
	case StatusHidden:
		return styleMuted.Render("◌ ") + Dim(title)
	case StatusPrimary:
		return styleOK.Render("★ ") + title
	default:
		return title
	}
}

// childIndent lines notes up under the row's title.
func childIndent(prefix string, item TreeItem) string {
	indent := strings.NewReplacer("├─", "│ ", "└─", "  ").Replace(prefix)
	return indent + "  "
}
