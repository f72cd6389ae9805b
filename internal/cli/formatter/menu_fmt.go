package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/mapping"
	"github.com/alexanderramin/menudesk/internal/tree"
)

// FormatMenuList renders the menus as a table.
func FormatMenuList(menus []*domain.Menu) string {
	if len(menus) == 0 {
		return Dim("No menus yet. Create one with 'menudesk menu create'.") + "\n"
	}
	rows := make([][]string, 0, len(menus))
	for _, m := range menus {
		rows = append(rows, []string{
			TruncID(m.ID),
			Bold(m.Name),
			m.DefaultLanguage,
			strconv.Itoa(m.Version),
			PublishPill(m),
			HumanDate(m.UpdatedAt),
		})
	}
	return RenderTable([]string{"ID", "NAME", "LANG", "VERSION", "STATUS", "UPDATED"}, rows)
}

// TreeOptions controls FormatTree.
type TreeOptions struct {
	ShowCodes bool
	ShowDates bool
}

// FormatTree renders the tree in its view language. Rows are numbered in
// display order; the numbers are what node commands accept as references.
// Validation errors carried by the repository are printed below their node.
func FormatTree(t *tree.Repository, opts TreeOptions) string {
	if t.Len() == 0 {
		return Dim("(empty menu)") + "\n"
	}
	lang := t.Language()
	def := t.Config().DefaultLanguage

	var items []TreeItem
	t.Walk(tree.VisitorFunc(func(ctx tree.VisitContext) bool {
		n := ctx.Node
		siblings := t.Roots()
		if ctx.Parent != nil {
			siblings = ctx.Parent.Children
		}
		errs := t.ErrorsFor(n.TreeID)
		items = append(items, TreeItem{
			Title:  nodeTitle(n, lang, def),
			Seq:    len(items) + 1,
			Level:  ctx.Depth,
			IsLast: ctx.Index == len(siblings)-1,
			Status: nodeStatus(n, len(errs) > 0),
			Detail: nodeDetail(n, lang, def, opts),
			Notes:  errs,
		})
		return true
	}))

	var b strings.Builder
	for _, msg := range t.ErrorsFor(domain.RootID) {
		b.WriteString(styleError.Render("! menu: "+msg) + "\n")
	}
	b.WriteString(RenderTree(items))
	return b.String()
}

// Titles follow the view language once the tree has been switched to it.
func nodeTitle(n *domain.MenuNode, lang, def string) string {
	if n.Title != "" {
		return n.Title
	}
	return n.Name.GetOr(lang, def) + n.Gender.TitleSuffix()
}

func nodeStatus(n *domain.MenuNode, hasErrors bool) ItemStatus {
	switch {
	case hasErrors:
		return StatusError
	case n.Hidden:
		return StatusHidden
	case n.IsSeason() && n.Primary:
		return StatusPrimary
	default:
		return StatusNormal
	}
}

func nodeDetail(n *domain.MenuNode, lang, def string, opts TreeOptions) string {
	parts := []string{string(n.Kind)}
	if opts.ShowCodes {
		if code := n.Code.GetOr(lang, def); code != "" {
			parts = append(parts, code)
		}
	}
	if opts.ShowDates && n.IsSeason() {
		if r := DateRange(n.StartDate, n.EndDate); r != "" {
			parts = append(parts, r)
		}
	}
	if n.IsSeason() && len(n.StageMappings) > 0 {
		parts = append(parts, fmt.Sprintf("%d mapped", len(n.StageMappings)))
	}
	return strings.Join(parts, " · ")
}

// FormatValidationErrors lists errors by node path, in display order.
func FormatValidationErrors(t *tree.Repository) string {
	errs := t.Errors()
	if len(errs) == 0 {
		return Success("Menu is valid") + "\n"
	}

	var b strings.Builder
	b.WriteString(Failure(fmt.Sprintf("%d node(s) with errors", len(errs))) + "\n")
	for _, msg := range errs[domain.RootID] {
		fmt.Fprintf(&b, "  %s  %s\n", Bold("(menu)"), styleError.Render(msg))
	}
	for i, id := range t.EntryIDs() {
		for _, msg := range errs[id] {
			path := strings.Join(t.NamePath(id), " › ")
			fmt.Fprintf(&b, "  %s %s  %s\n", Dim(fmt.Sprintf("#%d", i+1)), Bold(path), styleError.Render(msg))
		}
	}
	return b.String()
}

// FormatInvisibleSeasons warns about recent seasons nobody can see.
func FormatInvisibleSeasons(seasons []*domain.MenuNode) string {
	if len(seasons) == 0 {
		return ""
	}
	titles := make([]string, 0, len(seasons))
	for _, s := range seasons {
		titles = append(titles, s.Title)
	}
	sort.Strings(titles)
	return Warning(fmt.Sprintf("%d recent season(s) hidden: %s", len(seasons), strings.Join(titles, ", "))) + "\n"
}

// FormatStages renders a stage mapping collection's current view.
func FormatStages(c mapping.StageMappingCollection) string {
	items := c.Items()
	if len(items) == 0 {
		return Dim("No provider stages match.") + "\n"
	}
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		assigned := Dim("-")
		if m.IsAssigned() {
			assigned = styleOK.Render(strconv.Itoa(m.AssignedCount))
		}
		rows = append(rows, []string{
			m.Key(),
			m.DisplayName(),
			string(m.Gender),
			DateRange(m.StartDate, m.EndDate),
			assigned,
		})
	}
	return RenderTable([]string{"KEY", "NAME", "GENDER", "DATES", "ASSIGNED"}, rows)
}

// FormatPublications lists published revisions, newest first.
func FormatPublications(pubs []*domain.Publication) string {
	if len(pubs) == 0 {
		return Dim("Never published.") + "\n"
	}
	rows := make([][]string, 0, len(pubs))
	for _, p := range pubs {
		rows = append(rows, []string{
			fmt.Sprintf("v%d", p.Version),
			p.PublishedAt.Format(time.RFC3339),
			strconv.Itoa(len(p.Payload)),
		})
	}
	return RenderTable([]string{"VERSION", "PUBLISHED", "ROOTS"}, rows)
}
