package tree

import (
	"time"

	"github.com/alexanderramin/menudesk/internal/domain"
)

// VisitContext describes the node being visited.
type VisitContext struct {
	Node   *domain.MenuNode
	Parent *domain.MenuNode // nil for roots
	Path   []*domain.MenuNode
	Depth  int
	Index  int // position among siblings
}

// Visitor receives nodes in pre-order. Returning false skips the node's
// children.
type Visitor interface {
	Visit(ctx VisitContext) bool
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(ctx VisitContext) bool

func (f VisitorFunc) Visit(ctx VisitContext) bool {
	return f(ctx)
}

// Walk visits every node in view order.
func (r *Repository) Walk(v Visitor) {
	walk(r.roots, nil, nil, v)
}

func walk(nodes []*domain.MenuNode, parent *domain.MenuNode, path []*domain.MenuNode, v Visitor) {
	for i, n := range nodes {
		ctx := VisitContext{Node: n, Parent: parent, Path: path, Depth: len(path), Index: i}
		if !v.Visit(ctx) || len(n.Children) == 0 {
			continue
		}
		childPath := make([]*domain.MenuNode, len(path)+1)
		copy(childPath, path)
		childPath[len(path)] = n
		walk(n.Children, n, childPath, v)
	}
}

// Location is the result of Find.
type Location struct {
	Node      *domain.MenuNode
	Parent    *domain.MenuNode   // nil for roots
	Ancestors []*domain.MenuNode // root first, excluding Node
	Path      []string           // titles from the root down to Node
	Index     int
}

func (l Location) parentID() domain.TreeID {
	if l.Parent == nil {
		return domain.RootID
	}
	return l.Parent.TreeID
}

// Find looks up a node by tree id.
func (r *Repository) Find(id domain.TreeID) (Location, bool) {
	var loc Location
	found := false
	r.Walk(VisitorFunc(func(ctx VisitContext) bool {
		if found {
			return false
		}
		if ctx.Node.TreeID != id {
			return true
		}
		found = true
		loc = Location{
			Node:      ctx.Node,
			Parent:    ctx.Parent,
			Ancestors: ctx.Path,
			Path:      titles(append(append([]*domain.MenuNode(nil), ctx.Path...), ctx.Node)),
			Index:     ctx.Index,
		}
		return false
	}))
	return loc, found
}

// All returns every node in pre-order.
func (r *Repository) All() []*domain.MenuNode {
	var out []*domain.MenuNode
	walkNodes(r.roots, func(n *domain.MenuNode) {
		out = append(out, n)
	})
	return out
}

// FlatListOfType returns every node of kind in pre-order.
func (r *Repository) FlatListOfType(kind domain.NodeKind) []*domain.MenuNode {
	var out []*domain.MenuNode
	walkNodes(r.roots, func(n *domain.MenuNode) {
		if n.Kind == kind {
			out = append(out, n)
		}
	})
	return out
}

// EntryIDs returns the tree id of every node in pre-order.
func (r *Repository) EntryIDs() []domain.TreeID {
	var out []domain.TreeID
	walkNodes(r.roots, func(n *domain.MenuNode) {
		out = append(out, n.TreeID)
	})
	return out
}

// NamePath returns the titles from the root down to id, or nil when id is
// unknown.
func (r *Repository) NamePath(id domain.TreeID) []string {
	loc, ok := r.Find(id)
	if !ok {
		return nil
	}
	return loc.Path
}

// ItemTopOffset returns the vertical offset of id in a list where roots are
// always shown and children only below expanded parents. It reports false
// when the node is unknown or hidden under a collapsed ancestor.
func (r *Repository) ItemTopOffset(id domain.TreeID, rowHeight int) (int, bool) {
	row := 0
	found := false
	r.Walk(VisitorFunc(func(ctx VisitContext) bool {
		if found {
			return false
		}
		if ctx.Node.TreeID == id {
			found = true
			return false
		}
		row++
		return r.expanded[ctx.Node.TreeID]
	}))
	if !found {
		return 0, false
	}
	return row * rowHeight, true
}

// GetRecentInvisibleSeasons returns seasons that are not displayed, because
// they or an ancestor are hidden, and that are still running or ended within
// window before now.
func (r *Repository) GetRecentInvisibleSeasons(now time.Time, window time.Duration) []*domain.MenuNode {
	cutoff := now.Add(-window)
	var out []*domain.MenuNode
	r.Walk(VisitorFunc(func(ctx VisitContext) bool {
		n := ctx.Node
		if !n.IsSeason() {
			return true
		}
		if !n.Hidden && !anyHidden(ctx.Path) {
			return true
		}
		if n.EndDate == nil || n.EndDate.After(cutoff) {
			out = append(out, n)
		}
		return true
	}))
	return out
}

func anyHidden(nodes []*domain.MenuNode) bool {
	for _, n := range nodes {
		if n.Hidden {
			return true
		}
	}
	return false
}

func titles(nodes []*domain.MenuNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Title
	}
	return out
}
