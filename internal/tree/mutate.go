package tree

import (
	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/validation"
)

// Insert appends n as the last child of parent, or as the last root when
// parent is domain.RootID. A primary season demotes its sibling seasons. The
// new node is ranked after its siblings in every tracked language.
//
// Insert is a no-op when the parent is unknown, cannot hold n's kind, or n's
// tree id is already in use.
func (r *Repository) Insert(n *domain.MenuNode, parent domain.TreeID) *Repository {
	if _, exists := r.Find(n.TreeID); exists || n.TreeID == domain.RootID {
		return r
	}
	siblings, kind, ok := r.childrenOf(parent)
	if !ok || !kind.CanContain(n.Kind) {
		return r
	}
	if n.IsSeason() && n.Primary {
		siblings = r.demotePrimary(siblings, n.TreeID)
	}
	children := append(append([]*domain.MenuNode(nil), siblings...), n)

	out := r.clone()
	o := seedGroup(r.orders, trackedLanguages(r.orders), treeIDs(children))
	out.orders = seedSubtree(o, trackedLanguages(o), n.Children)
	out.roots = r.withChildren(parent, children)
	for _, key := range subtreeMappingKeys(n) {
		out.counter = out.counter.Increment(key)
	}
	if parent != domain.RootID {
		out.expanded = cloneExpanded(r.expanded)
		out.expanded[parent] = true
	}
	return out
}

// Update replaces the node with n's tree id, keeping its position. A primary
// season demotes its sibling seasons. Errors recorded for the node are
// cleared. Unknown ids are a no-op.
func (r *Repository) Update(n *domain.MenuNode) *Repository {
	return r.replace(n, true)
}

// Replace is Update without demoting sibling seasons. It is meant for edits
// that must land exactly as given, such as a draft that is validated before
// it is accepted.
func (r *Repository) Replace(n *domain.MenuNode) *Repository {
	return r.replace(n, false)
}

func (r *Repository) replace(n *domain.MenuNode, demote bool) *Repository {
	loc, ok := r.Find(n.TreeID)
	if !ok {
		return r
	}
	siblings, _, _ := r.childrenOf(loc.parentID())
	if demote && n.IsSeason() && n.Primary {
		siblings = r.demotePrimary(siblings, n.TreeID)
	}
	children := append([]*domain.MenuNode(nil), siblings...)
	children[loc.Index] = n

	out := r.clone()
	out.roots = r.withChildren(loc.parentID(), children)
	out.counter = r.counter.DecrementAll(subtreeMappingKeys(loc.Node)...)
	for _, key := range subtreeMappingKeys(n) {
		out.counter = out.counter.Increment(key)
	}

	o := r.orders.Remove(droppedIDs(loc.Node, n)...)
	out.orders = seedSubtree(o, trackedLanguages(o), n.Children)

	if _, has := r.errors[n.TreeID]; has {
		out.errors = cloneErrors(r.errors)
		delete(out.errors, n.TreeID)
	}
	return out
}

// Remove deletes the node and its subtree, then renumbers the remaining
// siblings contiguously in every language. Unknown ids are a no-op.
func (r *Repository) Remove(id domain.TreeID) *Repository {
	loc, ok := r.Find(id)
	if !ok {
		return r
	}
	siblings, _, _ := r.childrenOf(loc.parentID())
	children := make([]*domain.MenuNode, 0, len(siblings)-1)
	children = append(children, siblings[:loc.Index]...)
	children = append(children, siblings[loc.Index+1:]...)

	gone := subtreeIDs(loc.Node)
	out := r.clone()
	out.roots = r.withChildren(loc.parentID(), children)
	out.orders = r.orders.Remove(gone...).Renumber(treeIDs(children))
	out.counter = r.counter.DecrementAll(subtreeMappingKeys(loc.Node)...)
	out.errors = cloneErrors(r.errors)
	out.expanded = cloneExpanded(r.expanded)
	for _, g := range gone {
		delete(out.errors, g)
		delete(out.expanded, g)
	}
	return out
}

// Move reorders a node among its siblings to toIndex in the current view
// language. Other languages follow the move when they shared the view's
// previous order and keep their own order otherwise. Out-of-range indexes
// are clamped; unknown ids are a no-op.
func (r *Repository) Move(id domain.TreeID, toIndex int) *Repository {
	loc, ok := r.Find(id)
	if !ok {
		return r
	}
	siblings, _, _ := r.childrenOf(loc.parentID())
	prev := r.orders.SiblingOrder(r.language, treeIDs(siblings))
	toIndex = max(0, min(toIndex, len(prev)-1))
	next := make([]domain.TreeID, 0, len(prev))
	for _, sid := range prev {
		if sid != id {
			next = append(next, sid)
		}
	}
	next = append(next[:toIndex], append([]domain.TreeID{id}, next[toIndex:]...)...)

	langs := append(trackedLanguages(r.orders), r.language)
	langs = append(langs, r.cfg.Languages...)
	out := r.clone()
	out.orders = r.orders.Expand(langs).ReconcileOnMove(r.language, prev, next, id)
	out.roots = r.withChildren(loc.parentID(), out.orders.SortNodes(r.language, siblings))
	return out
}

// WithUpdatedLanguage re-derives every title from lang's names and re-sorts
// the whole tree by lang's ranks, falling back to the default language.
func (r *Repository) WithUpdatedLanguage(lang string) *Repository {
	out := r.clone()
	out.language = lang
	out.roots = r.sorted(r.roots, lang, true)
	return out
}

// Validated runs the tree validation and returns a repository carrying the
// errors. Every ancestor of a node with errors is expanded.
func (r *Repository) Validated() *Repository {
	out := r.clone()
	out.errors = validation.Validate(r.roots)
	out.expanded = cloneExpanded(r.expanded)
	for id := range out.errors {
		if id == domain.RootID {
			continue
		}
		loc, ok := r.Find(id)
		if !ok {
			continue
		}
		for _, anc := range loc.Ancestors {
			out.expanded[anc.TreeID] = true
		}
	}
	return out
}

// FormErrors checks n as it would be inserted under parent, or updated in
// place when its tree id is already in the tree.
func (r *Repository) FormErrors(n *domain.MenuNode, parent domain.TreeID, finalizing bool) []validation.FieldError {
	if loc, ok := r.Find(n.TreeID); ok {
		parent = loc.parentID()
	}
	siblings, _, _ := r.childrenOf(parent)
	return validation.ValidateNodeForm(n, validation.FormContext{
		DefaultLanguage: r.cfg.DefaultLanguage,
		Siblings:        siblings,
		Roots:           r.roots,
		Finalizing:      finalizing,
	})
}

// childrenOf returns the children of parent and the kind allowed to hold
// them. The root level behaves like a category.
func (r *Repository) childrenOf(parent domain.TreeID) ([]*domain.MenuNode, domain.NodeKind, bool) {
	if parent == domain.RootID {
		return r.roots, domain.KindCategory, true
	}
	loc, ok := r.Find(parent)
	if !ok {
		return nil, "", false
	}
	return loc.Node.Children, loc.Node.Kind, true
}

func (r *Repository) demotePrimary(siblings []*domain.MenuNode, keep domain.TreeID) []*domain.MenuNode {
	out := make([]*domain.MenuNode, len(siblings))
	for i, s := range siblings {
		if s.TreeID != keep && s.IsSeason() && s.Primary {
			s = domain.BuilderFrom(s, r.cfg.DefaultLanguage).SetPrimary(false).Build()
		}
		out[i] = s
	}
	return out
}

// withChildren returns new roots where parent's children are replaced. Only
// the ancestor chain of parent is copied.
func (r *Repository) withChildren(parent domain.TreeID, children []*domain.MenuNode) []*domain.MenuNode {
	if parent == domain.RootID {
		return children
	}
	roots, _ := replaceNode(r.roots, parent, func(n *domain.MenuNode) *domain.MenuNode {
		return domain.BuilderFrom(n, r.cfg.DefaultLanguage).SetChildren(children).Build()
	})
	return roots
}

func replaceNode(nodes []*domain.MenuNode, id domain.TreeID, fn func(*domain.MenuNode) *domain.MenuNode) ([]*domain.MenuNode, bool) {
	for i, n := range nodes {
		if n.TreeID == id {
			out := append([]*domain.MenuNode(nil), nodes...)
			out[i] = fn(n)
			return out, true
		}
		if kids, ok := replaceNode(n.Children, id, fn); ok {
			out := append([]*domain.MenuNode(nil), nodes...)
			out[i] = domain.BuilderFrom(n, "").SetChildren(kids).Build()
			return out, true
		}
	}
	return nodes, false
}

// sorted rebuilds nodes recursively in lang's order, optionally deriving the
// titles for lang.
func (r *Repository) sorted(nodes []*domain.MenuNode, lang string, retitle bool) []*domain.MenuNode {
	out := r.orders.SortNodes(lang, nodes)
	for i, n := range out {
		b := domain.BuilderFrom(n, r.cfg.DefaultLanguage)
		if retitle {
			b.RetitleFor(lang)
		}
		if len(n.Children) > 0 {
			b.SetChildren(r.sorted(n.Children, lang, retitle))
		}
		out[i] = b.Build()
	}
	return out
}

// droppedIDs lists descendants of old that no longer exist below updated.
func droppedIDs(old, updated *domain.MenuNode) []domain.TreeID {
	kept := map[domain.TreeID]bool{}
	for _, id := range subtreeIDs(updated) {
		kept[id] = true
	}
	var gone []domain.TreeID
	for _, id := range subtreeIDs(old) {
		if !kept[id] {
			gone = append(gone, id)
		}
	}
	return gone
}

func cloneErrors(e validation.Errors) validation.Errors {
	out := make(validation.Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
