// Package tree holds the menu tree aggregate. A Repository is an immutable
// snapshot of the root nodes together with their per-language sibling ranks,
// validation errors and UI expansion state. Every operation returns a new
// Repository; the receiver stays valid and unchanged.
package tree

import (
	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/mapping"
	"github.com/alexanderramin/menudesk/internal/sortorder"
	"github.com/alexanderramin/menudesk/internal/validation"
)

// Config carries the language setup. DefaultLanguage is the reference for
// sort-order fallback, title derivation and required names.
type Config struct {
	DefaultLanguage string
	Languages       []string
}

type Repository struct {
	cfg      Config
	language string
	roots    []*domain.MenuNode
	orders   sortorder.Orders
	errors   validation.Errors
	expanded map[domain.TreeID]bool
	counter  mapping.AssignedSeasonCounter
}

// New returns an empty repository viewed in the default language.
func New(cfg Config) *Repository {
	return &Repository{
		cfg:      cfg,
		language: cfg.DefaultLanguage,
		orders:   sortorder.New(cfg.DefaultLanguage),
		errors:   validation.Errors{},
		expanded: map[domain.TreeID]bool{},
		counter:  mapping.NewCounter(),
	}
}

// Load builds a repository from a persisted payload. Ranks embedded in the
// payload seed the sort-order engine; siblings without a rank keep their
// payload order after the ranked ones.
func Load(raw []domain.RawNode, cfg Config, ids domain.IDGenerator) *Repository {
	return FromNodes(domain.FromData(raw, ids, cfg.DefaultLanguage), cfg)
}

// FromNodes wraps already built root nodes, e.g. a catalog bootstrap.
func FromNodes(roots []*domain.MenuNode, cfg Config) *Repository {
	r := New(cfg)
	o := r.orders
	walkNodes(roots, func(n *domain.MenuNode) {
		o = o.AddFromNode(n)
	})
	o = seedSubtree(o, trackedLanguages(o), roots)
	r.orders = o.Sanitize(-1)
	r.roots = r.sorted(roots, r.language, false)
	r.counter = mapping.CountTree(r.roots)
	return r
}

func (r *Repository) clone() *Repository {
	c := *r
	return &c
}

func (r *Repository) Config() Config {
	return r.cfg
}

// Language is the language the tree is currently viewed and sorted in.
func (r *Repository) Language() string {
	return r.language
}

// Roots returns the top-level nodes in view order.
func (r *Repository) Roots() []*domain.MenuNode {
	return append([]*domain.MenuNode(nil), r.roots...)
}

// Orders returns the sort-order engine state.
func (r *Repository) Orders() sortorder.Orders {
	return r.orders
}

// AssignmentCounter returns how many seasons reference each external stage.
func (r *Repository) AssignmentCounter() mapping.AssignedSeasonCounter {
	return r.counter
}

// Errors returns a copy of the errors recorded by the last Validated call,
// minus those cleared by later updates.
func (r *Repository) Errors() validation.Errors {
	out := make(validation.Errors, len(r.errors))
	for id, msgs := range r.errors {
		out[id] = append([]string(nil), msgs...)
	}
	return out
}

// ErrorsFor returns the errors recorded for one node.
func (r *Repository) ErrorsFor(id domain.TreeID) []string {
	return append([]string(nil), r.errors[id]...)
}

// HasErrors reports whether any error is recorded.
func (r *Repository) HasErrors() bool {
	return len(r.errors) > 0
}

func (r *Repository) IsExpanded(id domain.TreeID) bool {
	return r.expanded[id]
}

// WithExpanded sets the UI expansion state of a node.
func (r *Repository) WithExpanded(id domain.TreeID, expanded bool) *Repository {
	out := r.clone()
	out.expanded = cloneExpanded(r.expanded)
	if expanded {
		out.expanded[id] = true
	} else {
		delete(out.expanded, id)
	}
	return out
}

// Len returns the number of nodes in the tree.
func (r *Repository) Len() int {
	count := 0
	walkNodes(r.roots, func(*domain.MenuNode) { count++ })
	return count
}

func cloneExpanded(m map[domain.TreeID]bool) map[domain.TreeID]bool {
	out := make(map[domain.TreeID]bool, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func walkNodes(nodes []*domain.MenuNode, fn func(*domain.MenuNode)) {
	for _, n := range nodes {
		fn(n)
		walkNodes(n.Children, fn)
	}
}

func treeIDs(nodes []*domain.MenuNode) []domain.TreeID {
	out := make([]domain.TreeID, len(nodes))
	for i, n := range nodes {
		out[i] = n.TreeID
	}
	return out
}

func subtreeIDs(n *domain.MenuNode) []domain.TreeID {
	var out []domain.TreeID
	walkNodes([]*domain.MenuNode{n}, func(c *domain.MenuNode) {
		out = append(out, c.TreeID)
	})
	return out
}

func subtreeMappingKeys(n *domain.MenuNode) []string {
	var keys []string
	walkNodes([]*domain.MenuNode{n}, func(c *domain.MenuNode) {
		if !c.IsSeason() {
			return
		}
		for _, m := range c.StageMappings {
			keys = append(keys, m.Key())
		}
	})
	return keys
}

// trackedLanguages is every language with its own rank set plus the default.
func trackedLanguages(o sortorder.Orders) []string {
	langs := o.Languages()
	if !o.Has(o.DefaultLanguage()) {
		langs = append([]string{o.DefaultLanguage()}, langs...)
	}
	return langs
}

// seedGroup ranks every sibling that has no rank yet after the ranked ones,
// in every language in langs, and closes gaps.
func seedGroup(o sortorder.Orders, langs []string, ids []domain.TreeID) sortorder.Orders {
	for _, lang := range langs {
		complete := true
		for _, id := range ids {
			if _, ok := o.Rank(lang, id); !ok {
				complete = false
				break
			}
		}
		if !complete {
			o = o.SetForLanguage(lang, o.SiblingOrder(lang, ids))
		}
	}
	return o
}

func seedSubtree(o sortorder.Orders, langs []string, nodes []*domain.MenuNode) sortorder.Orders {
	if len(nodes) == 0 {
		return o
	}
	o = seedGroup(o, langs, treeIDs(nodes))
	for _, n := range nodes {
		o = seedSubtree(o, langs, n.Children)
	}
	return o
}
