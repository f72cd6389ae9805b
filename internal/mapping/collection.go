package mapping

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/alexanderramin/menudesk/internal/domain"
)

// Filter narrows a StageMappingCollection. Zero fields match everything.
type Filter struct {
	ProviderID   string
	NamePrefix   string // case-insensitive, matched against category, stage and season names
	HideAssigned bool
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether m passes the filter.
func (f Filter) Match(m domain.StageMapping) bool {
	if f.ProviderID != "" && m.ProviderID != f.ProviderID {
		return false
	}
	if f.HideAssigned && m.IsAssigned() {
		return false
	}
	if f.NamePrefix == "" {
		return true
	}
	fold := cases.Fold()
	prefix := fold.String(strings.TrimSpace(f.NamePrefix))
	for _, name := range []string{m.CategoryName, m.StageName, m.SeasonName} {
		if strings.HasPrefix(fold.String(name), prefix) {
			return true
		}
	}
	return false
}

// StageMappingCollection holds the canonical list of stage mappings and the
// view produced by the active filter. Positions passed to Update and Remove
// refer to the view; the change lands on the canonical list and the view is
// recomputed, so both always agree. The collection is immutable.
type StageMappingCollection struct {
	items  []domain.StageMapping
	filter Filter
	view   []int // indexes into items
}

// NewCollection wraps mappings without a filter.
func NewCollection(mappings []domain.StageMapping) StageMappingCollection {
	c := StageMappingCollection{items: append([]domain.StageMapping(nil), mappings...)}
	return c.refresh()
}

// All returns the canonical list.
func (c StageMappingCollection) All() []domain.StageMapping {
	return append([]domain.StageMapping(nil), c.items...)
}

// Items returns the filtered view.
func (c StageMappingCollection) Items() []domain.StageMapping {
	out := make([]domain.StageMapping, len(c.view))
	for i, idx := range c.view {
		out[i] = c.items[idx]
	}
	return out
}

// Len returns the size of the filtered view.
func (c StageMappingCollection) Len() int {
	return len(c.view)
}

// At returns the mapping at view position i.
func (c StageMappingCollection) At(i int) (domain.StageMapping, bool) {
	if i < 0 || i >= len(c.view) {
		return domain.StageMapping{}, false
	}
	return c.items[c.view[i]], true
}

// Filter returns the active filter.
func (c StageMappingCollection) Filter() Filter {
	return c.filter
}

// ApplyFilter recomputes the view for f without touching the canonical list.
func (c StageMappingCollection) ApplyFilter(f Filter) StageMappingCollection {
	c.filter = f
	return c.refresh()
}

// ClearFilter shows every mapping again.
func (c StageMappingCollection) ClearFilter() StageMappingCollection {
	return c.ApplyFilter(Filter{})
}

// WithCounts refreshes every AssignedCount from counter and re-applies the
// filter, so HideAssigned reflects the latest assignments.
func (c StageMappingCollection) WithCounts(counter AssignedSeasonCounter) StageMappingCollection {
	c.items = counter.Apply(c.items)
	return c.refresh()
}

// Add appends m to the canonical list. It shows up in the view only if it
// passes the active filter.
func (c StageMappingCollection) Add(m domain.StageMapping) StageMappingCollection {
	items := make([]domain.StageMapping, len(c.items), len(c.items)+1)
	copy(items, c.items)
	c.items = append(items, m)
	return c.refresh()
}

// Update replaces the mapping at view position i. Out-of-range positions
// leave the collection unchanged.
func (c StageMappingCollection) Update(i int, m domain.StageMapping) StageMappingCollection {
	if i < 0 || i >= len(c.view) {
		return c
	}
	items := append([]domain.StageMapping(nil), c.items...)
	items[c.view[i]] = m
	c.items = items
	return c.refresh()
}

// Remove drops the mapping at view position i. Out-of-range positions leave
// the collection unchanged.
func (c StageMappingCollection) Remove(i int) StageMappingCollection {
	if i < 0 || i >= len(c.view) {
		return c
	}
	idx := c.view[i]
	items := make([]domain.StageMapping, 0, len(c.items)-1)
	items = append(items, c.items[:idx]...)
	c.items = append(items, c.items[idx+1:]...)
	return c.refresh()
}

// IndexOf returns the view position of the mapping with key.
func (c StageMappingCollection) IndexOf(key string) int {
	for i, idx := range c.view {
		if c.items[idx].Key() == key {
			return i
		}
	}
	return -1
}

func (c StageMappingCollection) refresh() StageMappingCollection {
	view := make([]int, 0, len(c.items))
	for i, m := range c.items {
		if c.filter.Match(m) {
			view = append(view, i)
		}
	}
	c.view = view
	return c
}
