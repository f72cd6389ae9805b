// Package sortorder keeps, per language, the rank of every menu node among
// its siblings.
//
// Orders is a value type: every method that changes ranks returns a new
// Orders and leaves the receiver untouched. Unknown ids and languages never
// fail; they sort last.
package sortorder

import (
	"math"
	"sort"

	"github.com/alexanderramin/menudesk/internal/domain"
)

// Unranked is the effective rank of an id with no recorded rank. It is
// larger than any rank assigned by this package.
const Unranked = math.MaxInt32

type rankSet map[domain.TreeID]int

// Orders maps language code -> tree id -> sibling rank.
type Orders struct {
	defaultLang string
	ranks       map[string]rankSet
}

// New returns empty orders keyed off defaultLang.
func New(defaultLang string) Orders {
	return Orders{defaultLang: defaultLang, ranks: map[string]rankSet{}}
}

// DefaultLanguage returns the language every other language falls back to.
func (o Orders) DefaultLanguage() string {
	return o.defaultLang
}

// Languages returns the languages with a recorded rank set, sorted.
func (o Orders) Languages() []string {
	langs := make([]string, 0, len(o.ranks))
	for lang := range o.ranks {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Has reports whether lang has its own rank set.
func (o Orders) Has(lang string) bool {
	_, ok := o.ranks[lang]
	return ok
}

// Len returns the number of ranked ids in lang.
func (o Orders) Len(lang string) int {
	return len(o.ranks[lang])
}

// Rank returns the rank recorded for id in lang.
func (o Orders) Rank(lang string, id domain.TreeID) (int, bool) {
	r, ok := o.ranks[lang][id]
	return r, ok
}

// EffectiveRank returns the rank used for sorting: lang's own rank set when
// it has one, otherwise the default language's. Missing ids are Unranked.
func (o Orders) EffectiveRank(lang string, id domain.TreeID) int {
	set, ok := o.ranks[lang]
	if !ok {
		set = o.ranks[o.defaultLang]
	}
	if r, ok := set[id]; ok {
		return r
	}
	return Unranked
}

// ForNode returns every recorded rank of id keyed by language.
func (o Orders) ForNode(id domain.TreeID) map[string]int {
	var out map[string]int
	for lang, set := range o.ranks {
		if r, ok := set[id]; ok {
			if out == nil {
				out = make(map[string]int, len(o.ranks))
			}
			out[lang] = r
		}
	}
	return out
}

// Compare orders a before b in lang: negative, zero or positive.
func (o Orders) Compare(lang string, a, b domain.TreeID) int {
	ra, rb := o.EffectiveRank(lang, a), o.EffectiveRank(lang, b)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

// SiblingOrder returns ids sorted by their effective rank in lang. Ties keep
// their input order.
func (o Orders) SiblingOrder(lang string, ids []domain.TreeID) []domain.TreeID {
	out := append([]domain.TreeID(nil), ids...)
	sort.SliceStable(out, func(i, j int) bool {
		return o.Compare(lang, out[i], out[j]) < 0
	})
	return out
}

// SortNodes returns nodes sorted by their effective rank in lang.
func (o Orders) SortNodes(lang string, nodes []*domain.MenuNode) []*domain.MenuNode {
	out := append([]*domain.MenuNode(nil), nodes...)
	sort.SliceStable(out, func(i, j int) bool {
		return o.Compare(lang, out[i].TreeID, out[j].TreeID) < 0
	})
	return out
}

// SetForLanguage ranks ids 0..n-1 by position in lang. Ranks of ids not in
// the list are kept.
func (o Orders) SetForLanguage(lang string, ids []domain.TreeID) Orders {
	out := o.shallowClone()
	set := o.ranks[lang].clone()
	for i, id := range ids {
		set[id] = i
	}
	out.ranks[lang] = set
	return out
}

// SetRank records a single rank.
func (o Orders) SetRank(lang string, id domain.TreeID, rank int) Orders {
	out := o.shallowClone()
	set := o.ranks[lang].clone()
	set[id] = rank
	out.ranks[lang] = set
	return out
}

// Remove drops ids from every language.
func (o Orders) Remove(ids ...domain.TreeID) Orders {
	out := o.shallowClone()
	for lang, set := range o.ranks {
		var next rankSet
		for _, id := range ids {
			if _, ok := set[id]; !ok {
				continue
			}
			if next == nil {
				next = set.clone()
			}
			delete(next, id)
		}
		if next != nil {
			out.ranks[lang] = next
		}
	}
	return out
}

// Merge copies other's ranks into o. With overwrite, a language present in
// other replaces o's rank set for that language entirely.
func (o Orders) Merge(other Orders, overwrite bool) Orders {
	out := o.shallowClone()
	for lang, src := range other.ranks {
		var set rankSet
		if overwrite {
			set = make(rankSet, len(src))
		} else {
			set = o.ranks[lang].clone()
		}
		for id, r := range src {
			set[id] = r
		}
		out.ranks[lang] = set
	}
	return out
}

// AddFromNode seeds ranks from the node's embedded LocalizedSortOrders.
func (o Orders) AddFromNode(n *domain.MenuNode) Orders {
	if len(n.LocalizedSortOrders) == 0 {
		return o
	}
	out := o.shallowClone()
	for lang, r := range n.LocalizedSortOrders {
		set := out.ranks[lang].clone()
		set[n.TreeID] = r
		out.ranks[lang] = set
	}
	return out
}

// Sanitize keeps only non-default languages whose ordering is complete and
// materially different from the default. A language is dropped when its
// size differs from expectedCount (the default language's size when
// expectedCount is negative) or when it matches the default rank for rank.
func (o Orders) Sanitize(expectedCount int) Orders {
	def := o.ranks[o.defaultLang]
	if expectedCount < 0 {
		expectedCount = len(def)
	}
	out := o.shallowClone()
	for lang, set := range o.ranks {
		if lang == o.defaultLang {
			continue
		}
		if len(set) != expectedCount || set.equal(def) {
			delete(out.ranks, lang)
		}
	}
	return out
}

// Expand gives every language in langs without a rank set a copy of the
// default language's ranks.
func (o Orders) Expand(langs []string) Orders {
	def := o.ranks[o.defaultLang]
	out := o.shallowClone()
	for _, lang := range langs {
		if _, ok := out.ranks[lang]; ok {
			continue
		}
		out.ranks[lang] = def.clone()
	}
	return out
}

// Renumber re-ranks siblings contiguously from 0 in every language, keeping
// each language's relative order. Used after a sibling is removed.
func (o Orders) Renumber(siblings []domain.TreeID) Orders {
	out := o
	for _, lang := range o.Languages() {
		out = out.SetForLanguage(lang, o.SiblingOrder(lang, siblings))
	}
	return out
}

// ReconcileOnMove records a move made in lang's view, where prev is the
// sibling order lang showed before the move and next the order after it.
//
// Every other language whose current order of these siblings equals prev is
// linked and takes next as is. A language whose order already diverged keeps
// its own order for the untouched siblings and gets moved inserted at its new
// index.
func (o Orders) ReconcileOnMove(lang string, prev, next []domain.TreeID, moved domain.TreeID) Orders {
	newIndex := indexOf(next, moved)
	out := o
	for _, other := range o.Languages() {
		if other == lang {
			continue
		}
		current := o.SiblingOrder(other, prev)
		if equalIDs(current, prev) || newIndex < 0 {
			out = out.SetForLanguage(other, next)
			continue
		}
		out = out.SetForLanguage(other, insertAt(without(current, moved), moved, newIndex))
	}
	return out.SetForLanguage(lang, next)
}

func (o Orders) shallowClone() Orders {
	out := Orders{defaultLang: o.defaultLang, ranks: make(map[string]rankSet, len(o.ranks)+1)}
	for lang, set := range o.ranks {
		out.ranks[lang] = set
	}
	return out
}

func (s rankSet) clone() rankSet {
	out := make(rankSet, len(s)+1)
	for id, r := range s {
		out[id] = r
	}
	return out
}

func (s rankSet) equal(other rankSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id, r := range s {
		if or, ok := other[id]; !ok || or != r {
			return false
		}
	}
	return true
}

func indexOf(ids []domain.TreeID, id domain.TreeID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func equalIDs(a, b []domain.TreeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func without(ids []domain.TreeID, id domain.TreeID) []domain.TreeID {
	out := make([]domain.TreeID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func insertAt(ids []domain.TreeID, id domain.TreeID, i int) []domain.TreeID {
	if i > len(ids) {
		i = len(ids)
	}
	out := make([]domain.TreeID, 0, len(ids)+1)
	out = append(out, ids[:i]...)
	out = append(out, id)
	return append(out, ids[i:]...)
}
