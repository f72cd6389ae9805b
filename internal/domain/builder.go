package domain

import (
	"strings"
	"time"
)

// NodeBuilder stages changes to a MenuNode and freezes them with Build.
// Setters are chainable. A builder never modifies the node it was created
// from, and Build may be called repeatedly: every call returns a fresh node.
type NodeBuilder struct {
	defaultLang string
	node        MenuNode
}

// NewNodeBuilder starts an empty node of the given kind with a fresh tree id.
func NewNodeBuilder(kind NodeKind, ids IDGenerator, defaultLang string) *NodeBuilder {
	return &NodeBuilder{
		defaultLang: defaultLang,
		node: MenuNode{
			TreeID: ids.Next(),
			Kind:   kind,
		},
	}
}

// BuilderFrom starts from a copy of n, keeping its identity.
func BuilderFrom(n *MenuNode, defaultLang string) *NodeBuilder {
	return &NodeBuilder{defaultLang: defaultLang, node: copyNode(n)}
}

// Rebuild returns an equal copy of n. Used to refresh a node after a change
// below it without altering its content.
func Rebuild(n *MenuNode) *MenuNode {
	return BuilderFrom(n, "").Build()
}

func (b *NodeBuilder) SetID(id string) *NodeBuilder {
	b.node.ID = id
	return b
}

func (b *NodeBuilder) SetTreeID(id TreeID) *NodeBuilder {
	b.node.TreeID = id
	return b
}

// SetName replaces the name and patches the default-language name inside the
// title. Anything else in the title (a gender marker, a hand-edited suffix)
// is left alone.
func (b *NodeBuilder) SetName(name LocalizedText) *NodeBuilder {
	oldName := b.node.Name.Get(b.defaultLang)
	newName := name.Get(b.defaultLang)
	b.node.Name = name.Clone()
	b.node.Title = patchTitleName(b.node.Title, oldName, newName, b.node.Gender)
	return b
}

// SetNameValue sets a single translation of the name.
func (b *NodeBuilder) SetNameValue(lang, value string, translated bool) *NodeBuilder {
	return b.SetName(b.node.Name.With(lang, value, translated))
}

func (b *NodeBuilder) SetShortName(name LocalizedText) *NodeBuilder {
	b.node.ShortName = name.Clone()
	return b
}

func (b *NodeBuilder) SetShortNameValue(lang, value string, translated bool) *NodeBuilder {
	b.node.ShortName = b.node.ShortName.With(lang, value, translated)
	return b
}

func (b *NodeBuilder) SetCode(code LocalizedText) *NodeBuilder {
	b.node.Code = code.Clone()
	return b
}

func (b *NodeBuilder) SetCodeValue(lang, value string, translated bool) *NodeBuilder {
	b.node.Code = b.node.Code.With(lang, value, translated)
	return b
}

// SetTitle overrides the derived title, e.g. for a hand-edited suffix.
func (b *NodeBuilder) SetTitle(title string) *NodeBuilder {
	b.node.Title = title
	return b
}

// SetGender swaps only the gender marker at the end of the title.
func (b *NodeBuilder) SetGender(g Gender) *NodeBuilder {
	oldSuffix := b.node.Gender.TitleSuffix()
	newSuffix := g.TitleSuffix()
	switch {
	case oldSuffix == "":
		b.node.Title += newSuffix
	case strings.HasSuffix(b.node.Title, oldSuffix):
		b.node.Title = strings.TrimSuffix(b.node.Title, oldSuffix) + newSuffix
	}
	b.node.Gender = g
	return b
}

// RetitleFor derives the title from scratch for lang, falling back to the
// default-language name.
func (b *NodeBuilder) RetitleFor(lang string) *NodeBuilder {
	b.node.Title = b.node.Name.GetOr(lang, b.defaultLang) + b.node.Gender.TitleSuffix()
	return b
}

func (b *NodeBuilder) SetHidden(hidden bool) *NodeBuilder {
	b.node.Hidden = hidden
	return b
}

func (b *NodeBuilder) SetPrimary(primary bool) *NodeBuilder {
	b.node.Primary = primary
	return b
}

func (b *NodeBuilder) SetDomestic(domestic bool) *NodeBuilder {
	b.node.Domestic = domestic
	return b
}

func (b *NodeBuilder) SetNoStandings(v bool) *NodeBuilder {
	b.node.NoStandings = v
	return b
}

func (b *NodeBuilder) SetNoLiveScores(v bool) *NodeBuilder {
	b.node.NoLiveScores = v
	return b
}

func (b *NodeBuilder) SetNoStatistics(v bool) *NodeBuilder {
	b.node.NoStatistics = v
	return b
}

// SetHighlightedTournament toggles the highlight. Switching it off drops the
// dependent sections and match-round whitelist.
func (b *NodeBuilder) SetHighlightedTournament(v bool) *NodeBuilder {
	b.node.HighlightedTournament = v
	if !v {
		b.node.HighlightedSections = nil
		b.node.MatchRoundWhitelist = nil
	}
	return b
}

func (b *NodeBuilder) SetHighlightedSections(sections []string) *NodeBuilder {
	b.node.HighlightedSections = cloneStrings(sections)
	return b
}

func (b *NodeBuilder) SetMatchRoundWhitelist(rounds []string) *NodeBuilder {
	b.node.MatchRoundWhitelist = cloneStrings(rounds)
	return b
}

func (b *NodeBuilder) SetTimeRange(start, end *time.Time) *NodeBuilder {
	b.node.StartDate = cloneTime(start)
	b.node.EndDate = cloneTime(end)
	return b
}

func (b *NodeBuilder) SetChildren(children []*MenuNode) *NodeBuilder {
	b.node.Children = append([]*MenuNode(nil), children...)
	return b
}

func (b *NodeBuilder) AppendChild(child *MenuNode) *NodeBuilder {
	b.node.Children = append(b.node.Children, child)
	return b
}

// ReplaceChild swaps the child at index i. Out-of-range indexes are ignored.
func (b *NodeBuilder) ReplaceChild(i int, child *MenuNode) *NodeBuilder {
	if i >= 0 && i < len(b.node.Children) {
		b.node.Children[i] = child
	}
	return b
}

// RemoveChild drops the child at index i. Out-of-range indexes are ignored.
func (b *NodeBuilder) RemoveChild(i int) *NodeBuilder {
	if i >= 0 && i < len(b.node.Children) {
		b.node.Children = append(b.node.Children[:i], b.node.Children[i+1:]...)
	}
	return b
}

func (b *NodeBuilder) SetStageMappings(mappings []StageMapping) *NodeBuilder {
	b.node.StageMappings = append([]StageMapping(nil), mappings...)
	return b
}

func (b *NodeBuilder) AddStageMapping(m StageMapping) *NodeBuilder {
	b.node.StageMappings = append(b.node.StageMappings, m)
	return b
}

// RemoveStageMapping drops every mapping with the given key.
func (b *NodeBuilder) RemoveStageMapping(key string) *NodeBuilder {
	kept := b.node.StageMappings[:0]
	for _, m := range b.node.StageMappings {
		if m.Key() != key {
			kept = append(kept, m)
		}
	}
	b.node.StageMappings = kept
	return b
}

func (b *NodeBuilder) SetLocalizedSortOrders(orders map[string]int) *NodeBuilder {
	b.node.LocalizedSortOrders = cloneIntMap(orders)
	return b
}

func (b *NodeBuilder) SetFlagVariant(v FlagVariant, url string) *NodeBuilder {
	if b.node.FlagVariants == nil {
		b.node.FlagVariants = make(map[FlagVariant]string, len(FlagVariants))
	}
	if url == "" {
		delete(b.node.FlagVariants, v)
	} else {
		b.node.FlagVariants[v] = url
	}
	return b
}

func (b *NodeBuilder) SetCountryCodes(codes []string) *NodeBuilder {
	b.node.CountryCodes = cloneStrings(codes)
	return b
}

// Build freezes the staged state into a new node. Fields that do not apply
// to the node's kind are dropped.
func (b *NodeBuilder) Build() *MenuNode {
	n := copyNode(&b.node)
	switch n.Kind {
	case KindCategory:
		n.Primary = false
		n.Domestic = false
		n.NoStandings, n.NoLiveScores, n.NoStatistics = false, false, false
		n.HighlightedTournament = false
		n.StartDate, n.EndDate = nil, nil
		n.StageMappings = nil
	case KindStage:
		n.Primary = false
		n.StartDate, n.EndDate = nil, nil
		n.StageMappings = nil
		n.FlagVariants = nil
	case KindSeason:
		n.Domestic = false
		n.HighlightedTournament = false
		n.Children = nil
		n.FlagVariants = nil
		n.CountryCodes = nil
	}
	if !n.HighlightedTournament {
		n.HighlightedSections = nil
		n.MatchRoundWhitelist = nil
	}
	return &n
}

func patchTitleName(title, oldName, newName string, g Gender) string {
	switch {
	case title == "":
		return newName + g.TitleSuffix()
	case oldName == "":
		return newName + title
	case strings.Contains(title, oldName):
		return strings.Replace(title, oldName, newName, 1)
	default:
		// hand-edited title without the old name
		return title
	}
}

func copyNode(n *MenuNode) MenuNode {
	c := *n
	c.Name = n.Name.Clone()
	c.ShortName = n.ShortName.Clone()
	c.Code = n.Code.Clone()
	c.HighlightedSections = cloneStrings(n.HighlightedSections)
	c.MatchRoundWhitelist = cloneStrings(n.MatchRoundWhitelist)
	c.StartDate = cloneTime(n.StartDate)
	c.EndDate = cloneTime(n.EndDate)
	if n.Children != nil {
		c.Children = append([]*MenuNode(nil), n.Children...)
	}
	if n.StageMappings != nil {
		c.StageMappings = append([]StageMapping(nil), n.StageMappings...)
	}
	c.LocalizedSortOrders = cloneIntMap(n.LocalizedSortOrders)
	if n.FlagVariants != nil {
		c.FlagVariants = make(map[FlagVariant]string, len(n.FlagVariants))
		for k, v := range n.FlagVariants {
			c.FlagVariants[k] = v
		}
	}
	c.CountryCodes = cloneStrings(n.CountryCodes)
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneIntMap(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
