package domain

import "time"

// MenuNode is one Category, Stage or Season entry in the menu tree.
//
// Nodes are immutable snapshots produced by NodeBuilder. Code outside this
// package must not modify a node or any slice or map reachable from it;
// derive a changed copy with BuilderFrom instead. Children are exclusively
// owned by their parent.
type MenuNode struct {
	TreeID TreeID
	ID     string // persisted identifier, empty until the node is saved
	Kind   NodeKind

	Name      LocalizedText
	ShortName LocalizedText
	Code      LocalizedText
	Title     string

	Hidden   bool
	Primary  bool
	Domestic bool
	Gender   Gender

	NoStandings  bool
	NoLiveScores bool
	NoStatistics bool

	HighlightedTournament bool
	HighlightedSections   []string
	MatchRoundWhitelist   []string

	StartDate *time.Time
	EndDate   *time.Time

	Children            []*MenuNode
	StageMappings       []StageMapping
	LocalizedSortOrders map[string]int
	FlagVariants        map[FlagVariant]string
	CountryCodes        []string
}

// IsSeason reports whether the node is a leaf season.
func (n *MenuNode) IsSeason() bool {
	return n.Kind == KindSeason
}

// IsSaved reports whether the node has a persisted identifier.
func (n *MenuNode) IsSaved() bool {
	return n.ID != ""
}

// Child returns the direct child with the given tree id.
func (n *MenuNode) Child(id TreeID) (*MenuNode, int, bool) {
	for i, c := range n.Children {
		if c.TreeID == id {
			return c, i, true
		}
	}
	return nil, -1, false
}

// ContainsSeason reports whether any descendant is a season.
func (n *MenuNode) ContainsSeason() bool {
	for _, c := range n.Children {
		if c.IsSeason() || c.ContainsSeason() {
			return true
		}
	}
	return false
}
