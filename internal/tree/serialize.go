package tree

import (
	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/sortorder"
)

// Serializable returns the payload handed to persistence. Siblings are
// written in default-language order, each node carries its ranks, and only
// the fields that apply to a node's kind are included. Languages whose order
// is incomplete or equal to the default are left out.
func (r *Repository) Serializable() []domain.RawNode {
	o := r.orders.Sanitize(r.Len())
	return r.toRawNodes(r.roots, o)
}

func (r *Repository) toRawNodes(nodes []*domain.MenuNode, o sortorder.Orders) []domain.RawNode {
	if len(nodes) == 0 {
		return nil
	}
	sorted := o.SortNodes(r.cfg.DefaultLanguage, nodes)
	out := make([]domain.RawNode, len(sorted))
	for i, n := range sorted {
		out[i] = r.toRawNode(n, o)
	}
	return out
}

func (r *Repository) toRawNode(n *domain.MenuNode, o sortorder.Orders) domain.RawNode {
	raw := domain.RawNode{
		ID:                  n.ID,
		Type:                string(n.Kind),
		Name:                r.rawText(n.Name),
		ShortName:           r.rawText(n.ShortName),
		Code:                r.rawText(n.Code),
		Hidden:              domain.BoolPtr(n.Hidden),
		LocalizedSortOrders: o.ForNode(n.TreeID),
	}
	switch n.Kind {
	case domain.KindCategory:
		raw.FlagVariants = flagVariants(n.FlagVariants)
		raw.CountryCodes = n.CountryCodes
		raw.Children = r.toRawNodes(n.Children, o)
	case domain.KindStage:
		raw.Domestic = domain.BoolPtr(n.Domestic)
		raw.Gender = genderPtr(n.Gender)
		raw.NoStandings = domain.BoolPtr(n.NoStandings)
		raw.NoLiveScores = domain.BoolPtr(n.NoLiveScores)
		raw.NoStatistics = domain.BoolPtr(n.NoStatistics)
		raw.HighlightedTournament = domain.BoolPtr(n.HighlightedTournament)
		if n.HighlightedTournament {
			raw.HighlightedSections = n.HighlightedSections
			raw.MatchRoundWhitelist = n.MatchRoundWhitelist
		}
		raw.CountryCodes = n.CountryCodes
		raw.Children = r.toRawNodes(n.Children, o)
	case domain.KindSeason:
		raw.Primary = domain.BoolPtr(n.Primary)
		raw.Gender = genderPtr(n.Gender)
		raw.NoStandings = domain.BoolPtr(n.NoStandings)
		raw.NoLiveScores = domain.BoolPtr(n.NoLiveScores)
		raw.NoStatistics = domain.BoolPtr(n.NoStatistics)
		raw.StartDate = domain.FormatOptionalDate(n.StartDate)
		raw.EndDate = domain.FormatOptionalDate(n.EndDate)
		for _, m := range n.StageMappings {
			raw.StageMappings = append(raw.StageMappings, domain.ToRawStageMapping(m))
		}
	}
	return raw
}

// rawText drops the whole field when the default-language value is empty.
func (r *Repository) rawText(t domain.LocalizedText) domain.RawText {
	if t.Get(r.cfg.DefaultLanguage) == "" {
		return nil
	}
	return domain.ToRawText(t)
}

func flagVariants(m map[domain.FlagVariant]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

func genderPtr(g domain.Gender) *string {
	if g == domain.GenderNone {
		return nil
	}
	s := string(g)
	return &s
}
