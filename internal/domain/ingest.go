package domain

// FromData builds menu nodes from a persisted payload. Every node receives a
// fresh tree id from ids; persisted ids, sort orders and all kind-relevant
// fields are carried over. Unknown node types are skipped.
func FromData(raw []RawNode, ids IDGenerator, defaultLang string) []*MenuNode {
	nodes := make([]*MenuNode, 0, len(raw))
	for i := range raw {
		if n := fromRawNode(&raw[i], ids, defaultLang); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func fromRawNode(r *RawNode, ids IDGenerator, defaultLang string) *MenuNode {
	if !ValidNodeKinds[r.Type] {
		return nil
	}
	b := NewNodeBuilder(NodeKind(r.Type), ids, defaultLang).
		SetID(r.ID).
		SetName(fromRawText(r.Name)).
		SetShortName(fromRawText(r.ShortName)).
		SetCode(fromRawText(r.Code)).
		SetGender(Gender(StrFromPtrWithDefault("", r.Gender))).
		SetHidden(BoolFromPtrWithDefault(false, r.Hidden)).
		SetPrimary(BoolFromPtrWithDefault(false, r.Primary)).
		SetDomestic(BoolFromPtrWithDefault(false, r.Domestic)).
		SetNoStandings(BoolFromPtrWithDefault(false, r.NoStandings)).
		SetNoLiveScores(BoolFromPtrWithDefault(false, r.NoLiveScores)).
		SetNoStatistics(BoolFromPtrWithDefault(false, r.NoStatistics)).
		SetHighlightedTournament(BoolFromPtrWithDefault(false, r.HighlightedTournament)).
		SetTimeRange(ParseOptionalDate(r.StartDate), ParseOptionalDate(r.EndDate)).
		SetLocalizedSortOrders(r.LocalizedSortOrders).
		SetCountryCodes(r.CountryCodes)

	if BoolFromPtrWithDefault(false, r.HighlightedTournament) {
		b.SetHighlightedSections(r.HighlightedSections).
			SetMatchRoundWhitelist(r.MatchRoundWhitelist)
	}
	for variant, url := range r.FlagVariants {
		if ValidFlagVariant(variant) {
			b.SetFlagVariant(FlagVariant(variant), url)
		}
	}
	for _, m := range r.StageMappings {
		b.AddStageMapping(FromRawStageMapping(m))
	}
	for i := range r.Children {
		if child := fromRawNode(&r.Children[i], ids, defaultLang); child != nil {
			b.AppendChild(child)
		}
	}
	return b.Build()
}

// FromRawStageMapping converts a persisted mapping.
func FromRawStageMapping(m RawStageMapping) StageMapping {
	return StageMapping{
		ProviderID:   m.ProviderID,
		StageID:      m.StageID,
		CategoryName: m.CategoryName,
		StageName:    m.StageName,
		SeasonName:   m.SeasonName,
		Gender:       Gender(m.Gender),
		StartDate:    ParseOptionalDate(m.StartDate),
		EndDate:      ParseOptionalDate(m.EndDate),
	}
}

// ToRawStageMapping is the inverse of FromRawStageMapping. The assignment
// count is derived data and is not persisted.
func ToRawStageMapping(m StageMapping) RawStageMapping {
	return RawStageMapping{
		ProviderID:   m.ProviderID,
		StageID:      m.StageID,
		CategoryName: m.CategoryName,
		StageName:    m.StageName,
		SeasonName:   m.SeasonName,
		Gender:       string(m.Gender),
		StartDate:    FormatOptionalDate(m.StartDate),
		EndDate:      FormatOptionalDate(m.EndDate),
	}
}

func fromRawText(r RawText) LocalizedText {
	if len(r) == 0 {
		return nil
	}
	t := make(LocalizedText, len(r))
	for lang, v := range r {
		t[lang] = LocalizedValue{Value: v.Value, Translated: v.Translated}
	}
	return t
}

// ToRawText converts a LocalizedText, dropping empty values.
func ToRawText(t LocalizedText) RawText {
	if len(t) == 0 {
		return nil
	}
	r := make(RawText, len(t))
	for lang, v := range t {
		if v.Value == "" {
			continue
		}
		r[lang] = RawValue{Value: v.Value, Translated: v.Translated}
	}
	if len(r) == 0 {
		return nil
	}
	return r
}
