package domain

import (
	"sort"
	"strings"
	"unicode"
)

// FromSportData bootstraps a menu tree from provider catalog entries: one
// category per category name, one stage per stage name and gender within it,
// and one season per mapping. The season with the latest start date in each
// stage is primary. Names and codes are set in the default language only.
func FromSportData(mappings []StageMapping, ids IDGenerator, defaultLang string) []*MenuNode {
	type stageKey struct {
		name   string
		gender Gender
	}
	var categoryOrder []string
	stageOrder := make(map[string][]stageKey)
	seasons := make(map[string]map[stageKey][]StageMapping)

	for _, m := range mappings {
		cat := CoalesceStr(m.CategoryName, m.ProviderID)
		if _, ok := seasons[cat]; !ok {
			categoryOrder = append(categoryOrder, cat)
			seasons[cat] = make(map[stageKey][]StageMapping)
		}
		sk := stageKey{name: CoalesceStr(m.StageName, m.StageID), gender: m.Gender}
		if _, ok := seasons[cat][sk]; !ok {
			stageOrder[cat] = append(stageOrder[cat], sk)
		}
		seasons[cat][sk] = append(seasons[cat][sk], m)
	}

	roots := make([]*MenuNode, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		catCode := Slug(cat)
		cb := NewNodeBuilder(KindCategory, ids, defaultLang).
			SetNameValue(defaultLang, cat, false).
			SetCodeValue(defaultLang, catCode, false)

		for _, sk := range stageOrder[cat] {
			stageCode := catCode + "-" + Slug(sk.name)
			if sk.gender != GenderNone {
				stageCode += "-" + string(sk.gender)
			}
			sb := NewNodeBuilder(KindStage, ids, defaultLang).
				SetNameValue(defaultLang, sk.name, false).
				SetCodeValue(defaultLang, stageCode, false).
				SetGender(sk.gender)

			group := append([]StageMapping(nil), seasons[cat][sk]...)
			sort.SliceStable(group, func(i, j int) bool {
				return startsAfter(group[i], group[j])
			})
			for i, m := range group {
				seasonName := CoalesceStr(m.SeasonName, m.StageName, m.StageID)
				sb.AppendChild(NewNodeBuilder(KindSeason, ids, defaultLang).
					SetNameValue(defaultLang, seasonName, false).
					SetCodeValue(defaultLang, stageCode+"-"+Slug(seasonName), false).
					SetGender(m.Gender).
					SetPrimary(i == 0).
					SetTimeRange(m.StartDate, m.EndDate).
					AddStageMapping(m).
					Build())
			}
			cb.AppendChild(sb.Build())
		}
		roots = append(roots, cb.Build())
	}
	return roots
}

// startsAfter orders mappings newest first; undated mappings sort last.
func startsAfter(a, b StageMapping) bool {
	switch {
	case a.StartDate == nil:
		return false
	case b.StartDate == nil:
		return true
	default:
		return a.StartDate.After(*b.StartDate)
	}
}

// Slug lowercases s and collapses every run of non-alphanumerics into "-".
func Slug(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
