// Package validation checks menu trees and single-node edits against the
// structural rules of the menu. Nothing here mutates its input; results are
// returned as data.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/menudesk/internal/domain"
)

const (
	MsgNoPrimarySeason       = "No primary season in stage"
	MsgTooManyPrimarySeasons = "Too many primary seasons in stage"
	MsgNoVisibleChildren     = "No visible children"
)

// Errors maps a node's tree id to its error messages. Root-level errors are
// recorded under domain.RootID.
type Errors map[domain.TreeID][]string

func (e Errors) add(id domain.TreeID, msg string) {
	e[id] = append(e[id], msg)
}

// DuplicateCodeMessage names the colliding language and code.
func DuplicateCodeMessage(lang, code string) string {
	return fmt.Sprintf("Duplicate code %q in language %q", code, lang)
}

// Validate runs every tree-level rule over roots and returns the errors per
// node. An empty map means the tree is valid.
func Validate(roots []*domain.MenuNode) Errors {
	errs := Errors{}
	checkParent(errs, domain.RootID, domain.KindCategory, roots)
	checkDuplicateCodes(errs, roots)
	return errs
}

func checkParent(errs Errors, id domain.TreeID, kind domain.NodeKind, children []*domain.MenuNode) {
	if !hasVisibleChild(children) {
		errs.add(id, MsgNoVisibleChildren)
	}
	if kind == domain.KindStage && id != domain.RootID {
		switch primaries := countPrimary(children); {
		case primaries == 0:
			errs.add(id, MsgNoPrimarySeason)
		case primaries > 1:
			errs.add(id, MsgTooManyPrimarySeasons)
		}
	}
	for _, c := range children {
		if c.IsSeason() {
			continue
		}
		checkParent(errs, c.TreeID, c.Kind, c.Children)
	}
}

// EffectivelyVisible reports whether n counts as a visible child of its
// parent. Seasons always count. A category or stage counts when it is not
// hidden or when a season sits somewhere below it.
func EffectivelyVisible(n *domain.MenuNode) bool {
	if n.IsSeason() {
		return true
	}
	return !n.Hidden || n.ContainsSeason()
}

func hasVisibleChild(children []*domain.MenuNode) bool {
	for _, c := range children {
		if EffectivelyVisible(c) {
			return true
		}
	}
	return false
}

func countPrimary(children []*domain.MenuNode) int {
	count := 0
	for _, c := range children {
		if c.IsSeason() && c.Primary {
			count++
		}
	}
	return count
}

// checkDuplicateCodes enforces code uniqueness per language across the whole
// tree, not only among siblings.
func checkDuplicateCodes(errs Errors, roots []*domain.MenuNode) {
	owners := map[string][]domain.TreeID{}
	keys := []string{}
	var walk func([]*domain.MenuNode)
	walk = func(nodes []*domain.MenuNode) {
		for _, n := range nodes {
			for lang, v := range n.Code {
				if v.Value == "" {
					continue
				}
				key := codeKey(lang, v.Value)
				if _, seen := owners[key]; !seen {
					keys = append(keys, key)
				}
				owners[key] = append(owners[key], n.TreeID)
			}
			walk(n.Children)
		}
	}
	walk(roots)

	sort.Strings(keys)
	for _, key := range keys {
		ids := owners[key]
		if len(ids) < 2 {
			continue
		}
		lang, code := splitCodeKey(key)
		msg := DuplicateCodeMessage(lang, code)
		for _, id := range ids {
			errs.add(id, msg)
		}
	}
}

func codeKey(lang, code string) string {
	return lang + ":" + code
}

func splitCodeKey(key string) (lang, code string) {
	lang, code, _ = strings.Cut(key, ":")
	return lang, code
}
