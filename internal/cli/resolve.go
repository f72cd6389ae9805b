package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/tree"
)

var errAborted = errors.New("aborted")

// resolveNode finds a node in t. The reference can be:
//   - a row number as printed by "menu show" (display order of t's language)
//   - a persisted node id, or an unambiguous prefix of one
//   - a code in the view or default language (case-insensitive)
func resolveNode(t *tree.Repository, ref string) (*domain.MenuNode, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("node reference is required")
	}

	if seq, err := strconv.Atoi(ref); err == nil {
		ids := t.EntryIDs()
		if seq < 1 || seq > len(ids) {
			return nil, fmt.Errorf("node #%d not found (menu has %d nodes)", seq, len(ids))
		}
		loc, _ := t.Find(ids[seq-1])
		return loc.Node, nil
	}

	all := t.All()
	for _, n := range all {
		if n.ID == ref {
			return n, nil
		}
	}

	var matches []*domain.MenuNode
	for _, n := range all {
		if n.IsSaved() && strings.HasPrefix(n.ID, ref) {
			matches = append(matches, n)
		}
	}
	if len(matches) == 0 {
		lang, def := t.Language(), t.Config().DefaultLanguage
		for _, n := range all {
			if strings.EqualFold(n.Code.Get(lang), ref) || strings.EqualFold(n.Code.Get(def), ref) {
				matches = append(matches, n)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("node not found: %q", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("node reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveParent is resolveNode with "" and "root" naming the top level.
func resolveParent(t *tree.Repository, ref string) (domain.TreeID, domain.NodeKind, error) {
	if ref == "" || strings.EqualFold(ref, "root") {
		return domain.RootID, domain.KindCategory, nil
	}
	n, err := resolveNode(t, ref)
	if err != nil {
		return 0, "", fmt.Errorf("parent: %w", err)
	}
	return n.TreeID, n.Kind, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
