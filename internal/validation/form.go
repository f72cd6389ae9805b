package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexanderramin/menudesk/internal/domain"
)

var urlValidate = validator.New()

// FieldError is a single-node edit problem bound to a form field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// FormContext carries what a single-node check needs to know about the
// surrounding tree.
type FormContext struct {
	DefaultLanguage string
	// Siblings are the other children of the node's parent. The node itself
	// may be included; it is skipped by tree id.
	Siblings []*domain.MenuNode
	// Roots is the whole tree, for the global code check.
	Roots []*domain.MenuNode
	// Finalizing requires a primary season among the siblings.
	Finalizing bool
}

// ValidateNodeForm checks a node about to be inserted or updated. It is
// stricter than Validate for the node itself and looser for the rest of the
// tree: only rules the editor can fix on this form are reported.
func ValidateNodeForm(n *domain.MenuNode, fc FormContext) []FieldError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(n.Name.Get(fc.DefaultLanguage)) == "" {
		add("name", "name is required in "+fc.DefaultLanguage)
	}

	for _, lang := range n.Code.Languages() {
		code := n.Code.Get(lang)
		if codeTaken(fc.Siblings, n.TreeID, lang, code) {
			add("code", fmt.Sprintf("code %q is already used by a sibling in %s", code, lang))
			continue
		}
		if codeTakenAnywhere(fc.Roots, n.TreeID, lang, code) {
			add("code", DuplicateCodeMessage(lang, code))
		}
	}

	switch n.Kind {
	case domain.KindSeason:
		if n.StartDate != nil && n.EndDate != nil && n.StartDate.After(*n.EndDate) {
			add("endDate", "end date must not be before start date")
		}
		if fc.Finalizing && !n.Primary && !hasPrimarySibling(fc.Siblings, n.TreeID) {
			add("primary", "one season in the stage must be primary")
		}
		if len(n.StageMappings) == 0 {
			add("stageMappings", "at least one stage mapping is required")
		}
	case domain.KindCategory:
		for _, v := range domain.FlagVariants {
			u, ok := n.FlagVariants[v]
			if ok && !ValidFlagURL(u) {
				add("flagVariants."+string(v), "must be an absolute URL or a path starting with /")
			}
		}
	}
	return errs
}

// ValidFlagURL accepts absolute URLs and root-relative paths.
func ValidFlagURL(u string) bool {
	if strings.HasPrefix(u, "/") && !strings.HasPrefix(u, "//") {
		return len(strings.TrimSpace(u)) == len(u)
	}
	return urlValidate.Var(u, "required,url") == nil
}

func codeTaken(nodes []*domain.MenuNode, self domain.TreeID, lang, code string) bool {
	for _, s := range nodes {
		if s.TreeID != self && s.Code.Get(lang) == code {
			return true
		}
	}
	return false
}

func codeTakenAnywhere(nodes []*domain.MenuNode, self domain.TreeID, lang, code string) bool {
	for _, n := range nodes {
		if n.TreeID != self && n.Code.Get(lang) == code {
			return true
		}
		if codeTakenAnywhere(n.Children, self, lang, code) {
			return true
		}
	}
	return false
}

func hasPrimarySibling(siblings []*domain.MenuNode, self domain.TreeID) bool {
	for _, s := range siblings {
		if s.TreeID != self && s.IsSeason() && s.Primary {
			return true
		}
	}
	return false
}
