package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/menudesk/internal/domain"
	"github.com/alexanderramin/menudesk/internal/validation"
)

// ErrValidationFailed is returned when a menu tree does not pass validation.
var ErrValidationFailed = errors.New("menu validation failed")

// ValidationError carries the per-node messages behind ErrValidationFailed.
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string {
	ids := make([]domain.TreeID, 0, len(e.Errors))
	count := 0
	for id, msgs := range e.Errors {
		ids = append(ids, id)
		count += len(msgs)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d errors on %d nodes)", ErrValidationFailed, count, len(ids))
	for _, id := range ids {
		for _, msg := range e.Errors[id] {
			fmt.Fprintf(&sb, "\n  - node %d: %s", id, msg)
		}
	}
	return sb.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
