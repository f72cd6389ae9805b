package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/alexanderramin/menudesk/internal/domain"
)

var catalogValidate = newCatalogValidator()

// newCatalogValidator reports fields by their JSON names so messages match
// the file the user wrote.
func newCatalogValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCatalog checks the catalog for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateCatalog(schema *CatalogSchema) []error {
	var errs []error
	errs = append(errs, validateTags(schema)...)
	errs = append(errs, validateStages(schema.Stages)...)
	errs = append(errs, validateMenu(schema.Menu)...)
	return errs
}

func validateTags(schema *CatalogSchema) []error {
	err := catalogValidate.Struct(schema)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fieldError(fe))
	}
	return errs
}

// fieldError renders a tag failure as "path.field <problem>", dropping the
// root struct name from the namespace.
func fieldError(fe validator.FieldError) error {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "min":
		return fmt.Errorf("%s must have at least %s entries", path, fe.Param())
	case "max":
		return fmt.Errorf("%s must be at most %s characters", path, fe.Param())
	case "oneof":
		return fmt.Errorf("%s: invalid value %q", path, fe.Value())
	default:
		return fmt.Errorf("%s: failed %q check", path, fe.Tag())
	}
}

func validateStages(stages []StageImport) []error {
	var errs []error
	seen := make(map[string]int, len(stages))

	for i, s := range stages {
		prefix := fmt.Sprintf("stages[%d]", i)

		if s.StageID != "" {
			if first, dup := seen[s.StageID]; dup {
				errs = append(errs, fmt.Errorf("%s.stage_id: duplicate stage id %q (first at stages[%d])", prefix, s.StageID, first))
			} else {
				seen[s.StageID] = i
			}
		}

		start, startErr := parseDate(prefix+".start_date", s.StartDate)
		if startErr != nil {
			errs = append(errs, startErr)
		}
		end, endErr := parseDate(prefix+".end_date", s.EndDate)
		if endErr != nil {
			errs = append(errs, endErr)
		}
		if start != nil && end != nil && end.Before(*start) {
			errs = append(errs, fmt.Errorf("%s.end_date %q must not be before start_date %q", prefix, *s.EndDate, *s.StartDate))
		}
	}
	return errs
}

func validateMenu(m *MenuImport) []error {
	if m == nil || m.DefaultLanguage == "" {
		return nil
	}
	if _, err := language.Parse(m.DefaultLanguage); err != nil {
		return []error{fmt.Errorf("menu.default_language: invalid language code %q", m.DefaultLanguage)}
	}
	return nil
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *s)
	}
	return &t, nil
}
