package application

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-adgrader/internal/domain"
)

// weightTolerance absorbs float rounding when weights are summed.
const weightTolerance = 1e-6

// validate is the shared validator instance with the grading validators
// registered. validator.Validate is safe for concurrent use once built.
var validate = sync.OnceValues(func() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterConfigValidators(v); err != nil {
		return nil, err
	}
	return v, nil
})

// RegisterConfigValidators registers the custom validation functions used in
// domain struct tags: weightsum for weight maps that must total 100 and
// category_key for keys naming a catalog category. It returns an error if
// any registration fails.
func RegisterConfigValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("weightsum", validateWeightSum); err != nil {
		return fmt.Errorf("failed to register weightsum validator: %w", err)
	}

	if err := v.RegisterValidation("category_key", validateCategoryKey); err != nil {
		return fmt.Errorf("failed to register category_key validator: %w", err)
	}

	return nil
}

// validateWeightSum checks that the float values of a map add up to 100.
func validateWeightSum(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Map {
		return false
	}

	var sum float64
	iter := field.MapRange()
	for iter.Next() {
		sum += iter.Value().Float()
	}
	return math.Abs(sum-100) <= weightTolerance
}

// validateCategoryKey checks that a string names one of the catalog categories.
func validateCategoryKey(fl validator.FieldLevel) bool {
	_, ok := knownCategories[domain.CategoryKey(fl.Field().String())]
	return ok
}

var knownCategories = func() map[domain.CategoryKey]struct{} {
	keys := make(map[domain.CategoryKey]struct{})
	for _, def := range domain.DefaultCategories() {
		keys[def.Key] = struct{}{}
	}
	return keys
}()

// ValidateConfig checks a grading configuration against its struct tags.
// ValidateConfig returns a *domain.ValidationError listing every violated
// rule; the error matches domain.ErrInvalidConfiguration under errors.Is.
func ValidateConfig(cfg domain.Config) error {
	v, err := validate()
	if err != nil {
		return err
	}

	verr := domain.NewValidationError("config")
	collectFieldErrors(verr, v.Struct(cfg))
	return verr.ErrOrNil()
}

// ValidateCategories checks category definitions before any scoring runs.
// Category keys must be unique and equal to the key derived from the display
// name. Criterion keys must be unique across the catalog, and the criterion
// weights of every category must sum to 100.
func ValidateCategories(defs []domain.CategoryDefinition) error {
	v, err := validate()
	if err != nil {
		return err
	}

	verr := domain.NewValidationError("categories")
	if len(defs) == 0 {
		verr.AddError("no category definitions")
		return verr
	}

	categories := make(map[domain.CategoryKey]struct{}, len(defs))
	criteria := make(map[domain.CriterionKey]domain.CategoryKey)
	for _, def := range defs {
		collectFieldErrors(verr, v.Struct(def))

		if _, dup := categories[def.Key]; dup {
			verr.AddErrorf("duplicate category key %q", def.Key)
		}
		categories[def.Key] = struct{}{}

		if derived := domain.DeriveCategoryKey(def.Name); derived != def.Key {
			verr.AddErrorf("category %q: key does not match name %q (derived %q)", def.Key, def.Name, derived)
		}

		if sum := def.CriterionWeightSum(); math.Abs(sum-100) > weightTolerance {
			verr.AddErrorf("category %q: criterion weights sum to %g, want 100", def.Key, sum)
		}

		for _, c := range def.Criteria {
			if owner, dup := criteria[c.Key]; dup {
				verr.AddErrorf("criterion %q declared in both %q and %q", c.Key, owner, def.Key)
				continue
			}
			criteria[c.Key] = def.Key
		}
	}

	return verr.ErrOrNil()
}

// collectFieldErrors copies validator failures into verr, one message per field.
func collectFieldErrors(verr *domain.ValidationError, err error) {
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.AddError(err.Error())
		return
	}
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			verr.AddErrorf("%s failed %s=%s (value %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
			continue
		}
		verr.AddErrorf("%s failed %s (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
	}
}
