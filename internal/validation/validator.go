// Package validation provides request validation and free-text sanitization
// for every entity mutation. Validation uses declarative struct tags via the
// validator/v10 library; results come back as domain errors with per-field
// messages, never as panics.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	domainerrors "github.com/summerplanapp/summerplan-server/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty, -
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	// isodate: an ISO calendar date, YYYY-MM-DD.
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseDate(fl.Field().String())
		return ok
	})

	// gtedate: an ISO date not earlier than the named sibling field.
	// ISO dates order lexically, so a plain string compare is exact.
	mustRegister(v, "gtedate", func(fl validator.FieldLevel) bool {
		other, kind, ok := fl.GetStructFieldOK()
		if !ok || kind != reflect.String {
			return false
		}
		return fl.Field().String() >= other.String()
	})

	// itemstatus: one of the scheduled item statuses.
	mustRegister(v, "itemstatus", func(fl validator.FieldLevel) bool {
		return domain.ValidItemStatus(domain.ItemStatus(fl.Field().String()))
	})

	// blocktype: one of the non-camp block types.
	mustRegister(v, "blocktype", func(fl validator.FieldLevel) bool {
		return domain.ValidBlockType(domain.BlockType(fl.Field().String()))
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = v.friendlyMessage(e)
	}

	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

func (v *Validator) friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gtedate":
		return "must not be before the start date"
	case "isodate":
		return "must be an ISO date (YYYY-MM-DD)"
	case "itemstatus":
		return "must be a valid status (planned, registered, confirmed, waitlisted, cancelled)"
	case "blocktype":
		return "must be a valid block type (vacation, family-time, travel, other)"
	case "hexcolor":
		return "must be a hex color"
	default:
		return "is invalid"
	}
}
