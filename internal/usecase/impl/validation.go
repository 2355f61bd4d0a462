package impl

import (
	"reflect"
	"strings"

	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// inputValidator validates use-case input DTOs against their `validate` tags.
type inputValidator struct {
	validate *validator.Validate
}

func newInputValidator() *inputValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Money amounts are compared as numbers, so `gte=0` works on decimal fields.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if amount, ok := field.Interface().(decimal.Decimal); ok {
			return amount.InexactFloat64()
		}

		return nil
	}, decimal.Decimal{})

	return &inputValidator{validate: validate}
}

// Struct validates input. A missing required field yields MissingRequiredField,
// any other rule yields ValidationFailed; both name the offending fields.
func (v *inputValidator) Struct(input any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrs, ok := errors.AsType[validator.ValidationErrors](err)
	if !ok {
		return errors.Wrap(err, "failed to validate input")
	}

	var missing, invalid []string
	for _, fieldErr := range validationErrs {
		if fieldErr.Tag() == "required" {
			missing = append(missing, fieldErr.Namespace())

			continue
		}
		invalid = append(invalid, fieldErr.Namespace()+" failed '"+fieldErr.Tag()+"'")
	}

	if len(missing) > 0 {
		return domainerrors.ErrMissingRequiredField.WithDetails(strings.Join(missing, ", "))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(invalid, ", "))
}
