package database

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so error paths match the API.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateThought checks t against the record constraints and returns a
// *ValidationError describing every failing field.
func ValidateThought(t *Thought) error {
	if t == nil {
		return errors.New("cannot validate nil thought")
	}

	err := validate.Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate thought: %w", err)
	}

	out := &ValidationError{Errors: make(map[string]FieldError, len(verrs))}
	for _, fe := range verrs {
		out.Errors[fe.Field()] = toFieldError(fe)
	}
	return out
}

func toFieldError(fe validator.FieldError) FieldError {
	path := fe.Field()
	value := fe.Value()

	switch fe.Tag() {
	case "required":
		return FieldError{
			Kind:    "required",
			Path:    path,
			Message: fmt.Sprintf("Path `%s` is required.", path),
		}
	case "min":
		return FieldError{
			Kind:    "minlength",
			Path:    path,
			Value:   value,
			Message: fmt.Sprintf("Path `%s` (`%v`) is shorter than the minimum allowed length (%s).", path, value, fe.Param()),
		}
	case "max":
		return FieldError{
			Kind:    "maxlength",
			Path:    path,
			Value:   value,
			Message: fmt.Sprintf("Path `%s` (`%v`) is longer than the maximum allowed length (%s).", path, value, fe.Param()),
		}
	default:
		return FieldError{
			Kind:    fe.Tag(),
			Path:    path,
			Value:   value,
			Message: fmt.Sprintf("Path `%s` failed the %q constraint.", path, fe.Tag()),
		}
	}
}
