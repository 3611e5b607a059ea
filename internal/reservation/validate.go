package reservation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation failed")

// ValidationError lists the fields that failed validation by their JSON name.
// Missing is set when every failure is an empty required field.
type ValidationError struct {
	Fields  []string
	Missing bool
}

func (e *ValidationError) Error() string {
	if e.Missing {
		return "missing required fields: " + strings.Join(e.Fields, ", ")
	}
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	verr := &ValidationError{Fields: make([]string, 0, len(verrs)), Missing: true}
	for _, fe := range verrs {
		verr.Fields = append(verr.Fields, fe.Field())
		if fe.Tag() != "required" {
			verr.Missing = false
		}
	}
	return verr
}
