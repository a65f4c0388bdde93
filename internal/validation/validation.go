// Package validation wires go-playground/validator into Fiber's request
// binding and exposes the custom tags request payloads use.
package validation

import (
	"reflect"
	"strings"

	"job-board/internal/pkg/password"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed rule on a request field, named by its
// JSON key.
type FieldError struct {
	Field string
	Tag   string
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return password.Valid(fl.Field().String())
	})
	return &Validator{v: v}
}

// Validate implements fiber.StructValidator.
func (v *Validator) Validate(out any) error {
	return v.v.Struct(out)
}

// Fields flattens a validator error into per-field failures. Non-validation
// errors yield nil.
func Fields(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

// HasTag reports whether any field failed the given rule.
func HasTag(err error, tag string) bool {
	for _, fe := range Fields(err) {
		if fe.Tag == tag {
			return true
		}
	}
	return false
}
