// Package validation is the single entry point for request-body validation
// and enum normalization. Every enumerated field passes through Normalize
// before validation and persistence, so read paths never re-case values.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Mofathy183/beggy-sub000/internal/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates v against its `validate` tags, returning an error that
// wraps types.ErrValidation with a readable field summary.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", types.ErrValidation, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", types.ErrValidation, strings.Join(fields, ", "))
}

// Var validates a single value against a tag expression.
func Var(v interface{}, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		return fmt.Errorf("%w: %v", types.ErrValidation, err)
	}
	return nil
}

// Normalize upper-cases and trims an enumerated field value. Empty input stays
// empty so optional enums keep their column defaults.
func Normalize(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
