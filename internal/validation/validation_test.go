package validation_test

import (
	"errors"
	"testing"

	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/validation"
)

type sample struct {
	Email    string `validate:"required,email"`
	Category string `validate:"omitempty,oneof=CLOTHES ELECTRONICS BOOKS TOILETRIES FOOD DOCUMENTS OTHER"`
	Quantity int    `validate:"gte=1"`
}

func TestStructValid(t *testing.T) {
	s := sample{Email: "traveler@example.com", Category: "BOOKS", Quantity: 2}
	if err := validation.Struct(s); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
}

func TestStructInvalidWrapsValidationError(t *testing.T) {
	s := sample{Email: "not-an-email", Quantity: 0}
	err := validation.Struct(s)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, types.ErrValidation) {
		t.Errorf("error should wrap types.ErrValidation, got %v", err)
	}
}

func TestStructRejectsUnnormalizedEnum(t *testing.T) {
	// Enum values must be normalized before validation; lowercase fails.
	s := sample{Email: "a@b.co", Category: "books", Quantity: 1}
	if err := validation.Struct(s); err == nil {
		t.Error("lowercase enum should fail oneof validation")
	}

	s.Category = validation.Normalize(" books ")
	if err := validation.Struct(s); err != nil {
		t.Errorf("normalized enum should validate, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"books":    "BOOKS",
		" Clothes": "CLOTHES",
		"ADMIN":    "ADMIN",
		"":         "",
		"  ":       "",
	}
	for in, want := range tests {
		if got := validation.Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
