package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the service failure taxonomy. Services wrap these with
// context via fmt.Errorf("%w") and handlers translate them to HTTP statuses.
var (
	ErrNotFound         = errors.New("record not found")
	ErrValidation       = errors.New("validation failed")
	ErrUniqueConstraint = errors.New("unique constraint violation")
	ErrForeignKey       = errors.New("foreign key violation")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrWeightExceeded   = errors.New("max weight exceeded")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
