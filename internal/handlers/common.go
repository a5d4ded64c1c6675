package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Mofathy183/beggy-sub000/internal/middleware"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/utils"
)

// handleServiceError translates a service failure into the error envelope.
// Sentinel errors map to stable statuses and machine-readable types; anything
// unrecognized is a 500 with the detail kept out of the response.
func handleServiceError(c *fiber.Ctx, err error) error {
	var custom *types.CustomError
	if errors.As(err, &custom) {
		return utils.ErrorResponse(c, custom.Code, custom.Message, custom.Type)
	}

	switch {
	case errors.Is(err, types.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, err.Error(), "resource.not_found")
	case errors.Is(err, types.ErrValidation):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "request.validation")
	case errors.Is(err, types.ErrUniqueConstraint):
		return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), "resource.duplicate")
	case errors.Is(err, types.ErrForeignKey):
		return utils.ErrorResponse(c, fiber.StatusConflict, err.Error(), "resource.reference")
	case errors.Is(err, types.ErrCapacityExceeded):
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error(), "container.capacity")
	case errors.Is(err, types.ErrWeightExceeded):
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error(), "container.weight")
	case errors.Is(err, types.ErrUnauthorized):
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials or token", "auth.unauthorized")
	case errors.Is(err, types.ErrForbidden):
		return utils.ErrorResponse(c, fiber.StatusForbidden, err.Error(), "auth.forbidden")
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", "internal")
	}
}

// paramUUID parses a path parameter as a UUID.
func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid " + name + " parameter, expected a UUID",
			Type:    "request.param",
		}
	}
	return id, nil
}

// callerScope returns the owner scope for the authenticated caller: their own
// id, or nil for admins.
func callerScope(c *fiber.Ctx) *uuid.UUID {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return nil
	}
	return identity.OwnerScope()
}

// parseBody decodes the JSON request body into dst with a uniform error.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return &types.CustomError{
			Code:    fiber.StatusBadRequest,
			Message: "Malformed JSON body",
			Type:    "request.body",
		}
	}
	return nil
}
