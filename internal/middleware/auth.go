package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Mofathy183/beggy-sub000/internal/config"
	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/services"
	"github.com/Mofathy183/beggy-sub000/internal/types"
)

const identityKey = "identity"

// Identity is the authenticated caller. It is built once by Protect and read
// by everything downstream; handlers never re-validate it.
type Identity struct {
	UserID uuid.UUID
	Role   models.Role
}

// IsAdmin reports whether the caller carries the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// OwnerScope returns the user id services should scope queries to, or nil for
// admins, which see everything including the public pool.
func (id Identity) OwnerScope() *uuid.UUID {
	if id.IsAdmin() {
		return nil
	}
	uid := id.UserID
	return &uid
}

// Protect validates the bearer JWT (Authorization header or access_token
// cookie) and stores the caller's Identity in context.
func Protect(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Missing access token",
				Type:    "auth.token.missing",
			}
		}

		claims, err := services.ValidateToken(cfg, token)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid or expired access token",
				Type:    "auth.token.invalid",
			}
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Malformed token subject",
				Type:    "auth.token.invalid",
			}
		}

		c.Locals(identityKey, Identity{
			UserID: userID,
			Role:   models.Role(claims.Role),
		})

		return c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allowed set. Must run
// after Protect.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromCtx(c)
		if !ok {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Missing authentication",
				Type:    "auth.identity.missing",
			}
		}

		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}

		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Insufficient role for this resource",
			Type:    "auth.role.forbidden",
		}
	}
}

// IdentityFromCtx retrieves the authenticated identity set by Protect.
func IdentityFromCtx(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityKey).(Identity)
	return identity, ok
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return c.Cookies("access_token")
}
