package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Mofathy183/beggy-sub000/internal/types"
)

const queryKey = "queryOptions"

// ParseQuery parses page/limit/sortBy/order/field/search once per request and
// stores the immutable result in context. Field and sort names are validated
// against resource whitelists in the service layer.
func ParseQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := types.QueryOptions{
			Page:   c.QueryInt("page", 1),
			Limit:  c.QueryInt("limit", types.MaxPageLimit),
			SortBy: c.Query("sortBy", "createdAt"),
			Order:  strings.ToLower(c.Query("order", "desc")),
			Field:  c.Query("field"),
			Search: c.Query("search"),
		}

		if opts.Page < 1 {
			opts.Page = 1
		}
		if opts.Limit < 1 || opts.Limit > types.MaxPageLimit {
			opts.Limit = types.MaxPageLimit
		}
		if opts.Order != "asc" && opts.Order != "desc" {
			opts.Order = "desc"
		}

		c.Locals(queryKey, opts)
		return c.Next()
	}
}

// QueryFromCtx retrieves the parsed query options, falling back to defaults
// when the route did not run ParseQuery.
func QueryFromCtx(c *fiber.Ctx) types.QueryOptions {
	if opts, ok := c.Locals(queryKey).(types.QueryOptions); ok {
		return opts
	}
	return types.DefaultQueryOptions()
}
