package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/config"
	"github.com/Mofathy183/beggy-sub000/internal/middleware"
	"github.com/Mofathy183/beggy-sub000/internal/services"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/utils"
)

// ItemHandler handles item CRUD and field suggestion routes.
type ItemHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// List handles GET /api/items
// @Summary List items
// @Description List the caller's items with pagination, sorting and filtering
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size, capped at 10"
// @Param sortBy query string false "Sort field"
// @Param order query string false "asc or desc"
// @Param field query string false "Filter field"
// @Param search query string false "Filter value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	opts := middleware.QueryFromCtx(c)

	items, total, err := services.FindItems(h.DB, callerScope(c), opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	meta := utils.NewListMeta(opts.Page, opts.Limit, total)
	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Items", items, meta)
}

// Get handles GET /api/items/:itemId
// @Summary Get one item
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /items/{itemId} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "itemId")
	if err != nil {
		return handleServiceError(c, err)
	}

	item, err := services.FindItemByID(h.DB, id, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Item", item)
}

// Create handles POST /api/items
// @Summary Create an item
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ItemInput true "Item payload"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var input services.ItemInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}

	identity, _ := middleware.IdentityFromCtx(c)
	ownerID := identity.UserID
	item, err := services.CreateItem(h.DB, input, &ownerID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Item created", item)
}

// CreateMany handles POST /api/items/many
// @Summary Create many items
// @Description Bulk-create items; accepts a single object or an array
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []services.ItemInput true "Item payloads"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /items/many [post]
func (h *ItemHandler) CreateMany(c *fiber.Ctx) error {
	var inputs types.FlexList[services.ItemInput]
	if err := parseBody(c, &inputs); err != nil {
		return handleServiceError(c, err)
	}

	identity, _ := middleware.IdentityFromCtx(c)
	ownerID := identity.UserID
	count, err := services.CreateItems(h.DB, inputs.Slice(), &ownerID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusCreated, "Items created", nil,
		utils.CountMeta{Count: count})
}

// Replace handles PUT /api/items/:itemId
// @Summary Replace an item
// @Description Full overwrite; missing fields fall back to schema defaults
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Item ID"
// @Param body body services.ItemInput true "Item payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /items/{itemId} [put]
func (h *ItemHandler) Replace(c *fiber.Ctx) error {
	id, err := paramUUID(c, "itemId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var input services.ItemInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}

	item, err := services.ReplaceItem(h.DB, id, input, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Item replaced", item)
}

// Modify handles PATCH /api/items/:itemId
// @Summary Patch an item
// @Description Partial update; only provided fields change
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Item ID"
// @Param body body services.ItemPatch true "Item patch"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /items/{itemId} [patch]
func (h *ItemHandler) Modify(c *fiber.Ctx) error {
	id, err := paramUUID(c, "itemId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var patch services.ItemPatch
	if err := parseBody(c, &patch); err != nil {
		return handleServiceError(c, err)
	}

	item, err := services.ModifyItem(h.DB, id, patch, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Item updated", item)
}

// Remove handles DELETE /api/items/:itemId
// @Summary Delete an item
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Param itemId path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /items/{itemId} [delete]
func (h *ItemHandler) Remove(c *fiber.Ctx) error {
	id, err := paramUUID(c, "itemId")
	if err != nil {
		return handleServiceError(c, err)
	}

	if err := services.RemoveItemByID(h.DB, id, callerScope(c)); err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Item deleted", nil)
}

// RemoveAll handles DELETE /api/items
// @Summary Delete items by filter
// @Description Delete every item matching the query filter; returns the count
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Param field query string false "Filter field"
// @Param search query string false "Filter value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /items [delete]
func (h *ItemHandler) RemoveAll(c *fiber.Ctx) error {
	opts := middleware.QueryFromCtx(c)

	count, err := services.RemoveAllItems(h.DB, callerScope(c), opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Items deleted", nil,
		utils.CountMeta{Count: count})
}

// Suggest handles POST /api/items/suggest
// @Summary Suggest item fields
// @Description Ask the auto-fill endpoint to complete missing descriptive fields
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AutofillInput true "Known fields and fields to fill"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /items/suggest [post]
func (h *ItemHandler) Suggest(c *fiber.Ctx) error {
	var input services.AutofillInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}
	input.Resource = "ITEM"

	result, err := services.Autofill(c.Context(), h.Cfg, input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Suggestions", result)
}
