package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/middleware"
	"github.com/Mofathy183/beggy-sub000/internal/services"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/utils"
)

// BagItemsHandler handles attaching and detaching items on bags.
type BagItemsHandler struct {
	DB *gorm.DB
}

// itemIDsBody is the request body for batch attach/detach. The ids field
// accepts a single UUID or an array.
type itemIDsBody struct {
	ItemIDs types.FlexList[uuid.UUID] `json:"itemIds"`
}

// Attach handles POST /api/bag-items/:bagId/item/:itemId
// @Summary Attach one item to a bag
// @Description Gate the item against remaining capacity, insert the link idempotently and recheck thresholds
// @Tags BagItems
// @Produce json
// @Security BearerAuth
// @Param bagId path string true "Bag ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /bag-items/{bagId}/item/{itemId} [post]
func (h *BagItemsHandler) Attach(c *fiber.Ctx) error {
	bagID, err := paramUUID(c, "bagId")
	if err != nil {
		return handleServiceError(c, err)
	}
	itemID, err := paramUUID(c, "itemId")
	if err != nil {
		return handleServiceError(c, err)
	}

	status, meta, err := services.AttachItemToBag(h.DB, bagID, itemID, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Item attached", status, meta)
}

// AttachMany handles POST /api/bag-items/:bagId/items
// @Summary Attach many items to a bag
// @Description Items that fail the fit gate are skipped; duplicates are ignored
// @Tags BagItems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bagId path string true "Bag ID"
// @Param body body handlers.itemIDsBody true "Item ids"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /bag-items/{bagId}/items [post]
func (h *BagItemsHandler) AttachMany(c *fiber.Ctx) error {
	bagID, err := paramUUID(c, "bagId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var body itemIDsBody
	if err := parseBody(c, &body); err != nil {
		return handleServiceError(c, err)
	}

	status, meta, err := services.AttachItemsToBag(h.DB, bagID, body.ItemIDs.Slice(), callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Items attached", status, meta)
}

// Detach handles DELETE /api/bag-items/:bagId/item/:itemId
// @Summary Detach one item from a bag
// @Description Removing an item that is not attached is a 404, not a no-op
// @Tags BagItems
// @Produce json
// @Security BearerAuth
// @Param bagId path string true "Bag ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /bag-items/{bagId}/item/{itemId} [delete]
func (h *BagItemsHandler) Detach(c *fiber.Ctx) error {
	bagID, err := paramUUID(c, "bagId")
	if err != nil {
		return handleServiceError(c, err)
	}
	itemID, err := paramUUID(c, "itemId")
	if err != nil {
		return handleServiceError(c, err)
	}

	status, meta, err := services.DetachItemFromBag(h.DB, bagID, itemID, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Item detached", status, meta)
}

// DetachMany handles DELETE /api/bag-items/:bagId/items
// @Summary Detach many items from a bag
// @Description Ids that were never attached are skipped; the meta count reflects actual deletions
// @Tags BagItems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bagId path string true "Bag ID"
// @Param body body handlers.itemIDsBody true "Item ids"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /bag-items/{bagId}/items [delete]
func (h *BagItemsHandler) DetachMany(c *fiber.Ctx) error {
	bagID, err := paramUUID(c, "bagId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var body itemIDsBody
	if err := parseBody(c, &body); err != nil {
		return handleServiceError(c, err)
	}

	status, meta, err := services.DetachItemsFromBag(h.DB, bagID, body.ItemIDs.Slice(), callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Items detached", status, meta)
}

// DetachAll handles DELETE /api/bag-items/:bagId
// @Summary Detach items from a bag by filter
// @Description With no filter the bag is emptied; with field/search only matching items are removed
// @Tags BagItems
// @Produce json
// @Security BearerAuth
// @Param bagId path string true "Bag ID"
// @Param field query string false "Filter field"
// @Param search query string false "Filter value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /bag-items/{bagId} [delete]
func (h *BagItemsHandler) DetachAll(c *fiber.Ctx) error {
	bagID, err := paramUUID(c, "bagId")
	if err != nil {
		return handleServiceError(c, err)
	}

	opts := middleware.QueryFromCtx(c)
	status, meta, err := services.DetachAllItemsFromBag(h.DB, bagID, callerScope(c), opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Items detached", status, meta)
}
