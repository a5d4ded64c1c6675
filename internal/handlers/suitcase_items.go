package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/middleware"
	"github.com/Mofathy183/beggy-sub000/internal/services"
	"github.com/Mofathy183/beggy-sub000/internal/utils"
)

// SuitcaseItemsHandler handles attaching and detaching items on suitcases.
type SuitcaseItemsHandler struct {
	DB *gorm.DB
}

// Attach handles POST /api/suitcase-items/:suitcaseId/item/:itemId
// @Summary Attach one item to a suitcase
// @Description Gate the item against remaining capacity, insert the link idempotently and recheck thresholds
// @Tags SuitcaseItems
// @Produce json
// @Security BearerAuth
// @Param suitcaseId path string true "Suitcase ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /suitcase-items/{suitcaseId}/item/{itemId} [post]
func (h *SuitcaseItemsHandler) Attach(c *fiber.Ctx) error {
	suitcaseID, err := paramUUID(c, "suitcaseId")
	if err != nil {
		return handleServiceError(c, err)
	}
	itemID, err := paramUUID(c, "itemId")
	if err != nil {
		return handleServiceError(c, err)
	}

	status, meta, err := services.AttachItemToSuitcase(h.DB, suitcaseID, itemID, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Item attached", status, meta)
}

// AttachMany handles POST /api/suitcase-items/:suitcaseId/items
// @Summary Attach many items to a suitcase
// @Description Items that fail the fit gate are skipped; duplicates are ignored
// @Tags SuitcaseItems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param suitcaseId path string true "Suitcase ID"
// @Param body body handlers.itemIDsBody true "Item ids"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /suitcase-items/{suitcaseId}/items [post]
func (h *SuitcaseItemsHandler) AttachMany(c *fiber.Ctx) error {
	suitcaseID, err := paramUUID(c, "suitcaseId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var body itemIDsBody
	if err := parseBody(c, &body); err != nil {
		return handleServiceError(c, err)
	}

	status, meta, err := services.AttachItemsToSuitcase(h.DB, suitcaseID, body.ItemIDs.Slice(), callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Items attached", status, meta)
}

// Detach handles DELETE /api/suitcase-items/:suitcaseId/item/:itemId
// @Summary Detach one item from a suitcase
// @Description Removing an item that is not attached is a 404, not a no-op
// @Tags SuitcaseItems
// @Produce json
// @Security BearerAuth
// @Param suitcaseId path string true "Suitcase ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /suitcase-items/{suitcaseId}/item/{itemId} [delete]
func (h *SuitcaseItemsHandler) Detach(c *fiber.Ctx) error {
	suitcaseID, err := paramUUID(c, "suitcaseId")
	if err != nil {
		return handleServiceError(c, err)
	}
	itemID, err := paramUUID(c, "itemId")
	if err != nil {
		return handleServiceError(c, err)
	}

	status, meta, err := services.DetachItemFromSuitcase(h.DB, suitcaseID, itemID, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Item detached", status, meta)
}

// DetachMany handles DELETE /api/suitcase-items/:suitcaseId/items
// @Summary Detach many items from a suitcase
// @Description Ids that were never attached are skipped; the meta count reflects actual deletions
// @Tags SuitcaseItems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param suitcaseId path string true "Suitcase ID"
// @Param body body handlers.itemIDsBody true "Item ids"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /suitcase-items/{suitcaseId}/items [delete]
func (h *SuitcaseItemsHandler) DetachMany(c *fiber.Ctx) error {
	suitcaseID, err := paramUUID(c, "suitcaseId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var body itemIDsBody
	if err := parseBody(c, &body); err != nil {
		return handleServiceError(c, err)
	}

	status, meta, err := services.DetachItemsFromSuitcase(h.DB, suitcaseID, body.ItemIDs.Slice(), callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Items detached", status, meta)
}

// DetachAll handles DELETE /api/suitcase-items/:suitcaseId
// @Summary Detach items from a suitcase by filter
// @Description With no filter the suitcase is emptied; with field/search only matching items are removed
// @Tags SuitcaseItems
// @Produce json
// @Security BearerAuth
// @Param suitcaseId path string true "Suitcase ID"
// @Param field query string false "Filter field"
// @Param search query string false "Filter value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /suitcase-items/{suitcaseId} [delete]
func (h *SuitcaseItemsHandler) DetachAll(c *fiber.Ctx) error {
	suitcaseID, err := paramUUID(c, "suitcaseId")
	if err != nil {
		return handleServiceError(c, err)
	}

	opts := middleware.QueryFromCtx(c)
	status, meta, err := services.DetachAllItemsFromSuitcase(h.DB, suitcaseID, callerScope(c), opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Items detached", status, meta)
}
