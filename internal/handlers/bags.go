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

// BagHandler handles bag CRUD and field suggestion routes.
type BagHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// List handles GET /api/bags
// @Summary List bags
// @Description List the caller's bags with pagination, sorting and filtering
// @Tags Bags
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size, capped at 10"
// @Param sortBy query string false "Sort field"
// @Param order query string false "asc or desc"
// @Param field query string false "Filter field"
// @Param search query string false "Filter value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /bags [get]
func (h *BagHandler) List(c *fiber.Ctx) error {
	opts := middleware.QueryFromCtx(c)

	bags, total, err := services.FindBags(h.DB, callerScope(c), opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	meta := utils.NewListMeta(opts.Page, opts.Limit, total)
	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Bags", bags, meta)
}

// PublicList handles GET /api/public/bags
// @Summary List public bags
// @Description List ownerless catalog bags; no authentication required
// @Tags Bags
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size, capped at 10"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /public/bags [get]
func (h *BagHandler) PublicList(c *fiber.Ctx) error {
	opts := middleware.QueryFromCtx(c)

	bags, total, err := services.FindPublicBags(h.DB, opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	meta := utils.NewListMeta(opts.Page, opts.Limit, total)
	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Public bags", bags, meta)
}

// Get handles GET /api/bags/:bagId
// @Summary Get one bag with packing status
// @Tags Bags
// @Produce json
// @Security BearerAuth
// @Param bagId path string true "Bag ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /bags/{bagId} [get]
func (h *BagHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "bagId")
	if err != nil {
		return handleServiceError(c, err)
	}

	status, err := services.FindBagByID(h.DB, id, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Bag", status)
}

// Create handles POST /api/bags
// @Summary Create a bag
// @Tags Bags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BagInput true "Bag payload"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /bags [post]
func (h *BagHandler) Create(c *fiber.Ctx) error {
	var input services.BagInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}

	identity, _ := middleware.IdentityFromCtx(c)
	ownerID := identity.UserID
	bag, err := services.CreateBag(h.DB, input, &ownerID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Bag created", bag)
}

// CreateMany handles POST /api/bags/many
// @Summary Create many bags
// @Description Bulk-create bags; accepts a single object or an array
// @Tags Bags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []services.BagInput true "Bag payloads"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /bags/many [post]
func (h *BagHandler) CreateMany(c *fiber.Ctx) error {
	var inputs types.FlexList[services.BagInput]
	if err := parseBody(c, &inputs); err != nil {
		return handleServiceError(c, err)
	}

	identity, _ := middleware.IdentityFromCtx(c)
	ownerID := identity.UserID
	count, err := services.CreateBags(h.DB, inputs.Slice(), &ownerID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusCreated, "Bags created", nil,
		utils.CountMeta{Count: count})
}

// Replace handles PUT /api/bags/:bagId
// @Summary Replace a bag
// @Description Full overwrite; missing fields fall back to schema defaults
// @Tags Bags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bagId path string true "Bag ID"
// @Param body body services.BagInput true "Bag payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /bags/{bagId} [put]
func (h *BagHandler) Replace(c *fiber.Ctx) error {
	id, err := paramUUID(c, "bagId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var input services.BagInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}

	bag, err := services.ReplaceBag(h.DB, id, input, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Bag replaced", bag)
}

// Modify handles PATCH /api/bags/:bagId
// @Summary Patch a bag
// @Description Partial update; only provided fields change
// @Tags Bags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bagId path string true "Bag ID"
// @Param body body services.BagPatch true "Bag patch"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /bags/{bagId} [patch]
func (h *BagHandler) Modify(c *fiber.Ctx) error {
	id, err := paramUUID(c, "bagId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var patch services.BagPatch
	if err := parseBody(c, &patch); err != nil {
		return handleServiceError(c, err)
	}

	bag, err := services.ModifyBag(h.DB, id, patch, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Bag updated", bag)
}

// Remove handles DELETE /api/bags/:bagId
// @Summary Delete a bag
// @Tags Bags
// @Produce json
// @Security BearerAuth
// @Param bagId path string true "Bag ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /bags/{bagId} [delete]
func (h *BagHandler) Remove(c *fiber.Ctx) error {
	id, err := paramUUID(c, "bagId")
	if err != nil {
		return handleServiceError(c, err)
	}

	if err := services.RemoveBagByID(h.DB, id, callerScope(c)); err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Bag deleted", nil)
}

// RemoveAll handles DELETE /api/bags
// @Summary Delete bags by filter
// @Description Delete every bag matching the query filter; returns the count
// @Tags Bags
// @Produce json
// @Security BearerAuth
// @Param field query string false "Filter field"
// @Param search query string false "Filter value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /bags [delete]
func (h *BagHandler) RemoveAll(c *fiber.Ctx) error {
	opts := middleware.QueryFromCtx(c)

	count, err := services.RemoveAllBags(h.DB, callerScope(c), opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Bags deleted", nil,
		utils.CountMeta{Count: count})
}

// Suggest handles POST /api/bags/suggest
// @Summary Suggest bag fields
// @Description Ask the auto-fill endpoint to complete missing descriptive fields
// @Tags Bags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AutofillInput true "Known fields and fields to fill"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /bags/suggest [post]
func (h *BagHandler) Suggest(c *fiber.Ctx) error {
	var input services.AutofillInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}
	input.Resource = "BAG"

	result, err := services.Autofill(c.Context(), h.Cfg, input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Suggestions", result)
}
