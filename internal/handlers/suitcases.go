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

// SuitcaseHandler handles suitcase CRUD and field suggestion routes.
type SuitcaseHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// List handles GET /api/suitcases
// @Summary List suitcases
// @Description List the caller's suitcases with pagination, sorting and filtering
// @Tags Suitcases
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size, capped at 10"
// @Param sortBy query string false "Sort field"
// @Param order query string false "asc or desc"
// @Param field query string false "Filter field"
// @Param search query string false "Filter value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /suitcases [get]
func (h *SuitcaseHandler) List(c *fiber.Ctx) error {
	opts := middleware.QueryFromCtx(c)

	suitcases, total, err := services.FindSuitcases(h.DB, callerScope(c), opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	meta := utils.NewListMeta(opts.Page, opts.Limit, total)
	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Suitcases", suitcases, meta)
}

// PublicList handles GET /api/public/suitcases
// @Summary List public suitcases
// @Description List ownerless catalog suitcases; no authentication required
// @Tags Suitcases
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size, capped at 10"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /public/suitcases [get]
func (h *SuitcaseHandler) PublicList(c *fiber.Ctx) error {
	opts := middleware.QueryFromCtx(c)

	suitcases, total, err := services.FindPublicSuitcases(h.DB, opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	meta := utils.NewListMeta(opts.Page, opts.Limit, total)
	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Public suitcases", suitcases, meta)
}

// Get handles GET /api/suitcases/:suitcaseId
// @Summary Get one suitcase with packing status
// @Tags Suitcases
// @Produce json
// @Security BearerAuth
// @Param suitcaseId path string true "Suitcase ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /suitcases/{suitcaseId} [get]
func (h *SuitcaseHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "suitcaseId")
	if err != nil {
		return handleServiceError(c, err)
	}

	status, err := services.FindSuitcaseByID(h.DB, id, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Suitcase", status)
}

// Create handles POST /api/suitcases
// @Summary Create a suitcase
// @Tags Suitcases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SuitcaseInput true "Suitcase payload"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /suitcases [post]
func (h *SuitcaseHandler) Create(c *fiber.Ctx) error {
	var input services.SuitcaseInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}

	identity, _ := middleware.IdentityFromCtx(c)
	ownerID := identity.UserID
	suitcase, err := services.CreateSuitcase(h.DB, input, &ownerID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Suitcase created", suitcase)
}

// CreateMany handles POST /api/suitcases/many
// @Summary Create many suitcases
// @Description Bulk-create suitcases; accepts a single object or an array
// @Tags Suitcases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []services.SuitcaseInput true "Suitcase payloads"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /suitcases/many [post]
func (h *SuitcaseHandler) CreateMany(c *fiber.Ctx) error {
	var inputs types.FlexList[services.SuitcaseInput]
	if err := parseBody(c, &inputs); err != nil {
		return handleServiceError(c, err)
	}

	identity, _ := middleware.IdentityFromCtx(c)
	ownerID := identity.UserID
	count, err := services.CreateSuitcases(h.DB, inputs.Slice(), &ownerID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusCreated, "Suitcases created", nil,
		utils.CountMeta{Count: count})
}

// Replace handles PUT /api/suitcases/:suitcaseId
// @Summary Replace a suitcase
// @Description Full overwrite; missing fields fall back to schema defaults
// @Tags Suitcases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param suitcaseId path string true "Suitcase ID"
// @Param body body services.SuitcaseInput true "Suitcase payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /suitcases/{suitcaseId} [put]
func (h *SuitcaseHandler) Replace(c *fiber.Ctx) error {
	id, err := paramUUID(c, "suitcaseId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var input services.SuitcaseInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}

	suitcase, err := services.ReplaceSuitcase(h.DB, id, input, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Suitcase replaced", suitcase)
}

// Modify handles PATCH /api/suitcases/:suitcaseId
// @Summary Patch a suitcase
// @Description Partial update; only provided fields change
// @Tags Suitcases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param suitcaseId path string true "Suitcase ID"
// @Param body body services.SuitcasePatch true "Suitcase patch"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /suitcases/{suitcaseId} [patch]
func (h *SuitcaseHandler) Modify(c *fiber.Ctx) error {
	id, err := paramUUID(c, "suitcaseId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var patch services.SuitcasePatch
	if err := parseBody(c, &patch); err != nil {
		return handleServiceError(c, err)
	}

	suitcase, err := services.ModifySuitcase(h.DB, id, patch, callerScope(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Suitcase updated", suitcase)
}

// Remove handles DELETE /api/suitcases/:suitcaseId
// @Summary Delete a suitcase
// @Tags Suitcases
// @Produce json
// @Security BearerAuth
// @Param suitcaseId path string true "Suitcase ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /suitcases/{suitcaseId} [delete]
func (h *SuitcaseHandler) Remove(c *fiber.Ctx) error {
	id, err := paramUUID(c, "suitcaseId")
	if err != nil {
		return handleServiceError(c, err)
	}

	if err := services.RemoveSuitcaseByID(h.DB, id, callerScope(c)); err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Suitcase deleted", nil)
}

// RemoveAll handles DELETE /api/suitcases
// @Summary Delete suitcases by filter
// @Description Delete every suitcase matching the query filter; returns the count
// @Tags Suitcases
// @Produce json
// @Security BearerAuth
// @Param field query string false "Filter field"
// @Param search query string false "Filter value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /suitcases [delete]
func (h *SuitcaseHandler) RemoveAll(c *fiber.Ctx) error {
	opts := middleware.QueryFromCtx(c)

	count, err := services.RemoveAllSuitcases(h.DB, callerScope(c), opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Suitcases deleted", nil,
		utils.CountMeta{Count: count})
}

// Suggest handles POST /api/suitcases/suggest
// @Summary Suggest suitcase fields
// @Description Ask the auto-fill endpoint to complete missing descriptive fields
// @Tags Suitcases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AutofillInput true "Known fields and fields to fill"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /suitcases/suggest [post]
func (h *SuitcaseHandler) Suggest(c *fiber.Ctx) error {
	var input services.AutofillInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}
	input.Resource = "SUITCASE"

	result, err := services.Autofill(c.Context(), h.Cfg, input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Suggestions", result)
}
