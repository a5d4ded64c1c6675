package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/middleware"
	"github.com/Mofathy183/beggy-sub000/internal/services"
	"github.com/Mofathy183/beggy-sub000/internal/utils"
)

// UserHandler handles admin user management routes.
type UserHandler struct {
	DB *gorm.DB
}

// List handles GET /api/users
// @Summary List users
// @Description List users with pagination, sorting and filtering; admin only
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size, capped at 10"
// @Param sortBy query string false "Sort field"
// @Param order query string false "asc or desc"
// @Param field query string false "Filter field"
// @Param search query string false "Filter value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	opts := middleware.QueryFromCtx(c)

	users, total, err := services.FindUsers(h.DB, opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	meta := utils.NewListMeta(opts.Page, opts.Limit, total)
	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Users", users, meta)
}

// Get handles GET /api/users/:userId
// @Summary Get one user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{userId} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "userId")
	if err != nil {
		return handleServiceError(c, err)
	}

	user, err := services.FindUserByID(h.DB, id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "User", user)
}

// Create handles POST /api/users
// @Summary Create a user
// @Description Provision a user with an explicit role; admin only
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UserInput true "User payload"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input services.UserInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}

	user, err := services.CreateUser(h.DB, input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "User created", user)
}

// Replace handles PUT /api/users/:userId
// @Summary Replace a user's profile
// @Description Full overwrite of mutable profile fields; the password never changes here
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param body body services.UserInput true "User payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{userId} [put]
func (h *UserHandler) Replace(c *fiber.Ctx) error {
	id, err := paramUUID(c, "userId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var input services.UserInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}

	user, err := services.ReplaceUser(h.DB, id, input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "User replaced", user)
}

// Modify handles PATCH /api/users/:userId
// @Summary Patch a user's profile
// @Description Partial update; only provided fields change
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param body body services.UserPatch true "User patch"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{userId} [patch]
func (h *UserHandler) Modify(c *fiber.Ctx) error {
	id, err := paramUUID(c, "userId")
	if err != nil {
		return handleServiceError(c, err)
	}

	var patch services.UserPatch
	if err := parseBody(c, &patch); err != nil {
		return handleServiceError(c, err)
	}

	user, err := services.ModifyUser(h.DB, id, patch)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "User updated", user)
}

// Remove handles DELETE /api/users/:userId
// @Summary Delete a user
// @Description Delete a user and everything they own
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{userId} [delete]
func (h *UserHandler) Remove(c *fiber.Ctx) error {
	id, err := paramUUID(c, "userId")
	if err != nil {
		return handleServiceError(c, err)
	}

	if err := services.RemoveUserByID(h.DB, id); err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "User deleted", nil)
}

// RemoveAll handles DELETE /api/users
// @Summary Delete users by filter
// @Description Delete every user matching the query filter; returns the count
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param field query string false "Filter field"
// @Param search query string false "Filter value"
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /users [delete]
func (h *UserHandler) RemoveAll(c *fiber.Ctx) error {
	opts := middleware.QueryFromCtx(c)

	count, err := services.RemoveAllUsers(h.DB, opts)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponseWithMeta(c, fiber.StatusOK, "Users deleted", nil,
		utils.CountMeta{Count: count})
}
