package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/config"
	"github.com/Mofathy183/beggy-sub000/internal/middleware"
	"github.com/Mofathy183/beggy-sub000/internal/services"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/utils"
)

// AuthHandler handles signup, signin, signout and the profile route.
type AuthHandler struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Session *session.Store
}

// Signup handles POST /api/auth/signup
// @Summary Create an account
// @Description Register a new user with the default USER role
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.SignupInput true "Signup payload"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input services.SignupInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}

	user, err := services.Signup(h.DB, input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Account created", user)
}

// Signin handles POST /api/auth/signin
// @Summary Authenticate
// @Description Verify credentials, issue a JWT and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.SigninInput true "Signin payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var input services.SigninInput
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}

	user, err := services.Signin(h.DB, input)
	if err != nil {
		return handleServiceError(c, err)
	}

	token, err := services.IssueToken(h.Cfg, user)
	if err != nil {
		return handleServiceError(c, err)
	}

	if sess, err := h.Session.Get(c); err == nil {
		sess.Set("userId", user.ID.String())
		sess.Set("userRole", string(user.Role))
		if err := sess.Save(); err != nil {
			return handleServiceError(c, err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(h.Cfg.JWTExpiry),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return utils.SuccessResponse(c, fiber.StatusOK, "Signed in", fiber.Map{
		"user":        user,
		"accessToken": token,
	})
}

// Signout handles POST /api/auth/signout
// @Summary End the session
// @Description Destroy the session and clear the access token cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /auth/signout [post]
func (h *AuthHandler) Signout(c *fiber.Ctx) error {
	if sess, err := h.Session.Get(c); err == nil {
		_ = sess.Destroy()
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return utils.SuccessResponse(c, fiber.StatusOK, "Signed out", nil)
}

// Me handles GET /api/auth/me
// @Summary Current profile
// @Description Return the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return handleServiceError(c, types.ErrUnauthorized)
	}

	user, err := services.FindUserByID(h.DB, identity.UserID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Profile", user)
}

// ChangePassword handles PATCH /api/auth/password
// @Summary Change password
// @Description Verify the current password and store a new one
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.PasswordChange true "Password change payload"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/password [patch]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return handleServiceError(c, types.ErrUnauthorized)
	}

	var input services.PasswordChange
	if err := parseBody(c, &input); err != nil {
		return handleServiceError(c, err)
	}

	if err := services.ChangePassword(h.DB, identity.UserID, input); err != nil {
		return handleServiceError(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Password updated", nil)
}
