package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/notehq/note-api/internal/config"
	"github.com/notehq/note-api/internal/services"
	"github.com/notehq/note-api/internal/utils"
	"gorm.io/gorm"
)

const oauthStateCookie = "oauth_state"

// AuthHandler handles signup, signin and the Google OAuth flow
type AuthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Signup handles POST /api/auth/signup
// @Summary Register a local account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsBody true "Email, password and display name"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body credentialsBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "auth.validation.input")
	}

	if !strings.Contains(body.Email, "@") || body.Password == "" || body.Name == "" {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "auth.validation.input")
	}

	user, err := services.Signup(h.DB, body.Email, body.Password, body.Name)
	if err != nil {
		return serviceErrorResponse(c, err, "auth.signup")
	}

	token, err := utils.GenerateJWT([]byte(h.Cfg.JWTSecret), user.UserID, user.Email)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.signup")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// Signin handles POST /api/auth/signin
// @Summary Sign in with local credentials
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsBody true "Email and password"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var body credentialsBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "auth.validation.input")
	}

	if body.Email == "" || body.Password == "" {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "auth.validation.input")
	}

	user, err := services.Signin(h.DB, body.Email, body.Password)
	if err != nil {
		return serviceErrorResponse(c, err, "auth.signin")
	}

	token, err := utils.GenerateJWT([]byte(h.Cfg.JWTSecret), user.UserID, user.Email)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auth.signin")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// GoogleRedirect handles GET /api/auth/google
// @Summary Start the Google OAuth flow
// @Tags Auth
// @Success 307
// @Router /auth/google [get]
func (h *AuthHandler) GoogleRedirect(c *fiber.Ctx) error {
	if h.Cfg.GoogleClientID == "" {
		return utils.ErrorResponse(c, "Google signin is not configured",
			fiber.StatusServiceUnavailable, "auth.google")
	}

	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	conf := services.GoogleOAuthConfig(h.Cfg)
	return c.Redirect(conf.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /api/auth/google/callback
// @Summary Complete the Google OAuth flow
// @Tags Auth
// @Success 307
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	failURL := h.Cfg.WebAppURL + "/auth-callback?status=error"

	state := c.Query("state")
	if state == "" || state != c.Cookies(oauthStateCookie) {
		return c.Redirect(failURL, fiber.StatusTemporaryRedirect)
	}

	code := c.Query("code")
	if code == "" {
		return c.Redirect(failURL, fiber.StatusTemporaryRedirect)
	}

	conf := services.GoogleOAuthConfig(h.Cfg)
	profile, err := services.FetchGoogleProfile(c.Context(), conf, code)
	if err != nil {
		return c.Redirect(failURL, fiber.StatusTemporaryRedirect)
	}

	user, created, err := services.UpsertOAuthUser(h.DB, profile)
	if err != nil {
		return c.Redirect(failURL, fiber.StatusTemporaryRedirect)
	}

	token, err := utils.GenerateJWT([]byte(h.Cfg.JWTSecret), user.UserID, user.Email)
	if err != nil {
		return c.Redirect(failURL, fiber.StatusTemporaryRedirect)
	}

	status := "signin"
	if created {
		status = "signup"
	}

	return c.Redirect(h.Cfg.WebAppURL+"/auth-callback?token="+token+"&status="+status,
		fiber.StatusTemporaryRedirect)
}

// Me handles GET /api/me
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} models.PublicUser
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "auth.me")
	}

	user, err := services.GetUser(h.DB, userID)
	if err != nil {
		return serviceErrorResponse(c, err, "auth.me")
	}

	return c.Status(fiber.StatusOK).JSON(user.Public())
}
