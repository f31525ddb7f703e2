package handlers

import (
	"errors"
	"time"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// Register handles patient self-registration
// @Summary Register a patient account
// @Description Create a user with role patient and its patient profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return response.BadRequest(c, "Username, email and password are required")
	}

	user, err := h.authService.Register(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordTooShort):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to register")
		}
	}

	return response.Created(c, "Account created, please sign in", fiber.Map{
		"user":     user,
		"redirect": "/login",
	})
}

// Login handles login and sets the session cookie
// @Summary Sign in
// @Description Authenticate by email and password, set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid email or password")
		}
		return response.InternalServerError(c, "Failed to sign in")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    result.SessionToken,
		Expires:  time.Now().Add(time.Duration(h.cfg.Session.ExpiryHours) * time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.Session.CookieSecure,
		SameSite: "Lax",
		Path:     "/",
	})

	return response.Success(c, "Signed in", result)
}

// Logout clears the session cookie
// @Summary Sign out
// @Description Clear the session cookie and send the caller to the login page
// @Tags Auth
// @Produce json
// @Success 302
// @Router /logout [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.Session.CookieSecure,
		SameSite: "Lax",
		Path:     "/",
	})

	return c.Redirect("/login", fiber.StatusFound)
}
