package middleware

import (
	"errors"
	"strings"

	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"
	"clinicdesk/internal/pkg/sessiontoken"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "session_token"

// Session resolves the caller identity from the session cookie or the
// Authorization header. An anonymous or invalid session is sent back to the
// login page.
func Session(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string

		// 1. Try to get token from cookie first
		token = c.Cookies(SessionCookieName)

		// 2. If not in cookie, try Authorization header
		if token == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if token == "" {
			return denySession(c)
		}

		// 4. Validate token. Expired and malformed sessions both land on the
		// login page.
		claims, err := sessiontoken.Validate(token, cfg.Session.Secret)
		if err != nil {
			return denySession(c)
		}

		// 5. Set caller identity in context
		c.Locals(identityKey, domain.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     domain.Role(claims.Role),
		})

		return c.Next()
	}
}

// Require checks the caller's role against the permission table for one
// operation. A denied caller is redirected to the login page, never shown a
// forbidden error.
func Require(op domain.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := Identity(c)
		if !ok {
			return denySession(c)
		}

		if !domain.Allowed(identity.Role, op) {
			return denySession(c)
		}

		return c.Next()
	}
}

// RequireCompleteProfile blocks consultation entry points until the caller's
// patient profile carries date of birth, gender, blood type and height.
func RequireCompleteProfile(patientService *services.PatientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := Identity(c)
		if !ok {
			return denySession(c)
		}

		err := patientService.EnsureConsultable(c.Context(), identity.UserID)
		if err != nil {
			if errors.Is(err, services.ErrProfileMissing) || errors.Is(err, services.ErrProfileIncomplete) {
				if wantsJSON(c) {
					return response.BadRequest(c, err.Error())
				}
				return c.Redirect("/patients/complete-profile", fiber.StatusFound)
			}
			return response.InternalServerError(c, "Internal Server Error")
		}

		return c.Next()
	}
}

// Identity returns the resolved caller identity, if any
func Identity(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}

// denySession sends the caller to the login page. Every denial takes the
// redirect, whatever the route or the Accept header; a forbidden or
// unauthorized status never leaks.
func denySession(c *fiber.Ctx) error {
	return c.Redirect("/login", fiber.StatusFound)
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get("Accept"), "application/json")
}
