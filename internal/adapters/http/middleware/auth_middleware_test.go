package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/sessiontoken"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			Secret:      "test_session_secret",
			ExpiryHours: 1,
		},
	}
}

func guardedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	session := middleware.Session(cfg)
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }

	app.Get("/appointments", session, middleware.Require(domain.OpAppointmentList), ok)
	app.Post("/appointments/add", session, middleware.Require(domain.OpAppointmentCreate), ok)
	app.Get("/api/doctors", session, middleware.Require(domain.OpDoctorLookup), ok)
	return app
}

func sessionFor(t *testing.T, cfg *config.Config, role string) *http.Cookie {
	t.Helper()
	token, err := sessiontoken.Generate(7, "caller", role, cfg.Session.Secret, cfg.Session.ExpiryHours)
	assert.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func TestAnonymousCallerIsRedirectedToLogin(t *testing.T) {
	cfg := testConfig()
	app := guardedApp(cfg)

	for _, path := range []string{"/appointments", "/api/doctors"} {
		req := httptest.NewRequest("GET", path, nil)
		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
}

func TestAnonymousAPIClientIsRedirectedToLogin(t *testing.T) {
	cfg := testConfig()
	app := guardedApp(cfg)

	req := httptest.NewRequest("GET", "/api/doctors", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestWrongRoleIsRedirectedToLogin(t *testing.T) {
	cfg := testConfig()
	app := guardedApp(cfg)

	// Appointment creation belongs to doctors
	req := httptest.NewRequest("POST", "/appointments/add", nil)
	req.AddCookie(sessionFor(t, cfg, "patient"))
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// Doctor lookup belongs to patients
	req = httptest.NewRequest("GET", "/api/doctors", nil)
	req.AddCookie(sessionFor(t, cfg, "doctor"))
	resp, err = app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestAllowedRolePassesThrough(t *testing.T) {
	cfg := testConfig()
	app := guardedApp(cfg)

	req := httptest.NewRequest("GET", "/appointments", nil)
	req.AddCookie(sessionFor(t, cfg, "patient"))
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestExpiredSessionIsRedirectedToLogin(t *testing.T) {
	cfg := testConfig()
	app := guardedApp(cfg)

	token, err := sessiontoken.Generate(7, "caller", "patient", cfg.Session.Secret, -1)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/appointments", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	resp, err := app.Test(req)

	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
