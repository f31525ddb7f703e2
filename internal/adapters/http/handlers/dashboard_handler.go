package handlers

import (
	"errors"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the per-role landing pages
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Patient handles the patient dashboard
// @Summary Patient dashboard
// @Description Get the caller's patient profile, appointments and unread count
// @Tags Dashboard
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Response
// @Router /patient/dashboard [get]
func (h *DashboardHandler) Patient(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "Session required")
	}

	dashboard, err := h.dashboardService.ForPatient(c.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, services.ErrProfileMissing) {
			return response.NotFound(c, "Patient profile not found")
		}
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", dashboard)
}

// Doctor handles the doctor dashboard
// @Summary Doctor dashboard
// @Description Get the caller's doctor record, appointments and unread count
// @Tags Dashboard
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Response
// @Router /doctor/dashboard [get]
func (h *DashboardHandler) Doctor(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "Session required")
	}

	dashboard, err := h.dashboardService.ForDoctor(c.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, services.ErrDoctorNotFound) {
			return response.NotFound(c, "Doctor record not found")
		}
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", dashboard)
}

// Admin handles the admin dashboard
// @Summary Admin dashboard
// @Description Get clinic-wide counts
// @Tags Dashboard
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Response
// @Router /admin [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	dashboard, err := h.dashboardService.ForAdmin(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", dashboard)
}
