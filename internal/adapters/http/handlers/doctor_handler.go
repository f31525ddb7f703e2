package handlers

import (
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DoctorHandler handles doctor lookups used by the consultation form
type DoctorHandler struct {
	doctorService *services.DoctorService
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(doctorService *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// BySpecialty handles listing doctors of one specialty as form options
// @Summary List doctors by specialty
// @Description List doctors of one specialty as id and display name pairs
// @Tags Doctors
// @Produce json
// @Security SessionAuth
// @Param specialty query string true "Specialty"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/doctors [get]
func (h *DoctorHandler) BySpecialty(c *fiber.Ctx) error {
	specialty := c.Query("specialty")
	if specialty == "" {
		return response.BadRequest(c, "Specialty is required")
	}

	options, err := h.doctorService.ListBySpecialty(c.Context(), specialty)
	if err != nil {
		return response.InternalServerError(c, "Failed to list doctors")
	}

	return response.Success(c, "Doctors retrieved successfully", fiber.Map{
		"doctors": options,
	})
}
