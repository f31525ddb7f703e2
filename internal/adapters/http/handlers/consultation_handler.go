package handlers

import (
	"errors"
	"strconv"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ConsultationHandler handles the consultation flow
type ConsultationHandler struct {
	consultationService *services.ConsultationService
	doctorService       *services.DoctorService
}

// NewConsultationHandler creates a new consultation handler
func NewConsultationHandler(
	consultationService *services.ConsultationService,
	doctorService *services.DoctorService,
) *ConsultationHandler {
	return &ConsultationHandler{
		consultationService: consultationService,
		doctorService:       doctorService,
	}
}

// Specialties handles the consultation start page data
// @Summary List consultation specialties
// @Description List the specialties a consultation can be requested for
// @Tags Consultations
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Response
// @Router /consultation/start [get]
func (h *ConsultationHandler) Specialties(c *fiber.Ctx) error {
	specialties, err := h.doctorService.ListSpecialties(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list specialties")
	}

	return response.Success(c, "Specialties retrieved successfully", fiber.Map{
		"specialties": specialties,
	})
}

// ConsultationRequestBody represents the consultation request form
type ConsultationRequestBody struct {
	DoctorID uint   `json:"doctor_id"`
	Reason   string `json:"reason"`
}

// Request handles a patient requesting a consultation
// @Summary Request consultation
// @Description File a consultation request with a chosen doctor
// @Tags Consultations
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param body body ConsultationRequestBody true "Request data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /consultation/request [post]
func (h *ConsultationHandler) Request(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "Session required")
	}

	var req ConsultationRequestBody
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Reason == "" {
		return response.BadRequest(c, "Reason is required")
	}

	err := h.consultationService.Request(c.Context(), identity.UserID, req.DoctorID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPatientNotFound):
			return response.NotFound(c, "Patient profile not found")
		case errors.Is(err, services.ErrDoctorNotFound):
			return response.NotFound(c, "Doctor not found")
		default:
			return response.InternalServerError(c, "Failed to request consultation")
		}
	}

	return response.Success(c, "Consultation request sent", fiber.Map{
		"redirect": "/patient/dashboard",
	})
}

// ScheduleRequest represents the schedule form a doctor submits
type ScheduleRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// Schedule handles a doctor scheduling a consultation for a patient
// @Summary Schedule consultation
// @Description Turn a consultation request into an appointment
// @Tags Consultations
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Patient ID"
// @Param body body ScheduleRequest true "Schedule data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /consultation/{id}/schedule [post]
func (h *ConsultationHandler) Schedule(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "Session required")
	}

	patientID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	date, err := parseAppointmentDate(req.Date)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment date")
	}

	appointment, err := h.consultationService.Schedule(c.Context(), uint(patientID), identity.UserID, date, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReasonRequired), errors.Is(err, services.ErrDateTooSoon):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrPatientNotFound), errors.Is(err, services.ErrDoctorNotFound):
			return response.NotFound(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to schedule consultation")
		}
	}

	return response.Created(c, "Consultation scheduled", fiber.Map{
		"appointment": appointment,
	})
}
