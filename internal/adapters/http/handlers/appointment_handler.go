package handlers

import (
	"errors"
	"strconv"
	"time"

	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// appointment date input layouts. Browser datetime-local fields send the
// first form; API clients may send RFC 3339.
var dateLayouts = []string{
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02 15:04",
}

func parseAppointmentDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// AppointmentHandler handles the appointment registry endpoints
type AppointmentHandler struct {
	appointmentService *services.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentService *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// AppointmentRequest represents the appointment form body
type AppointmentRequest struct {
	PatientID uint   `json:"patient_id"`
	DoctorID  uint   `json:"doctor_id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
}

// List handles listing all appointments
// @Summary List appointments
// @Description List every appointment, soonest first
// @Tags Appointments
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	appointments, err := h.appointmentService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list appointments")
	}

	return response.Success(c, "Appointments retrieved successfully", fiber.Map{
		"appointments": appointments,
	})
}

// Detail handles getting one appointment with its parties
// @Summary Get appointment detail
// @Description Get one appointment with patient, doctor and patient age
// @Tags Appointments
// @Produce json
// @Security SessionAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Detail(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	detail, err := h.appointmentService.Detail(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return response.NotFound(c, "Appointment not found")
		}
		return response.InternalServerError(c, "Failed to get appointment")
	}

	return response.Success(c, "Appointment retrieved successfully", detail)
}

// Create handles creating an appointment (doctor only)
// @Summary Create appointment
// @Description Create an appointment and notify both parties
// @Tags Appointments
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param body body AppointmentRequest true "Appointment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/add [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var req AppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	date, err := parseAppointmentDate(req.Date)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment date")
	}

	appointment, err := h.appointmentService.Create(c.Context(), &services.AppointmentInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReasonRequired), errors.Is(err, services.ErrDateTooSoon):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrPatientNotFound), errors.Is(err, services.ErrDoctorNotFound):
			return response.NotFound(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create appointment")
		}
	}

	return response.Created(c, "Appointment created", fiber.Map{
		"appointment": appointment,
	})
}

// Edit handles updating an appointment (doctor only). No notifications are
// sent for edits.
// @Summary Edit appointment
// @Description Update an appointment's date and reason
// @Tags Appointments
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Appointment ID"
// @Param body body AppointmentRequest true "Appointment data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id}/edit [post]
func (h *AppointmentHandler) Edit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	var req AppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	date, err := parseAppointmentDate(req.Date)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment date")
	}

	appointment, err := h.appointmentService.Edit(c.Context(), uint(id), &services.AppointmentInput{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAppointmentNotFound):
			return response.NotFound(c, "Appointment not found")
		case errors.Is(err, services.ErrReasonRequired), errors.Is(err, services.ErrDateTooSoon):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update appointment")
		}
	}

	return response.Success(c, "Appointment updated", fiber.Map{
		"appointment": appointment,
	})
}

// Delete handles deleting an appointment (doctor only). Messages that
// reference the appointment are left in place.
// @Summary Delete appointment
// @Description Delete an appointment
// @Tags Appointments
// @Produce json
// @Security SessionAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id}/delete [get]
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	if err := h.appointmentService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			return response.NotFound(c, "Appointment not found")
		}
		return response.InternalServerError(c, "Failed to delete appointment")
	}

	return response.Success(c, "Appointment deleted", nil)
}
