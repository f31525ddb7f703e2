package handlers

import (
	"errors"
	"strconv"
	"time"

	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/pagination"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PatientAdminHandler handles the admin patient registry
type PatientAdminHandler struct {
	patientService *services.PatientService
}

// NewPatientAdminHandler creates a new patient admin handler
func NewPatientAdminHandler(patientService *services.PatientService) *PatientAdminHandler {
	return &PatientAdminHandler{patientService: patientService}
}

// List handles the paginated patient registry
// @Summary List patients
// @Description List patients ordered by name, searchable, five per page
// @Tags Admin
// @Produce json
// @Security SessionAuth
// @Param search query string false "Name search"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} response.Response
// @Router /admin/patients [get]
func (h *PatientAdminHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	search := c.Query("search")

	result, err := h.patientService.ListPatients(c.Context(), search, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list patients")
	}

	return response.Paginated(c, "Patients retrieved successfully", result.Patients, params, result.Total)
}

// Get handles getting one patient
// @Summary Get patient
// @Description Get a patient with its user account
// @Tags Admin
// @Produce json
// @Security SessionAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/patients/{id} [get]
func (h *PatientAdminHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	patient, err := h.patientService.GetPatient(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return response.NotFound(c, "Patient not found")
		}
		return response.InternalServerError(c, "Failed to get patient")
	}

	return response.Success(c, "Patient retrieved successfully", fiber.Map{
		"patient": patient,
	})
}

// PatientAdminRequest represents the admin patient form body
type PatientAdminRequest struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	DateOfBirth string  `json:"date_of_birth"`
	Gender      *string `json:"gender"`
}

func (r *PatientAdminRequest) dateOfBirth() (*time.Time, error) {
	if r.DateOfBirth == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", r.DateOfBirth, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Add handles the admin adding a patient
// @Summary Add patient
// @Description Create a patient account with its user
// @Tags Admin
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param body body PatientAdminRequest true "Patient data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/patients/add [post]
func (h *PatientAdminHandler) Add(c *fiber.Ctx) error {
	var req PatientAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Email == "" || req.Name == "" {
		return response.BadRequest(c, "Username, email and name are required")
	}

	dateOfBirth, err := req.dateOfBirth()
	if err != nil {
		return response.BadRequest(c, "Invalid date of birth")
	}

	patient, err := h.patientService.AddPatient(c.Context(), &services.AddPatientInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Phone:       req.Phone,
		DateOfBirth: dateOfBirth,
		Gender:      req.Gender,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordTooShort), errors.Is(err, services.ErrInvalidPhone):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to add patient")
		}
	}

	return response.Created(c, "Patient added", fiber.Map{
		"patient": patient,
	})
}

// Edit handles the admin editing a patient
// @Summary Edit patient
// @Description Update a patient and its user account
// @Tags Admin
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Patient ID"
// @Param body body PatientAdminRequest true "Patient data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/patients/{id}/edit [post]
func (h *PatientAdminHandler) Edit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	var req PatientAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dateOfBirth, err := req.dateOfBirth()
	if err != nil {
		return response.BadRequest(c, "Invalid date of birth")
	}

	patient, err := h.patientService.UpdatePatient(c.Context(), uint(id), &services.UpdatePatientInput{
		Username:    req.Username,
		Email:       req.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		DateOfBirth: dateOfBirth,
		Gender:      req.Gender,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPatientNotFound):
			return response.NotFound(c, "Patient not found")
		case errors.Is(err, services.ErrInvalidPhone):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update patient")
		}
	}

	return response.Success(c, "Patient updated", fiber.Map{
		"patient": patient,
	})
}

// Delete handles the admin deleting a patient and its user account
// @Summary Delete patient
// @Description Delete a patient and the user account that owns it
// @Tags Admin
// @Produce json
// @Security SessionAuth
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/patients/{id}/delete [get]
func (h *PatientAdminHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patient ID")
	}

	if err := h.patientService.DeletePatient(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return response.NotFound(c, "Patient not found")
		}
		return response.InternalServerError(c, "Failed to delete patient")
	}

	return response.Success(c, "Patient deleted", nil)
}
