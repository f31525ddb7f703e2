package handlers

import (
	"errors"
	"strconv"

	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DoctorAdminHandler handles the admin doctor registry
type DoctorAdminHandler struct {
	doctorService *services.DoctorService
}

// NewDoctorAdminHandler creates a new doctor admin handler
func NewDoctorAdminHandler(doctorService *services.DoctorService) *DoctorAdminHandler {
	return &DoctorAdminHandler{doctorService: doctorService}
}

// List handles listing all doctors
// @Summary List doctors
// @Description List every doctor with their user accounts
// @Tags Admin
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Response
// @Router /admin/doctors [get]
func (h *DoctorAdminHandler) List(c *fiber.Ctx) error {
	doctors, err := h.doctorService.ListDoctors(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list doctors")
	}

	return response.Success(c, "Doctors retrieved successfully", fiber.Map{
		"doctors": doctors,
	})
}

// Get handles getting one doctor
// @Summary Get doctor
// @Description Get a doctor with its user account
// @Tags Admin
// @Produce json
// @Security SessionAuth
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id} [get]
func (h *DoctorAdminHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	doctor, err := h.doctorService.GetDoctor(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrDoctorNotFound) {
			return response.NotFound(c, "Doctor not found")
		}
		return response.InternalServerError(c, "Failed to get doctor")
	}

	return response.Success(c, "Doctor retrieved successfully", fiber.Map{
		"doctor": doctor,
	})
}

// DoctorAdminRequest represents the admin doctor form body
type DoctorAdminRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	Specialty     string `json:"specialty"`
	LicenseNumber string `json:"license_number"`
	Phone         string `json:"phone"`
}

// Add handles the admin adding a doctor
// @Summary Add doctor
// @Description Create a doctor account with its user
// @Tags Admin
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param body body DoctorAdminRequest true "Doctor data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors/add [post]
func (h *DoctorAdminHandler) Add(c *fiber.Ctx) error {
	var req DoctorAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Username == "" || req.Email == "" || req.Name == "" || req.Specialty == "" || req.LicenseNumber == "" {
		return response.BadRequest(c, "Username, email, name, specialty and license number are required")
	}

	doctor, err := h.doctorService.AddDoctor(c.Context(), &services.AddDoctorInput{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		Name:          req.Name,
		Specialty:     req.Specialty,
		LicenseNumber: req.LicenseNumber,
		Phone:         req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordTooShort), errors.Is(err, services.ErrInvalidPhone):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrLicenseTaken):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to add doctor")
		}
	}

	return response.Created(c, "Doctor added", fiber.Map{
		"doctor": doctor,
	})
}

// Edit handles the admin editing a doctor
// @Summary Edit doctor
// @Description Update a doctor and its user account
// @Tags Admin
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Doctor ID"
// @Param body body DoctorAdminRequest true "Doctor data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id}/edit [post]
func (h *DoctorAdminHandler) Edit(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	var req DoctorAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	doctor, err := h.doctorService.UpdateDoctor(c.Context(), uint(id), &services.UpdateDoctorInput{
		Username:      req.Username,
		Email:         req.Email,
		Name:          req.Name,
		Specialty:     req.Specialty,
		LicenseNumber: req.LicenseNumber,
		Phone:         req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDoctorNotFound):
			return response.NotFound(c, "Doctor not found")
		case errors.Is(err, services.ErrInvalidPhone):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrLicenseTaken):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update doctor")
		}
	}

	return response.Success(c, "Doctor updated", fiber.Map{
		"doctor": doctor,
	})
}

// Delete handles the admin deleting a doctor and its user account
// @Summary Delete doctor
// @Description Delete a doctor and the user account that owns it
// @Tags Admin
// @Produce json
// @Security SessionAuth
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id}/delete [get]
func (h *DoctorAdminHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid doctor ID")
	}

	if err := h.doctorService.DeleteDoctor(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrDoctorNotFound) {
			return response.NotFound(c, "Doctor not found")
		}
		return response.InternalServerError(c, "Failed to delete doctor")
	}

	return response.Success(c, "Doctor deleted", nil)
}
