package handlers

import (
	"errors"
	"time"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PatientHandler handles the patient self-service endpoints
type PatientHandler struct {
	patientService *services.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// GetOwnProfile handles the complete-profile page data
// @Summary Get own patient profile
// @Description Get the caller's patient profile and whether it is complete
// @Tags Patients
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/complete-profile [get]
func (h *PatientHandler) GetOwnProfile(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "Session required")
	}

	patient, err := h.patientService.GetByUserID(c.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, services.ErrProfileMissing) {
			return response.NotFound(c, "Patient profile not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"patient":  patient,
		"complete": patient.IsComplete(),
	})
}

// CompleteProfileRequest represents the complete-profile form body
type CompleteProfileRequest struct {
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	BloodType   string `json:"blood_type"`
	Height      int    `json:"height"`
}

// CompleteProfile handles filling in the fields required before a
// consultation request
// @Summary Complete patient profile
// @Description Save date of birth, gender, blood type and height
// @Tags Patients
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param body body CompleteProfileRequest true "Profile data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /patients/complete-profile [post]
func (h *PatientHandler) CompleteProfile(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "Session required")
	}

	var req CompleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Gender == "" || req.BloodType == "" || req.Height <= 0 {
		return response.BadRequest(c, "Gender, blood type and height are required")
	}

	dateOfBirth, err := time.ParseInLocation("2006-01-02", req.DateOfBirth, time.Local)
	if err != nil {
		return response.BadRequest(c, "Invalid date of birth")
	}

	err = h.patientService.CompleteProfile(c.Context(), identity.UserID, &services.CompleteProfileInput{
		DateOfBirth: dateOfBirth,
		Gender:      req.Gender,
		BloodType:   req.BloodType,
		Height:      req.Height,
	})
	if err != nil {
		if errors.Is(err, services.ErrProfileMissing) {
			return response.NotFound(c, "Patient profile not found")
		}
		return response.InternalServerError(c, "Failed to save profile")
	}

	return response.Success(c, "Profile completed", fiber.Map{
		"redirect": "/consultation/start",
	})
}
