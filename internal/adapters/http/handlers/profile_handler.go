package handlers

import (
	"errors"
	"time"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles the self-service account page
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get handles getting the caller's profile
// @Summary Get own profile
// @Description Get the caller's account with its patient or doctor record
// @Tags Profile
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "Session required")
	}

	profile, err := h.profileService.Get(c.Context(), identity)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Account not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// ProfileRequest represents the self-service profile form body
type ProfileRequest struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	DateOfBirth string  `json:"date_of_birth"`
	Gender      *string `json:"gender"`
	BloodType   *string `json:"blood_type"`
	Height      *int    `json:"height"`
	Specialty   string  `json:"specialty"`
}

// Update handles saving the caller's profile
// @Summary Update own profile
// @Description Save the caller's account and role-specific fields
// @Tags Profile
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param body body ProfileRequest true "Profile data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /profile [post]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return response.Unauthorized(c, "Session required")
	}

	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		t, err := time.ParseInLocation("2006-01-02", req.DateOfBirth, time.Local)
		if err != nil {
			return response.BadRequest(c, "Invalid date of birth")
		}
		dateOfBirth = &t
	}

	profile, err := h.profileService.Update(c.Context(), identity, &services.UpdateProfileInput{
		Username:    req.Username,
		Email:       req.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		DateOfBirth: dateOfBirth,
		Gender:      req.Gender,
		BloodType:   req.BloodType,
		Height:      req.Height,
		Specialty:   req.Specialty,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, err.Error())
		case errors.Is(err, services.ErrInvalidPhone):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrProfileMissing), errors.Is(err, services.ErrDoctorNotFound), errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Account not found")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated", profile)
}
