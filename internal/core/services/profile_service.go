package services

import (
	"context"
	"errors"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/core/domain"

	"gorm.io/gorm"
)

// ProfileService lets a signed-in user view and edit their own account
type ProfileService struct {
	userRepo    repositories.UserRepository
	patientRepo repositories.PatientRepository
	doctorRepo  repositories.DoctorRepository
}

// NewProfileService creates a new profile service
func NewProfileService(
	userRepo repositories.UserRepository,
	patientRepo repositories.PatientRepository,
	doctorRepo repositories.DoctorRepository,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
	}
}

// Profile bundles the account with its role-specific record. Exactly one of
// Patient and Doctor is set for non-admin accounts.
type Profile struct {
	User    *models.User    `json:"user"`
	Patient *models.Patient `json:"patient,omitempty"`
	Doctor  *models.Doctor  `json:"doctor,omitempty"`
}

// Get returns the caller's profile
func (s *ProfileService) Get(ctx context.Context, identity domain.Identity) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	user.Password = ""

	profile := &Profile{User: user}

	switch identity.Role {
	case domain.RolePatient:
		patient, err := s.patientRepo.GetByUserID(ctx, identity.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		profile.Patient = patient
	case domain.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUserID(ctx, identity.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		profile.Doctor = doctor
	}

	return profile, nil
}

// UpdateProfileInput represents the self-service profile form. Role-specific
// fields not applicable to the caller are ignored; nil pointer fields are
// left unchanged.
type UpdateProfileInput struct {
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	BloodType   *string    `json:"blood_type"`
	Height      *int       `json:"height"`
	Specialty   string     `json:"specialty"`
}

// Update saves the caller's profile
func (s *ProfileService) Update(ctx context.Context, identity domain.Identity, input *UpdateProfileInput) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := validatePhone(input.Phone); err != nil {
		return nil, err
	}

	if input.Email != "" && input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailTaken
		}
		user.Email = input.Email
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	switch identity.Role {
	case domain.RolePatient:
		patient, err := s.patientRepo.GetByUserID(ctx, identity.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProfileMissing
			}
			return nil, err
		}
		if input.Name != "" {
			patient.Name = input.Name
		}
		patient.Phone = input.Phone
		// Omitted medical fields stay as they are. A form that only touches
		// the contact details must not reopen a completed profile.
		if input.DateOfBirth != nil {
			patient.DateOfBirth = input.DateOfBirth
		}
		if input.Gender != nil {
			patient.Gender = input.Gender
		}
		if input.BloodType != nil {
			patient.BloodType = input.BloodType
		}
		if input.Height != nil {
			patient.Height = input.Height
		}
		if err := s.patientRepo.Update(ctx, patient); err != nil {
			return nil, err
		}
	case domain.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUserID(ctx, identity.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDoctorNotFound
			}
			return nil, err
		}
		if input.Name != "" {
			doctor.Name = input.Name
		}
		doctor.Phone = input.Phone
		if input.Specialty != "" {
			doctor.Specialty = input.Specialty
		}
		if err := s.doctorRepo.Update(ctx, doctor); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, identity)
}
