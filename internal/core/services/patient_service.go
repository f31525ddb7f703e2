package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Patient service errors
var (
	ErrProfileMissing    = errors.New("patient profile not found")
	ErrProfileIncomplete = errors.New("please complete your profile before requesting a consultation")
	ErrInvalidPhone      = errors.New("phone number is malformed")
)

// phonePattern accepts digits, spaces and the usual separators
var phonePattern = regexp.MustCompile(`^[0-9+\-()\s]*$`)

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// PatientService handles patient management and the profile completeness gate
type PatientService struct {
	userRepo    repositories.UserRepository
	patientRepo repositories.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(
	userRepo repositories.UserRepository,
	patientRepo repositories.PatientRepository,
) *PatientService {
	return &PatientService{
		userRepo:    userRepo,
		patientRepo: patientRepo,
	}
}

// EnsureConsultable is the precondition gate in front of consultation
// requests: the caller must own a patient profile carrying date of birth,
// gender, blood type and height. Doctors creating appointments directly are
// not subject to this gate.
func (s *PatientService) EnsureConsultable(ctx context.Context, userID uint) error {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileMissing
		}
		return err
	}

	if !patient.IsComplete() {
		return ErrProfileIncomplete
	}

	return nil
}

// GetByUserID returns the patient profile owned by a user
func (s *PatientService) GetByUserID(ctx context.Context, userID uint) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, err
	}
	return patient, nil
}

// CompleteProfileInput represents the required-field completion form
type CompleteProfileInput struct {
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	BloodType   string    `json:"blood_type"`
	Height      int       `json:"height"`
}

// CompleteProfile fills in the fields the consultation gate requires
func (s *PatientService) CompleteProfile(ctx context.Context, userID uint, input *CompleteProfileInput) error {
	if _, err := s.patientRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileMissing
		}
		return err
	}

	return s.patientRepo.UpdateFields(ctx, userID, map[string]interface{}{
		"date_of_birth": input.DateOfBirth,
		"gender":        input.Gender,
		"blood_type":    input.BloodType,
		"height":        input.Height,
	})
}

// ListPatientsOutput represents a page of patients
type ListPatientsOutput struct {
	Patients []*models.Patient `json:"patients"`
	Total    int64             `json:"total"`
}

// ListPatients lists patients ordered by name, optionally filtered by a
// name search
func (s *PatientService) ListPatients(ctx context.Context, search string, offset, limit int) (*ListPatientsOutput, error) {
	patients, total, err := s.patientRepo.List(ctx, search, offset, limit)
	if err != nil {
		return nil, err
	}

	return &ListPatientsOutput{
		Patients: patients,
		Total:    total,
	}, nil
}

// GetPatient gets a patient with its owning user
func (s *PatientService) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByIDWithUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return patient, nil
}

// AddPatientInput represents the admin add-patient form
type AddPatientInput struct {
	Username    string     `json:"username" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	Password    string     `json:"password" validate:"required,min=8"`
	Name        string     `json:"name" validate:"required"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
}

// AddPatient creates a patient account on behalf of the admin
func (s *PatientService) AddPatient(ctx context.Context, input *AddPatientInput) (*models.Patient, error) {
	if !password.ValidatePassword(input.Password) {
		return nil, ErrPasswordTooShort
	}
	if err := validatePhone(input.Phone); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     string(domain.RolePatient),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	patient := &models.Patient{
		Name:        input.Name,
		Phone:       input.Phone,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		UserID:      user.ID,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	log.Printf("✅ Patient added: %s (%s)", patient.Name, patient.PatientCode)
	return patient, nil
}

// UpdatePatientInput represents the admin edit-patient form
type UpdatePatientInput struct {
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
}

// UpdatePatient updates a patient and its owning user. The patient code is
// never touched.
func (s *PatientService) UpdatePatient(ctx context.Context, id uint, input *UpdatePatientInput) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByIDWithUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	if err := validatePhone(input.Phone); err != nil {
		return nil, err
	}

	if patient.User != nil {
		patient.User.Username = input.Username
		patient.User.Email = input.Email
		if err := s.userRepo.Update(ctx, patient.User); err != nil {
			return nil, err
		}
	}

	patient.Name = input.Name
	patient.Phone = input.Phone
	patient.DateOfBirth = input.DateOfBirth
	patient.Gender = input.Gender

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}

	return patient, nil
}

// DeletePatient removes a patient by deleting its owning user account
func (s *PatientService) DeletePatient(ctx context.Context, id uint) error {
	patient, err := s.patientRepo.GetByIDWithUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPatientNotFound
		}
		return err
	}

	return s.userRepo.Delete(ctx, patient.UserID)
}
