package services

import (
	"context"
	"errors"
	"log"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Doctor service errors
var (
	ErrLicenseTaken = errors.New("license number is already registered")
)

// DoctorService handles doctor management and specialty lookups
type DoctorService struct {
	userRepo   repositories.UserRepository
	doctorRepo repositories.DoctorRepository
}

// NewDoctorService creates a new doctor service
func NewDoctorService(
	userRepo repositories.UserRepository,
	doctorRepo repositories.DoctorRepository,
) *DoctorService {
	return &DoctorService{
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
	}
}

// ListDoctors lists all doctors with their user accounts
func (s *DoctorService) ListDoctors(ctx context.Context) ([]*models.Doctor, error) {
	return s.doctorRepo.List(ctx)
}

// GetDoctor gets a doctor with its owning user
func (s *DoctorService) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.GetByIDWithUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return doctor, nil
}

// GetByUserID returns the doctor profile owned by a user
func (s *DoctorService) GetByUserID(ctx context.Context, userID uint) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return doctor, nil
}

// ListSpecialties returns the distinct specialties currently on staff
func (s *DoctorService) ListSpecialties(ctx context.Context) ([]string, error) {
	return s.doctorRepo.ListSpecialties(ctx)
}

// DoctorOption is a selectable doctor in the consultation form
type DoctorOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ListBySpecialty returns doctors of one specialty as form options, names
// rendered with the specialty title suffix
func (s *DoctorService) ListBySpecialty(ctx context.Context, specialty string) ([]DoctorOption, error) {
	doctors, err := s.doctorRepo.ListBySpecialty(ctx, specialty)
	if err != nil {
		return nil, err
	}

	options := make([]DoctorOption, 0, len(doctors))
	for _, doctor := range doctors {
		options = append(options, DoctorOption{
			ID:   doctor.ID,
			Name: domain.DoctorDisplayName(doctor.Name, doctor.Specialty),
		})
	}
	return options, nil
}

// AddDoctorInput represents the admin add-doctor form
type AddDoctorInput struct {
	Username      string `json:"username" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Name          string `json:"name" validate:"required"`
	Specialty     string `json:"specialty" validate:"required"`
	LicenseNumber string `json:"license_number" validate:"required"`
	Phone         string `json:"phone"`
}

// AddDoctor creates a doctor account on behalf of the admin
func (s *DoctorService) AddDoctor(ctx context.Context, input *AddDoctorInput) (*models.Doctor, error) {
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

	taken, err := s.doctorRepo.ExistsByLicenseNumber(ctx, input.LicenseNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrLicenseTaken
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     string(domain.RoleDoctor),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	doctor := &models.Doctor{
		Name:          input.Name,
		Specialty:     input.Specialty,
		LicenseNumber: input.LicenseNumber,
		Phone:         input.Phone,
		UserID:        user.ID,
	}
	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	log.Printf("✅ Doctor added: %s (%s)", doctor.Name, doctor.DoctorCode)
	return doctor, nil
}

// UpdateDoctorInput represents the admin edit-doctor form
type UpdateDoctorInput struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Specialty     string `json:"specialty"`
	LicenseNumber string `json:"license_number"`
	Phone         string `json:"phone"`
}

// UpdateDoctor updates a doctor and its owning user. The doctor code is
// never touched.
func (s *DoctorService) UpdateDoctor(ctx context.Context, id uint, input *UpdateDoctorInput) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.GetByIDWithUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	if err := validatePhone(input.Phone); err != nil {
		return nil, err
	}

	if input.LicenseNumber != doctor.LicenseNumber {
		taken, err := s.doctorRepo.ExistsByLicenseNumber(ctx, input.LicenseNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrLicenseTaken
		}
	}

	if doctor.User != nil {
		doctor.User.Username = input.Username
		doctor.User.Email = input.Email
		if err := s.userRepo.Update(ctx, doctor.User); err != nil {
			return nil, err
		}
	}

	doctor.Name = input.Name
	doctor.Specialty = input.Specialty
	doctor.LicenseNumber = input.LicenseNumber
	doctor.Phone = input.Phone

	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, err
	}

	return doctor, nil
}

// DeleteDoctor removes a doctor by deleting its owning user account
func (s *DoctorService) DeleteDoctor(ctx context.Context, id uint) error {
	doctor, err := s.doctorRepo.GetByIDWithUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDoctorNotFound
		}
		return err
	}

	return s.userRepo.Delete(ctx, doctor.UserID)
}
