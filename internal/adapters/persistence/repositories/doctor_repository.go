package repositories

import (
	"context"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/pkg/code"

	"gorm.io/gorm"
)

// doctorRepository implements DoctorRepository interface
type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a new doctor repository
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

// Create inserts the doctor and assigns its DOC code in one transaction
func (r *doctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doctor).Error; err != nil {
			return err
		}

		doctor.DoctorCode = code.Generate(code.DoctorPrefix, doctor.ID)
		return tx.Model(doctor).Update("doctor_code", doctor.DoctorCode).Error
	})
}

// GetByID gets a doctor by ID
func (r *doctorRepository) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// GetByIDWithUser gets a doctor by ID with its owning user preloaded
func (r *doctorRepository) GetByIDWithUser(ctx context.Context, id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// GetByUserID gets a doctor by its owning user ID
func (r *doctorRepository) GetByUserID(ctx context.Context, userID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// GetByUserIDWithUser gets a doctor by owning user ID with the user preloaded
func (r *doctorRepository) GetByUserIDWithUser(ctx context.Context, userID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// Update updates a doctor
func (r *doctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Save(doctor).Error
}

// UpdateFields updates selected columns of the doctor owned by userID
func (r *doctorRepository) UpdateFields(ctx context.Context, userID uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Doctor{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}

// List lists all doctors with their owning users
func (r *doctorRepository) List(ctx context.Context) ([]*models.Doctor, error) {
	var doctors []*models.Doctor
	err := r.db.WithContext(ctx).Preload("User").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// ListBySpecialty lists doctors filtered by specialty
func (r *doctorRepository) ListBySpecialty(ctx context.Context, specialty string) ([]*models.Doctor, error) {
	var doctors []*models.Doctor
	err := r.db.WithContext(ctx).Where("specialty = ?", specialty).Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// ListSpecialties lists distinct specialties in ascending order
func (r *doctorRepository) ListSpecialties(ctx context.Context) ([]string, error) {
	var specialties []string
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).
		Distinct("specialty").
		Order("specialty ASC").
		Pluck("specialty", &specialties).Error
	if err != nil {
		return nil, err
	}
	return specialties, nil
}

// ExistsByLicenseNumber checks if a license number is already registered
func (r *doctorRepository) ExistsByLicenseNumber(ctx context.Context, licenseNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).
		Where("license_number = ?", licenseNumber).Count(&count).Error
	return count > 0, err
}
