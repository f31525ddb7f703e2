package repositories

import (
	"context"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/pkg/code"

	"gorm.io/gorm"
)

// patientRepository implements PatientRepository interface
type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

// Create inserts the patient and assigns its PAT code in one transaction.
// The code is derived from the store-assigned id and never changes afterwards.
func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(patient).Error; err != nil {
			return err
		}

		patient.PatientCode = code.Generate(code.PatientPrefix, patient.ID)
		return tx.Model(patient).Update("patient_code", patient.PatientCode).Error
	})
}

// GetByID gets a patient by ID
func (r *patientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// GetByIDWithUser gets a patient by ID with its owning user preloaded
func (r *patientRepository) GetByIDWithUser(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// GetByUserID gets a patient by its owning user ID
func (r *patientRepository) GetByUserID(ctx context.Context, userID uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// GetByUserIDWithUser gets a patient by owning user ID with the user preloaded
func (r *patientRepository) GetByUserIDWithUser(ctx context.Context, userID uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// Update updates a patient
func (r *patientRepository) Update(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

// UpdateFields updates selected columns of the patient owned by userID
func (r *patientRepository) UpdateFields(ctx context.Context, userID uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Patient{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}

// List lists patients ordered by name with optional name search and pagination
func (r *patientRepository) List(ctx context.Context, search string, offset, limit int) ([]*models.Patient, int64, error) {
	var patients []*models.Patient
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Patient{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&patients).Error; err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}
