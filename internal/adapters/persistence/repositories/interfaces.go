package repositories

import (
	"context"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// PatientRepository defines patient repository interface.
// Create issues the patient code inside the same unit of work as the insert:
// no reader ever observes a patient without a code.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	GetByIDWithUser(ctx context.Context, id uint) (*models.Patient, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Patient, error)
	GetByUserIDWithUser(ctx context.Context, userID uint) (*models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	UpdateFields(ctx context.Context, userID uint, fields map[string]interface{}) error
	List(ctx context.Context, search string, offset, limit int) ([]*models.Patient, int64, error)
}

// DoctorRepository defines doctor repository interface.
// Create carries the same in-transaction code issuance as PatientRepository.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id uint) (*models.Doctor, error)
	GetByIDWithUser(ctx context.Context, id uint) (*models.Doctor, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Doctor, error)
	GetByUserIDWithUser(ctx context.Context, userID uint) (*models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
	UpdateFields(ctx context.Context, userID uint, fields map[string]interface{}) error
	List(ctx context.Context) ([]*models.Doctor, error)
	ListBySpecialty(ctx context.Context, specialty string) ([]*models.Doctor, error)
	ListSpecialties(ctx context.Context) ([]string, error)
	ExistsByLicenseNumber(ctx context.Context, licenseNumber string) (bool, error)
}

// AppointmentRepository defines appointment repository interface
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	GetByIDWithParties(ctx context.Context, id uint) (*models.Appointment, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]*models.Appointment, error)
	ListByPatientID(ctx context.Context, patientID uint) ([]*models.Appointment, error)
	ListByDoctorID(ctx context.Context, doctorID uint) ([]*models.Appointment, error)
	ListInDateRange(ctx context.Context, from, to time.Time) ([]*models.Appointment, error)
}

// MessageRepository defines message repository interface
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	ListByUserID(ctx context.Context, userID uint) ([]*models.Message, error)
	MarkRead(ctx context.Context, id uint) error
	CountUnreadByUserID(ctx context.Context, userID uint) (int64, error)
}
