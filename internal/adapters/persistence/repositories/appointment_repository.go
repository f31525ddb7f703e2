package repositories

import (
	"context"
	"time"

	"clinicdesk/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// appointmentRepository implements AppointmentRepository interface
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create creates a new appointment
func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

// GetByID gets an appointment by ID
func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// GetByIDWithParties gets an appointment with patient, doctor and their users
func (r *appointmentRepository) GetByIDWithParties(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient.User").
		Preload("Doctor.User").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Update updates an appointment
func (r *appointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

// Delete removes an appointment. Messages referencing it are left untouched.
func (r *appointmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

// ListAll lists all appointments ordered by date ascending
func (r *appointmentRepository) ListAll(ctx context.Context) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListByPatientID lists a patient's appointments with their doctors
func (r *appointmentRepository) ListByPatientID(ctx context.Context, patientID uint) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListByDoctorID lists a doctor's appointments with their patients
func (r *appointmentRepository) ListByDoctorID(ctx context.Context, doctorID uint) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// ListInDateRange lists appointments within [from, to) with parties preloaded
func (r *appointmentRepository) ListInDateRange(ctx context.Context, from, to time.Time) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient.User").
		Preload("Doctor").
		Where("appointment_date >= ? AND appointment_date < ?", from, to).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
