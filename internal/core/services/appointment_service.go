package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/pkg/datefmt"

	"gorm.io/gorm"
)

// Appointment service errors
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrReasonRequired      = errors.New("reason is required")
	ErrDateTooSoon         = errors.New("appointment date must be at least 1 day after today")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
)

// validateAppointment checks the shared lifecycle constraints: a non-empty
// reason and a date at least one full day ahead of the moment of validation.
// The boundary is wall-clock relative; two calls around midnight may disagree
// about the same nominal date, and that race is accepted.
func validateAppointment(date time.Time, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}

	minDate := time.Now().AddDate(0, 0, 1)
	if date.Before(minDate) {
		return ErrDateTooSoon
	}

	return nil
}

// AppointmentService handles the appointment lifecycle
type AppointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	patientRepo     repositories.PatientRepository
	doctorRepo      repositories.DoctorRepository
	notifyService   *NotificationService
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	patientRepo repositories.PatientRepository,
	doctorRepo repositories.DoctorRepository,
	notifyService *NotificationService,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		notifyService:   notifyService,
	}
}

// AppointmentInput represents appointment create/edit input
type AppointmentInput struct {
	PatientID uint      `json:"patient_id"`
	DoctorID  uint      `json:"doctor_id"`
	Date      time.Time `json:"appointment_date"`
	Reason    string    `json:"reason"`
}

// Create validates and persists a new appointment, then fans out exactly two
// messages: one to the patient's owning user and one to the doctor's.
// Validation failure persists nothing and creates no messages.
func (s *AppointmentService) Create(ctx context.Context, input *AppointmentInput) (*models.Appointment, error) {
	if err := validateAppointment(input.Date, input.Reason); err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.GetByIDWithUser(ctx, input.PatientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByIDWithUser(ctx, input.DoctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	appointment := &models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: input.Date,
		Reason:          input.Reason,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	if err := s.notifyService.AppointmentCreated(ctx, appointment, patient, doctor); err != nil {
		return nil, err
	}

	return appointment, nil
}

// Edit re-validates and updates an existing appointment. No notification
// fan-out happens on edit.
func (s *AppointmentService) Edit(ctx context.Context, id uint, input *AppointmentInput) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	if err := validateAppointment(input.Date, input.Reason); err != nil {
		return nil, err
	}

	appointment.PatientID = input.PatientID
	appointment.DoctorID = input.DoctorID
	appointment.AppointmentDate = input.Date
	appointment.Reason = input.Reason

	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

// Delete removes an appointment. Messages referencing it keep their dangling
// reference; there is no cascading cleanup.
func (s *AppointmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.appointmentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}

	return s.appointmentRepo.Delete(ctx, id)
}

// List lists all appointments ordered by date ascending
func (s *AppointmentService) List(ctx context.Context) ([]*models.Appointment, error) {
	return s.appointmentRepo.ListAll(ctx)
}

// AppointmentDetail is an appointment with both parties and the patient's age
type AppointmentDetail struct {
	Appointment *models.Appointment `json:"appointment"`
	Patient     *models.Patient     `json:"patient"`
	Doctor      *models.Doctor      `json:"doctor"`
	PatientAge  *datefmt.Age        `json:"patient_age"`
}

// Detail loads an appointment with its parties and the patient's age
func (s *AppointmentService) Detail(ctx context.Context, id uint) (*AppointmentDetail, error) {
	appointment, err := s.appointmentRepo.GetByIDWithParties(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	detail := &AppointmentDetail{
		Appointment: appointment,
		Patient:     appointment.Patient,
		Doctor:      appointment.Doctor,
	}
	if appointment.Patient != nil {
		detail.PatientAge = datefmt.CalcAge(appointment.Patient.DateOfBirth, time.Now())
	}

	return detail, nil
}
