package services

import (
	"context"
	"errors"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// ConsultationService orchestrates the two-step consultation handshake.
// A request has no persisted entity of its own: it exists only as the pair of
// messages the fan-out creates, and stays an unread message forever if no
// doctor ever schedules it.
type ConsultationService struct {
	patientRepo     repositories.PatientRepository
	doctorRepo      repositories.DoctorRepository
	appointmentRepo repositories.AppointmentRepository
	notifyService   *NotificationService
}

// NewConsultationService creates a new consultation service
func NewConsultationService(
	patientRepo repositories.PatientRepository,
	doctorRepo repositories.DoctorRepository,
	appointmentRepo repositories.AppointmentRepository,
	notifyService *NotificationService,
) *ConsultationService {
	return &ConsultationService{
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		notifyService:   notifyService,
	}
}

// Request files a consultation request from the patient owning userID to the
// chosen doctor. Callers reach this only through the profile completeness
// gate. Two messages carry the request (self-confirmation + doctor inbox);
// the doctor email afterwards is best-effort.
func (s *ConsultationService) Request(ctx context.Context, userID, doctorID uint, reason string) error {
	patient, err := s.patientRepo.GetByUserIDWithUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPatientNotFound
		}
		return err
	}

	doctor, err := s.doctorRepo.GetByIDWithUser(ctx, doctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDoctorNotFound
		}
		return err
	}

	return s.notifyService.ConsultationRequested(ctx, patient, doctor, reason)
}

// Schedule is the doctor's response to a request: the acting doctor is
// resolved from the caller identity, the target patient by id, and the
// appointment passes the same date-validity rule as a direct create. Exactly
// one message goes out, to the patient; the doctor gets none.
func (s *ConsultationService) Schedule(ctx context.Context, patientID, doctorUserID uint, date time.Time, reason string) (*models.Appointment, error) {
	doctor, err := s.doctorRepo.GetByUserIDWithUser(ctx, doctorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	patient, err := s.patientRepo.GetByIDWithUser(ctx, patientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	if err := validateAppointment(date, reason); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: date,
		Reason:          reason,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	if err := s.notifyService.ConsultationScheduled(ctx, appointment, patient, doctor, reason); err != nil {
		return nil, err
	}

	return appointment, nil
}
