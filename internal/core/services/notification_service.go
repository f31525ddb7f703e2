package services

import (
	"context"
	"fmt"
	"log"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/pkg/datefmt"
	"clinicdesk/internal/pkg/mailer"
)

// NotificationService fans out inbox messages for lifecycle transitions and
// sends best-effort emails. Message creations are independent of each other:
// a failed second message never rolls back the first. Email is attempted only
// after messages are durably created and its failure is logged, never
// propagated.
type NotificationService struct {
	messageRepo repositories.MessageRepository
	mailer      mailer.Mailer
}

// NewNotificationService creates a new notification service
func NewNotificationService(messageRepo repositories.MessageRepository, m mailer.Mailer) *NotificationService {
	return &NotificationService{
		messageRepo: messageRepo,
		mailer:      m,
	}
}

// AppointmentCreated notifies both parties of a new appointment:
// a confirmation to the patient and an actionable notice to the doctor.
func (s *NotificationService) AppointmentCreated(ctx context.Context, appointment *models.Appointment, patient *models.Patient, doctor *models.Doctor) error {
	when := datefmt.Format(appointment.AppointmentDate)

	patientMsg := &models.Message{
		UserID:  patient.UserID,
		Title:   "Appointment Confirmation",
		Content: fmt.Sprintf("New appointment scheduled on %s with Dr. %s. Reason: %s", when, doctor.Name, appointment.Reason),
	}
	if err := s.messageRepo.Create(ctx, patientMsg); err != nil {
		return err
	}

	doctorMsg := &models.Message{
		UserID:  doctor.UserID,
		Title:   "New Appointment",
		Content: fmt.Sprintf("You have a new appointment with patient %s on %s.", patient.Name, when),
	}
	return s.messageRepo.Create(ctx, doctorMsg)
}

// ConsultationRequested notifies the patient (self-confirmation) and the
// doctor (actionable request), then emails the doctor best-effort.
func (s *NotificationService) ConsultationRequested(ctx context.Context, patient *models.Patient, doctor *models.Doctor, reason string) error {
	content := fmt.Sprintf("%s requested a consultation. Reason: %s", patient.Name, reason)
	patientID := patient.ID

	patientMsg := &models.Message{
		UserID:    patient.UserID,
		PatientID: &patientID,
		Title:     "New Consultation Request",
		Content:   content,
	}
	if err := s.messageRepo.Create(ctx, patientMsg); err != nil {
		return err
	}

	doctorMsg := &models.Message{
		UserID:    doctor.UserID,
		PatientID: &patientID,
		Title:     "Consultation Request",
		Content:   content,
	}
	if err := s.messageRepo.Create(ctx, doctorMsg); err != nil {
		return err
	}

	if doctor.User != nil {
		s.email(doctor.User.Email, "New Consultation Request",
			fmt.Sprintf("%s requested a consultation.\nReason: %s", patient.Name, reason))
	}

	return nil
}

// ConsultationScheduled notifies the patient of the scheduled appointment and
// emails them best-effort. The doctor deliberately receives no inbox message
// for this transition.
func (s *NotificationService) ConsultationScheduled(ctx context.Context, appointment *models.Appointment, patient *models.Patient, doctor *models.Doctor, reason string) error {
	when := datefmt.Format(appointment.AppointmentDate)
	appointmentID := appointment.ID

	patientMsg := &models.Message{
		UserID:        patient.UserID,
		AppointmentID: &appointmentID,
		Title:         "Consultation Scheduled",
		Content:       fmt.Sprintf("Your consultation with Dr. %s is scheduled on %s.", doctor.Name, when),
	}
	if err := s.messageRepo.Create(ctx, patientMsg); err != nil {
		return err
	}

	if patient.User != nil {
		s.email(patient.User.Email, "Consultation Scheduled",
			fmt.Sprintf("Your consultation with Dr. %s is scheduled on %s.\nReason: %s", doctor.Name, when, reason))
	}

	return nil
}

// AppointmentReminder creates a reminder message for the patient of an
// upcoming appointment.
func (s *NotificationService) AppointmentReminder(ctx context.Context, appointment *models.Appointment, patient *models.Patient, doctor *models.Doctor) error {
	appointmentID := appointment.ID

	reminder := &models.Message{
		UserID:        patient.UserID,
		AppointmentID: &appointmentID,
		Title:         "Appointment Reminder",
		Content: fmt.Sprintf("Reminder: your appointment with Dr. %s is on %s.",
			doctor.Name, datefmt.Format(appointment.AppointmentDate)),
	}
	return s.messageRepo.Create(ctx, reminder)
}

// email attempts delivery and logs failures. It never returns an error:
// mail is off the critical path of every lifecycle operation.
func (s *NotificationService) email(to, subject, body string) {
	if err := s.mailer.Send(to, subject, body); err != nil {
		log.Printf("⚠️ Email to %s failed: %v", to, err)
	}
}
