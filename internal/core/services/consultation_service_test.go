package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newConsultationService(
	patientRepo *PatientRepoMock,
	doctorRepo *DoctorRepoMock,
	apptRepo *AppointmentRepoMock,
	messageRepo *MessageRepoMock,
	m *MailerMock,
) *services.ConsultationService {
	notify := services.NewNotificationService(messageRepo, m)
	return services.NewConsultationService(patientRepo, doctorRepo, apptRepo, notify)
}

func TestConsultationService_Request_TwoMessagesAndDoctorEmail(t *testing.T) {
	patientRepo := new(PatientRepoMock)
	doctorRepo := new(DoctorRepoMock)
	apptRepo := new(AppointmentRepoMock)
	messageRepo := new(MessageRepoMock)
	mailerMock := new(MailerMock)

	patient := testPatient()
	doctor := testDoctor()

	patientRepo.On("GetByUserIDWithUser", mock.Anything, uint(70)).Return(patient, nil).Once()
	doctorRepo.On("GetByIDWithUser", mock.Anything, uint(3)).Return(doctor, nil).Once()

	// Self-confirmation to the patient, request notice to the doctor. Both
	// carry the patient reference.
	messageRepo.On("Create", mock.Anything, mock.MatchedBy(func(msg *models.Message) bool {
		return msg.UserID == patient.UserID &&
			msg.Title == "New Consultation Request" &&
			msg.PatientID != nil && *msg.PatientID == patient.ID
	})).Return(nil).Once()
	messageRepo.On("Create", mock.Anything, mock.MatchedBy(func(msg *models.Message) bool {
		return msg.UserID == doctor.UserID &&
			msg.Title == "Consultation Request" &&
			msg.PatientID != nil && *msg.PatientID == patient.ID
	})).Return(nil).Once()

	mailerMock.On("Send", doctor.User.Email, "New Consultation Request", mock.Anything).Return(nil).Once()

	svc := newConsultationService(patientRepo, doctorRepo, apptRepo, messageRepo, mailerMock)

	err := svc.Request(context.Background(), 70, 3, "Chest pain")

	assert.NoError(t, err)
	messageRepo.AssertNumberOfCalls(t, "Create", 2)
	mailerMock.AssertExpectations(t)
	// A request never creates an appointment
	apptRepo.AssertNotCalled(t, "Create")
}

func TestConsultationService_Request_MailFailureIsNotFatal(t *testing.T) {
	patientRepo := new(PatientRepoMock)
	doctorRepo := new(DoctorRepoMock)
	apptRepo := new(AppointmentRepoMock)
	messageRepo := new(MessageRepoMock)
	mailerMock := new(MailerMock)

	patientRepo.On("GetByUserIDWithUser", mock.Anything, uint(70)).Return(testPatient(), nil).Once()
	doctorRepo.On("GetByIDWithUser", mock.Anything, uint(3)).Return(testDoctor(), nil).Once()
	messageRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()
	mailerMock.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	svc := newConsultationService(patientRepo, doctorRepo, apptRepo, messageRepo, mailerMock)

	err := svc.Request(context.Background(), 70, 3, "Chest pain")

	assert.NoError(t, err)
	messageRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestConsultationService_Request_UnknownDoctor(t *testing.T) {
	patientRepo := new(PatientRepoMock)
	doctorRepo := new(DoctorRepoMock)
	apptRepo := new(AppointmentRepoMock)
	messageRepo := new(MessageRepoMock)
	mailerMock := new(MailerMock)

	patientRepo.On("GetByUserIDWithUser", mock.Anything, uint(70)).Return(testPatient(), nil).Once()
	doctorRepo.On("GetByIDWithUser", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound).Once()

	svc := newConsultationService(patientRepo, doctorRepo, apptRepo, messageRepo, mailerMock)

	err := svc.Request(context.Background(), 70, 99, "Chest pain")

	assert.ErrorIs(t, err, services.ErrDoctorNotFound)
	messageRepo.AssertNotCalled(t, "Create")
	mailerMock.AssertNotCalled(t, "Send")
}

func TestConsultationService_Schedule_OneMessageToPatientOnly(t *testing.T) {
	patientRepo := new(PatientRepoMock)
	doctorRepo := new(DoctorRepoMock)
	apptRepo := new(AppointmentRepoMock)
	messageRepo := new(MessageRepoMock)
	mailerMock := new(MailerMock)

	patient := testPatient()
	doctor := testDoctor()

	doctorRepo.On("GetByUserIDWithUser", mock.Anything, uint(30)).Return(doctor, nil).Once()
	patientRepo.On("GetByIDWithUser", mock.Anything, uint(7)).Return(patient, nil).Once()
	apptRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *models.Appointment) bool {
		return a.PatientID == patient.ID && a.DoctorID == doctor.ID
	})).Return(nil).Once()

	// Exactly one message, to the patient. The doctor gets none.
	messageRepo.On("Create", mock.Anything, mock.MatchedBy(func(msg *models.Message) bool {
		return msg.UserID == patient.UserID && msg.Title == "Consultation Scheduled"
	})).Return(nil).Once()

	mailerMock.On("Send", patient.User.Email, "Consultation Scheduled", mock.Anything).Return(nil).Once()

	svc := newConsultationService(patientRepo, doctorRepo, apptRepo, messageRepo, mailerMock)

	appointment, err := svc.Schedule(context.Background(), 7, 30, time.Now().AddDate(0, 0, 3), "Follow-up consult")

	assert.NoError(t, err)
	assert.NotNil(t, appointment)
	messageRepo.AssertNumberOfCalls(t, "Create", 1)
	mailerMock.AssertExpectations(t)
}

func TestConsultationService_Schedule_DateValidation(t *testing.T) {
	patientRepo := new(PatientRepoMock)
	doctorRepo := new(DoctorRepoMock)
	apptRepo := new(AppointmentRepoMock)
	messageRepo := new(MessageRepoMock)
	mailerMock := new(MailerMock)

	doctorRepo.On("GetByUserIDWithUser", mock.Anything, uint(30)).Return(testDoctor(), nil).Once()
	patientRepo.On("GetByIDWithUser", mock.Anything, uint(7)).Return(testPatient(), nil).Once()

	svc := newConsultationService(patientRepo, doctorRepo, apptRepo, messageRepo, mailerMock)

	_, err := svc.Schedule(context.Background(), 7, 30, time.Now().Add(3*time.Hour), "Follow-up")

	assert.ErrorIs(t, err, services.ErrDateTooSoon)
	apptRepo.AssertNotCalled(t, "Create")
	messageRepo.AssertNotCalled(t, "Create")
}
