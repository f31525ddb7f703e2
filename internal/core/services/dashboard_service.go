package services

import (
	"context"
	"errors"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/datefmt"

	"gorm.io/gorm"
)

// DashboardService assembles the landing pages per role
type DashboardService struct {
	patientRepo     repositories.PatientRepository
	doctorRepo      repositories.DoctorRepository
	appointmentRepo repositories.AppointmentRepository
	messageRepo     repositories.MessageRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	patientRepo repositories.PatientRepository,
	doctorRepo repositories.DoctorRepository,
	appointmentRepo repositories.AppointmentRepository,
	messageRepo repositories.MessageRepository,
) *DashboardService {
	return &DashboardService{
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		messageRepo:     messageRepo,
	}
}

// PatientDashboard is the patient landing page payload
type PatientDashboard struct {
	Patient      *models.Patient       `json:"patient"`
	Age          *datefmt.Age          `json:"age,omitempty"`
	Appointments []*models.Appointment `json:"appointments"`
	UnreadCount  int64                 `json:"unread_count"`
}

// ForPatient builds the dashboard for a patient user
func (s *DashboardService) ForPatient(ctx context.Context, userID uint) (*PatientDashboard, error) {
	patient, err := s.patientRepo.GetByUserIDWithUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListByPatientID(ctx, patient.ID)
	if err != nil {
		return nil, err
	}

	unread, err := s.messageRepo.CountUnreadByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PatientDashboard{
		Patient:      patient,
		Age:          datefmt.CalcAge(patient.DateOfBirth, time.Now()),
		Appointments: appointments,
		UnreadCount:  unread,
	}, nil
}

// DoctorDashboard is the doctor landing page payload
type DoctorDashboard struct {
	Doctor       *models.Doctor        `json:"doctor"`
	DisplayName  string                `json:"display_name"`
	Appointments []*models.Appointment `json:"appointments"`
	UnreadCount  int64                 `json:"unread_count"`
}

// ForDoctor builds the dashboard for a doctor user
func (s *DashboardService) ForDoctor(ctx context.Context, userID uint) (*DoctorDashboard, error) {
	doctor, err := s.doctorRepo.GetByUserIDWithUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListByDoctorID(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	unread, err := s.messageRepo.CountUnreadByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DoctorDashboard{
		Doctor:       doctor,
		DisplayName:  domain.DoctorDisplayName(doctor.Name, doctor.Specialty),
		Appointments: appointments,
		UnreadCount:  unread,
	}, nil
}

// AdminDashboard is the admin landing page payload
type AdminDashboard struct {
	TotalPatients     int64 `json:"total_patients"`
	TotalDoctors      int   `json:"total_doctors"`
	TotalAppointments int   `json:"total_appointments"`
}

// ForAdmin builds the dashboard for the admin
func (s *DashboardService) ForAdmin(ctx context.Context) (*AdminDashboard, error) {
	_, totalPatients, err := s.patientRepo.List(ctx, "", 0, 1)
	if err != nil {
		return nil, err
	}

	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalPatients:     totalPatients,
		TotalDoctors:      len(doctors),
		TotalAppointments: len(appointments),
	}, nil
}
