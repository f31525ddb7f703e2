package services_test

import (
	"context"
	"testing"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func completedPatient() *models.Patient {
	dob := time.Date(1996, 4, 12, 0, 0, 0, 0, time.UTC)
	return &models.Patient{
		ID:          3,
		Name:        "Siti Rahma",
		Phone:       "0812-1111-2222",
		DateOfBirth: &dob,
		Gender:      strPtr("female"),
		BloodType:   strPtr("O"),
		Height:      intPtr(162),
		PatientCode: "PAT-003",
		UserID:      70,
	}
}

func TestProfileService_Update_KeepsOmittedMedicalFields(t *testing.T) {
	userRepo := new(UserRepoMock)
	patientRepo := new(PatientRepoMock)
	doctorRepo := new(DoctorRepoMock)

	user := &models.User{ID: 70, Username: "siti", Email: "siti@mail.com", Role: "patient"}
	patient := completedPatient()

	userRepo.On("GetByID", mock.Anything, uint(70)).Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	patientRepo.On("GetByUserID", mock.Anything, uint(70)).Return(patient, nil)
	patientRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Patient) bool {
		return p.IsComplete() && p.Phone == "0813-3333-4444"
	})).Return(nil).Once()

	svc := services.NewProfileService(userRepo, patientRepo, doctorRepo)
	identity := domain.Identity{UserID: 70, Username: "siti", Role: domain.RolePatient}

	// A contact-only edit leaves date of birth, gender, blood type and
	// height untouched.
	profile, err := svc.Update(context.Background(), identity, &services.UpdateProfileInput{
		Name:  "Siti Rahma",
		Phone: "0813-3333-4444",
	})

	assert.NoError(t, err)
	assert.True(t, profile.Patient.IsComplete())
	assert.Equal(t, "O", *profile.Patient.BloodType)
	assert.Equal(t, 162, *profile.Patient.Height)
	patientRepo.AssertExpectations(t)
}

func TestProfileService_Update_AppliesProvidedMedicalFields(t *testing.T) {
	userRepo := new(UserRepoMock)
	patientRepo := new(PatientRepoMock)
	doctorRepo := new(DoctorRepoMock)

	user := &models.User{ID: 70, Username: "siti", Email: "siti@mail.com", Role: "patient"}
	patient := completedPatient()

	userRepo.On("GetByID", mock.Anything, uint(70)).Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	patientRepo.On("GetByUserID", mock.Anything, uint(70)).Return(patient, nil)
	patientRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Patient) bool {
		return p.Height != nil && *p.Height == 165 && p.BloodType != nil && *p.BloodType == "O"
	})).Return(nil).Once()

	svc := services.NewProfileService(userRepo, patientRepo, doctorRepo)
	identity := domain.Identity{UserID: 70, Username: "siti", Role: domain.RolePatient}

	_, err := svc.Update(context.Background(), identity, &services.UpdateProfileInput{
		Name:   "Siti Rahma",
		Phone:  "0812-1111-2222",
		Height: intPtr(165),
	})

	assert.NoError(t, err)
	patientRepo.AssertExpectations(t)
}

func TestProfileService_Update_DoctorKeepsSpecialtyWhenOmitted(t *testing.T) {
	userRepo := new(UserRepoMock)
	patientRepo := new(PatientRepoMock)
	doctorRepo := new(DoctorRepoMock)

	user := &models.User{ID: 40, Username: "budi", Email: "budi@mail.com", Role: "doctor"}
	doctor := &models.Doctor{ID: 2, Name: "Budi Santoso", Specialty: "Cardiology", DoctorCode: "DOC-002", UserID: 40}

	userRepo.On("GetByID", mock.Anything, uint(40)).Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	doctorRepo.On("GetByUserID", mock.Anything, uint(40)).Return(doctor, nil)
	doctorRepo.On("Update", mock.Anything, mock.MatchedBy(func(d *models.Doctor) bool {
		return d.Specialty == "Cardiology" && d.Phone == "021-555-0000"
	})).Return(nil).Once()

	svc := services.NewProfileService(userRepo, patientRepo, doctorRepo)
	identity := domain.Identity{UserID: 40, Username: "budi", Role: domain.RoleDoctor}

	_, err := svc.Update(context.Background(), identity, &services.UpdateProfileInput{
		Name:  "Budi Santoso",
		Phone: "021-555-0000",
	})

	assert.NoError(t, err)
	doctorRepo.AssertExpectations(t)
}
