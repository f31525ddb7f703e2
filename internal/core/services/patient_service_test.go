package services_test

import (
	"context"
	"testing"
	"time"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestPatientService_EnsureConsultable(t *testing.T) {
	dob := time.Date(1996, 6, 1, 0, 0, 0, 0, time.UTC)

	complete := func() *models.Patient {
		return &models.Patient{
			ID:          7,
			UserID:      70,
			DateOfBirth: &dob,
			Gender:      strPtr("female"),
			BloodType:   strPtr("O"),
			Height:      intPtr(168),
		}
	}

	tests := []struct {
		name    string
		mutate  func(p *models.Patient)
		wantErr error
	}{
		{name: "all fields present", mutate: func(p *models.Patient) {}, wantErr: nil},
		{name: "missing date of birth", mutate: func(p *models.Patient) { p.DateOfBirth = nil }, wantErr: services.ErrProfileIncomplete},
		{name: "missing gender", mutate: func(p *models.Patient) { p.Gender = nil }, wantErr: services.ErrProfileIncomplete},
		{name: "missing blood type", mutate: func(p *models.Patient) { p.BloodType = nil }, wantErr: services.ErrProfileIncomplete},
		{name: "missing height", mutate: func(p *models.Patient) { p.Height = nil }, wantErr: services.ErrProfileIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(UserRepoMock)
			patientRepo := new(PatientRepoMock)

			patient := complete()
			tt.mutate(patient)
			patientRepo.On("GetByUserID", mock.Anything, uint(70)).Return(patient, nil).Once()

			svc := services.NewPatientService(userRepo, patientRepo)

			err := svc.EnsureConsultable(context.Background(), 70)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("no profile at all", func(t *testing.T) {
		userRepo := new(UserRepoMock)
		patientRepo := new(PatientRepoMock)
		patientRepo.On("GetByUserID", mock.Anything, uint(70)).Return(nil, gorm.ErrRecordNotFound).Once()

		svc := services.NewPatientService(userRepo, patientRepo)

		err := svc.EnsureConsultable(context.Background(), 70)
		assert.ErrorIs(t, err, services.ErrProfileMissing)
	})
}

func TestPatientService_CompleteProfile(t *testing.T) {
	userRepo := new(UserRepoMock)
	patientRepo := new(PatientRepoMock)

	patientRepo.On("GetByUserID", mock.Anything, uint(70)).Return(&models.Patient{ID: 7, UserID: 70}, nil).Once()
	patientRepo.On("UpdateFields", mock.Anything, uint(70), mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["gender"] == "female" &&
			fields["blood_type"] == "O" &&
			fields["height"] == 168
	})).Return(nil).Once()

	svc := services.NewPatientService(userRepo, patientRepo)

	err := svc.CompleteProfile(context.Background(), 70, &services.CompleteProfileInput{
		DateOfBirth: time.Date(1996, 6, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
		BloodType:   "O",
		Height:      168,
	})

	assert.NoError(t, err)
	patientRepo.AssertExpectations(t)
}

func TestPatientService_AddPatient(t *testing.T) {
	t.Run("creates user then patient profile", func(t *testing.T) {
		userRepo := new(UserRepoMock)
		patientRepo := new(PatientRepoMock)

		userRepo.On("ExistsByEmail", mock.Anything, "bob@mail.com").Return(false, nil).Once()
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == "patient" && u.Email == "bob@mail.com"
		})).Return(nil).Once()
		patientRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Patient) bool {
			return p.Name == "Bob Miller"
		})).Return(nil).Once()

		svc := services.NewPatientService(userRepo, patientRepo)

		patient, err := svc.AddPatient(context.Background(), &services.AddPatientInput{
			Username: "bob",
			Email:    "bob@mail.com",
			Password: "password123",
			Name:     "Bob Miller",
			Phone:    "+49 30 1234567",
		})

		assert.NoError(t, err)
		assert.NotNil(t, patient)
	})

	t.Run("rejects malformed phone", func(t *testing.T) {
		userRepo := new(UserRepoMock)
		patientRepo := new(PatientRepoMock)

		svc := services.NewPatientService(userRepo, patientRepo)

		_, err := svc.AddPatient(context.Background(), &services.AddPatientInput{
			Username: "bob",
			Email:    "bob@mail.com",
			Password: "password123",
			Name:     "Bob Miller",
			Phone:    "call me!",
		})

		assert.ErrorIs(t, err, services.ErrInvalidPhone)
		userRepo.AssertNotCalled(t, "Create")
	})
}

func TestPatientService_DeletePatient_RemovesOwningUser(t *testing.T) {
	userRepo := new(UserRepoMock)
	patientRepo := new(PatientRepoMock)

	patientRepo.On("GetByIDWithUser", mock.Anything, uint(7)).Return(&models.Patient{ID: 7, UserID: 70}, nil).Once()
	userRepo.On("Delete", mock.Anything, uint(70)).Return(nil).Once()

	svc := services.NewPatientService(userRepo, patientRepo)

	err := svc.DeletePatient(context.Background(), 7)

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestPatientService_UpdatePatient_KeepsCode(t *testing.T) {
	userRepo := new(UserRepoMock)
	patientRepo := new(PatientRepoMock)

	existing := &models.Patient{
		ID:          7,
		Name:        "Alice Carter",
		PatientCode: "PAT-007",
		UserID:      70,
		User:        &models.User{ID: 70, Username: "alice", Email: "alice@mail.com"},
	}

	patientRepo.On("GetByIDWithUser", mock.Anything, uint(7)).Return(existing, nil).Once()
	userRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	patientRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Patient) bool {
		return p.Name == "Alice C. Carter" && p.PatientCode == "PAT-007"
	})).Return(nil).Once()

	svc := services.NewPatientService(userRepo, patientRepo)

	updated, err := svc.UpdatePatient(context.Background(), 7, &services.UpdatePatientInput{
		Username: "alice",
		Email:    "alice@mail.com",
		Name:     "Alice C. Carter",
	})

	assert.NoError(t, err)
	assert.Equal(t, "PAT-007", updated.PatientCode)
}
