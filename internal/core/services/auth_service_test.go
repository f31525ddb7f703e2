package services_test

import (
	"context"
	"testing"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/password"
	"clinicdesk/internal/pkg/sessiontoken"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			Secret:      "test_session_secret",
			ExpiryHours: 12,
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		input      *services.RegisterInput
		setupMocks func(u *UserRepoMock, p *PatientRepoMock)
		wantErr    error
	}{
		{
			name:  "successful registration creates user and patient profile",
			input: &services.RegisterInput{Username: "alice", Email: "alice@mail.com", Password: "password123"},
			setupMocks: func(u *UserRepoMock, p *PatientRepoMock) {
				u.On("ExistsByEmail", mock.Anything, "alice@mail.com").Return(false, nil).Once()
				u.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil).Once()
				u.On("Create", mock.Anything, mock.MatchedBy(func(user *models.User) bool {
					return user.Username == "alice" &&
						user.Role == "patient" &&
						user.Password != "password123"
				})).Return(nil).Once()
				p.On("Create", mock.Anything, mock.MatchedBy(func(patient *models.Patient) bool {
					return patient.Name == "alice"
				})).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name:       "password too short",
			input:      &services.RegisterInput{Username: "alice", Email: "alice@mail.com", Password: "short"},
			setupMocks: func(u *UserRepoMock, p *PatientRepoMock) {},
			wantErr:    services.ErrPasswordTooShort,
		},
		{
			name:  "email already taken",
			input: &services.RegisterInput{Username: "alice", Email: "alice@mail.com", Password: "password123"},
			setupMocks: func(u *UserRepoMock, p *PatientRepoMock) {
				u.On("ExistsByEmail", mock.Anything, "alice@mail.com").Return(true, nil).Once()
			},
			wantErr: services.ErrEmailTaken,
		},
		{
			name:  "username already taken",
			input: &services.RegisterInput{Username: "alice", Email: "alice@mail.com", Password: "password123"},
			setupMocks: func(u *UserRepoMock, p *PatientRepoMock) {
				u.On("ExistsByEmail", mock.Anything, "alice@mail.com").Return(false, nil).Once()
				u.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil).Once()
			},
			wantErr: services.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(UserRepoMock)
			patientRepo := new(PatientRepoMock)
			tt.setupMocks(userRepo, patientRepo)

			svc := services.NewAuthService(userRepo, patientRepo, testConfig())

			user, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "alice", user.Username)
			}
			userRepo.AssertExpectations(t)
			patientRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.Hash("password123")
	assert.NoError(t, err)

	stored := &models.User{
		ID:       70,
		Username: "alice",
		Email:    "alice@mail.com",
		Password: hashed,
		Role:     "patient",
	}

	t.Run("valid credentials issue a session token", func(t *testing.T) {
		userRepo := new(UserRepoMock)
		patientRepo := new(PatientRepoMock)
		userRepo.On("GetByEmail", mock.Anything, "alice@mail.com").Return(stored, nil).Once()

		svc := services.NewAuthService(userRepo, patientRepo, testConfig())

		result, err := svc.Login(context.Background(), &services.LoginInput{
			Email:    "alice@mail.com",
			Password: "password123",
		})

		assert.NoError(t, err)
		assert.Equal(t, "/patient/dashboard", result.Redirect)

		claims, err := sessiontoken.Validate(result.SessionToken, "test_session_secret")
		assert.NoError(t, err)
		assert.Equal(t, uint(70), claims.UserID)
		assert.Equal(t, "patient", claims.Role)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(UserRepoMock)
		patientRepo := new(PatientRepoMock)
		userRepo.On("GetByEmail", mock.Anything, "alice@mail.com").Return(stored, nil).Once()

		svc := services.NewAuthService(userRepo, patientRepo, testConfig())

		_, err := svc.Login(context.Background(), &services.LoginInput{
			Email:    "alice@mail.com",
			Password: "wrongpassword",
		})

		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(UserRepoMock)
		patientRepo := new(PatientRepoMock)
		userRepo.On("GetByEmail", mock.Anything, "ghost@mail.com").Return(nil, gorm.ErrRecordNotFound).Once()

		svc := services.NewAuthService(userRepo, patientRepo, testConfig())

		_, err := svc.Login(context.Background(), &services.LoginInput{
			Email:    "ghost@mail.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})
}
