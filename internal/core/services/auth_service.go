package services

import (
	"context"
	"errors"
	"log"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/pkg/password"
	"clinicdesk/internal/pkg/sessiontoken"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email or username already registered")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)

// AuthService handles registration and login
type AuthService struct {
	userRepo    repositories.UserRepository
	patientRepo repositories.PatientRepository
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	patientRepo repositories.PatientRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		patientRepo: patientRepo,
		cfg:         cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authenticated session
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	SessionToken string               `json:"session_token"`
	Redirect     string               `json:"redirect"`
}

// Register creates a patient account: a user with role patient plus its
// patient profile named after the username. The profile is issued its code
// inside the profile creation's unit of work.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	// 1. Validate password
	if !password.ValidatePassword(input.Password) {
		return nil, ErrPasswordTooShort
	}

	// 2. Check uniqueness of email and username
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	exists, err = s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	// 3. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create user
	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     string(domain.RolePatient),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 5. Create patient profile (code issued within the same unit of work)
	patient := &models.Patient{
		Name:   input.Username,
		UserID: user.ID,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}

	log.Printf("✅ Patient registered: %s (%s)", user.Username, patient.PatientCode)

	return user.ToResponse(), nil
}

// Login authenticates a user and issues a session token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := sessiontoken.Generate(
		user.ID,
		user.Username,
		user.Role,
		s.cfg.Session.Secret,
		s.cfg.Session.ExpiryHours,
	)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		User:         user.ToResponse(),
		SessionToken: token,
		Redirect:     dashboardPath(domain.Role(user.Role)),
	}, nil
}

// dashboardPath maps a role to its landing page
func dashboardPath(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "/admin"
	case domain.RoleDoctor:
		return "/doctor/dashboard"
	default:
		return "/patient/dashboard"
	}
}
