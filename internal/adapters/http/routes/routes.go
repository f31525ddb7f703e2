package routes

import (
	"time"

	"clinicdesk/internal/adapters/http/handlers"
	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/domain"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/mailer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	patientRepo := repositories.NewPatientRepository(db)
	doctorRepo := repositories.NewDoctorRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	// Outgoing mail transport (disabled when no SMTP host is configured)
	smtpMailer := mailer.New(mailer.Config{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		From: cfg.SMTP.From,
	})

	// Initialize services
	notifyService := services.NewNotificationService(messageRepo, smtpMailer)
	authService := services.NewAuthService(userRepo, patientRepo, cfg)
	patientService := services.NewPatientService(userRepo, patientRepo)
	doctorService := services.NewDoctorService(userRepo, doctorRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, patientRepo, doctorRepo, notifyService)
	consultationService := services.NewConsultationService(patientRepo, doctorRepo, appointmentRepo, notifyService)
	messageService := services.NewMessageService(messageRepo)
	profileService := services.NewProfileService(userRepo, patientRepo, doctorRepo)
	dashboardService := services.NewDashboardService(patientRepo, doctorRepo, appointmentRepo, messageRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	consultationHandler := handlers.NewConsultationHandler(consultationService, doctorService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	patientHandler := handlers.NewPatientHandler(patientService)
	patientAdminHandler := handlers.NewPatientAdminHandler(patientService)
	doctorAdminHandler := handlers.NewDoctorAdminHandler(doctorService)
	inboxHandler := handlers.NewInboxHandler(messageService)
	profileHandler := handlers.NewProfileHandler(profileService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (public, stricter rate limit)
	app.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	app.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	// Everything below requires a session
	session := middleware.Session(cfg)

	// Appointment registry
	appointments := app.Group("/appointments", session)
	appointments.Get("/", middleware.Require(domain.OpAppointmentList), appointmentHandler.List)
	appointments.Post("/add", middleware.Require(domain.OpAppointmentCreate), appointmentHandler.Create)
	appointments.Get("/:id", middleware.Require(domain.OpAppointmentDetail), appointmentHandler.Detail)
	appointments.Post("/:id/edit", middleware.Require(domain.OpAppointmentEdit), appointmentHandler.Edit)
	appointments.Get("/:id/delete", middleware.Require(domain.OpAppointmentDelete), appointmentHandler.Delete)

	// Consultation flow. Patients enter through the profile completeness
	// gate; the schedule leg is the doctor's.
	consultation := app.Group("/consultation", session)
	profileGate := middleware.RequireCompleteProfile(patientService)
	consultation.Get("/start", middleware.Require(domain.OpConsultationForm), profileGate, consultationHandler.Specialties)
	consultation.Post("/request", middleware.Require(domain.OpConsultationRequest), profileGate, consultationHandler.Request)
	consultation.Post("/:id/schedule", middleware.Require(domain.OpConsultationSchedule), consultationHandler.Schedule)

	// Patient self-service
	patients := app.Group("/patients", session, middleware.Require(domain.OpProfileComplete))
	patients.Get("/complete-profile", patientHandler.GetOwnProfile)
	patients.Post("/complete-profile", patientHandler.CompleteProfile)

	// Inbox
	inbox := app.Group("/inbox", session, middleware.Require(domain.OpInboxRead), middleware.NoCacheHeaders())
	inbox.Get("/", inboxHandler.List)
	inbox.Get("/:id", inboxHandler.Detail)
	inbox.Get("/:id/read", inboxHandler.MarkRead)

	// Profile
	app.Get("/profile", session, middleware.Require(domain.OpProfileView), profileHandler.Get)
	app.Post("/profile", session, middleware.Require(domain.OpProfileUpdate), profileHandler.Update)

	// Dashboards
	app.Get("/patient/dashboard", session, middleware.Require(domain.OpPatientDashboard), middleware.NoCacheHeaders(), dashboardHandler.Patient)
	app.Get("/doctor/dashboard", session, middleware.Require(domain.OpDoctorDashboard), middleware.NoCacheHeaders(), dashboardHandler.Doctor)
	app.Get("/admin", session, middleware.Require(domain.OpAdminDashboard), middleware.NoCacheHeaders(), dashboardHandler.Admin)

	// Admin registries
	adminPatients := app.Group("/admin/patients", session, middleware.Require(domain.OpPatientAdmin))
	adminPatients.Get("/", patientAdminHandler.List)
	adminPatients.Post("/add", patientAdminHandler.Add)
	adminPatients.Get("/:id", patientAdminHandler.Get)
	adminPatients.Post("/:id/edit", patientAdminHandler.Edit)
	adminPatients.Get("/:id/delete", patientAdminHandler.Delete)

	adminDoctors := app.Group("/admin/doctors", session, middleware.Require(domain.OpDoctorAdmin))
	adminDoctors.Get("/", doctorAdminHandler.List)
	adminDoctors.Post("/add", doctorAdminHandler.Add)
	adminDoctors.Get("/:id", doctorAdminHandler.Get)
	adminDoctors.Post("/:id/edit", doctorAdminHandler.Edit)
	adminDoctors.Get("/:id/delete", doctorAdminHandler.Delete)

	// Doctor lookup for the consultation form. Staff listings change rarely,
	// so responses carry a short public cache.
	app.Get("/api/doctors", session, middleware.Require(domain.OpDoctorLookup), middleware.CacheControl(5*time.Minute), doctorHandler.BySpecialty)
}
