package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"clinicdesk/internal/adapters/http/middleware"
	"clinicdesk/internal/adapters/http/routes"
	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"
	"clinicdesk/internal/config"
	"clinicdesk/internal/core/services"
	"clinicdesk/internal/pkg/mailer"

	"github.com/gofiber/fiber/v2"

	_ "clinicdesk/docs" // Swagger docs
)

// @title ClinicDesk API
// @version 1.0
// @description Clinic appointment and consultation scheduling API

// @contact.name API Support
// @contact.email support@clinicdesk.local

// @host localhost:8080
// @BasePath /
// @schemes http

// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the admin account
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed admin account: %v", err)
	}

	// Start the daily appointment reminder scheduler (08:00)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	smtpMailer := mailer.New(mailer.Config{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		From: cfg.SMTP.From,
	})
	notifyService := services.NewNotificationService(messageRepo, smtpMailer)
	reminderService := services.NewReminderService(appointmentRepo, notifyService)
	if err := reminderService.Start(); err != nil {
		log.Fatalf("❌ Failed to start reminder scheduler: %v", err)
	}
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ClinicDesk API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
