package services

import (
	"context"
	"log"
	"time"

	"clinicdesk/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// ReminderService sends next-day appointment reminders on a daily schedule
type ReminderService struct {
	appointmentRepo repositories.AppointmentRepository
	notifyService   *NotificationService
	cron            *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(
	appointmentRepo repositories.AppointmentRepository,
	notifyService *NotificationService,
) *ReminderService {
	return &ReminderService{
		appointmentRepo: appointmentRepo,
		notifyService:   notifyService,
		cron:            cron.New(),
	}
}

// Start schedules the daily reminder run at 08:00 server time
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc("0 8 * * *", func() {
		if err := s.RunOnce(context.Background()); err != nil {
			log.Printf("❌ Reminder run failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Appointment reminder scheduler started (daily at 08:00)")
	return nil
}

// Stop halts the scheduler and waits for a running job to finish
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Appointment reminder scheduler stopped")
}

// RunOnce sends reminders for every appointment scheduled tomorrow
func (s *ReminderService) RunOnce(ctx context.Context) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	to := from.AddDate(0, 0, 1)

	appointments, err := s.appointmentRepo.ListInDateRange(ctx, from, to)
	if err != nil {
		return err
	}

	sent := 0
	for _, appointment := range appointments {
		if appointment.Patient == nil || appointment.Doctor == nil {
			continue
		}
		if err := s.notifyService.AppointmentReminder(ctx, appointment, appointment.Patient, appointment.Doctor); err != nil {
			log.Printf("⚠️ Reminder for appointment %d failed: %v", appointment.ID, err)
			continue
		}
		sent++
	}

	log.Printf("✅ Reminder run complete: %d appointment(s), %d reminder(s) sent", len(appointments), sent)
	return nil
}
