// File: healthguard/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthguard/config"
	"healthguard/cron"
	"healthguard/database"
	appointmentRepoPkg "healthguard/database/repository/appointment"
	doctorRepoPkg "healthguard/database/repository/doctor"
	feedbackRepoPkg "healthguard/database/repository/feedback"
	medicationRepoPkg "healthguard/database/repository/medication"
	patientRepoPkg "healthguard/database/repository/patient"
	reminderRepoPkg "healthguard/database/repository/reminder"
	reportRepoPkg "healthguard/database/repository/report"
	userRepoPkg "healthguard/database/repository/user"
	"healthguard/handlers"
	"healthguard/routes"
	"healthguard/services/appointment"
	"healthguard/services/auth"
	"healthguard/services/dashboard"
	"healthguard/services/feedback"
	"healthguard/services/mailer"
	"healthguard/services/medication"
	"healthguard/services/patient"
	"healthguard/services/reminder"
	"healthguard/services/report"
	"healthguard/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	reminderRepo := reminderRepoPkg.NewMongoReminderRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	medicationRepo := medicationRepoPkg.NewMongoMedicationRepo()
	reportRepo := reportRepoPkg.NewMongoReportRepo()
	feedbackRepo := feedbackRepoPkg.NewMongoFeedbackRepo()

	// services.
	mailSvc := mailer.NewSendGridMailer()

	authService := &auth.DefaultAuthService{
		Patients: patientRepo,
		Doctors:  doctorRepo,
		Users:    userRepo,
		Mailer:   mailSvc,
	}
	patientService := &patient.DefaultPatientService{
		Patients: patientRepo,
		Doctors:  doctorRepo,
		Mailer:   mailSvc,
	}
	reminderService := &reminder.DefaultReminderService{
		Repo:        reminderRepo,
		Mailer:      mailSvc,
		MaxFailures: config.AppConfig.ReminderMaxFailures,
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Appointments: appointmentRepo,
		Patients:     patientRepo,
	}
	medicationService := &medication.DefaultMedicationService{
		Medications: medicationRepo,
		Patients:    patientRepo,
	}
	reportService := &report.DefaultReportService{
		Reports:  reportRepo,
		Patients: patientRepo,
	}
	feedbackService := &feedback.DefaultFeedbackService{
		Feedback: feedbackRepo,
	}
	dashboardService := &dashboard.DefaultDashboardService{
		Patients:     patientRepo,
		Doctors:      doctorRepo,
		Appointments: appointmentRepo,
		Medications:  medicationRepo,
		Reports:      reportRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:         &handlers.AuthHandler{Auth: authService},
		Patients:     &handlers.PatientHandler{Patients: patientService},
		Reminders:    &handlers.ReminderHandler{Reminders: reminderService},
		Appointments: &handlers.AppointmentHandler{Appointments: appointmentService},
		Medications:  &handlers.MedicationHandler{Medications: medicationService},
		Reports:      &handlers.ReportHandler{Reports: reportService},
		Feedback:     &handlers.FeedbackHandler{Feedback: feedbackService},
		Dashboard:    &handlers.DashboardHandler{Dashboard: dashboardService},
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder sweeps.
	cron.InitReminderWorker(reminderService)
	cron.InitReminderScheduler()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
