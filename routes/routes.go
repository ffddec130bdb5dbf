package routes

import (
	"net/http"
	"time"

	"healthguard/handlers"
	"healthguard/middleware"
	"healthguard/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and password endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.Login)
		api.POST("/doctor/login", hb.Auth.Login)
		api.POST("/doctor/signup", hb.Auth.RegisterDoctor)
		api.POST("/signup", hb.Auth.RegisterUser)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/change-password", middleware.RequireKind(auth.KindPatient), hb.Auth.ChangePassword)
	}
}

// RegisterPatientRoutes registers doctor-facing patient management endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireKind(auth.KindDoctor))
		api.POST("", hb.Patients.Create)
		api.GET("", hb.Patients.List)
		api.GET("/:id", hb.Patients.Get)
		api.PUT("/:id", hb.Patients.Update)
		api.DELETE("/:id", hb.Patients.Delete)
	}
}

// RegisterReminderRoutes registers reminder schedule endpoints.
func RegisterReminderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reminders")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireKind(auth.KindDoctor))
		api.POST("", hb.Reminders.Create)
		api.GET("", hb.Reminders.List)
		api.PUT("/:id", hb.Reminders.Update)
		api.DELETE("/:id", hb.Reminders.Delete)
	}
}

// RegisterAppointmentRoutes registers visit scheduling endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Appointments.List)

		doctor := api.Group("")
		doctor.Use(middleware.RequireKind(auth.KindDoctor))
		doctor.POST("", hb.Appointments.Create)
		doctor.PUT("/:id", hb.Appointments.Update)
		doctor.DELETE("/:id", hb.Appointments.Delete)
	}
}

// RegisterMedicationRoutes registers prescription endpoints.
func RegisterMedicationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/medications")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Medications.List)

		doctor := api.Group("")
		doctor.Use(middleware.RequireKind(auth.KindDoctor))
		doctor.POST("", hb.Medications.Create)
		doctor.PUT("/:id", hb.Medications.Update)
		doctor.DELETE("/:id", hb.Medications.Delete)
	}
}

// RegisterReportRoutes registers health report endpoints.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Reports.List)

		doctor := api.Group("")
		doctor.Use(middleware.RequireKind(auth.KindDoctor))
		doctor.POST("", hb.Reports.Create)
		doctor.DELETE("/:id", hb.Reports.Delete)
	}
}

// RegisterFeedbackRoutes registers the public feedback endpoint.
func RegisterFeedbackRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/feedback", hb.Feedback.Create)
}

// RegisterDashboardRoutes registers aggregate view endpoints.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dashboard")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/patient/:id", hb.Dashboard.Patient)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm HealthGuard"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterReminderRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterMedicationRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterFeedbackRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterHealthRoute(r)
}
