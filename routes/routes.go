package routes

import (
	"net/http"

	"github.com/bittarwork/hospital-management-system-sub001/cache"
	"github.com/bittarwork/hospital-management-system-sub001/config"
	"github.com/bittarwork/hospital-management-system-sub001/controllers"
	"github.com/bittarwork/hospital-management-system-sub001/handlers"
	"github.com/bittarwork/hospital-management-system-sub001/middlewares"
	"github.com/bittarwork/hospital-management-system-sub001/repositories"
	"github.com/bittarwork/hospital-management-system-sub001/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://hospital.example.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	patientRepo := repositories.NewPatientRepository(cache)
	doctorRepo := repositories.NewDoctorRepository(cache)
	appointmentRepo := repositories.NewAppointmentRepository(cache)
	medicalRecordRepo := repositories.NewMedicalRecordRepository(cache)
	invoiceRepo := repositories.NewInvoiceRepository(cache)

	patientHandler := handlers.NewPatientHandler(services.NewPatientService(patientRepo))
	doctorHandler := handlers.NewDoctorHandler(services.NewDoctorService(doctorRepo))
	appointmentHandler := handlers.NewAppointmentHandler(services.NewAppointmentService(appointmentRepo))
	medicalRecordHandler := handlers.NewMedicalRecordHandler(services.NewMedicalRecordService(medicalRecordRepo))
	invoiceHandler := handlers.NewInvoiceHandler(services.NewInvoiceService(invoiceRepo, appointmentRepo, patientRepo, config.SMTP))

	// Register routes
	controllers.SetupHospitalRoutes(
		router,
		patientHandler,
		doctorHandler,
		appointmentHandler,
		medicalRecordHandler,
		invoiceHandler,
	)

	controllers.SetupRootRoute(router)

	return router
}
