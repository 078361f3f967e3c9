package routes

import (
	"GautamiHMS/cache"
	"GautamiHMS/config"
	"GautamiHMS/controllers"
	"GautamiHMS/handlers"
	"GautamiHMS/middlewares"
	"GautamiHMS/repositories"
	"GautamiHMS/services"
	"net/http"

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
		AllowedOrigins:   []string{"http://localhost:3000", "https://gautamihospital.in", "https://staging.gautamihospital.in"},
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

	// Initialize repositories
	patientRepo := repositories.NewPatientRepository(cache)
	doctorRepo := repositories.NewDoctorRepository(cache)
	admissionRepo := repositories.NewAdmissionRepository(cache)
	billingRepo := repositories.NewBillingRepository(cache)
	otRepo := repositories.NewOTRepository(cache)
	bedRepo := repositories.NewBedRepository(db)
	summaryRepo := repositories.NewSummaryRepository(db)
	changeLogRepo := repositories.NewChangeLogRepository(db)
	userRepo := repositories.NewUserRepository(db, cache)

	// Services
	patientService := services.NewPatientService(patientRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	admissionService := services.NewAdmissionService(admissionRepo)
	billingService := services.NewBillingService(billingRepo)
	bedService := services.NewBedService(bedRepo)
	otService := services.NewOTService(otRepo, summaryRepo)
	summaryService := services.NewSummaryService(summaryRepo)
	changeLogService := services.NewChangeLogService(changeLogRepo)
	userService := services.NewUserService(userRepo)
	ipdService := services.NewIPDService(patientRepo, admissionRepo, billingRepo, bedRepo, summaryRepo, changeLogRepo)

	// Handlers
	patientHandler := handlers.NewPatientHandler(patientService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	admissionHandler := handlers.NewAdmissionHandler(ipdService, admissionService)
	bedHandler := handlers.NewBedHandler(bedService)
	billingHandler := handlers.NewBillingHandler(billingService)
	otHandler := handlers.NewOTHandler(otService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	changeLogHandler := handlers.NewChangeLogHandler(changeLogService)
	invoiceHandler := handlers.NewInvoiceHandler(admissionService, billingService)
	authHandler := handlers.NewAuthHandler(userService)

	// Register routes
	controllers.SetupHospitalRoutes(
		router,
		patientHandler,
		doctorHandler,
		admissionHandler,
		bedHandler,
		billingHandler,
		otHandler,
		summaryHandler,
		changeLogHandler,
		invoiceHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
