package routes

import (
	"log"

	"attendance-tracker-backend/internal/api/handlers"
	"attendance-tracker-backend/internal/api/middleware"
	"attendance-tracker-backend/internal/auth"
	"attendance-tracker-backend/internal/config"
	"attendance-tracker-backend/internal/repository"
	"attendance-tracker-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	organizationRepo := repository.NewOrganizationRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	// Initialize services
	organizationService := service.NewOrganizationService(organizationRepo, validator)
	employeeService := service.NewEmployeeService(employeeRepo, organizationRepo, validator)
	profileService := service.NewProfileService(profileRepo, employeeRepo, organizationRepo, validator)
	attendanceService := service.NewAttendanceService(attendanceRepo, employeeRepo)

	// Initialize token verification. A missing provider section means only
	// self-issued tokens are accepted.
	authConfig, err := auth.LoadAuthConfig(cfg.AuthConfigPath)
	if err != nil {
		log.Printf("Warning: Failed to load auth config: %v", err)
		authConfig = &auth.AuthConfig{}
	}
	authService := auth.NewService(authConfig, cfg.JWTSecret, cfg.JWTAccessMinutes, profileRepo)
	authMiddleware := auth.NewMiddleware(authService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	userHandler := handlers.NewUserHandler(profileService)
	authHandler := handlers.NewAuthHandler(profileService, authService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// API v1 routes - All endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())

	{
		v1.GET("/me", authHandler.Me)

		// Organization routes
		organizations := v1.Group("/organizations")
		{
			organizations.GET("", organizationHandler.ListOrganizations)
			organizations.POST("", organizationHandler.CreateOrganization)
			organizations.GET("/:id", organizationHandler.GetOrganization)
			organizations.PUT("/:id", organizationHandler.UpdateOrganization)
			organizations.DELETE("/:id", organizationHandler.DeleteOrganization)
		}

		// Employee routes
		employees := v1.Group("/employees")
		{
			employees.GET("", employeeHandler.ListEmployees)
			employees.POST("", employeeHandler.CreateEmployee)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.POST("/assign-manager", userHandler.AssignManager)
		}

		// Attendance routes
		attendance := v1.Group("/attendance")
		{
			attendance.GET("", attendanceHandler.ListAttendance)
			attendance.POST("/check-in", attendanceHandler.CheckIn)
			attendance.POST("/check-out", attendanceHandler.CheckOut)
			attendance.POST("/mark-absent", attendanceHandler.MarkAbsent)
			attendance.GET("/summary", attendanceHandler.DailySummary)
			attendance.GET("/roster", attendanceHandler.DailyRoster)
		}
	}

	return router
}
