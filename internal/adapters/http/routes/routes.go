package routes

import (
	"lexconnect-api/internal/adapters/http/handlers"
	"lexconnect-api/internal/adapters/http/middleware"
	"lexconnect-api/internal/adapters/persistence/repositories"
	"lexconnect-api/internal/config"
	"lexconnect-api/internal/core/domain"
	"lexconnect-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	lawyerRepo := repositories.NewLawyerRepository(db)
	revokedTokenRepo := repositories.NewRevokedTokenRepository(db)
	caseRepo := repositories.NewCaseRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, revokedTokenRepo, cfg)
	lawyerService := services.NewLawyerService(lawyerRepo)
	caseService := services.NewCaseService(caseRepo, userRepo)
	counselService := services.NewCounselService(cfg.Counsel)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	lawyerHandler := handlers.NewLawyerHandler(lawyerService)
	caseHandler := handlers.NewCaseHandler(caseService)
	counselHandler := handlers.NewCounselHandler(counselService)

	authRequired := middleware.AuthRequired(authService)
	lawyerOnly := middleware.RoleRequired(string(domain.RoleLawyer))
	clientOnly := middleware.RoleRequired(string(domain.RoleClient))

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/logout", authRequired, authHandler.Logout)
	auth.Get("/user", authRequired, authHandler.Me)
	auth.Post("/lawyer-register", middleware.AuthRateLimiter(), authHandler.LawyerRegister)
	auth.Post("/lawyer-login", middleware.AuthRateLimiter(), authHandler.LawyerLogin)

	// Lawyer directory routes
	lawyers := api.Group("/lawyers")
	lawyers.Get("/get-lawyers", authRequired, lawyerHandler.GetLawyers)
	lawyers.Get("/profile/:id", lawyerHandler.GetProfile)
	lawyers.Put("/rating/:id", authRequired, lawyerHandler.Rate)

	// Case routes
	cases := api.Group("/cases")
	cases.Get("/", caseHandler.ListOpen)
	cases.Post("/:clientId/create-case", authRequired, clientOnly, caseHandler.Create)
	cases.Get("/:clientId/cases", authRequired, caseHandler.ListClientCases)
	cases.Get("/:id", caseHandler.GetByID)
	cases.Put("/:id/assign", authRequired, lawyerOnly, caseHandler.Assign)
	cases.Put("/:id/status", authRequired, caseHandler.UpdateStatus)

	// Counsel routes (document scanner + legal chat)
	api.Post("/document-scanner/analyze", counselHandler.Analyze)
	api.Post("/chat", counselHandler.Chat)
}
