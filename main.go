package main

import (
	"log"
	"time"

	"budget-be/internal/cache"
	"budget-be/internal/config"
	"budget-be/internal/controllers"
	"budget-be/internal/database"
	"budget-be/internal/jwt"
	"budget-be/internal/mailer"
	"budget-be/internal/middleware"
	"budget-be/internal/repository"
	"budget-be/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without report cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize mailer (falls back to a logging no-op when SMTP is not configured)
	var mailSender mailer.Mailer
	if cfg.SMTPHost != "" {
		mailSender = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			AppURL:   cfg.AppURL,
		})
	} else {
		log.Println("SMTP not configured, email delivery disabled")
		mailSender = mailer.NewNoopMailer()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, categoryRepo, jwtService, mailSender)
	categoryService := service.NewCategoryService(categoryRepo)
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo, cacheClient)
	reportService := service.NewReportService(transactionRepo, cacheClient)

	// Initialize controllers
	cookieMaxAge := int((time.Duration(cfg.JWTTTL) * time.Hour).Seconds())
	authController := controllers.NewAuthController(authService, cookieMaxAge, cfg.CookieSecure)
	categoryController := controllers.NewCategoryController(categoryService)
	transactionController := controllers.NewTransactionController(transactionService)
	reportController := controllers.NewReportController(reportService)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/signup", authController.Signup)
			auth.GET("/verify", authController.VerifyEmail)
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authController.Logout)
			auth.POST("/forgot-password", authController.ForgotPassword)
			auth.POST("/reset-password", authController.ResetPassword)
		}

		// Protected routes - require a valid session
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.GET("/categories", categoryController.GetCategories)
			protected.POST("/categories", categoryController.CreateCategory)
			protected.DELETE("/categories/:id", categoryController.DeleteCategory)

			protected.GET("/transactions", transactionController.GetTransactions)
			protected.POST("/transactions", transactionController.CreateTransaction)
			protected.GET("/transactions/:id", transactionController.GetTransaction)
			protected.PUT("/transactions/:id", transactionController.UpdateTransaction)
			protected.DELETE("/transactions/:id", transactionController.DeleteTransaction)

			protected.GET("/summary", reportController.Summary)
			protected.GET("/expenses/by-category", reportController.ExpensesByCategory)
			protected.GET("/trends/monthly", reportController.MonthlyTrends)
		}
	}

	log.Println("Server starting on http://localhost:8080")
	router.Run(":8080")
}
