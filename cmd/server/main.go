package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"alcyxob/gym-api/internal/api" // Import API package
	"alcyxob/gym-api/internal/config"
	"alcyxob/gym-api/internal/repository/postgres"
	"alcyxob/gym-api/internal/service"

	"github.com/gin-gonic/gin"
)

// @title Gym Management API
// @version 1.0
// @description API for managing gym trainers, session schedules, attendance, and diet/exercise plans.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Gym API Server...")
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		// Only print relevant ones or be careful with printing all in production logs if sensitive
		if strings.HasPrefix(pair[0], "JWT_") || strings.HasPrefix(pair[0], "DATABASE_") || strings.HasPrefix(pair[0], "SERVER_") {
			log.Printf("ENV: %s = %s", pair[0], pair[1])
		}
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	db, err := postgres.ConnectDB(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("FATAL: Could not connect to PostgreSQL: %v", err)
	}
	defer func() {
		log.Println("Closing database connections...")
		if err := postgres.DisconnectDB(db); err != nil {
			log.Printf("ERROR: Failed to close database connections: %v", err)
		}
	}()
	log.Println("Database connection established.")

	// --- Schema Migration ---
	log.Println("Running schema migration...")
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("FATAL: Schema migration failed: %v", err)
	}
	log.Println("Schema migration completed.")

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := postgres.NewPostgresUserRepository(db)
	trainerRepo := postgres.NewPostgresTrainerRepository(db)
	sessionRepo := postgres.NewPostgresSessionRepository(db)
	attendanceRepo := postgres.NewPostgresAttendanceRepository(db)
	dietPlanRepo := postgres.NewPostgresDietPlanRepository(db)
	exercisePlanRepo := postgres.NewPostgresExercisePlanRepository(db)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	// Pass JWT config directly
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	trainerService := service.NewTrainerService(trainerRepo, userRepo)
	sessionService := service.NewSessionService(sessionRepo, userRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, sessionRepo, userRepo)
	planService := service.NewPlanService(dietPlanRepo, exercisePlanRepo, trainerRepo, userRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	// Pass services to the route setup function
	api.SetupRoutes(router, cfg.JWT.Secret, authService, trainerService, sessionService, attendanceService, planService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the requests it is currently handling
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
