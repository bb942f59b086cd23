package api

import (
	"net/http"

	"alcyxob/gym-api/internal/domain" // Needed for RoleMiddleware
	"alcyxob/gym-api/internal/service"

	"github.com/gin-gonic/gin"
	// swaggerFiles "github.com/swaggo/files"
	// ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	trainerService service.TrainerService,
	sessionService service.SessionService,
	attendanceService service.AttendanceService,
	planService service.PlanService,
) {
	authHandler := NewAuthHandler(authService)
	trainerHandler := NewTrainerHandler(trainerService)
	sessionHandler := NewSessionHandler(sessionService)
	attendanceHandler := NewAttendanceHandler(attendanceService)
	planHandler := NewPlanHandler(planService)

	authMiddleware := AuthMiddleware(jwtSecret)
	router.Use(RequestIDMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
		})

		trainers := protected.Group("/trainers")
		{
			// --- Trainer Management ---
			// POST /api/v1/trainers/add-trainer - admins hire into their branch
			trainers.POST("/add-trainer", RoleMiddleware(domain.RoleAdmin, domain.RoleSuperadmin), trainerHandler.AddTrainer)
			// GET /api/v1/trainers - listing scoped by role inside the service
			trainers.GET("", trainerHandler.GetTrainers)
			// GET /api/v1/trainers/{trainerId} - open to any authenticated user
			trainers.GET("/:trainerId", trainerHandler.GetTrainerByID)
			// PUT /api/v1/trainers/{trainerId}
			trainers.PUT("/:trainerId", RoleMiddleware(domain.RoleAdmin, domain.RoleSuperadmin), trainerHandler.UpdateTrainer)
			// DELETE /api/v1/trainers/{trainerId}
			trainers.DELETE("/:trainerId", RoleMiddleware(domain.RoleAdmin, domain.RoleSuperadmin), trainerHandler.DeleteTrainer)

			// --- Session Scheduling ---
			// POST /api/v1/trainers/sessions
			trainers.POST("/sessions", RoleMiddleware(domain.RoleTrainer), sessionHandler.CreateSession)
			// GET /api/v1/trainers/sessions - the trainer's own schedule
			trainers.GET("/sessions", RoleMiddleware(domain.RoleTrainer), sessionHandler.GetTrainerSessions)
			// GET /api/v1/trainers/public-sessions - browsing is open to everyone
			trainers.GET("/public-sessions", sessionHandler.GetPublicSessions)
			// PUT /api/v1/trainers/sessions/{sessionId}
			trainers.PUT("/sessions/:sessionId", RoleMiddleware(domain.RoleTrainer), sessionHandler.UpdateSession)
			// DELETE /api/v1/trainers/sessions/{sessionId}
			trainers.DELETE("/sessions/:sessionId", RoleMiddleware(domain.RoleTrainer), sessionHandler.DeleteSession)

			// --- Attendance ---
			// Members book themselves, trainers manage their own sessions;
			// the service layer decides which path applies.
			// POST /api/v1/trainers/sessions/{sessionId}/attendance
			trainers.POST("/sessions/:sessionId/attendance", attendanceHandler.MarkAttendance)
			// GET /api/v1/trainers/sessions/{sessionId}/attendance
			trainers.GET("/sessions/:sessionId/attendance", attendanceHandler.GetSessionAttendance)
			// PUT /api/v1/trainers/sessions/attendance/{attendanceId}
			trainers.PUT("/sessions/attendance/:attendanceId", attendanceHandler.UpdateAttendance)
			// DELETE /api/v1/trainers/sessions/attendance/{attendanceId}
			trainers.DELETE("/sessions/attendance/:attendanceId", attendanceHandler.DeleteAttendance)

			// --- Plan Assignment ---
			// POST /api/v1/trainers/diet-plans
			trainers.POST("/diet-plans", RoleMiddleware(domain.RoleTrainer), planHandler.CreateDietPlan)
			// GET /api/v1/trainers/diet-plans
			trainers.GET("/diet-plans", RoleMiddleware(domain.RoleTrainer), planHandler.GetDietPlans)
			// PUT /api/v1/trainers/diet-plans/{planId}
			trainers.PUT("/diet-plans/:planId", RoleMiddleware(domain.RoleTrainer), planHandler.UpdateDietPlan)
			// DELETE /api/v1/trainers/diet-plans/{planId}
			trainers.DELETE("/diet-plans/:planId", RoleMiddleware(domain.RoleTrainer), planHandler.DeleteDietPlan)

			// POST /api/v1/trainers/exercise-plans
			trainers.POST("/exercise-plans", RoleMiddleware(domain.RoleTrainer), planHandler.CreateExercisePlan)
			// GET /api/v1/trainers/exercise-plans
			trainers.GET("/exercise-plans", RoleMiddleware(domain.RoleTrainer), planHandler.GetExercisePlans)
			// PUT /api/v1/trainers/exercise-plans/{planId}
			trainers.PUT("/exercise-plans/:planId", RoleMiddleware(domain.RoleTrainer), planHandler.UpdateExercisePlan)
			// DELETE /api/v1/trainers/exercise-plans/{planId}
			trainers.DELETE("/exercise-plans/:planId", RoleMiddleware(domain.RoleTrainer), planHandler.DeleteExercisePlan)
		}
	}
}
