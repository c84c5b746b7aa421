package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"liftlog/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	dayService service.DayService,
	splitService service.SplitService,
	scheduleService service.ScheduleService,
	runService service.RunService,
	workoutService service.WorkoutService,
	loggingService service.LoggingService,
	bodyweightService service.BodyweightService,
) {
	authHandler := NewAuthHandler(authService)
	dayHandler := NewDayHandler(dayService)
	splitHandler := NewSplitHandler(splitService, runService, scheduleService)
	workoutHandler := NewWorkoutHandler(workoutService, loggingService, scheduleService)
	bodyweightHandler := NewBodyweightHandler(bodyweightService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

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
		// --- Day Template Routes ---
		dayGroup := protected.Group("/days")
		{
			dayGroup.POST("", dayHandler.CreateDay)
			dayGroup.GET("", dayHandler.ListDays)
			dayGroup.PUT("/:dayId", dayHandler.RenameDay)
			dayGroup.DELETE("/:dayId", dayHandler.DeleteDay)
			dayGroup.POST("/:dayId/exercises", dayHandler.AddExercise)
			dayGroup.GET("/:dayId/exercises", dayHandler.ListExercises)
		}
		protected.PUT("/exercises/:exerciseId", dayHandler.UpdateExercise)
		protected.DELETE("/exercises/:exerciseId", dayHandler.DeleteExercise)

		// --- Split Routes ---
		splitGroup := protected.Group("/splits")
		{
			splitGroup.POST("", splitHandler.CreateSplit)
			splitGroup.GET("", splitHandler.ListSplits)
			splitGroup.PUT("/:splitId", splitHandler.UpdateSplit)
			splitGroup.DELETE("/:splitId", splitHandler.DeleteSplit)
			splitGroup.PUT("/:splitId/slots", splitHandler.AssignSlot)
			splitGroup.GET("/:splitId/slots", splitHandler.ListSlots)
			splitGroup.DELETE("/:splitId/slots/:slotId", splitHandler.ClearSlot)
			splitGroup.POST("/:splitId/runs", splitHandler.ScheduleRun)
		}
		protected.PUT("/runs/:runId", splitHandler.RescheduleRun)
		protected.GET("/runs", splitHandler.ListActiveRuns)

		// --- Schedule Override Routes ---
		protected.PUT("/overrides/:date", splitHandler.SetOverride)
		protected.DELETE("/overrides/:date", splitHandler.ClearOverride)

		// --- Workout Routes (keyed by date) ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("/:date", workoutHandler.GetDayView)
			workoutGroup.POST("/:date", workoutHandler.MaterializeWorkout)
			workoutGroup.PUT("/:date/completed", workoutHandler.CompleteWorkout)
			workoutGroup.POST("/:date/sets/toggle", workoutHandler.ToggleSet)
			workoutGroup.POST("/:date/sets", workoutHandler.SaveSets)
			workoutGroup.POST("/:date/exercises", workoutHandler.AddAdHocExercise)
		}
		protected.PUT("/instances/:instanceId", workoutHandler.UpdateInstance)
		protected.DELETE("/instances/:instanceId", workoutHandler.DeleteInstance)

		// --- Bodyweight Routes ---
		protected.GET("/bodyweight/:date", bodyweightHandler.GetBodyweight)
		protected.PUT("/bodyweight/:date", bodyweightHandler.UpsertBodyweight)
	}
}
