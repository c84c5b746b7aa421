package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"liftlog/internal/api"
	"liftlog/internal/config"
	"liftlog/internal/repository/gormrepo"
	"liftlog/internal/service"
)

func main() {
	log.Println("Starting LiftLog server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database ---
	db, err := gormrepo.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("FATAL: Could not open database: %v", err)
	}
	log.Println("Database ready.")

	// --- Repositories ---
	userRepo := gormrepo.NewUserRepository(db)
	dayRepo := gormrepo.NewDayRepository(db)
	exerciseRepo := gormrepo.NewExerciseRepository(db)
	splitRepo := gormrepo.NewSplitRepository(db)
	splitDayRepo := gormrepo.NewSplitDayRepository(db)
	runRepo := gormrepo.NewRunRepository(db)
	overrideRepo := gormrepo.NewOverrideRepository(db)
	workoutRepo := gormrepo.NewWorkoutRepository(db)
	instanceRepo := gormrepo.NewWorkoutExerciseRepository(db)
	logRepo := gormrepo.NewLogRepository(db)
	bodyweightRepo := gormrepo.NewBodyweightRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	dayService := service.NewDayService(dayRepo, exerciseRepo)
	splitService := service.NewSplitService(splitRepo, splitDayRepo, dayRepo)
	scheduleService := service.NewScheduleService(splitRepo, splitDayRepo, runRepo, overrideRepo, dayRepo)
	runService := service.NewRunService(runRepo, splitRepo, splitDayRepo)
	workoutService := service.NewWorkoutService(workoutRepo, instanceRepo, exerciseRepo, scheduleService)
	loggingService := service.NewLoggingService(logRepo, instanceRepo, exerciseRepo, workoutRepo, workoutService)
	bodyweightService := service.NewBodyweightService(bodyweightRepo)

	// --- HTTP ---
	router := gin.Default()
	api.SetupRoutes(
		router, cfg.JWT.Secret,
		authService, dayService, splitService, scheduleService,
		runService, workoutService, loggingService, bodyweightService,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
