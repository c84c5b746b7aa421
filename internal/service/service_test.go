package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"liftlog/internal/repository"
	"liftlog/internal/repository/gormrepo"
)

// testEnv wires the full service stack against an isolated in-memory
// database. Repositories are exposed for direct state inspection.
type testEnv struct {
	auth       AuthService
	days       DayService
	splits     SplitService
	schedule   ScheduleService
	runs       RunService
	workouts   WorkoutService
	logging    LoggingService
	bodyweight BodyweightService

	exerciseRepo repository.ExerciseRepository
	runRepo      repository.RunRepository
	workoutRepo  repository.WorkoutRepository
	instanceRepo repository.WorkoutExerciseRepository
	logRepo      repository.LogRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Each test gets its own named in-memory database so parallel or
	// sequential tests never see each other's rows.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gormrepo.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	dayRepo := gormrepo.NewDayRepository(gdb)
	exerciseRepo := gormrepo.NewExerciseRepository(gdb)
	splitRepo := gormrepo.NewSplitRepository(gdb)
	splitDayRepo := gormrepo.NewSplitDayRepository(gdb)
	runRepo := gormrepo.NewRunRepository(gdb)
	overrideRepo := gormrepo.NewOverrideRepository(gdb)
	workoutRepo := gormrepo.NewWorkoutRepository(gdb)
	instanceRepo := gormrepo.NewWorkoutExerciseRepository(gdb)
	logRepo := gormrepo.NewLogRepository(gdb)
	bodyweightRepo := gormrepo.NewBodyweightRepository(gdb)

	schedule := NewScheduleService(splitRepo, splitDayRepo, runRepo, overrideRepo, dayRepo)
	workouts := NewWorkoutService(workoutRepo, instanceRepo, exerciseRepo, schedule)

	return &testEnv{
		auth:       NewAuthService(gormrepo.NewUserRepository(gdb), "test-secret", time.Hour),
		days:       NewDayService(dayRepo, exerciseRepo),
		splits:     NewSplitService(splitRepo, splitDayRepo, dayRepo),
		schedule:   schedule,
		runs:       NewRunService(runRepo, splitRepo, splitDayRepo),
		workouts:   workouts,
		logging:    NewLoggingService(logRepo, instanceRepo, exerciseRepo, workoutRepo, workouts),
		bodyweight: NewBodyweightService(bodyweightRepo),

		exerciseRepo: exerciseRepo,
		runRepo:      runRepo,
		workoutRepo:  workoutRepo,
		instanceRepo: instanceRepo,
		logRepo:      logRepo,
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
