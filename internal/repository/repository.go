package repository

import (
	"context"

	"liftlog/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors from other failures.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// DayRepository defines the interface for day templates.
// Delete cascades to the day's template exercises.
type DayRepository interface {
	Create(ctx context.Context, day *domain.Day) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Day, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Day, error)
	Update(ctx context.Context, day *domain.Day) error
	Delete(ctx context.Context, id, userID string) error
}

// ExerciseRepository defines the interface for template exercises.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	ListByDay(ctx context.Context, dayID string) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id string) error
}

// SplitRepository defines the interface for split definitions.
type SplitRepository interface {
	Create(ctx context.Context, split *domain.Split) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Split, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Split, error)
	Update(ctx context.Context, split *domain.Split) error
	Delete(ctx context.Context, id, userID string) error
}

// SplitDayRepository defines the interface for split assignment slots.
type SplitDayRepository interface {
	Upsert(ctx context.Context, slot *domain.SplitDay) (string, error)
	ListBySplit(ctx context.Context, splitID string) ([]domain.SplitDay, error)
	Delete(ctx context.Context, id string) error
}

// RunRepository defines the interface for split runs.
type RunRepository interface {
	Create(ctx context.Context, run *domain.SplitRun) (string, error)
	GetByID(ctx context.Context, id string) (*domain.SplitRun, error)
	ListActiveByUser(ctx context.Context, userID string) ([]domain.SplitRun, error)
	Update(ctx context.Context, run *domain.SplitRun) error
}

// OverrideRepository defines the interface for per-date schedule overrides.
type OverrideRepository interface {
	Get(ctx context.Context, userID, date string) (*domain.DayOverride, error)
	Set(ctx context.Context, override *domain.DayOverride) (string, error)
	Clear(ctx context.Context, userID, date string) error
}

// WorkoutRepository defines the interface for materialized workouts.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	GetByUserAndDate(ctx context.Context, userID, date string) (*domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
}

// WorkoutExerciseRepository defines the interface for per-date exercise
// instance snapshots.
type WorkoutExerciseRepository interface {
	Create(ctx context.Context, instance *domain.WorkoutExercise) (string, error)
	GetByID(ctx context.Context, id string) (*domain.WorkoutExercise, error)
	ListByWorkout(ctx context.Context, workoutID string) ([]domain.WorkoutExercise, error)
	Update(ctx context.Context, instance *domain.WorkoutExercise) error
	Delete(ctx context.Context, id string) error
}

// LogRepository defines the interface for append-only set logs.
type LogRepository interface {
	Insert(ctx context.Context, log *domain.Log) (string, error)
	// InsertMany writes all rows in one request; nothing is written on error.
	InsertMany(ctx context.Context, logs []*domain.Log) error
	GetByID(ctx context.Context, id string) (*domain.Log, error)
	// ListByWorkout returns logs ordered by exercise then set number.
	ListByWorkout(ctx context.Context, workoutID string) ([]domain.Log, error)
	Update(ctx context.Context, log *domain.Log) error
}

// BodyweightRepository defines the interface for bodyweight entries.
type BodyweightRepository interface {
	GetByUserAndDate(ctx context.Context, userID, date string) (*domain.Bodyweight, error)
	Create(ctx context.Context, entry *domain.Bodyweight) (string, error)
	Update(ctx context.Context, entry *domain.Bodyweight) error
}
