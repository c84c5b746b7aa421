package gormrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// gormWorkoutRepository implements repository.WorkoutRepository.
type gormWorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new workout repository backed by gorm.
func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &gormWorkoutRepository{db: db}
}

func (r *gormWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	if workout.UserID == "" || workout.Date == "" {
		return "", errors.New("user ID and date are required")
	}
	if workout.ID == "" {
		workout.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(workout).Error; err != nil {
		return "", err
	}
	return workout.ID, nil
}

func (r *gormWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.db.WithContext(ctx).First(&workout, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *gormWorkoutRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *gormWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	result := r.db.WithContext(ctx).Model(&domain.Workout{}).
		Where("id = ? AND user_id = ?", workout.ID, workout.UserID).
		Updates(map[string]any{
			"day_id":    workout.DayID,
			"completed": workout.Completed,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// gormWorkoutExerciseRepository implements repository.WorkoutExerciseRepository.
type gormWorkoutExerciseRepository struct {
	db *gorm.DB
}

// NewWorkoutExerciseRepository creates a new instance-snapshot repository
// backed by gorm.
func NewWorkoutExerciseRepository(db *gorm.DB) repository.WorkoutExerciseRepository {
	return &gormWorkoutExerciseRepository{db: db}
}

func (r *gormWorkoutExerciseRepository) Create(ctx context.Context, instance *domain.WorkoutExercise) (string, error) {
	if instance.WorkoutID == "" || instance.Name == "" {
		return "", errors.New("workout ID and exercise name are required")
	}
	if instance.ID == "" {
		instance.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(instance).Error; err != nil {
		return "", err
	}
	return instance.ID, nil
}

func (r *gormWorkoutExerciseRepository) GetByID(ctx context.Context, id string) (*domain.WorkoutExercise, error) {
	var instance domain.WorkoutExercise
	err := r.db.WithContext(ctx).First(&instance, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &instance, nil
}

func (r *gormWorkoutExerciseRepository) ListByWorkout(ctx context.Context, workoutID string) ([]domain.WorkoutExercise, error) {
	var instances []domain.WorkoutExercise
	err := r.db.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Order("created_at ASC").
		Find(&instances).Error
	if err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *gormWorkoutExerciseRepository) Update(ctx context.Context, instance *domain.WorkoutExercise) error {
	result := r.db.WithContext(ctx).Model(&domain.WorkoutExercise{}).
		Where("id = ?", instance.ID).
		Updates(map[string]any{
			"exercise_id":  instance.ExerciseID,
			"name":         instance.Name,
			"sets":         instance.Sets,
			"notes":        instance.Notes,
			"completed":    instance.Completed,
			"completed_at": instance.CompletedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormWorkoutExerciseRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.WorkoutExercise{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
