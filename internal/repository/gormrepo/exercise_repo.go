package gormrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// gormExerciseRepository implements repository.ExerciseRepository.
type gormExerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates a new template-exercise repository backed by gorm.
func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &gormExerciseRepository{db: db}
}

func (r *gormExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Name == "" || exercise.UserID == "" {
		return "", errors.New("exercise name and user ID are required")
	}
	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		return "", err
	}
	return exercise.ID, nil
}

func (r *gormExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.db.WithContext(ctx).First(&exercise, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *gormExerciseRepository) ListByDay(ctx context.Context, dayID string) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	err := r.db.WithContext(ctx).
		Where("day_id = ?", dayID).
		Order("created_at ASC").
		Find(&exercises).Error
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *gormExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	result := r.db.WithContext(ctx).Model(&domain.Exercise{}).
		Where("id = ?", exercise.ID).
		Updates(map[string]any{
			"name":  exercise.Name,
			"sets":  exercise.Sets,
			"reps":  exercise.Reps,
			"notes": exercise.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormExerciseRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Exercise{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
