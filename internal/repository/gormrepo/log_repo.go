package gormrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// gormLogRepository implements repository.LogRepository.
type gormLogRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new set-log repository backed by gorm.
func NewLogRepository(db *gorm.DB) repository.LogRepository {
	return &gormLogRepository{db: db}
}

func (r *gormLogRepository) Insert(ctx context.Context, log *domain.Log) (string, error) {
	if log.WorkoutID == "" || log.ExerciseID == "" {
		return "", errors.New("workout ID and exercise ID are required")
	}
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return "", err
	}
	return log.ID, nil
}

// InsertMany writes all rows in a single batched statement. On failure
// nothing is persisted, which keeps bulk saves all-or-nothing.
func (r *gormLogRepository) InsertMany(ctx context.Context, logs []*domain.Log) error {
	if len(logs) == 0 {
		return nil
	}
	for _, log := range logs {
		if log.WorkoutID == "" || log.ExerciseID == "" {
			return errors.New("workout ID and exercise ID are required")
		}
		if log.ID == "" {
			log.ID = uuid.NewString()
		}
	}
	return r.db.WithContext(ctx).Create(logs).Error
}

func (r *gormLogRepository) GetByID(ctx context.Context, id string) (*domain.Log, error) {
	var log domain.Log
	err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *gormLogRepository) ListByWorkout(ctx context.Context, workoutID string) ([]domain.Log, error) {
	var logs []domain.Log
	err := r.db.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Order("exercise_id ASC, set_number ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *gormLogRepository) Update(ctx context.Context, log *domain.Log) error {
	result := r.db.WithContext(ctx).Model(&domain.Log{}).
		Where("id = ?", log.ID).
		Updates(map[string]any{
			"reps":      log.Reps,
			"weight":    log.Weight,
			"notes":     log.Notes,
			"completed": log.Completed,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
