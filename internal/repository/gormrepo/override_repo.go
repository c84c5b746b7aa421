package gormrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// gormOverrideRepository implements repository.OverrideRepository.
type gormOverrideRepository struct {
	db *gorm.DB
}

// NewOverrideRepository creates a new day-override repository backed by gorm.
func NewOverrideRepository(db *gorm.DB) repository.OverrideRepository {
	return &gormOverrideRepository{db: db}
}

func (r *gormOverrideRepository) Get(ctx context.Context, userID, date string) (*domain.DayOverride, error) {
	var override domain.DayOverride
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &override, nil
}

// Set upserts the override for (user, date); the pair is unique.
func (r *gormOverrideRepository) Set(ctx context.Context, override *domain.DayOverride) (string, error) {
	if override.UserID == "" || override.Date == "" {
		return "", errors.New("user ID and date are required")
	}

	var existing domain.DayOverride
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", override.UserID, override.Date).
		First(&existing).Error
	switch {
	case err == nil:
		if updErr := r.db.WithContext(ctx).Model(&domain.DayOverride{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"overridden_day_id": override.OverriddenDayID,
				"original_day_id":   override.OriginalDayID,
				"split_run_id":      override.SplitRunID,
				"note":              override.Note,
			}).Error; updErr != nil {
			return "", updErr
		}
		override.ID = existing.ID
		return existing.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		override.ID = uuid.NewString()
		if createErr := r.db.WithContext(ctx).Create(override).Error; createErr != nil {
			return "", createErr
		}
		return override.ID, nil
	default:
		return "", err
	}
}

func (r *gormOverrideRepository) Clear(ctx context.Context, userID, date string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&domain.DayOverride{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
