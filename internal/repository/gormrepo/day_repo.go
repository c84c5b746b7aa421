package gormrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// gormDayRepository implements repository.DayRepository.
type gormDayRepository struct {
	db *gorm.DB
}

// NewDayRepository creates a new day-template repository backed by gorm.
func NewDayRepository(db *gorm.DB) repository.DayRepository {
	return &gormDayRepository{db: db}
}

func (r *gormDayRepository) Create(ctx context.Context, day *domain.Day) (string, error) {
	if day.Name == "" || day.UserID == "" {
		return "", errors.New("day name and user ID are required")
	}
	if day.ID == "" {
		day.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(day).Error; err != nil {
		return "", err
	}
	return day.ID, nil
}

func (r *gormDayRepository) GetByID(ctx context.Context, id string) (*domain.Day, error) {
	var day domain.Day
	err := r.db.WithContext(ctx).First(&day, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

func (r *gormDayRepository) ListByUser(ctx context.Context, userID string) ([]domain.Day, error) {
	var days []domain.Day
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

func (r *gormDayRepository) Update(ctx context.Context, day *domain.Day) error {
	result := r.db.WithContext(ctx).Model(&domain.Day{}).
		Where("id = ? AND user_id = ?", day.ID, day.UserID).
		Updates(map[string]any{"name": day.Name})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a day and cascades to its template exercises in one
// transaction. The user filter enforces ownership at the query level.
func (r *gormDayRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Day{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return tx.Where("day_id = ?", id).Delete(&domain.Exercise{}).Error
	})
}
