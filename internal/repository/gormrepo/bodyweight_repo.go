package gormrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// gormBodyweightRepository implements repository.BodyweightRepository.
type gormBodyweightRepository struct {
	db *gorm.DB
}

// NewBodyweightRepository creates a new bodyweight repository backed by gorm.
func NewBodyweightRepository(db *gorm.DB) repository.BodyweightRepository {
	return &gormBodyweightRepository{db: db}
}

func (r *gormBodyweightRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*domain.Bodyweight, error) {
	var entry domain.Bodyweight
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND logged_at = ?", userID, date).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *gormBodyweightRepository) Create(ctx context.Context, entry *domain.Bodyweight) (string, error) {
	if entry.UserID == "" || entry.LoggedAt == "" {
		return "", errors.New("user ID and date are required")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return "", err
	}
	return entry.ID, nil
}

func (r *gormBodyweightRepository) Update(ctx context.Context, entry *domain.Bodyweight) error {
	result := r.db.WithContext(ctx).Model(&domain.Bodyweight{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"weight": entry.Weight,
			"unit":   entry.Unit,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
