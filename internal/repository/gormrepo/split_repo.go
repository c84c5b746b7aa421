package gormrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// gormSplitRepository implements repository.SplitRepository.
type gormSplitRepository struct {
	db *gorm.DB
}

// NewSplitRepository creates a new split repository backed by gorm.
func NewSplitRepository(db *gorm.DB) repository.SplitRepository {
	return &gormSplitRepository{db: db}
}

func (r *gormSplitRepository) Create(ctx context.Context, split *domain.Split) (string, error) {
	if split.Name == "" || split.UserID == "" {
		return "", errors.New("split name and user ID are required")
	}
	if split.ID == "" {
		split.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(split).Error; err != nil {
		return "", err
	}
	return split.ID, nil
}

func (r *gormSplitRepository) GetByID(ctx context.Context, id string) (*domain.Split, error) {
	var split domain.Split
	err := r.db.WithContext(ctx).First(&split, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &split, nil
}

func (r *gormSplitRepository) ListByUser(ctx context.Context, userID string) ([]domain.Split, error) {
	var splits []domain.Split
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&splits).Error
	if err != nil {
		return nil, err
	}
	return splits, nil
}

// Update persists name and rotation length. Mode is immutable after
// creation and deliberately excluded from the update set.
func (r *gormSplitRepository) Update(ctx context.Context, split *domain.Split) error {
	result := r.db.WithContext(ctx).Model(&domain.Split{}).
		Where("id = ? AND user_id = ?", split.ID, split.UserID).
		Updates(map[string]any{
			"name":         split.Name,
			"rotation_len": split.RotationLen,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormSplitRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Split{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return tx.Where("split_id = ?", id).Delete(&domain.SplitDay{}).Error
	})
}

// gormSplitDayRepository implements repository.SplitDayRepository.
type gormSplitDayRepository struct {
	db *gorm.DB
}

// NewSplitDayRepository creates a new assignment-slot repository backed by gorm.
func NewSplitDayRepository(db *gorm.DB) repository.SplitDayRepository {
	return &gormSplitDayRepository{db: db}
}

// Upsert writes a slot keyed by (split, weekday) in weekly mode or
// (split, order index) in rotation mode, replacing any existing assignment
// for that position.
func (r *gormSplitDayRepository) Upsert(ctx context.Context, slot *domain.SplitDay) (string, error) {
	if slot.SplitID == "" {
		return "", errors.New("split ID is required")
	}
	if slot.Weekday == nil && slot.OrderIndex == nil {
		return "", errors.New("slot needs a weekday or an order index")
	}

	query := r.db.WithContext(ctx).Where("split_id = ?", slot.SplitID)
	if slot.Weekday != nil {
		query = query.Where("weekday = ?", *slot.Weekday)
	} else {
		query = query.Where("order_index = ?", *slot.OrderIndex)
	}

	var existing domain.SplitDay
	err := query.First(&existing).Error
	switch {
	case err == nil:
		if updErr := r.db.WithContext(ctx).Model(&domain.SplitDay{}).
			Where("id = ?", existing.ID).
			Update("day_id", slot.DayID).Error; updErr != nil {
			return "", updErr
		}
		slot.ID = existing.ID
		return existing.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		slot.ID = uuid.NewString()
		if createErr := r.db.WithContext(ctx).Create(slot).Error; createErr != nil {
			return "", createErr
		}
		return slot.ID, nil
	default:
		return "", err
	}
}

func (r *gormSplitDayRepository) ListBySplit(ctx context.Context, splitID string) ([]domain.SplitDay, error) {
	var slots []domain.SplitDay
	err := r.db.WithContext(ctx).
		Where("split_id = ?", splitID).
		Order("weekday ASC, order_index ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *gormSplitDayRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.SplitDay{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
