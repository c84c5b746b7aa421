package gormrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// gormRunRepository implements repository.RunRepository.
type gormRunRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new split-run repository backed by gorm.
func NewRunRepository(db *gorm.DB) repository.RunRepository {
	return &gormRunRepository{db: db}
}

func (r *gormRunRepository) Create(ctx context.Context, run *domain.SplitRun) (string, error) {
	if run.SplitID == "" || run.UserID == "" {
		return "", errors.New("split ID and user ID are required")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return "", err
	}
	return run.ID, nil
}

func (r *gormRunRepository) GetByID(ctx context.Context, id string) (*domain.SplitRun, error) {
	var run domain.SplitRun
	err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &run, nil
}

// ListActiveByUser returns the user's active runs, newest creation first,
// so the first range match is the run the resolver should use.
func (r *gormRunRepository) ListActiveByUser(ctx context.Context, userID string) ([]domain.SplitRun, error) {
	var runs []domain.SplitRun
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at DESC").
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}

// Update rewrites the schedulable fields of a run, including setting date
// and duration columns back to NULL when the schedule is cleared.
func (r *gormRunRepository) Update(ctx context.Context, run *domain.SplitRun) error {
	result := r.db.WithContext(ctx).Model(&domain.SplitRun{}).
		Where("id = ? AND user_id = ?", run.ID, run.UserID).
		Updates(map[string]any{
			"start_date":    run.StartDate,
			"end_date":      run.EndDate,
			"num_weeks":     run.NumWeeks,
			"num_rotations": run.NumRotations,
			"active":        run.Active,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
