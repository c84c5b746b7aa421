package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// --- Error Definitions ---
var (
	ErrDayNotFound        = errors.New("day not found")
	ErrDayAccessDenied    = errors.New("access denied to modify or delete this day")
	ErrExerciseNotFound   = errors.New("exercise not found")
)

// DayService manages day templates and the template exercises under them.
type DayService interface {
	CreateDay(ctx context.Context, userID, name string) (*domain.Day, error)
	GetDay(ctx context.Context, userID, dayID string) (*domain.Day, error)
	ListDays(ctx context.Context, userID string) ([]domain.Day, error)
	RenameDay(ctx context.Context, userID, dayID, name string) (*domain.Day, error)
	DeleteDay(ctx context.Context, userID, dayID string) error

	AddExercise(ctx context.Context, userID, dayID, name string, sets, reps int, notes string) (*domain.Exercise, error)
	ListExercises(ctx context.Context, userID, dayID string) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, userID, exerciseID, name string, sets, reps int, notes string) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, userID, exerciseID string) error
}

// dayService implements the DayService interface.
type dayService struct {
	dayRepo      repository.DayRepository
	exerciseRepo repository.ExerciseRepository
}

// NewDayService creates a new instance of dayService.
func NewDayService(dayRepo repository.DayRepository, exerciseRepo repository.ExerciseRepository) DayService {
	return &dayService{
		dayRepo:      dayRepo,
		exerciseRepo: exerciseRepo,
	}
}

// CreateDay creates a new named day template for the user.
func (s *dayService) CreateDay(ctx context.Context, userID, name string) (*domain.Day, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: day name is required", ErrValidation)
	}
	if userID == "" {
		return nil, errors.New("user ID is required to create a day")
	}

	day := &domain.Day{
		UserID: userID,
		Name:   name,
	}
	dayID, err := s.dayRepo.Create(ctx, day)
	if err != nil {
		return nil, err
	}
	return s.dayRepo.GetByID(ctx, dayID)
}

// GetDay retrieves a single day, enforcing ownership.
func (s *dayService) GetDay(ctx context.Context, userID, dayID string) (*domain.Day, error) {
	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	if day.UserID != userID {
		return nil, ErrDayAccessDenied
	}
	return day, nil
}

// ListDays retrieves all day templates for a user.
func (s *dayService) ListDays(ctx context.Context, userID string) ([]domain.Day, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	return s.dayRepo.ListByUser(ctx, userID)
}

// RenameDay renames a day template. Already-materialized workout snapshots
// keep the old name; only the template changes.
func (s *dayService) RenameDay(ctx context.Context, userID, dayID, name string) (*domain.Day, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: day name is required", ErrValidation)
	}

	day, err := s.GetDay(ctx, userID, dayID)
	if err != nil {
		return nil, err
	}

	day.Name = name
	if err := s.dayRepo.Update(ctx, day); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	return day, nil
}

// DeleteDay deletes a day template and cascades to its exercises.
func (s *dayService) DeleteDay(ctx context.Context, userID, dayID string) error {
	if userID == "" || dayID == "" {
		return errors.New("user ID and day ID are required")
	}

	err := s.dayRepo.Delete(ctx, dayID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDayNotFound
		}
		return err
	}
	return nil
}

// AddExercise adds a template exercise to a day the user owns.
func (s *dayService) AddExercise(ctx context.Context, userID, dayID, name string, sets, reps int, notes string) (*domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	if sets < 1 || reps < 1 {
		return nil, fmt.Errorf("%w: sets and reps must be positive", ErrValidation)
	}

	if _, err := s.GetDay(ctx, userID, dayID); err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		DayID:  &dayID,
		UserID: userID,
		Name:   name,
		Sets:   sets,
		Reps:   reps,
		Notes:  notes,
	}
	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// ListExercises retrieves the template exercises of a day the user owns.
func (s *dayService) ListExercises(ctx context.Context, userID, dayID string) ([]domain.Exercise, error) {
	if _, err := s.GetDay(ctx, userID, dayID); err != nil {
		return nil, err
	}
	return s.exerciseRepo.ListByDay(ctx, dayID)
}

// UpdateExercise updates a template exercise the user owns. Existing workout
// snapshots are untouched.
func (s *dayService) UpdateExercise(ctx context.Context, userID, exerciseID, name string, sets, reps int, notes string) (*domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	if sets < 1 || reps < 1 {
		return nil, fmt.Errorf("%w: sets and reps must be positive", ErrValidation)
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrDayAccessDenied
	}

	existing.Name = name
	existing.Sets = sets
	existing.Reps = reps
	existing.Notes = notes

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteExercise deletes a template exercise the user owns.
func (s *dayService) DeleteExercise(ctx context.Context, userID, exerciseID string) error {
	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return ErrDayAccessDenied
	}

	return s.exerciseRepo.Delete(ctx, exerciseID)
}
