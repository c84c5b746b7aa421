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
	ErrWorkoutNotFound      = errors.New("workout not found")
	ErrInstanceNotFound     = errors.New("workout exercise not found")
	ErrInstanceAccessDenied = errors.New("access denied to modify this workout exercise")
)

// WorkoutService materializes per-date workouts from the resolved schedule
// and manages the instance snapshots under them.
type WorkoutService interface {
	// GetOrCreateWorkout is idempotent: an existing workout for the date is
	// returned unchanged, otherwise one is created from the resolved
	// schedule and its day's exercises are snapshotted.
	GetOrCreateWorkout(ctx context.Context, userID, date string) (*domain.Workout, error)
	GetWorkout(ctx context.Context, userID, date string) (*domain.Workout, error)
	SetWorkoutCompleted(ctx context.Context, userID, date string, completed bool) (*domain.Workout, error)

	ListInstances(ctx context.Context, userID, workoutID string) ([]domain.WorkoutExercise, error)
	AddAdHocExercise(ctx context.Context, userID, date, name string, sets int, notes string) (*domain.WorkoutExercise, error)
	UpdateInstance(ctx context.Context, userID, instanceID, name string, sets int, notes string) (*domain.WorkoutExercise, error)
	DeleteInstance(ctx context.Context, userID, instanceID string) error
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	instanceRepo repository.WorkoutExerciseRepository
	exerciseRepo repository.ExerciseRepository
	schedule     ScheduleService
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	instanceRepo repository.WorkoutExerciseRepository,
	exerciseRepo repository.ExerciseRepository,
	schedule ScheduleService,
) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		instanceRepo: instanceRepo,
		exerciseRepo: exerciseRepo,
		schedule:     schedule,
	}
}

// GetOrCreateWorkout returns the workout for (user, date), creating and
// materializing it on first access.
func (s *workoutService) GetOrCreateWorkout(ctx context.Context, userID, date string) (*domain.Workout, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}

	existing, err := s.workoutRepo.GetByUserAndDate(ctx, userID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	res, err := s.schedule.ResolveDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		UserID: userID,
		Date:   date,
		DayID:  res.DayID,
	}
	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}

	// Rest days and dates without a run get no snapshots; only ad-hoc
	// entries can appear there.
	if res.DayID != nil {
		if err := s.materializeExercises(ctx, workout, *res.DayID); err != nil {
			return nil, err
		}
	}
	return workout, nil
}

// materializeExercises snapshots each template exercise of the day into a
// WorkoutExercise row. Snapshots are independent of the template from this
// point on; renaming the template never rewrites them.
func (s *workoutService) materializeExercises(ctx context.Context, workout *domain.Workout, dayID string) error {
	templates, err := s.exerciseRepo.ListByDay(ctx, dayID)
	if err != nil {
		return err
	}
	for i := range templates {
		tmpl := templates[i]
		instance := &domain.WorkoutExercise{
			WorkoutID:  workout.ID,
			UserID:     workout.UserID,
			ExerciseID: &tmpl.ID,
			Name:       tmpl.Name,
			Sets:       tmpl.Sets,
			Notes:      tmpl.Notes,
		}
		if _, err := s.instanceRepo.Create(ctx, instance); err != nil {
			return err
		}
	}
	return nil
}

// GetWorkout fetches the workout for a date without creating one.
func (s *workoutService) GetWorkout(ctx context.Context, userID, date string) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// SetWorkoutCompleted flips the workout-level completion flag.
func (s *workoutService) SetWorkoutCompleted(ctx context.Context, userID, date string, completed bool) (*domain.Workout, error) {
	workout, err := s.GetOrCreateWorkout(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	workout.Completed = completed
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// ListInstances returns the snapshots of a workout the user owns.
func (s *workoutService) ListInstances(ctx context.Context, userID, workoutID string) ([]domain.WorkoutExercise, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrInstanceAccessDenied
	}
	return s.instanceRepo.ListByWorkout(ctx, workoutID)
}

// AddAdHocExercise attaches a transient exercise directly to a date with no
// template behind it. Permitted on rest days; the entry stays templateless
// until the log engine promotes it.
func (s *workoutService) AddAdHocExercise(ctx context.Context, userID, date, name string, sets int, notes string) (*domain.WorkoutExercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	if sets < 1 {
		sets = 1
	}

	workout, err := s.GetOrCreateWorkout(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	instance := &domain.WorkoutExercise{
		WorkoutID: workout.ID,
		UserID:    userID,
		Name:      name,
		Sets:      sets,
		Notes:     notes,
	}
	if _, err := s.instanceRepo.Create(ctx, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

// UpdateInstance edits a snapshot's display fields for its date only.
func (s *workoutService) UpdateInstance(ctx context.Context, userID, instanceID, name string, sets int, notes string) (*domain.WorkoutExercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
	}

	instance, err := s.ownedInstance(ctx, userID, instanceID)
	if err != nil {
		return nil, err
	}

	instance.Name = name
	if sets > 0 {
		instance.Sets = sets
	}
	instance.Notes = notes
	if err := s.instanceRepo.Update(ctx, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

// DeleteInstance removes a snapshot from its date. Logged sets keep their
// template reference and survive.
func (s *workoutService) DeleteInstance(ctx context.Context, userID, instanceID string) error {
	if _, err := s.ownedInstance(ctx, userID, instanceID); err != nil {
		return err
	}
	return s.instanceRepo.Delete(ctx, instanceID)
}

func (s *workoutService) ownedInstance(ctx context.Context, userID, instanceID string) (*domain.WorkoutExercise, error) {
	instance, err := s.instanceRepo.GetByID(ctx, instanceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInstanceNotFound
		}
		return nil, err
	}
	if instance.UserID != userID {
		return nil, ErrInstanceAccessDenied
	}
	return instance, nil
}
