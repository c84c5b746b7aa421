package service

import (
	"context"
	"errors"
	"fmt"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// DateResolution is the full schedule picture for one calendar date: the
// resolved day plus the run, split and override that produced it.
type DateResolution struct {
	Resolution
	Run      *domain.SplitRun
	Split    *domain.Split
	Override *domain.DayOverride
}

// ScheduleService maps calendar dates onto the user's active split schedule
// and manages per-date manual overrides.
type ScheduleService interface {
	ResolveDate(ctx context.Context, userID, date string) (*DateResolution, error)
	SetOverride(ctx context.Context, userID, date string, dayID *string, note string) (*domain.DayOverride, error)
	GetOverride(ctx context.Context, userID, date string) (*domain.DayOverride, error)
	ClearOverride(ctx context.Context, userID, date string) error
}

// scheduleService implements the ScheduleService interface.
type scheduleService struct {
	splitRepo    repository.SplitRepository
	splitDayRepo repository.SplitDayRepository
	runRepo      repository.RunRepository
	overrideRepo repository.OverrideRepository
	dayRepo      repository.DayRepository
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(
	splitRepo repository.SplitRepository,
	splitDayRepo repository.SplitDayRepository,
	runRepo repository.RunRepository,
	overrideRepo repository.OverrideRepository,
	dayRepo repository.DayRepository,
) ScheduleService {
	return &scheduleService{
		splitRepo:    splitRepo,
		splitDayRepo: splitDayRepo,
		runRepo:      runRepo,
		overrideRepo: overrideRepo,
		dayRepo:      dayRepo,
	}
}

// ResolveDate picks the applicable active run for the date, resolves its
// slot and layers any manual override on top.
func (s *scheduleService) ResolveDate(ctx context.Context, userID, date string) (*DateResolution, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}

	runs, err := s.runRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	run := PickActiveRun(runs, date)

	var split *domain.Split
	var slots []domain.SplitDay
	if run != nil {
		split, err = s.splitRepo.GetByID(ctx, run.SplitID)
		if err != nil {
			return nil, err
		}
		slots, err = s.splitDayRepo.ListBySplit(ctx, split.ID)
		if err != nil {
			return nil, err
		}
	}

	override, err := s.overrideRepo.Get(ctx, userID, date)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		override = nil
	}

	res, err := ResolveDay(split, slots, run, override, date)
	if err != nil {
		return nil, err
	}

	return &DateResolution{
		Resolution: res,
		Run:        run,
		Split:      split,
		Override:   override,
	}, nil
}

// SetOverride records a manual per-date correction. The naturally resolved
// day is captured as the original so clearing the override can restore it.
func (s *scheduleService) SetOverride(ctx context.Context, userID, date string, dayID *string, note string) (*domain.DayOverride, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}
	if dayID != nil {
		day, err := s.dayRepo.GetByID(ctx, *dayID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrDayNotFound
			}
			return nil, err
		}
		if day.UserID != userID {
			return nil, ErrDayAccessDenied
		}
	}

	// Resolve the natural schedule first so the override remembers what it
	// replaced.
	runs, err := s.runRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	run := PickActiveRun(runs, date)

	var split *domain.Split
	var slots []domain.SplitDay
	if run != nil {
		split, err = s.splitRepo.GetByID(ctx, run.SplitID)
		if err != nil {
			return nil, err
		}
		slots, err = s.splitDayRepo.ListBySplit(ctx, split.ID)
		if err != nil {
			return nil, err
		}
	}
	natural, err := ResolveDay(split, slots, run, nil, date)
	if err != nil {
		return nil, err
	}

	override := &domain.DayOverride{
		UserID:          userID,
		Date:            date,
		OverriddenDayID: dayID,
		OriginalDayID:   natural.DayID,
		Note:            note,
	}
	if run != nil {
		override.SplitRunID = &run.ID
	}

	if _, err := s.overrideRepo.Set(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

// GetOverride returns the override for a date, or nil when none exists.
func (s *scheduleService) GetOverride(ctx context.Context, userID, date string) (*domain.DayOverride, error) {
	override, err := s.overrideRepo.Get(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return override, nil
}

// ClearOverride removes the manual correction for a date.
func (s *scheduleService) ClearOverride(ctx context.Context, userID, date string) error {
	err := s.overrideRepo.Clear(ctx, userID, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}
