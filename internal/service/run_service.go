package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// --- Error Definitions ---
var (
	ErrRunNotFound     = errors.New("split run not found")
	ErrRunAccessDenied = errors.New("access denied to modify this run")
)

// ScheduledRun pairs a persisted run with the UI-facing duration value.
// For rotation splits the display value may be fractional ("1.5 rotations")
// while the persisted rotation count is always a whole number of cycles.
type ScheduledRun struct {
	Run           *domain.SplitRun
	DurationUnits float64
}

// RunService validates and persists date ranges for splits, rejecting
// overlapping active runs.
type RunService interface {
	ScheduleRun(ctx context.Context, userID, splitID, startDate string, endDate *string) (*ScheduledRun, error)
	RescheduleRun(ctx context.Context, userID, runID string, startDate, endDate *string) (*ScheduledRun, error)
	ListActiveRuns(ctx context.Context, userID string) ([]domain.SplitRun, error)
}

// runService implements the RunService interface.
type runService struct {
	runRepo      repository.RunRepository
	splitRepo    repository.SplitRepository
	splitDayRepo repository.SplitDayRepository
}

// NewRunService creates a new instance of runService.
func NewRunService(
	runRepo repository.RunRepository,
	splitRepo repository.SplitRepository,
	splitDayRepo repository.SplitDayRepository,
) RunService {
	return &runService{
		runRepo:      runRepo,
		splitRepo:    splitRepo,
		splitDayRepo: splitDayRepo,
	}
}

// RangesOverlap applies the active-run overlap rule to two date ranges.
// A range with no start cannot be reasoned about and never overlaps. Two
// bounded ranges overlap unless one ends before the other starts. Two
// open-ended ranges always overlap. A single open-ended range overlaps a
// bounded one unless it starts strictly after the bounded range ends.
func RangesOverlap(s1, e1, s2, e2 *string) bool {
	if s1 == nil || s2 == nil {
		return false
	}
	if e1 != nil && e2 != nil {
		return !(*e1 < *s2 || *e2 < *s1)
	}
	if e1 == nil && e2 == nil {
		return true
	}
	if e1 == nil {
		return !(*s1 > *e2)
	}
	return !(*s2 > *e1)
}

// ScheduleRun creates an active run for a split, computing its duration
// fields and rejecting any overlap with the user's other active runs.
func (s *runService) ScheduleRun(ctx context.Context, userID, splitID, startDate string, endDate *string) (*ScheduledRun, error) {
	split, err := s.ownedSplit(ctx, userID, splitID)
	if err != nil {
		return nil, err
	}

	run := &domain.SplitRun{
		SplitID: splitID,
		UserID:  userID,
		Active:  true,
	}
	units, err := s.applySchedule(ctx, split, run, startDate, endDate)
	if err != nil {
		return nil, err
	}

	if err := s.checkOverlap(ctx, userID, run, ""); err != nil {
		return nil, err
	}

	if _, err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}
	return &ScheduledRun{Run: run, DurationUnits: units}, nil
}

// RescheduleRun updates an existing run's date range. Passing no start date
// clears the schedule: the run is deactivated and its date and duration
// fields are nulled, preserving the row for history.
func (s *runService) RescheduleRun(ctx context.Context, userID, runID string, startDate, endDate *string) (*ScheduledRun, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	if run.UserID != userID {
		return nil, ErrRunAccessDenied
	}

	if startDate == nil {
		run.Active = false
		run.StartDate = nil
		run.EndDate = nil
		run.NumWeeks = nil
		run.NumRotations = nil
		if err := s.runRepo.Update(ctx, run); err != nil {
			return nil, err
		}
		return &ScheduledRun{Run: run}, nil
	}

	split, err := s.ownedSplit(ctx, userID, run.SplitID)
	if err != nil {
		return nil, err
	}

	run.Active = true
	units, err := s.applySchedule(ctx, split, run, *startDate, endDate)
	if err != nil {
		return nil, err
	}

	if err := s.checkOverlap(ctx, userID, run, run.ID); err != nil {
		return nil, err
	}

	if err := s.runRepo.Update(ctx, run); err != nil {
		return nil, err
	}
	return &ScheduledRun{Run: run, DurationUnits: units}, nil
}

// ListActiveRuns returns the user's active runs, newest first.
func (s *runService) ListActiveRuns(ctx context.Context, userID string) ([]domain.SplitRun, error) {
	return s.runRepo.ListActiveByUser(ctx, userID)
}

func (s *runService) ownedSplit(ctx context.Context, userID, splitID string) (*domain.Split, error) {
	split, err := s.splitRepo.GetByID(ctx, splitID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSplitNotFound
		}
		return nil, err
	}
	if split.UserID != userID {
		return nil, ErrSplitAccessDenied
	}
	return split, nil
}

// applySchedule validates the date range, sets it on the run and computes
// the duration fields. Returns the UI-facing (half-rounded) duration value.
func (s *runService) applySchedule(ctx context.Context, split *domain.Split, run *domain.SplitRun, startDate string, endDate *string) (float64, error) {
	if !domain.ValidDate(startDate) {
		return 0, fmt.Errorf("%w: invalid start date %q", ErrValidation, startDate)
	}
	run.StartDate = &startDate

	if endDate == nil {
		// Forever: no end, no duration fields.
		run.EndDate = nil
		run.NumWeeks = nil
		run.NumRotations = nil
		return 0, nil
	}

	if !domain.ValidDate(*endDate) {
		return 0, fmt.Errorf("%w: invalid end date %q", ErrValidation, *endDate)
	}
	if *endDate < startDate {
		return 0, fmt.Errorf("%w: end date precedes start date", ErrValidation)
	}
	run.EndDate = endDate

	span, err := domain.DaysBetween(startDate, *endDate)
	if err != nil {
		return 0, err
	}
	inclusiveDays := span + 1

	if split.Mode == domain.SplitModeRotation {
		slots, err := s.splitDayRepo.ListBySplit(ctx, split.ID)
		if err != nil {
			return 0, err
		}
		length := RotationLength(split, slots)
		units := roundHalf(float64(inclusiveDays) / float64(length))
		whole := int(math.Ceil(float64(inclusiveDays) / float64(length)))
		run.NumWeeks = nil
		run.NumRotations = &whole
		return units, nil
	}

	weeks := roundHalf(float64(inclusiveDays) / 7)
	run.NumWeeks = &weeks
	run.NumRotations = nil
	return weeks, nil
}

// checkOverlap rejects the candidate range when it overlaps any other
// active run of the user. Runs before writes; nothing is persisted on
// rejection.
func (s *runService) checkOverlap(ctx context.Context, userID string, candidate *domain.SplitRun, excludeID string) error {
	active, err := s.runRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return err
	}
	for i := range active {
		other := &active[i]
		if other.ID == excludeID {
			continue
		}
		if RangesOverlap(candidate.StartDate, candidate.EndDate, other.StartDate, other.EndDate) {
			return fmt.Errorf("%w: conflicts with run starting %s", ErrOverlap, derefOr(other.StartDate, "?"))
		}
	}
	return nil
}

// roundHalf rounds to the nearest half unit with a floor of 0.5, the
// UI-facing duration granularity.
func roundHalf(v float64) float64 {
	rounded := math.Round(v*2) / 2
	if rounded < 0.5 {
		return 0.5
	}
	return rounded
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
