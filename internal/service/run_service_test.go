package service

import (
	"context"
	"errors"
	"testing"

	"liftlog/internal/domain"
)

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 *string
		want           bool
	}{
		{"identical bounded", strPtr("2024-01-01"), strPtr("2024-01-14"), strPtr("2024-01-01"), strPtr("2024-01-14"), true},
		{"partial overlap", strPtr("2024-01-01"), strPtr("2024-01-14"), strPtr("2024-01-10"), strPtr("2024-01-20"), true},
		{"touching edges", strPtr("2024-01-01"), strPtr("2024-01-14"), strPtr("2024-01-14"), strPtr("2024-01-20"), true},
		{"disjoint", strPtr("2024-01-01"), strPtr("2024-01-14"), strPtr("2024-01-15"), strPtr("2024-01-20"), false},
		{"both open-ended", strPtr("2024-01-01"), nil, strPtr("2024-06-01"), nil, true},
		{"open starts inside bounded", strPtr("2024-01-10"), nil, strPtr("2024-01-01"), strPtr("2024-01-14"), true},
		{"open starts after bounded ends", strPtr("2024-02-01"), nil, strPtr("2024-01-01"), strPtr("2024-01-14"), false},
		{"bounded ends before open starts", strPtr("2024-01-01"), strPtr("2024-01-14"), strPtr("2024-02-01"), nil, false},
		{"missing start never overlaps", nil, nil, strPtr("2024-01-01"), strPtr("2024-01-14"), false},
	}
	for _, tc := range cases {
		if got := RangesOverlap(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestScheduleRunWeeklyDuration(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	split, err := env.splits.CreateSplit(ctx, "user-1", "Upper Lower", domain.SplitModeWeek, 0)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}

	// 14 inclusive days is exactly two weeks.
	scheduled, err := env.runs.ScheduleRun(ctx, "user-1", split.ID, "2024-01-01", strPtr("2024-01-14"))
	if err != nil {
		t.Fatalf("ScheduleRun returned error: %v", err)
	}
	if scheduled.Run.NumWeeks == nil || *scheduled.Run.NumWeeks != 2.0 {
		t.Fatalf("expected 2.0 weeks, got %v", scheduled.Run.NumWeeks)
	}
	if scheduled.DurationUnits != 2.0 {
		t.Fatalf("expected duration 2.0, got %v", scheduled.DurationUnits)
	}
	if scheduled.Run.NumRotations != nil {
		t.Fatal("weekly run must not carry a rotation count")
	}
	if !scheduled.Run.Active {
		t.Fatal("scheduled run must be active")
	}
}

func TestScheduleRunHalfWeekRounding(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	split, err := env.splits.CreateSplit(ctx, "user-1", "Full Body", domain.SplitModeWeek, 0)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}

	// 10 inclusive days is 1.43 weeks, displayed as 1.5.
	scheduled, err := env.runs.ScheduleRun(ctx, "user-1", split.ID, "2024-01-01", strPtr("2024-01-10"))
	if err != nil {
		t.Fatalf("ScheduleRun returned error: %v", err)
	}
	if scheduled.Run.NumWeeks == nil || *scheduled.Run.NumWeeks != 1.5 {
		t.Fatalf("expected 1.5 weeks, got %v", scheduled.Run.NumWeeks)
	}
}

func TestScheduleRunRotationDuration(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	split, err := env.splits.CreateSplit(ctx, "user-1", "PPL", domain.SplitModeRotation, 3)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}

	// 4 inclusive days over a 3-day rotation: 1.5 rotations displayed,
	// 2 whole cycles persisted.
	scheduled, err := env.runs.ScheduleRun(ctx, "user-1", split.ID, "2024-01-01", strPtr("2024-01-04"))
	if err != nil {
		t.Fatalf("ScheduleRun returned error: %v", err)
	}
	if scheduled.DurationUnits != 1.5 {
		t.Fatalf("expected display duration 1.5, got %v", scheduled.DurationUnits)
	}
	if scheduled.Run.NumRotations == nil || *scheduled.Run.NumRotations != 2 {
		t.Fatalf("expected 2 persisted rotations, got %v", scheduled.Run.NumRotations)
	}
	if scheduled.Run.NumWeeks != nil {
		t.Fatal("rotation run must not carry a week count")
	}
}

func TestScheduleRunRejectsOverlap(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	split, err := env.splits.CreateSplit(ctx, "user-1", "A", domain.SplitModeWeek, 0)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}
	other, err := env.splits.CreateSplit(ctx, "user-1", "B", domain.SplitModeWeek, 0)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}

	if _, err := env.runs.ScheduleRun(ctx, "user-1", split.ID, "2024-01-01", strPtr("2024-01-14")); err != nil {
		t.Fatalf("first ScheduleRun returned error: %v", err)
	}

	_, err = env.runs.ScheduleRun(ctx, "user-1", other.ID, "2024-01-10", strPtr("2024-01-20"))
	if !errors.Is(err, ErrOverlap) {
		t.Fatalf("expected overlap error, got %v", err)
	}

	// Overlap rejection must not persist anything.
	active, err := env.runs.ListActiveRuns(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListActiveRuns returned error: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active run after rejection, got %d", len(active))
	}

	// A disjoint range is fine.
	if _, err := env.runs.ScheduleRun(ctx, "user-1", other.ID, "2024-01-15", strPtr("2024-01-20")); err != nil {
		t.Fatalf("disjoint ScheduleRun returned error: %v", err)
	}
}

func TestScheduleRunValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	split, err := env.splits.CreateSplit(ctx, "user-1", "A", domain.SplitModeWeek, 0)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}

	if _, err := env.runs.ScheduleRun(ctx, "user-1", split.ID, "01/01/2024", nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for malformed date, got %v", err)
	}
	if _, err := env.runs.ScheduleRun(ctx, "user-1", split.ID, "2024-01-10", strPtr("2024-01-05")); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for inverted range, got %v", err)
	}
	if _, err := env.runs.ScheduleRun(ctx, "user-2", split.ID, "2024-01-01", nil); !errors.Is(err, ErrSplitAccessDenied) {
		t.Fatalf("expected access denied for foreign split, got %v", err)
	}
}

func TestRescheduleRunClearsSchedule(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	split, err := env.splits.CreateSplit(ctx, "user-1", "A", domain.SplitModeWeek, 0)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}
	scheduled, err := env.runs.ScheduleRun(ctx, "user-1", split.ID, "2024-01-01", strPtr("2024-01-14"))
	if err != nil {
		t.Fatalf("ScheduleRun returned error: %v", err)
	}

	cleared, err := env.runs.RescheduleRun(ctx, "user-1", scheduled.Run.ID, nil, nil)
	if err != nil {
		t.Fatalf("RescheduleRun returned error: %v", err)
	}
	if cleared.Run.Active {
		t.Fatal("cleared run must be inactive")
	}
	if cleared.Run.StartDate != nil || cleared.Run.EndDate != nil {
		t.Fatal("cleared run must have no dates")
	}
	if cleared.Run.NumWeeks != nil || cleared.Run.NumRotations != nil {
		t.Fatal("cleared run must have no duration fields")
	}

	// The nulled fields must survive the round trip through the store.
	stored, err := env.runRepo.GetByID(ctx, scheduled.Run.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.Active || stored.StartDate != nil || stored.NumWeeks != nil {
		t.Fatalf("cleared schedule not persisted: %+v", stored)
	}
}

func TestRescheduleRunExcludesSelfFromOverlap(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	split, err := env.splits.CreateSplit(ctx, "user-1", "A", domain.SplitModeWeek, 0)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}
	scheduled, err := env.runs.ScheduleRun(ctx, "user-1", split.ID, "2024-01-01", strPtr("2024-01-14"))
	if err != nil {
		t.Fatalf("ScheduleRun returned error: %v", err)
	}

	// Shifting a run inside its own current range must not self-conflict.
	moved, err := env.runs.RescheduleRun(ctx, "user-1", scheduled.Run.ID, strPtr("2024-01-05"), strPtr("2024-01-18"))
	if err != nil {
		t.Fatalf("RescheduleRun returned error: %v", err)
	}
	if moved.Run.StartDate == nil || *moved.Run.StartDate != "2024-01-05" {
		t.Fatalf("expected moved start, got %v", moved.Run.StartDate)
	}
}
