package service

import (
	"context"
	"errors"
	"testing"

	"liftlog/internal/domain"
)

func TestCreateSplitValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	if _, err := env.splits.CreateSplit(ctx, "user-1", "", domain.SplitModeWeek, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if _, err := env.splits.CreateSplit(ctx, "user-1", "X", "biweekly", 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown mode, got %v", err)
	}
	if _, err := env.splits.CreateSplit(ctx, "user-1", "X", domain.SplitModeRotation, 99); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for oversized rotation, got %v", err)
	}

	// Rotation length defaults when omitted.
	split, err := env.splits.CreateSplit(ctx, "user-1", "PPL", domain.SplitModeRotation, 0)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}
	if split.RotationLen != domain.DefaultRotationLen {
		t.Fatalf("expected default rotation length, got %d", split.RotationLen)
	}
}

func TestAssignSlotPerMode(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	day, err := env.days.CreateDay(ctx, "user-1", "Push")
	if err != nil {
		t.Fatalf("CreateDay returned error: %v", err)
	}
	weekly, err := env.splits.CreateSplit(ctx, "user-1", "Weekly", domain.SplitModeWeek, 0)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}
	rotation, err := env.splits.CreateSplit(ctx, "user-1", "Rotation", domain.SplitModeRotation, 3)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}

	// Weekly slots need a weekday; rotation slots need an order index.
	if _, err := env.splits.AssignSlot(ctx, "user-1", weekly.ID, &day.ID, nil, intPtr(0)); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error without weekday, got %v", err)
	}
	if _, err := env.splits.AssignSlot(ctx, "user-1", weekly.ID, &day.ID, intPtr(7), nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for weekday 7, got %v", err)
	}
	if _, err := env.splits.AssignSlot(ctx, "user-1", rotation.ID, &day.ID, intPtr(1), nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error without order index, got %v", err)
	}

	slot, err := env.splits.AssignSlot(ctx, "user-1", weekly.ID, &day.ID, intPtr(1), nil)
	if err != nil {
		t.Fatalf("AssignSlot returned error: %v", err)
	}
	if slot.Weekday == nil || *slot.Weekday != 1 || slot.OrderIndex != nil {
		t.Fatalf("unexpected weekly slot: %+v", slot)
	}

	// Re-assigning the same weekday replaces the slot instead of adding one.
	other, err := env.days.CreateDay(ctx, "user-1", "Pull")
	if err != nil {
		t.Fatalf("CreateDay returned error: %v", err)
	}
	if _, err := env.splits.AssignSlot(ctx, "user-1", weekly.ID, &other.ID, intPtr(1), nil); err != nil {
		t.Fatalf("re-assign returned error: %v", err)
	}
	slots, err := env.splits.ListSlots(ctx, "user-1", weekly.ID)
	if err != nil {
		t.Fatalf("ListSlots returned error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected upsert to keep 1 slot, got %d", len(slots))
	}
	if slots[0].DayID == nil || *slots[0].DayID != other.ID {
		t.Fatalf("expected replacement day, got %v", slots[0].DayID)
	}

	// A rest slot is a slot with no day.
	rest, err := env.splits.AssignSlot(ctx, "user-1", rotation.ID, nil, nil, intPtr(2))
	if err != nil {
		t.Fatalf("AssignSlot returned error: %v", err)
	}
	if rest.DayID != nil {
		t.Fatal("expected rest slot with nil day")
	}
}

func TestAssignSlotRejectsForeignDay(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	foreign, err := env.days.CreateDay(ctx, "user-2", "Theirs")
	if err != nil {
		t.Fatalf("CreateDay returned error: %v", err)
	}
	split, err := env.splits.CreateSplit(ctx, "user-1", "Weekly", domain.SplitModeWeek, 0)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}

	if _, err := env.splits.AssignSlot(ctx, "user-1", split.ID, &foreign.ID, intPtr(1), nil); !errors.Is(err, ErrDayAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
}

func TestUpdateSplitKeepsMode(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	split, err := env.splits.CreateSplit(ctx, "user-1", "PPL", domain.SplitModeRotation, 3)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}

	updated, err := env.splits.UpdateSplit(ctx, "user-1", split.ID, "PPL v2", 4)
	if err != nil {
		t.Fatalf("UpdateSplit returned error: %v", err)
	}
	if updated.Mode != domain.SplitModeRotation {
		t.Fatalf("mode must be immutable, got %q", updated.Mode)
	}
	if updated.RotationLen != 4 {
		t.Fatalf("expected rotation length 4, got %d", updated.RotationLen)
	}
}

func TestDeleteSplitRemovesSlots(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	day, err := env.days.CreateDay(ctx, "user-1", "Push")
	if err != nil {
		t.Fatalf("CreateDay returned error: %v", err)
	}
	split, err := env.splits.CreateSplit(ctx, "user-1", "Weekly", domain.SplitModeWeek, 0)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}
	if _, err := env.splits.AssignSlot(ctx, "user-1", split.ID, &day.ID, intPtr(1), nil); err != nil {
		t.Fatalf("AssignSlot returned error: %v", err)
	}

	if err := env.splits.DeleteSplit(ctx, "user-2", split.ID); !errors.Is(err, ErrSplitNotFound) {
		t.Fatalf("expected not found for foreign delete, got %v", err)
	}
	if err := env.splits.DeleteSplit(ctx, "user-1", split.ID); err != nil {
		t.Fatalf("DeleteSplit returned error: %v", err)
	}
	if _, err := env.splits.ListSlots(ctx, "user-1", split.ID); !errors.Is(err, ErrSplitNotFound) {
		t.Fatalf("expected split gone, got %v", err)
	}
}
