package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"liftlog/internal/domain"
)

// seedSchedule authors a one-day rotation covering every date from
// 2024-01-01 onward, so any later date resolves to the returned day.
func seedSchedule(t *testing.T, env *testEnv, userID string) *domain.Day {
	t.Helper()
	ctx := context.Background()

	day, err := env.days.CreateDay(ctx, userID, "Push")
	if err != nil {
		t.Fatalf("CreateDay returned error: %v", err)
	}
	for _, name := range []string{"Bench Press", "Overhead Press", "Dips"} {
		if _, err := env.days.AddExercise(ctx, userID, day.ID, name, 3, 8, ""); err != nil {
			t.Fatalf("AddExercise returned error: %v", err)
		}
	}

	split, err := env.splits.CreateSplit(ctx, userID, "Everyday", domain.SplitModeRotation, 1)
	if err != nil {
		t.Fatalf("CreateSplit returned error: %v", err)
	}
	if _, err := env.splits.AssignSlot(ctx, userID, split.ID, &day.ID, nil, intPtr(0)); err != nil {
		t.Fatalf("AssignSlot returned error: %v", err)
	}
	if _, err := env.runs.ScheduleRun(ctx, userID, split.ID, "2024-01-01", nil); err != nil {
		t.Fatalf("ScheduleRun returned error: %v", err)
	}
	return day
}

func TestGetOrCreateWorkoutMaterializes(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	day := seedSchedule(t, env, "user-1")

	workout, err := env.workouts.GetOrCreateWorkout(ctx, "user-1", "2024-01-03")
	if err != nil {
		t.Fatalf("GetOrCreateWorkout returned error: %v", err)
	}
	if workout.DayID == nil || *workout.DayID != day.ID {
		t.Fatalf("expected workout bound to day %s, got %v", day.ID, workout.DayID)
	}

	instances, err := env.workouts.ListInstances(ctx, "user-1", workout.ID)
	if err != nil {
		t.Fatalf("ListInstances returned error: %v", err)
	}
	if len(instances) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(instances))
	}
	for _, inst := range instances {
		if inst.ExerciseID == nil {
			t.Fatalf("snapshot %s lost its template reference", inst.Name)
		}
		if inst.Sets != 3 {
			t.Fatalf("snapshot %s: expected 3 sets, got %d", inst.Name, inst.Sets)
		}
	}
}

func TestGetOrCreateWorkoutIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	seedSchedule(t, env, "user-1")

	first, err := env.workouts.GetOrCreateWorkout(ctx, "user-1", "2024-01-03")
	if err != nil {
		t.Fatalf("first GetOrCreateWorkout returned error: %v", err)
	}
	second, err := env.workouts.GetOrCreateWorkout(ctx, "user-1", "2024-01-03")
	if err != nil {
		t.Fatalf("second GetOrCreateWorkout returned error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same workout, got %s and %s", first.ID, second.ID)
	}

	instances, err := env.workouts.ListInstances(ctx, "user-1", first.ID)
	if err != nil {
		t.Fatalf("ListInstances returned error: %v", err)
	}
	if len(instances) != 3 {
		t.Fatalf("expected snapshots not duplicated, got %d", len(instances))
	}
}

func TestSnapshotsSurviveTemplateEdits(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	day := seedSchedule(t, env, "user-1")

	workout, err := env.workouts.GetOrCreateWorkout(ctx, "user-1", "2024-01-03")
	if err != nil {
		t.Fatalf("GetOrCreateWorkout returned error: %v", err)
	}

	// Rename every template after materialization.
	templates, err := env.exerciseRepo.ListByDay(ctx, day.ID)
	if err != nil {
		t.Fatalf("ListByDay returned error: %v", err)
	}
	for _, tmpl := range templates {
		if _, err := env.days.UpdateExercise(ctx, "user-1", tmpl.ID, "Renamed "+tmpl.Name, tmpl.Sets, tmpl.Reps, ""); err != nil {
			t.Fatalf("UpdateExercise returned error: %v", err)
		}
	}

	instances, err := env.workouts.ListInstances(ctx, "user-1", workout.ID)
	if err != nil {
		t.Fatalf("ListInstances returned error: %v", err)
	}
	for _, inst := range instances {
		if strings.HasPrefix(inst.Name, "Renamed") {
			t.Fatalf("snapshot %q was rewritten by a template edit", inst.Name)
		}
	}
}

func TestSnapshotsSurviveDayDeletion(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	day := seedSchedule(t, env, "user-1")

	workout, err := env.workouts.GetOrCreateWorkout(ctx, "user-1", "2024-01-03")
	if err != nil {
		t.Fatalf("GetOrCreateWorkout returned error: %v", err)
	}

	if err := env.days.DeleteDay(ctx, "user-1", day.ID); err != nil {
		t.Fatalf("DeleteDay returned error: %v", err)
	}

	// The snapshots are copies; deleting the day and its templates must
	// leave the materialized workout intact.
	instances, err := env.workouts.ListInstances(ctx, "user-1", workout.ID)
	if err != nil {
		t.Fatalf("ListInstances returned error: %v", err)
	}
	if len(instances) != 3 {
		t.Fatalf("expected 3 snapshots after day deletion, got %d", len(instances))
	}
	names := map[string]bool{}
	for _, inst := range instances {
		names[inst.Name] = true
		if inst.Sets != 3 {
			t.Fatalf("snapshot %q lost its sets: %d", inst.Name, inst.Sets)
		}
	}
	for _, want := range []string{"Bench Press", "Overhead Press", "Dips"} {
		if !names[want] {
			t.Fatalf("snapshot %q missing after day deletion", want)
		}
	}
}

func TestWorkoutOnDateWithoutRun(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	seedSchedule(t, env, "user-1")

	// Before the run starts nothing resolves; the workout exists but is
	// empty, and ad-hoc entries may still be added.
	workout, err := env.workouts.GetOrCreateWorkout(ctx, "user-1", "2023-12-25")
	if err != nil {
		t.Fatalf("GetOrCreateWorkout returned error: %v", err)
	}
	if workout.DayID != nil {
		t.Fatalf("expected no day before run start, got %v", workout.DayID)
	}
	instances, err := env.workouts.ListInstances(ctx, "user-1", workout.ID)
	if err != nil {
		t.Fatalf("ListInstances returned error: %v", err)
	}
	if len(instances) != 0 {
		t.Fatalf("expected no snapshots, got %d", len(instances))
	}

	adHoc, err := env.workouts.AddAdHocExercise(ctx, "user-1", "2023-12-25", "Farmer Carry", 2, "")
	if err != nil {
		t.Fatalf("AddAdHocExercise returned error: %v", err)
	}
	if adHoc.ExerciseID != nil {
		t.Fatal("ad-hoc entry must start templateless")
	}
}

func TestInstanceOwnership(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	seedSchedule(t, env, "user-1")

	adHoc, err := env.workouts.AddAdHocExercise(ctx, "user-1", "2024-01-05", "Plank", 3, "")
	if err != nil {
		t.Fatalf("AddAdHocExercise returned error: %v", err)
	}

	if _, err := env.workouts.UpdateInstance(ctx, "user-2", adHoc.ID, "Hijacked", 3, ""); !errors.Is(err, ErrInstanceAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if err := env.workouts.DeleteInstance(ctx, "user-2", adHoc.ID); !errors.Is(err, ErrInstanceAccessDenied) {
		t.Fatalf("expected access denied on delete, got %v", err)
	}

	updated, err := env.workouts.UpdateInstance(ctx, "user-1", adHoc.ID, "Weighted Plank", 4, "add 10kg")
	if err != nil {
		t.Fatalf("UpdateInstance returned error: %v", err)
	}
	if updated.Name != "Weighted Plank" || updated.Sets != 4 {
		t.Fatalf("unexpected instance after update: %+v", updated)
	}

	if err := env.workouts.DeleteInstance(ctx, "user-1", adHoc.ID); err != nil {
		t.Fatalf("DeleteInstance returned error: %v", err)
	}
	if _, err := env.workouts.UpdateInstance(ctx, "user-1", adHoc.ID, "Gone", 1, ""); !errors.Is(err, ErrInstanceNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestSetWorkoutCompleted(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	seedSchedule(t, env, "user-1")

	workout, err := env.workouts.SetWorkoutCompleted(ctx, "user-1", "2024-01-03", true)
	if err != nil {
		t.Fatalf("SetWorkoutCompleted returned error: %v", err)
	}
	if !workout.Completed {
		t.Fatal("expected workout completed")
	}

	workout, err = env.workouts.SetWorkoutCompleted(ctx, "user-1", "2024-01-03", false)
	if err != nil {
		t.Fatalf("SetWorkoutCompleted returned error: %v", err)
	}
	if workout.Completed {
		t.Fatal("expected workout no longer completed")
	}
}
