package domain

import "time"

// Workout is the materialized record for one calendar date. At most one
// exists per (user, date). DayID records which template resolved for the
// date; nil means rest or no applicable run.
type Workout struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index:idx_workout_user_date,unique" json:"userId"`
	Date      string    `gorm:"index:idx_workout_user_date,unique" json:"date"`
	DayID     *string   `json:"dayId"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkoutExercise is a per-date snapshot of a template exercise. Name, sets
// and notes are copied at materialization time so later template edits never
// rewrite history. ExerciseID may be nil for ad-hoc entries until the log
// engine promotes them to a template.
type WorkoutExercise struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	WorkoutID   string     `gorm:"index" json:"workoutId"`
	Workout     *Workout   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID      string     `gorm:"index" json:"userId"`
	ExerciseID  *string    `json:"exerciseId"`
	Name        string     `json:"name"`
	Sets        int        `json:"sets"`
	Notes       string     `json:"notes,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Log is one append-only set entry. ExerciseID always references a persisted
// template Exercise; the reconciliation engine promotes transient and
// instance-only exercises to templates before any Log row is written.
type Log struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	WorkoutID  string    `gorm:"index" json:"workoutId"`
	Workout    *Workout  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ExerciseID string    `gorm:"index" json:"exerciseId"`
	SetNumber  int       `json:"setNumber"`
	Reps       int       `json:"reps"`
	Weight     float64   `json:"weight"`
	Notes      string    `json:"notes,omitempty"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
