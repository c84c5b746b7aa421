package domain

import "time"

// Day is a reusable named template: a bundle of exercises a user schedules
// onto the calendar through a split. Deleting a Day deletes its exercises.
type Day struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Exercise is a template exercise under a Day: target sets/reps, not a
// performed set. DayID is nullable because ad-hoc exercises promoted at
// logging time may not belong to any day.
type Exercise struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	DayID     *string   `gorm:"index" json:"dayId"`
	Day       *Day      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    string    `gorm:"index" json:"userId"`
	Name      string    `json:"name"`
	Sets      int       `json:"sets"`
	Reps      int       `json:"reps"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
