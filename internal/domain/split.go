package domain

import "time"

// SplitMode distinguishes weekly schedules from N-day rotations.
type SplitMode string

const (
	SplitModeWeek     SplitMode = "week"
	SplitModeRotation SplitMode = "rotation"
)

// DefaultRotationLen is the rotation period assumed when a rotation split
// has no slots authored yet and no stored length.
const DefaultRotationLen = 3

// Split is a schedule definition. Mode is immutable after creation;
// switching mode means re-authoring the slot assignments.
type Split struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index" json:"userId"`
	Name        string    `json:"name"`
	Mode        SplitMode `json:"mode"`
	RotationLen int       `json:"rotationLen"` // stored fallback period for rotation mode
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SplitDay is one assignment slot of a split. Weekly mode uses Weekday
// (0=Sunday..6=Saturday), rotation mode uses OrderIndex (0..N-1). A nil
// DayID marks the slot as rest.
type SplitDay struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	SplitID    string    `gorm:"index" json:"splitId"`
	Split      *Split    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	DayID      *string   `json:"dayId"`
	Weekday    *int      `json:"weekday,omitempty"`
	OrderIndex *int      `json:"orderIndex,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SplitRun schedules a split onto the calendar. A nil EndDate means the run
// is open-ended ("forever"). Active runs of one user must never have
// overlapping date ranges; the scheduler enforces this before every write.
type SplitRun struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	SplitID      string    `gorm:"index" json:"splitId"`
	UserID       string    `gorm:"index" json:"userId"`
	StartDate    *string   `json:"startDate"`
	EndDate      *string   `json:"endDate"`
	NumWeeks     *float64  `json:"numWeeks,omitempty"`
	NumRotations *int      `json:"numRotations,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DayOverride is a manual per-date correction layered on top of the
// resolver's natural output. A nil OverriddenDayID forces rest.
type DayOverride struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"index:idx_override_user_date,unique" json:"userId"`
	Date            string    `gorm:"index:idx_override_user_date,unique" json:"date"`
	OverriddenDayID *string   `json:"overriddenDayId"`
	OriginalDayID   *string   `json:"originalDayId"`
	SplitRunID      *string   `json:"splitRunId,omitempty"`
	Note            string    `json:"note,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
