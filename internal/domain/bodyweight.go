package domain

import "time"

// WeightUnit is the unit a bodyweight entry was logged in.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// Bodyweight stores one weigh-in per (user, date). A second weigh-in on the
// same date updates the existing row in place.
type Bodyweight struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"index:idx_bodyweight_user_date,unique" json:"userId"`
	Weight    float64    `json:"weight"`
	Unit      WeightUnit `json:"unit"`
	LoggedAt  string     `gorm:"index:idx_bodyweight_user_date,unique" json:"loggedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
