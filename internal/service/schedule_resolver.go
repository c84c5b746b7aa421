package service

import (
	"liftlog/internal/domain"
)

// Resolution is the outcome of mapping a calendar date onto a split
// schedule. HasRun distinguishes "no applicable run" (no split scheduled for
// the date at all) from an explicit rest slot inside a running split; the
// two render as different states and must stay distinct.
type Resolution struct {
	DayID    *string
	IsRest   bool
	SlotKind domain.SplitMode
	HasRun   bool
}

// RotationLength derives the rotation period of a split: one past the
// highest authored order index, falling back to the split's stored length
// and finally to the default of 3 when nothing is authored.
func RotationLength(split *domain.Split, slots []domain.SplitDay) int {
	maxIdx := -1
	for _, slot := range slots {
		if slot.OrderIndex != nil && *slot.OrderIndex > maxIdx {
			maxIdx = *slot.OrderIndex
		}
	}
	if maxIdx >= 0 {
		return maxIdx + 1
	}
	if split != nil && split.RotationLen > 0 {
		return split.RotationLen
	}
	return domain.DefaultRotationLen
}

// RunContains reports whether a run's date range covers the given date.
// An unscheduled run (no start date) covers nothing; a nil end date means
// the run is open-ended. Canonical YYYY-MM-DD strings compare correctly
// with plain string ordering.
func RunContains(run *domain.SplitRun, date string) bool {
	if run == nil || run.StartDate == nil {
		return false
	}
	if date < *run.StartDate {
		return false
	}
	if run.EndDate != nil && date > *run.EndDate {
		return false
	}
	return true
}

// PickActiveRun selects the run the resolver should use for a date: the
// most recently created active run whose range contains it. Returns nil
// when no run applies.
func PickActiveRun(runs []domain.SplitRun, date string) *domain.SplitRun {
	var picked *domain.SplitRun
	for i := range runs {
		run := &runs[i]
		if !run.Active || !RunContains(run, date) {
			continue
		}
		if picked == nil || run.CreatedAt.After(picked.CreatedAt) {
			picked = run
		}
	}
	return picked
}

// ResolveDay determines which day template applies to a date, honoring a
// manual override when one exists. The caller supplies the single run that
// covers the date (or nil); the resolver never searches across runs.
func ResolveDay(split *domain.Split, slots []domain.SplitDay, run *domain.SplitRun, override *domain.DayOverride, date string) (Resolution, error) {
	res := Resolution{}
	if split != nil {
		res.SlotKind = split.Mode
	}

	if run != nil && RunContains(run, date) && split != nil {
		res.HasRun = true
		dayID, err := resolveSlot(split, slots, run, date)
		if err != nil {
			return Resolution{}, err
		}
		res.DayID = dayID
		res.IsRest = dayID == nil
	}

	// A manual override wins over the natural resolution, including
	// forcing rest with a nil day.
	if override != nil {
		res.DayID = override.OverriddenDayID
		res.IsRest = override.OverriddenDayID == nil
	}

	return res, nil
}

func resolveSlot(split *domain.Split, slots []domain.SplitDay, run *domain.SplitRun, date string) (*string, error) {
	switch split.Mode {
	case domain.SplitModeRotation:
		offset, err := domain.DaysBetween(*run.StartDate, date)
		if err != nil {
			return nil, err
		}
		idx := offset % RotationLength(split, slots)
		for _, slot := range slots {
			if slot.OrderIndex != nil && *slot.OrderIndex == idx {
				return slot.DayID, nil
			}
		}
		return nil, nil
	default: // weekly
		weekday, err := domain.WeekdayOf(date)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			if slot.Weekday != nil && *slot.Weekday == weekday {
				return slot.DayID, nil
			}
		}
		return nil, nil
	}
}
