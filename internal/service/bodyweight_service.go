package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// BodyweightService tracks one weigh-in per date, updating in place when a
// date is logged twice.
type BodyweightService interface {
	GetBodyweight(ctx context.Context, userID, date string) (*domain.Bodyweight, error)
	UpsertBodyweight(ctx context.Context, userID, date string, weight float64, unit domain.WeightUnit) (*domain.Bodyweight, error)
}

// bodyweightService implements the BodyweightService interface.
type bodyweightService struct {
	bodyweightRepo repository.BodyweightRepository
}

// NewBodyweightService creates a new instance of bodyweightService.
func NewBodyweightService(bodyweightRepo repository.BodyweightRepository) BodyweightService {
	return &bodyweightService{bodyweightRepo: bodyweightRepo}
}

// GetBodyweight returns the entry for a date, or nil when none exists.
func (s *bodyweightService) GetBodyweight(ctx context.Context, userID, date string) (*domain.Bodyweight, error) {
	entry, err := s.bodyweightRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// UpsertBodyweight records a weigh-in for a date, overwriting the existing
// entry for that date if there is one.
func (s *bodyweightService) UpsertBodyweight(ctx context.Context, userID, date string, weight float64, unit domain.WeightUnit) (*domain.Bodyweight, error) {
	if !domain.ValidDate(date) {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return nil, fmt.Errorf("%w: weight must be a positive finite number", ErrValidation)
	}
	if unit != domain.UnitKg && unit != domain.UnitLbs {
		return nil, fmt.Errorf("%w: unit must be %q or %q", ErrValidation, domain.UnitKg, domain.UnitLbs)
	}

	existing, err := s.bodyweightRepo.GetByUserAndDate(ctx, userID, date)
	switch {
	case err == nil:
		existing.Weight = weight
		existing.Unit = unit
		if err := s.bodyweightRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, repository.ErrNotFound):
		entry := &domain.Bodyweight{
			UserID:   userID,
			Weight:   weight,
			Unit:     unit,
			LoggedAt: date,
		}
		if _, err := s.bodyweightRepo.Create(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	default:
		return nil, err
	}
}
