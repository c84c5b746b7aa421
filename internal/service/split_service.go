package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// --- Error Definitions ---
var (
	ErrSplitNotFound     = errors.New("split not found")
	ErrSplitAccessDenied = errors.New("access denied to modify or delete this split")
	ErrSlotNotFound      = errors.New("assignment slot not found")
)

// maxRotationLen bounds authored rotation periods to something sane.
const maxRotationLen = 14

// SplitService manages split definitions and their assignment slots.
type SplitService interface {
	CreateSplit(ctx context.Context, userID, name string, mode domain.SplitMode, rotationLen int) (*domain.Split, error)
	GetSplit(ctx context.Context, userID, splitID string) (*domain.Split, error)
	ListSplits(ctx context.Context, userID string) ([]domain.Split, error)
	UpdateSplit(ctx context.Context, userID, splitID, name string, rotationLen int) (*domain.Split, error)
	DeleteSplit(ctx context.Context, userID, splitID string) error

	AssignSlot(ctx context.Context, userID, splitID string, dayID *string, weekday, orderIndex *int) (*domain.SplitDay, error)
	ListSlots(ctx context.Context, userID, splitID string) ([]domain.SplitDay, error)
	ClearSlot(ctx context.Context, userID, splitID, slotID string) error
}

// splitService implements the SplitService interface.
type splitService struct {
	splitRepo    repository.SplitRepository
	splitDayRepo repository.SplitDayRepository
	dayRepo      repository.DayRepository
}

// NewSplitService creates a new instance of splitService.
func NewSplitService(
	splitRepo repository.SplitRepository,
	splitDayRepo repository.SplitDayRepository,
	dayRepo repository.DayRepository,
) SplitService {
	return &splitService{
		splitRepo:    splitRepo,
		splitDayRepo: splitDayRepo,
		dayRepo:      dayRepo,
	}
}

// CreateSplit creates a split. Mode is fixed at creation; switching mode
// means authoring a new split.
func (s *splitService) CreateSplit(ctx context.Context, userID, name string, mode domain.SplitMode, rotationLen int) (*domain.Split, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: split name is required", ErrValidation)
	}
	if mode != domain.SplitModeWeek && mode != domain.SplitModeRotation {
		return nil, fmt.Errorf("%w: mode must be %q or %q", ErrValidation, domain.SplitModeWeek, domain.SplitModeRotation)
	}
	if mode == domain.SplitModeRotation {
		if rotationLen == 0 {
			rotationLen = domain.DefaultRotationLen
		}
		if rotationLen < 1 || rotationLen > maxRotationLen {
			return nil, fmt.Errorf("%w: rotation length must be between 1 and %d", ErrValidation, maxRotationLen)
		}
	} else {
		rotationLen = 0
	}

	split := &domain.Split{
		UserID:      userID,
		Name:        name,
		Mode:        mode,
		RotationLen: rotationLen,
	}
	splitID, err := s.splitRepo.Create(ctx, split)
	if err != nil {
		return nil, err
	}
	return s.splitRepo.GetByID(ctx, splitID)
}

// GetSplit retrieves a split, enforcing ownership.
func (s *splitService) GetSplit(ctx context.Context, userID, splitID string) (*domain.Split, error) {
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

// ListSplits retrieves all splits for a user.
func (s *splitService) ListSplits(ctx context.Context, userID string) ([]domain.Split, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	return s.splitRepo.ListByUser(ctx, userID)
}

// UpdateSplit renames a split and adjusts its stored rotation length.
func (s *splitService) UpdateSplit(ctx context.Context, userID, splitID, name string, rotationLen int) (*domain.Split, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: split name is required", ErrValidation)
	}

	split, err := s.GetSplit(ctx, userID, splitID)
	if err != nil {
		return nil, err
	}
	if split.Mode == domain.SplitModeRotation && (rotationLen < 1 || rotationLen > maxRotationLen) {
		return nil, fmt.Errorf("%w: rotation length must be between 1 and %d", ErrValidation, maxRotationLen)
	}

	split.Name = name
	if split.Mode == domain.SplitModeRotation {
		split.RotationLen = rotationLen
	}
	if err := s.splitRepo.Update(ctx, split); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSplitNotFound
		}
		return nil, err
	}
	return split, nil
}

// DeleteSplit deletes a split and its slots.
func (s *splitService) DeleteSplit(ctx context.Context, userID, splitID string) error {
	err := s.splitRepo.Delete(ctx, splitID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSplitNotFound
		}
		return err
	}
	return nil
}

// AssignSlot upserts one assignment slot of a split. Weekly splits key slots
// by weekday (0=Sunday..6=Saturday), rotation splits by order index. A nil
// day marks the slot as rest.
func (s *splitService) AssignSlot(ctx context.Context, userID, splitID string, dayID *string, weekday, orderIndex *int) (*domain.SplitDay, error) {
	split, err := s.GetSplit(ctx, userID, splitID)
	if err != nil {
		return nil, err
	}

	switch split.Mode {
	case domain.SplitModeWeek:
		if weekday == nil || *weekday < 0 || *weekday > 6 {
			return nil, fmt.Errorf("%w: weekly slots need a weekday between 0 and 6", ErrValidation)
		}
		orderIndex = nil
	case domain.SplitModeRotation:
		if orderIndex == nil || *orderIndex < 0 || *orderIndex >= maxRotationLen {
			return nil, fmt.Errorf("%w: rotation slots need an order index between 0 and %d", ErrValidation, maxRotationLen-1)
		}
		weekday = nil
	}

	if dayID != nil {
		day, err := s.dayRepo.GetByID(ctx, *dayID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrDayNotFound
			}
			return nil, err
		}
		if day.UserID != userID {
			return nil, ErrDayAccessDenied
		}
	}

	slot := &domain.SplitDay{
		SplitID:    splitID,
		DayID:      dayID,
		Weekday:    weekday,
		OrderIndex: orderIndex,
	}
	if _, err := s.splitDayRepo.Upsert(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// ListSlots retrieves the assignment slots of a split the user owns.
func (s *splitService) ListSlots(ctx context.Context, userID, splitID string) ([]domain.SplitDay, error) {
	if _, err := s.GetSplit(ctx, userID, splitID); err != nil {
		return nil, err
	}
	return s.splitDayRepo.ListBySplit(ctx, splitID)
}

// ClearSlot removes an assignment slot entirely. Already-materialized
// workouts are never rewritten by slot edits.
func (s *splitService) ClearSlot(ctx context.Context, userID, splitID, slotID string) error {
	if _, err := s.GetSplit(ctx, userID, splitID); err != nil {
		return err
	}
	err := s.splitDayRepo.Delete(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSlotNotFound
		}
		return err
	}
	return nil
}
