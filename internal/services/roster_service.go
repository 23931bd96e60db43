// Package services – RosterService
//
// This file implements the RosterService, which schedules guides at hotels.
// An assignment references both a guide and a hotel; the service verifies
// both exist before inserting so that a dangling foreign key surfaces as a
// predictable sentinel error rather than a driver-specific constraint
// failure.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
	"github.com/aegeantours/go-guide-backend/internal/repo"
)

// RosterService provides hotel operations and guide-to-hotel scheduling.
type RosterService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewRosterService constructs a RosterService.
func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{DB: db}
}

// CreateHotel inserts a partner hotel.
func (s *RosterService) CreateHotel(ctx context.Context, h *domain.Hotel) (*domain.Hotel, error) {
	if err := repo.CreateHotel(ctx, s.DB, h); err != nil {
		return nil, err
	}
	return h, nil
}

// GetHotel returns the hotel with the given ID, or ErrHotelNotFound.
func (s *RosterService) GetHotel(ctx context.Context, id int) (*domain.Hotel, error) {
	h, err := repo.GetHotel(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return h, nil
}

// ListHotels returns hotels, optionally filtered by active state.
func (s *RosterService) ListHotels(ctx context.Context, active *bool) ([]domain.Hotel, error) {
	return repo.ListHotels(ctx, s.DB, active)
}

// SetHotelActive flips the hotel's active flag.
func (s *RosterService) SetHotelActive(ctx context.Context, id int, active bool) error {
	if err := repo.SetHotelActive(ctx, s.DB, id, active); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrHotelNotFound
		}
		return err
	}
	return nil
}

// CreateAssignment verifies both parents exist, then inserts the schedule.
// The checks and the insert share one transaction so a parent deleted in
// between cannot slip through. Returns ErrGuideNotFound or ErrHotelNotFound
// for dangling references.
func (s *RosterService) CreateAssignment(ctx context.Context, a *domain.GuideAssignment) (*domain.GuideAssignment, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ok, err := repo.GuideExists(ctx, tx, a.GuideID); err != nil {
			return err
		} else if !ok {
			return ErrGuideNotFound
		}
		if ok, err := repo.HotelExists(ctx, tx, a.HotelID); err != nil {
			return err
		} else if !ok {
			return ErrHotelNotFound
		}
		return repo.CreateAssignment(ctx, tx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAssignment returns the assignment with the given ID, or
// ErrAssignmentNotFound.
func (s *RosterService) GetAssignment(ctx context.Context, id int) (*domain.GuideAssignment, error) {
	a, err := repo.GetAssignment(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListAssignments returns assignments, optionally filtered by active state
// and by guide or hotel. Zero guideID/hotelID means no parent filter.
func (s *RosterService) ListAssignments(ctx context.Context, guideID, hotelID int, active *bool) ([]domain.GuideAssignment, error) {
	switch {
	case guideID > 0:
		return repo.ListAssignmentsForGuide(ctx, s.DB, guideID, active)
	case hotelID > 0:
		return repo.ListAssignmentsForHotel(ctx, s.DB, hotelID, active)
	default:
		return repo.ListAssignments(ctx, s.DB, active)
	}
}

// SetAssignmentActive flips the assignment's active flag. Deactivation is
// how a rotation is retired; rows are never deleted.
func (s *RosterService) SetAssignmentActive(ctx context.Context, id int, active bool) error {
	if err := repo.SetAssignmentActive(ctx, s.DB, id, active); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return nil
}
