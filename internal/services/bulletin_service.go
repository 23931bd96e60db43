// Package services – BulletinService
//
// This file implements the BulletinService, which manages the broadcast
// surfaces shown to tourists: announcements, departure schedules, and
// emergency contacts. Expired announcements are flagged, not hidden:
// listings return them unless the caller opts into dropping them, so the
// admin view can still audit past notices.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
	"github.com/aegeantours/go-guide-backend/internal/repo"
)

// BulletinService provides announcement, departure-schedule, and
// emergency-contact operations.
type BulletinService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Now supplies the clock used for expiry checks; nil means time.Now.
	Now func() time.Time
}

// NewBulletinService constructs a BulletinService.
func NewBulletinService(db *gorm.DB) *BulletinService {
	return &BulletinService{DB: db}
}

func (s *BulletinService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// CreateAnnouncement inserts a notice. ExpiresAt may be nil for notices
// that never expire.
func (s *BulletinService) CreateAnnouncement(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	if err := repo.CreateAnnouncement(ctx, s.DB, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetAnnouncement returns the notice with the given ID, or
// ErrAnnouncementNotFound. Expired notices are still returned.
func (s *BulletinService) GetAnnouncement(ctx context.Context, id int) (*domain.Announcement, error) {
	a, err := repo.GetAnnouncement(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListAnnouncements returns notices. The active filter matches the stored
// flag; dropExpired additionally removes notices whose expiry has passed.
func (s *BulletinService) ListAnnouncements(ctx context.Context, active *bool, dropExpired bool) ([]domain.Announcement, error) {
	return repo.ListAnnouncements(ctx, s.DB, repo.AnnouncementFilter{
		Active:      active,
		DropExpired: dropExpired,
		Now:         s.now(),
	})
}

// SetAnnouncementActive flips the notice's active flag.
func (s *BulletinService) SetAnnouncementActive(ctx context.Context, id int, active bool) error {
	if err := repo.SetAnnouncementActive(ctx, s.DB, id, active); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	return nil
}

// CreateDeparture inserts an uploaded departure sheet.
func (s *BulletinService) CreateDeparture(ctx context.Context, d *domain.DepartureSchedule) (*domain.DepartureSchedule, error) {
	if d.UploadedBy != nil {
		if ok, err := repo.UserExists(ctx, s.DB, *d.UploadedBy); err != nil {
			return nil, err
		} else if !ok {
			return nil, ErrUserNotFound
		}
	}
	if err := repo.CreateDepartureSchedule(ctx, s.DB, d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetDeparture returns the schedule with the given ID, or ErrScheduleNotFound.
func (s *BulletinService) GetDeparture(ctx context.Context, id int) (*domain.DepartureSchedule, error) {
	d, err := repo.GetDepartureSchedule(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return d, nil
}

// ListDepartures returns departure sheets, optionally filtered by active state.
func (s *BulletinService) ListDepartures(ctx context.Context, active *bool) ([]domain.DepartureSchedule, error) {
	return repo.ListDepartureSchedules(ctx, s.DB, active)
}

// CreateContact inserts an emergency contact entry.
func (s *BulletinService) CreateContact(ctx context.Context, c *domain.EmergencyContact) (*domain.EmergencyContact, error) {
	if err := repo.CreateEmergencyContact(ctx, s.DB, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetContact returns the contact with the given ID, or ErrContactNotFound.
func (s *BulletinService) GetContact(ctx context.Context, id int) (*domain.EmergencyContact, error) {
	c, err := repo.GetEmergencyContact(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListContacts returns contacts, optionally filtered by type ("medical",
// "guide-manager", "general"; empty means all) and active state.
func (s *BulletinService) ListContacts(ctx context.Context, kind string, active *bool) ([]domain.EmergencyContact, error) {
	return repo.ListEmergencyContacts(ctx, s.DB, kind, active)
}
