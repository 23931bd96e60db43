// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Announcement model. Expiry is advisory: rows past expiresAt are stored and
// returned unless the caller explicitly asks to drop them.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

// AnnouncementFilter narrows announcement list queries.
type AnnouncementFilter struct {
	Active *bool
	// DropExpired excludes rows whose expiresAt lies before Now.
	DropExpired bool
	Now         time.Time
}

func (f AnnouncementFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	if f.DropExpired {
		q = q.Where("expires_at IS NULL OR expires_at >= ?", f.Now)
	}
	return q
}

// CreateAnnouncement inserts a new announcement row.
func CreateAnnouncement(ctx context.Context, db *gorm.DB, a *domain.Announcement) error {
	a.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(a).Error
}

// GetAnnouncement fetches an announcement by id, or ErrNotFound.
func GetAnnouncement(ctx context.Context, db *gorm.DB, id int) (*domain.Announcement, error) {
	var a domain.Announcement
	if err := db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAnnouncements returns announcements matching the filter, newest first.
func ListAnnouncements(ctx context.Context, db *gorm.DB, f AnnouncementFilter) ([]domain.Announcement, error) {
	var out []domain.Announcement
	err := f.apply(db.WithContext(ctx)).
		Order("created_at desc, id desc").
		Find(&out).Error
	return out, err
}

// SetAnnouncementActive toggles the soft-enable flag. Returns ErrNotFound
// when no row was affected.
func SetAnnouncementActive(ctx context.Context, db *gorm.DB, id int, active bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Announcement{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
