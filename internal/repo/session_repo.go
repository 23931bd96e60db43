// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ChatSession model, including the per-actor soft-delete mutation.
//
// Soft-delete semantics: a session row is never physically removed. Deleting
// "for" an actor appends the actor id to the deletedBy set (set-union merge,
// applied inside a row-scoped transaction so concurrent markers never drop
// each other's entries). Read paths return all rows; per-actor filtering is
// the HTTP boundary's job.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

// SessionFilter narrows session list queries. Zero-value fields are ignored.
type SessionFilter struct {
	TouristID string
	GuideID   *int
	Category  string
	Active    *bool
}

func (f SessionFilter) apply(q *gorm.DB) *gorm.DB {
	if f.TouristID != "" {
		q = q.Where("tourist_id = ?", f.TouristID)
	}
	if f.GuideID != nil {
		q = q.Where("guide_id = ?", *f.GuideID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	return q
}

// CreateSession inserts a new session row. Sessions are always created open
// (closedAt null).
func CreateSession(ctx context.Context, db *gorm.DB, s *domain.ChatSession) error {
	s.CreatedAt = time.Now().UTC()
	s.ClosedAt = nil
	return db.WithContext(ctx).Create(s).Error
}

// GetSession fetches a single session by id, or ErrNotFound.
func GetSession(ctx context.Context, db *gorm.DB, id int) (*domain.ChatSession, error) {
	var s domain.ChatSession
	if err := db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// CountSessions returns the number of sessions matching the filter.
func CountSessions(ctx context.Context, db *gorm.DB, f SessionFilter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.ChatSession{})).Count(&total).Error
	return total, err
}

// ListSessionsPage returns a paginated slice of sessions matching the filter,
// most recent first.
func ListSessionsPage(ctx context.Context, db *gorm.DB, f SessionFilter, offset, limit int) ([]domain.ChatSession, error) {
	var out []domain.ChatSession
	err := f.apply(db.WithContext(ctx)).
		Order("created_at desc, id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CloseSession sets closedAt and clears the active flag. Closing an already
// closed session is a no-op that keeps the original closedAt. Returns
// ErrNotFound when the session does not exist.
func CloseSession(ctx context.Context, db *gorm.DB, id int, at time.Time) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s domain.ChatSession
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		if s.ClosedAt != nil {
			return nil
		}
		return tx.Model(&domain.ChatSession{}).
			Where("id = ?", id).
			Updates(map[string]any{"closed_at": at, "is_active": false}).Error
	})
}

// AssignGuide sets the guide foreign key on a session. Returns ErrNotFound
// when the session does not exist.
func AssignGuide(ctx context.Context, db *gorm.DB, sessionID, guideID int) error {
	res := db.WithContext(ctx).
		Model(&domain.ChatSession{}).
		Where("id = ?", sessionID).
		Update("guide_id", guideID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkSessionDeleted appends actorID to the session's deletedBy set. The
// merge is a set-union performed inside a transaction: marking twice by the
// same actor keeps a single entry, and concurrent markers both survive.
func MarkSessionDeleted(ctx context.Context, db *gorm.DB, id int, actorID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s domain.ChatSession
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		merged, changed := unionAppend(s.DeletedBy, actorID)
		if !changed {
			return nil
		}
		return tx.Model(&domain.ChatSession{}).
			Where("id = ?", id).
			Update("deleted_by", domain.StringSet(merged)).Error
	})
}

// SessionExists reports whether a session row with the given id exists.
func SessionExists(ctx context.Context, db *gorm.DB, id int) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.ChatSession{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// unionAppend returns set ∪ {actor} and whether the set actually grew.
func unionAppend(set []string, actor string) ([]string, bool) {
	for _, id := range set {
		if id == actor {
			return set, false
		}
	}
	return append(append([]string{}, set...), actor), true
}
