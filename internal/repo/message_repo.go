// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ChatMessage model, including the per-actor read and delete mutations.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

// CreateMessage inserts a new message row.
func CreateMessage(ctx context.Context, db *gorm.DB, m *domain.ChatMessage) error {
	m.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(m).Error
}

// GetMessage fetches a message by id, or ErrNotFound.
func GetMessage(ctx context.Context, db *gorm.DB, id int) (*domain.ChatMessage, error) {
	var m domain.ChatMessage
	if err := db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMessages returns messages for a session ordered deterministically
// (CreatedAt ASC, ID ASC). Soft-deleted rows are included: per-actor
// filtering belongs to the HTTP boundary.
func ListMessages(ctx context.Context, db *gorm.DB, sessionID int, limit int) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	q := db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountMessages uses a raw COUNT so a missing table surfaces as an error.
func CountMessages(ctx context.Context, db *gorm.DB, sessionID int) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM chat_messages WHERE session_id = ?", sessionID).
		Scan(&total).Error
	return total, err
}

// ListMessagesPage returns a paginated slice ordered (CreatedAt ASC, ID ASC).
func ListMessagesPage(ctx context.Context, db *gorm.DB, sessionID, offset, limit int) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	err := db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkMessageRead appends actorID to the message's readBy set and flips
// isRead. The merge is a set-union inside a transaction; repeat marks by the
// same actor are no-ops and concurrent markers both survive.
func MarkMessageRead(ctx context.Context, db *gorm.DB, id int, actorID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m domain.ChatMessage
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		merged, changed := unionAppend(m.ReadBy, actorID)
		if !changed && m.IsRead {
			return nil
		}
		return tx.Model(&domain.ChatMessage{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"read_by": domain.StringSet(merged),
				"is_read": true,
			}).Error
	})
}

// MarkMessageDeleted appends actorID to the message's deletedBy set
// (set-union, transactional). The row itself is never removed.
func MarkMessageDeleted(ctx context.Context, db *gorm.DB, id int, actorID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m domain.ChatMessage
		if err := tx.First(&m, id).Error; err != nil {
			return err
		}
		merged, changed := unionAppend(m.DeletedBy, actorID)
		if !changed {
			return nil
		}
		return tx.Model(&domain.ChatMessage{}).
			Where("id = ?", id).
			Update("deleted_by", domain.StringSet(merged)).Error
	})
}
