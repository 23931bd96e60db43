// Package domain defines the core persistence models for the application.
package domain

import "time"

// Idempotency records a previously processed message post, keyed by
// (tourist_id, session_id, key). It lets clients retry POST
// /sessions/:id/messages safely: the recorded message is replayed instead of
// re-executing the write.
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	TouristID string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_tourist_session_key,priority:1"`
	SessionID int       `gorm:"not null;uniqueIndex:ux_tourist_session_key,priority:2"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_tourist_session_key,priority:3"`
	MessageID int       `gorm:"not null"`
	Status    int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
