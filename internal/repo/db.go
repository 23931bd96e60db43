// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver), schema migrations, and shared error values.
//
// All repository functions are context-aware free functions over a *gorm.DB
// handle, making them safe for use within transactions or connection-scoped
// operations. They follow the "thin repository" approach: no business logic,
// only CRUD persistence and query composition.
//
// Error semantics:
//   - When a row is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/aegeantours/go-guide-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates a unique-constraint violation (e.g. a second review
// for the same session and tourist, or a reused idempotency key).
var ErrDuplicate = errors.New("duplicate")

// Open opens (or creates) a SQLite database, applies PRAGMAs, configures the
// connection pool, and installs the OpenTelemetry tracing plugin so every
// query shows up as a span.
func Open(path string) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist (instead of the
	// opaque sqlite "out of memory (14)" error).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	// PRAGMAs go in the DSN so every pooled connection gets them; a plain
	// db.Exec would only reach whichever connection the pool hands out.
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=journal_mode(WAL)" +
			"&_pragma=synchronous(NORMAL)" +
			"&_pragma=foreign_keys(1)" +
			"&_pragma=busy_timeout(5000)"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	return db, nil
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// glebarez/sqlite often surfaces these as plain-text errors rather than
// gorm.ErrDuplicatedKey, so the message is inspected as a fallback.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}

// AutoMigrate creates or updates all application tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Guide{},
		&domain.Hotel{},
		&domain.GuideAssignment{},
		&domain.ChatSession{},
		&domain.ChatMessage{},
		&domain.Announcement{},
		&domain.DepartureSchedule{},
		&domain.EmergencyContact{},
		&domain.SessionReview{},
		&domain.Idempotency{},
	)
}
