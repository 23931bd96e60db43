// Package services – ChatService
//
// This file implements the ChatService, which manages the lifecycle of chat
// sessions and their messages. A session is opened on the tourist's first
// write and stays open until explicitly closed; closing is terminal and
// idempotent. Messages posted to a closed session are rejected here with
// ErrSessionClosed; the validation layer deliberately knows nothing about
// session state. Per-actor read and delete marks are set-union updates, so
// repeating them never grows the sets.
//
// Service-level errors (e.g. ErrSessionNotFound, ErrSessionClosed) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/aegeantours/go-guide-backend/internal/domain"
	"github.com/aegeantours/go-guide-backend/internal/repo"
)

// SessionRepo defines the repository contract required by ChatService for
// session rows.
type SessionRepo interface {
	// CreateSession inserts a new open session.
	CreateSession(ctx context.Context, db *gorm.DB, s *domain.ChatSession) error

	// GetSession fetches a session by ID.
	GetSession(ctx context.Context, db *gorm.DB, id int) (*domain.ChatSession, error)

	// CountSessions returns the number of sessions matching the filter.
	CountSessions(ctx context.Context, db *gorm.DB, f repo.SessionFilter) (int64, error)

	// ListSessionsPage returns a page of sessions matching the filter.
	ListSessionsPage(ctx context.Context, db *gorm.DB, f repo.SessionFilter, offset, limit int) ([]domain.ChatSession, error)

	// CloseSession stamps closedAt (first close wins) and clears isActive.
	CloseSession(ctx context.Context, db *gorm.DB, id int, at time.Time) error

	// AssignGuide sets the session's guide.
	AssignGuide(ctx context.Context, db *gorm.DB, sessionID, guideID int) error

	// MarkSessionDeleted adds the actor to the session's deletedBy set.
	MarkSessionDeleted(ctx context.Context, db *gorm.DB, id int, actorID string) error
}

// MessageRepo defines the repository contract required by ChatService for
// message rows.
type MessageRepo interface {
	// CreateMessage inserts a message.
	CreateMessage(ctx context.Context, db *gorm.DB, m *domain.ChatMessage) error

	// GetMessage fetches a message by ID.
	GetMessage(ctx context.Context, db *gorm.DB, id int) (*domain.ChatMessage, error)

	// CountMessages returns the number of messages in a session.
	CountMessages(ctx context.Context, db *gorm.DB, sessionID int) (int64, error)

	// ListMessagesPage returns a page of messages in chronological order.
	ListMessagesPage(ctx context.Context, db *gorm.DB, sessionID, offset, limit int) ([]domain.ChatMessage, error)

	// MarkMessageRead adds the actor to readBy and flips isRead.
	MarkMessageRead(ctx context.Context, db *gorm.DB, id int, actorID string) error

	// MarkMessageDeleted adds the actor to the message's deletedBy set.
	MarkMessageDeleted(ctx context.Context, db *gorm.DB, id int, actorID string) error
}

// gormSessionRepo adapts the free repo functions to SessionRepo.
type gormSessionRepo struct{}

func (gormSessionRepo) CreateSession(ctx context.Context, db *gorm.DB, s *domain.ChatSession) error {
	return repo.CreateSession(ctx, db, s)
}

func (gormSessionRepo) GetSession(ctx context.Context, db *gorm.DB, id int) (*domain.ChatSession, error) {
	return repo.GetSession(ctx, db, id)
}

func (gormSessionRepo) CountSessions(ctx context.Context, db *gorm.DB, f repo.SessionFilter) (int64, error) {
	return repo.CountSessions(ctx, db, f)
}

func (gormSessionRepo) ListSessionsPage(ctx context.Context, db *gorm.DB, f repo.SessionFilter, offset, limit int) ([]domain.ChatSession, error) {
	return repo.ListSessionsPage(ctx, db, f, offset, limit)
}

func (gormSessionRepo) CloseSession(ctx context.Context, db *gorm.DB, id int, at time.Time) error {
	return repo.CloseSession(ctx, db, id, at)
}

func (gormSessionRepo) AssignGuide(ctx context.Context, db *gorm.DB, sessionID, guideID int) error {
	return repo.AssignGuide(ctx, db, sessionID, guideID)
}

func (gormSessionRepo) MarkSessionDeleted(ctx context.Context, db *gorm.DB, id int, actorID string) error {
	return repo.MarkSessionDeleted(ctx, db, id, actorID)
}

// gormMessageRepo adapts the free repo functions to MessageRepo.
type gormMessageRepo struct{}

func (gormMessageRepo) CreateMessage(ctx context.Context, db *gorm.DB, m *domain.ChatMessage) error {
	return repo.CreateMessage(ctx, db, m)
}

func (gormMessageRepo) GetMessage(ctx context.Context, db *gorm.DB, id int) (*domain.ChatMessage, error) {
	return repo.GetMessage(ctx, db, id)
}

func (gormMessageRepo) CountMessages(ctx context.Context, db *gorm.DB, sessionID int) (int64, error) {
	return repo.CountMessages(ctx, db, sessionID)
}

func (gormMessageRepo) ListMessagesPage(ctx context.Context, db *gorm.DB, sessionID, offset, limit int) ([]domain.ChatMessage, error) {
	return repo.ListMessagesPage(ctx, db, sessionID, offset, limit)
}

func (gormMessageRepo) MarkMessageRead(ctx context.Context, db *gorm.DB, id int, actorID string) error {
	return repo.MarkMessageRead(ctx, db, id, actorID)
}

func (gormMessageRepo) MarkMessageDeleted(ctx context.Context, db *gorm.DB, id int, actorID string) error {
	return repo.MarkMessageDeleted(ctx, db, id, actorID)
}

// ChatService provides session and message operations. It holds the GORM
// handle plus narrow repository interfaces so tests can substitute either
// side independently.
type ChatService struct {
	// DB is the database handle used for all chat operations.
	DB *gorm.DB
	// Sessions is the session repository used by this service.
	Sessions SessionRepo
	// Messages is the message repository used by this service.
	Messages MessageRepo

	// Now supplies timestamps for closing; nil means time.Now.
	Now func() time.Time
}

// NewChatService constructs a ChatService backed by the GORM repositories.
func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{DB: db, Sessions: gormSessionRepo{}, Messages: gormMessageRepo{}}
}

func (s *ChatService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// OpenSession inserts a new open session for the tourist. The row starts
// active and with closedAt unset regardless of the input. A pre-assigned
// guideId must reference an existing guide; otherwise ErrGuideNotFound.
func (s *ChatService) OpenSession(ctx context.Context, sess *domain.ChatSession) (*domain.ChatSession, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "OpenSession",
		trace.WithAttributes(attribute.String("chat.category", sess.Category)))
	defer span.End()

	if sess.GuideID != nil {
		if ok, err := repo.GuideExists(ctx, s.DB, *sess.GuideID); err != nil {
			span.RecordError(err)
			return nil, err
		} else if !ok {
			return nil, ErrGuideNotFound
		}
	}
	if err := s.Sessions.CreateSession(ctx, s.DB, sess); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("session.id", sess.ID))
	return sess, nil
}

// GetSession returns the session with the given ID, or ErrSessionNotFound.
func (s *ChatService) GetSession(ctx context.Context, id int) (*domain.ChatSession, error) {
	sess, err := s.Sessions.GetSession(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// ListSessionsPage returns a page of sessions matching the filter plus the
// total count. It applies defaults for invalid page/pageSize.
func (s *ChatService) ListSessionsPage(ctx context.Context, f repo.SessionFilter, page, pageSize int) ([]domain.ChatSession, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Sessions.CountSessions(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ChatSession{}, 0, nil
	}

	items, err := s.Sessions.ListSessionsPage(ctx, s.DB, f, offset, pageSize)
	return items, total, err
}

// Close stamps the session closed. Repeating the call keeps the original
// closedAt. Returns ErrSessionNotFound for unknown sessions.
func (s *ChatService) Close(ctx context.Context, id int) (*domain.ChatSession, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "CloseSession",
		trace.WithAttributes(attribute.Int("session.id", id)))
	defer span.End()

	if err := s.Sessions.CloseSession(ctx, s.DB, id, s.now()); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		span.RecordError(err)
		return nil, err
	}
	return s.GetSession(ctx, id)
}

// AssignGuide attaches a guide to the session after verifying both exist.
func (s *ChatService) AssignGuide(ctx context.Context, sessionID, guideID int) (*domain.ChatSession, error) {
	if ok, err := repo.GuideExists(ctx, s.DB, guideID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrGuideNotFound
	}
	if err := s.Sessions.AssignGuide(ctx, s.DB, sessionID, guideID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.GetSession(ctx, sessionID)
}

// DeleteSessionFor adds the actor to the session's deletedBy set. The row
// always survives; other actors keep seeing it.
func (s *ChatService) DeleteSessionFor(ctx context.Context, id int, actorID string) error {
	if err := s.Sessions.MarkSessionDeleted(ctx, s.DB, id, actorID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// PostMessage appends a message to the session.
//
// Semantics and validation:
//   - The session must exist; otherwise ErrSessionNotFound.
//   - The session must still be open; a session with closedAt set rejects
//     all further messages with ErrSessionClosed, whatever the sender type.
//   - The message is stored unread with empty readBy/deletedBy sets.
func (s *ChatService) PostMessage(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "PostMessage",
		trace.WithAttributes(
			attribute.Int("session.id", m.SessionID),
			attribute.String("message.sender_type", m.SenderType),
		))
	defer span.End()

	sess, err := s.Sessions.GetSession(ctx, s.DB, m.SessionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		span.RecordError(err)
		return nil, err
	}
	if sess.Closed() {
		return nil, ErrSessionClosed
	}

	m.IsRead = false
	m.ReadBy = domain.StringSet{}
	m.DeletedBy = domain.StringSet{}
	if err := s.Messages.CreateMessage(ctx, s.DB, m); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("message.id", m.ID))
	return m, nil
}

// ListMessagesPage returns a page of the session's messages in chronological
// order plus the total count. Soft-deleted rows are included; callers filter
// per actor at the boundary.
func (s *ChatService) ListMessagesPage(ctx context.Context, sessionID, page, pageSize int) ([]domain.ChatMessage, int64, error) {
	if ok, err := repo.SessionExists(ctx, s.DB, sessionID); err != nil {
		return nil, 0, err
	} else if !ok {
		return nil, 0, ErrSessionNotFound
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	total, err := s.Messages.CountMessages(ctx, s.DB, sessionID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.ChatMessage{}, 0, nil
	}

	items, err := s.Messages.ListMessagesPage(ctx, s.DB, sessionID, offset, pageSize)
	return items, total, err
}

// MarkRead records that the actor has read the message. Repeating the call
// is a no-op for the readBy set.
func (s *ChatService) MarkRead(ctx context.Context, messageID int, actorID string) (*domain.ChatMessage, error) {
	if err := s.Messages.MarkMessageRead(ctx, s.DB, messageID, actorID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return s.Messages.GetMessage(ctx, s.DB, messageID)
}

// DeleteMessageFor adds the actor to the message's deletedBy set. The row
// always survives; other actors keep seeing it.
func (s *ChatService) DeleteMessageFor(ctx context.Context, messageID int, actorID string) error {
	if err := s.Messages.MarkMessageDeleted(ctx, s.DB, messageID, actorID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	return nil
}
