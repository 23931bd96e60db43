// Package services defines the business logic for users, guides, hotels,
// rosters, chat, bulletins, and reviews. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import "errors"

// Directory errors.
var (
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateGuideEmail is returned when a guide email is already registered.
	ErrDuplicateGuideEmail = errors.New("guide email already exists")

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrGuideNotFound indicates that the referenced guide does not exist.
	ErrGuideNotFound = errors.New("guide not found")

	// ErrHotelNotFound indicates that the referenced hotel does not exist.
	ErrHotelNotFound = errors.New("hotel not found")

	// ErrAssignmentNotFound indicates that the requested roster assignment
	// does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// Chat-related errors.
var (
	// ErrSessionNotFound indicates that the requested chat session does not
	// exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionClosed is returned when a message is posted to a session
	// whose closedAt is already set. Validation does not know session state;
	// only this layer rejects the write.
	ErrSessionClosed = errors.New("session is closed")

	// ErrMessageNotFound indicates that the requested message does not exist.
	ErrMessageNotFound = errors.New("message not found")
)

// Bulletin errors.
var (
	// ErrAnnouncementNotFound indicates that the announcement does not exist.
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// ErrScheduleNotFound indicates that the departure schedule does not exist.
	ErrScheduleNotFound = errors.New("departure schedule not found")

	// ErrContactNotFound indicates that the emergency contact does not exist.
	ErrContactNotFound = errors.New("emergency contact not found")
)

// Review errors.
var (
	// ErrDuplicateReview is returned when a tourist attempts to review the
	// same session twice.
	ErrDuplicateReview = errors.New("review already exists for this session")

	// ErrReviewRequiresClosed is returned when a review targets a session
	// that is still open and the service is configured to require closure.
	ErrReviewRequiresClosed = errors.New("session must be closed before review")

	// ErrReviewGuideMismatch is returned when the reviewed guide is not the
	// guide assigned to the session.
	ErrReviewGuideMismatch = errors.New("guide is not assigned to this session")
)
