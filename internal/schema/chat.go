package schema

import (
	"encoding/json"

	"github.com/aegeantours/go-guide-backend/internal/domain"
	"gorm.io/datatypes"
)

// InsertChatSession is the insert shape for chat sessions. id, createdAt, and
// closedAt are server-assigned and therefore absent; a session is always
// created open.
type InsertChatSession struct {
	Category  string   `json:"category"  validate:"required,oneof=hotel-change hotel-complain booking-tours medical-assistance guide-assistance"`
	GuideID   *int     `json:"guideId"   validate:"omitempty,gt=0"`
	TouristID string   `json:"touristId" validate:"omitempty,max=64"`
	DeletedBy []string `json:"deletedBy"`
	IsActive  *bool    `json:"isActive"`
}

// ValidateChatSession accepts or rejects a candidate session.
func ValidateChatSession(in InsertChatSession) (domain.ChatSession, Errors) {
	if errs := check(in); errs != nil {
		return domain.ChatSession{}, errs
	}
	return domain.ChatSession{
		Category:  in.Category,
		GuideID:   in.GuideID,
		TouristID: in.TouristID,
		DeletedBy: datatypes.NewJSONSlice(orEmpty(in.DeletedBy)),
		IsActive:  defaultTrue(in.IsActive),
	}, nil
}

// InsertChatMessage is the insert shape for chat messages. Metadata is an
// opaque structured payload carried through untouched. The read/delete state
// (isRead, readBy, deletedBy) is server-owned and has no insert field: every
// message starts unread with empty actor sets. Validation does not look at
// the referenced session at all; posting into a closed session is a business
// rule enforced by the chat service, not here.
type InsertChatMessage struct {
	SessionID   int             `json:"sessionId"   validate:"required,gt=0"`
	SenderType  string          `json:"senderType"  validate:"required,oneof=user guide system"`
	SenderID    string          `json:"senderId"    validate:"omitempty,max=64"`
	Content     string          `json:"content"     validate:"required"`
	MessageType string          `json:"messageType" validate:"omitempty,oneof=text voice image file"`
	Metadata    json.RawMessage `json:"metadata"`
}

// ValidateChatMessage accepts or rejects a candidate message, applying the
// "text" default and initializing the per-actor sets to empty arrays.
func ValidateChatMessage(in InsertChatMessage) (domain.ChatMessage, Errors) {
	if errs := check(in); errs != nil {
		return domain.ChatMessage{}, errs
	}
	mt := in.MessageType
	if mt == "" {
		mt = domain.MessageTypeText
	}
	var meta datatypes.JSON
	if len(in.Metadata) > 0 {
		meta = datatypes.JSON(in.Metadata)
	}
	return domain.ChatMessage{
		SessionID:   in.SessionID,
		SenderType:  in.SenderType,
		SenderID:    in.SenderID,
		Content:     in.Content,
		MessageType: mt,
		Metadata:    meta,
		DeletedBy:   datatypes.NewJSONSlice([]string{}),
		IsRead:      false,
		ReadBy:      datatypes.NewJSONSlice([]string{}),
	}, nil
}

// InsertSessionReview is the insert shape for post-session reviews. All
// rating axes must fall in [1,5]; boundary values 1 and 5 are accepted and
// anything outside is rejected here rather than clamped in storage.
type InsertSessionReview struct {
	SessionID       int     `json:"sessionId"       validate:"required,gt=0"`
	GuideID         int     `json:"guideId"         validate:"required,gt=0"`
	TouristID       string  `json:"touristId"       validate:"required,max=64"`
	Rating          int     `json:"rating"          validate:"required,min=1,max=5"`
	Comment         *string `json:"comment"`
	Helpfulness     *int    `json:"helpfulness"     validate:"omitempty,min=1,max=5"`
	Responsiveness  *int    `json:"responsiveness"  validate:"omitempty,min=1,max=5"`
	Professionalism *int    `json:"professionalism" validate:"omitempty,min=1,max=5"`
	WouldRecommend  *bool   `json:"wouldRecommend"`
}

// ValidateSessionReview accepts or rejects a candidate review.
func ValidateSessionReview(in InsertSessionReview) (domain.SessionReview, Errors) {
	if errs := check(in); errs != nil {
		return domain.SessionReview{}, errs
	}
	return domain.SessionReview{
		SessionID:       in.SessionID,
		GuideID:         in.GuideID,
		TouristID:       in.TouristID,
		Rating:          in.Rating,
		Comment:         in.Comment,
		Helpfulness:     in.Helpfulness,
		Responsiveness:  in.Responsiveness,
		Professionalism: in.Professionalism,
		WouldRecommend:  in.WouldRecommend,
	}, nil
}
