// Package domain defines the persistence models for the guide-coordination
// backend: users, guides, hotels, shift assignments, chat sessions and
// messages, announcements, departure schedules, emergency contacts, and
// session reviews. These types are mapped with GORM and are the "select
// shape" every other layer reads; the matching insert shapes live in the
// schema package.
//
// Array-valued columns (specialties, languages, deletedBy, readBy, daysOfWeek,
// weekStartDates, customShifts) and the opaque message metadata are stored as
// JSON columns via gorm.io/datatypes so the same mapping works on the SQLite
// dev store and on Postgres.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Role values for User.Role.
const (
	RoleAdmin = "admin"
	RoleGuide = "guide"
)

// Chat session categories a tourist can open.
const (
	CategoryHotelChange   = "hotel-change"
	CategoryHotelComplain = "hotel-complain"
	CategoryBookingTours  = "booking-tours"
	CategoryMedicalAssist = "medical-assistance"
	CategoryGuideAssist   = "guide-assistance"
)

// Sender types for ChatMessage.SenderType.
const (
	SenderUser   = "user"
	SenderGuide  = "guide"
	SenderSystem = "system"
)

// Message payload kinds for ChatMessage.MessageType.
const (
	MessageTypeText  = "text"
	MessageTypeVoice = "voice"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
)

// Announcement severities.
const (
	AnnouncementInfo    = "info"
	AnnouncementWarning = "warning"
	AnnouncementUrgent  = "urgent"
)

// Emergency contact kinds.
const (
	ContactMedical      = "medical"
	ContactGuideManager = "guide-manager"
	ContactGeneral      = "general"
)

// StringSet is an append-only per-actor set stored as a JSON array. It backs
// the deletedBy/readBy audit columns: actors are added, never removed, and a
// row "deleted" by one actor remains visible to everyone else.
type StringSet = datatypes.JSONSlice[string]

// ShiftWindow is one custom shift inside a guide assignment. Times are plain
// "HH:MM" strings; the schema layer only requires both ends to be present.
type ShiftWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// User is an account that can sign in to the admin or guide dashboards.
// Passwords are stored bcrypt-hashed and never serialized.
type User struct {
	ID        int       `json:"id"        gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username"  gorm:"type:varchar(64);not null;uniqueIndex"`
	Password  string    `json:"-"         gorm:"type:varchar(255);not null"`
	Role      string    `json:"role"      gorm:"type:varchar(16);not null;default:'admin';check:role IN ('admin','guide')"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Guide is a tour guide profile. A guide may optionally be linked to a User
// account (UserID) for dashboard access. Rating, TotalHelped, and
// AvgResponseTime are derived aggregates refreshed from reviews and sessions;
// IsActive deactivates the guide without deleting the row.
type Guide struct {
	ID              int                         `json:"id"              gorm:"primaryKey;autoIncrement"`
	UserID          *int                        `json:"userId"          gorm:"index"`
	Name            string                      `json:"name"            gorm:"type:varchar(128);not null"`
	Email           string                      `json:"email"           gorm:"type:varchar(128);not null;uniqueIndex"`
	Phone           *string                     `json:"phone"           gorm:"type:varchar(32)"`
	Specialties     datatypes.JSONSlice[string] `json:"specialties"`
	Languages       datatypes.JSONSlice[string] `json:"languages"`
	Rating          int                         `json:"rating"          gorm:"not null;default:0"`
	TotalHelped     int                         `json:"totalHelped"     gorm:"not null;default:0"`
	AvgResponseTime int                         `json:"avgResponseTime" gorm:"not null;default:0"` // minutes
	IsActive        bool                        `json:"isActive"        gorm:"not null;default:true"`
	ProfileImage    *string                     `json:"profileImage"    gorm:"type:text"`
	CreatedAt       time.Time                   `json:"createdAt"`

	// User is the optional linked account.
	User *User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the database table name for Guide.
func (Guide) TableName() string { return "guides" }

// Hotel is a partner property guides can be assigned to.
type Hotel struct {
	ID        int       `json:"id"        gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"      gorm:"type:varchar(128);not null"`
	Address   *string   `json:"address"   gorm:"type:text"`
	Phone     *string   `json:"phone"     gorm:"type:varchar(32)"`
	Email     *string   `json:"email"     gorm:"type:varchar(128)"`
	IsActive  bool      `json:"isActive"  gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the database table name for Hotel.
func (Hotel) TableName() string { return "hotels" }

// GuideAssignment schedules a guide at a hotel: which weekdays (0–6), which
// shift windows on those days, and which calendar weeks (week-start dates)
// the schedule applies to. Both foreign keys are required.
type GuideAssignment struct {
	ID             int                              `json:"id"             gorm:"primaryKey;autoIncrement"`
	GuideID        int                              `json:"guideId"        gorm:"not null;index"`
	HotelID        int                              `json:"hotelId"        gorm:"not null;index"`
	DaysOfWeek     datatypes.JSONSlice[int]         `json:"daysOfWeek"     gorm:"not null"`
	CustomShifts   datatypes.JSONSlice[ShiftWindow] `json:"customShifts"   gorm:"not null"`
	WeekStartDates datatypes.JSONSlice[string]      `json:"weekStartDates" gorm:"not null"`
	IsActive       bool                             `json:"isActive"       gorm:"not null;default:true"`
	CreatedAt      time.Time                        `json:"createdAt"`

	// Guide and Hotel are the two parents of this join row.
	Guide *Guide `json:"-" gorm:"foreignKey:GuideID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Hotel *Hotel `json:"-" gorm:"foreignKey:HotelID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for GuideAssignment.
func (GuideAssignment) TableName() string { return "guide_assignments" }

// ChatSession is one tourist conversation, opened on the first message.
// GuideID is unset until a guide is assigned. DeletedBy is the per-actor
// soft-delete set; ClosedAt is set when the session is closed. Rows are never
// physically deleted. UpdatedAt moves on every mutation (close, assignment,
// soft delete), so the list ETags derive from it rather than CreatedAt.
type ChatSession struct {
	ID        int        `json:"id"        gorm:"primaryKey;autoIncrement"`
	Category  string     `json:"category"  gorm:"type:varchar(32);not null"`
	GuideID   *int       `json:"guideId"   gorm:"index"`
	TouristID string     `json:"touristId" gorm:"type:varchar(64);index"`
	DeletedBy StringSet  `json:"deletedBy"`
	IsActive  bool       `json:"isActive"  gorm:"not null;default:true"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	ClosedAt  *time.Time `json:"closedAt"`

	// Guide is the assigned guide, when any.
	Guide *Guide `json:"-" gorm:"foreignKey:GuideID;references:ID"`
	// Messages is the has-many side used for eager loads.
	Messages []ChatMessage `json:"-" gorm:"foreignKey:SessionID;references:ID"`
}

// TableName returns the database table name for ChatSession.
func (ChatSession) TableName() string { return "chat_sessions" }

// Closed reports whether the session has been closed.
func (s *ChatSession) Closed() bool { return s.ClosedAt != nil }

// ChatMessage is a single utterance inside a session. SenderID carries the
// guide id when SenderType is "guide" and the tourist id when it is "user".
// Metadata is an opaque structured payload (file URLs, voice duration, …).
// Read and delete status are tracked per actor in ReadBy/DeletedBy; rows are
// never physically deleted.
type ChatMessage struct {
	ID          int            `json:"id"          gorm:"primaryKey;autoIncrement"`
	SessionID   int            `json:"sessionId"   gorm:"not null;index:idx_session_msgs,priority:1"`
	SenderType  string         `json:"senderType"  gorm:"type:varchar(16);not null;check:sender_type IN ('user','guide','system')"`
	SenderID    string         `json:"senderId"    gorm:"type:varchar(64)"`
	Content     string         `json:"content"     gorm:"type:text;not null"`
	MessageType string         `json:"messageType" gorm:"type:varchar(16);not null;default:'text'"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	DeletedBy   StringSet      `json:"deletedBy"`
	IsRead      bool           `json:"isRead"      gorm:"not null;default:false"`
	ReadBy      StringSet      `json:"readBy"`
	CreatedAt   time.Time      `json:"createdAt"   gorm:"index:idx_session_msgs,priority:2"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	// Session is the parent conversation.
	Session *ChatSession `json:"-" gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for ChatMessage.
func (ChatMessage) TableName() string { return "chat_messages" }

// VisibleTo reports whether actorID has not soft-deleted this message.
// The filter is applied at the HTTP boundary; repositories return all rows.
func (m *ChatMessage) VisibleTo(actorID string) bool {
	for _, id := range m.DeletedBy {
		if id == actorID {
			return false
		}
	}
	return true
}

// Announcement is an admin broadcast, optionally time-bounded via ExpiresAt.
// Expiry is advisory: the schema stores the timestamp and consumers decide
// whether to hide expired rows.
type Announcement struct {
	ID        int        `json:"id"        gorm:"primaryKey;autoIncrement"`
	Title     string     `json:"title"     gorm:"type:varchar(255);not null"`
	Content   string     `json:"content"   gorm:"type:text;not null"`
	Type      string     `json:"type"      gorm:"type:varchar(16);not null;default:'info'"`
	FileURL   *string    `json:"fileUrl"   gorm:"type:text"`
	FileName  *string    `json:"fileName"  gorm:"type:varchar(255)"`
	IsActive  bool       `json:"isActive"  gorm:"not null;default:true"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// TableName returns the database table name for Announcement.
func (Announcement) TableName() string { return "announcements" }

// Expired reports whether the announcement has an expiry in the past.
func (a *Announcement) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && a.ExpiresAt.Before(now)
}

// DepartureSchedule is an uploaded departure sheet (PDF/Excel by URL).
// UploadedBy references the admin User who posted it.
type DepartureSchedule struct {
	ID          int       `json:"id"          gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title"       gorm:"type:varchar(255);not null"`
	Description *string   `json:"description" gorm:"type:text"`
	FileURL     *string   `json:"fileUrl"     gorm:"type:text"`
	FileName    *string   `json:"fileName"    gorm:"type:varchar(255)"`
	UploadedBy  *int      `json:"uploadedBy"  gorm:"index"`
	IsActive    bool      `json:"isActive"    gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt"`

	// Uploader is the user who posted the schedule.
	Uploader *User `json:"-" gorm:"foreignKey:UploadedBy;references:ID"`
}

// TableName returns the database table name for DepartureSchedule.
func (DepartureSchedule) TableName() string { return "departure_schedules" }

// EmergencyContact is a phone/WhatsApp entry shown to tourists.
type EmergencyContact struct {
	ID             int       `json:"id"             gorm:"primaryKey;autoIncrement"`
	Name           string    `json:"name"           gorm:"type:varchar(128);not null"`
	Type           string    `json:"type"           gorm:"type:varchar(32);not null"`
	Phone          *string   `json:"phone"          gorm:"type:varchar(32)"`
	WhatsappNumber *string   `json:"whatsappNumber" gorm:"type:varchar(32)"`
	IsActive       bool      `json:"isActive"       gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TableName returns the database table name for EmergencyContact.
func (EmergencyContact) TableName() string { return "emergency_contacts" }

// SessionReview is the tourist's post-session rating of a guide. Rating and
// the three per-axis scores are 1–5; range checks happen at validation time,
// not in storage. One review per (session, tourist).
type SessionReview struct {
	ID              int       `json:"id"              gorm:"primaryKey;autoIncrement"`
	SessionID       int       `json:"sessionId"       gorm:"not null;index;uniqueIndex:ux_review_session_tourist,priority:1"`
	GuideID         int       `json:"guideId"         gorm:"not null;index"`
	TouristID       string    `json:"touristId"       gorm:"type:varchar(64);not null;uniqueIndex:ux_review_session_tourist,priority:2"`
	Rating          int       `json:"rating"          gorm:"not null"`
	Comment         *string   `json:"comment"         gorm:"type:text"`
	Helpfulness     *int      `json:"helpfulness"`
	Responsiveness  *int      `json:"responsiveness"`
	Professionalism *int      `json:"professionalism"`
	WouldRecommend  *bool     `json:"wouldRecommend"`
	CreatedAt       time.Time `json:"createdAt"`

	// Session and Guide are the reviewed conversation and its guide.
	Session *ChatSession `json:"-" gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Guide   *Guide       `json:"-" gorm:"foreignKey:GuideID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for SessionReview.
func (SessionReview) TableName() string { return "session_reviews" }
