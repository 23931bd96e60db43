package schema

import (
	"time"

	"github.com/aegeantours/go-guide-backend/internal/domain"
	"gorm.io/datatypes"
)

// ShiftInput is one custom shift in an assignment candidate. Both ends are
// required; the strings themselves are not parsed here.
type ShiftInput struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime"   validate:"required"`
}

// InsertGuideAssignment is the insert shape for shift assignments. GuideID
// and HotelID accept either string or numeric JSON form (FlexID) because the
// admin scheduling UI submits select values as strings; both forms normalize
// to the same record.
type InsertGuideAssignment struct {
	GuideID        FlexID       `json:"guideId"        validate:"required,gt=0"`
	HotelID        FlexID       `json:"hotelId"        validate:"required,gt=0"`
	DaysOfWeek     []int        `json:"daysOfWeek"     validate:"required,dive,min=0,max=6"`
	CustomShifts   []ShiftInput `json:"customShifts"   validate:"required,dive"`
	WeekStartDates []string     `json:"weekStartDates" validate:"required,dive,required"`
	IsActive       *bool        `json:"isActive"`
}

// ValidateGuideAssignment accepts or rejects a candidate assignment. Ids are
// coerced to their canonical numeric form; defaults are applied. Whether the
// referenced guide and hotel exist is checked later by the service layer.
func ValidateGuideAssignment(in InsertGuideAssignment) (domain.GuideAssignment, Errors) {
	if errs := check(in); errs != nil {
		return domain.GuideAssignment{}, errs
	}
	shifts := make([]domain.ShiftWindow, 0, len(in.CustomShifts))
	for _, s := range in.CustomShifts {
		shifts = append(shifts, domain.ShiftWindow{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return domain.GuideAssignment{
		GuideID:        in.GuideID.Int(),
		HotelID:        in.HotelID.Int(),
		DaysOfWeek:     datatypes.NewJSONSlice(in.DaysOfWeek),
		CustomShifts:   datatypes.NewJSONSlice(shifts),
		WeekStartDates: datatypes.NewJSONSlice(in.WeekStartDates),
		IsActive:       defaultTrue(in.IsActive),
	}, nil
}

// InsertAnnouncement is the insert shape for announcements.
type InsertAnnouncement struct {
	Title     string     `json:"title"     validate:"required,min=1,max=255"`
	Content   string     `json:"content"   validate:"required"`
	Type      string     `json:"type"      validate:"omitempty,oneof=info warning urgent"`
	FileURL   *string    `json:"fileUrl"`
	FileName  *string    `json:"fileName"  validate:"omitempty,max=255"`
	IsActive  *bool      `json:"isActive"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// ValidateAnnouncement accepts or rejects a candidate announcement.
// ExpiresAt is stored as given; expiry is advisory, never enforced here.
func ValidateAnnouncement(in InsertAnnouncement) (domain.Announcement, Errors) {
	if errs := check(in); errs != nil {
		return domain.Announcement{}, errs
	}
	typ := in.Type
	if typ == "" {
		typ = domain.AnnouncementInfo
	}
	return domain.Announcement{
		Title:     in.Title,
		Content:   in.Content,
		Type:      typ,
		FileURL:   in.FileURL,
		FileName:  in.FileName,
		IsActive:  defaultTrue(in.IsActive),
		ExpiresAt: in.ExpiresAt,
	}, nil
}

// InsertDepartureSchedule is the insert shape for departure sheets.
type InsertDepartureSchedule struct {
	Title       string  `json:"title"       validate:"required,min=1,max=255"`
	Description *string `json:"description"`
	FileURL     *string `json:"fileUrl"`
	FileName    *string `json:"fileName"    validate:"omitempty,max=255"`
	UploadedBy  *int    `json:"uploadedBy"  validate:"omitempty,gt=0"`
	IsActive    *bool   `json:"isActive"`
}

// ValidateDepartureSchedule accepts or rejects a candidate departure sheet.
func ValidateDepartureSchedule(in InsertDepartureSchedule) (domain.DepartureSchedule, Errors) {
	if errs := check(in); errs != nil {
		return domain.DepartureSchedule{}, errs
	}
	return domain.DepartureSchedule{
		Title:       in.Title,
		Description: in.Description,
		FileURL:     in.FileURL,
		FileName:    in.FileName,
		UploadedBy:  in.UploadedBy,
		IsActive:    defaultTrue(in.IsActive),
	}, nil
}

// InsertEmergencyContact is the insert shape for emergency contacts.
type InsertEmergencyContact struct {
	Name           string  `json:"name"           validate:"required,min=1,max=128"`
	Type           string  `json:"type"           validate:"required,oneof=medical guide-manager general"`
	Phone          *string `json:"phone"          validate:"omitempty,max=32"`
	WhatsappNumber *string `json:"whatsappNumber" validate:"omitempty,max=32"`
	IsActive       *bool   `json:"isActive"`
}

// ValidateEmergencyContact accepts or rejects a candidate contact.
func ValidateEmergencyContact(in InsertEmergencyContact) (domain.EmergencyContact, Errors) {
	if errs := check(in); errs != nil {
		return domain.EmergencyContact{}, errs
	}
	return domain.EmergencyContact{
		Name:           in.Name,
		Type:           in.Type,
		Phone:          in.Phone,
		WhatsappNumber: in.WhatsappNumber,
		IsActive:       defaultTrue(in.IsActive),
	}, nil
}
