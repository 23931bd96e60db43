package schema

import (
	"github.com/aegeantours/go-guide-backend/internal/domain"
	"gorm.io/datatypes"
)

// InsertUser is the insert shape for users. The persistence layer assigns
// id/createdAt; the service layer hashes the password before storage.
type InsertUser struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin guide"`
}

// ValidateUser accepts or rejects a candidate user. On success it returns the
// normalized record with the role default applied. The password is carried
// through verbatim; hashing is the caller's job.
func ValidateUser(in InsertUser) (domain.User, Errors) {
	if errs := check(in); errs != nil {
		return domain.User{}, errs
	}
	role := in.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	return domain.User{
		Username: in.Username,
		Password: in.Password,
		Role:     role,
	}, nil
}

// InsertGuide is the insert shape for guide profiles. Aggregates (rating,
// totalHelped, avgResponseTime) may be seeded by the caller but default to 0.
type InsertGuide struct {
	UserID          *int     `json:"userId"          validate:"omitempty,gt=0"`
	Name            string   `json:"name"            validate:"required,min=1,max=128"`
	Email           string   `json:"email"           validate:"required,email,max=128"`
	Phone           *string  `json:"phone"           validate:"omitempty,max=32"`
	Specialties     []string `json:"specialties"`
	Languages       []string `json:"languages"`
	Rating          int      `json:"rating"          validate:"omitempty,min=0,max=5"`
	TotalHelped     int      `json:"totalHelped"     validate:"omitempty,min=0"`
	AvgResponseTime int      `json:"avgResponseTime" validate:"omitempty,min=0"`
	IsActive        *bool    `json:"isActive"`
	ProfileImage    *string  `json:"profileImage"`
}

// ValidateGuide accepts or rejects a candidate guide profile.
func ValidateGuide(in InsertGuide) (domain.Guide, Errors) {
	if errs := check(in); errs != nil {
		return domain.Guide{}, errs
	}
	return domain.Guide{
		UserID:          in.UserID,
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Specialties:     datatypes.NewJSONSlice(orEmpty(in.Specialties)),
		Languages:       datatypes.NewJSONSlice(orEmpty(in.Languages)),
		Rating:          in.Rating,
		TotalHelped:     in.TotalHelped,
		AvgResponseTime: in.AvgResponseTime,
		IsActive:        defaultTrue(in.IsActive),
		ProfileImage:    in.ProfileImage,
	}, nil
}

// InsertHotel is the insert shape for hotels.
type InsertHotel struct {
	Name     string  `json:"name"     validate:"required,min=1,max=128"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"    validate:"omitempty,max=32"`
	Email    *string `json:"email"    validate:"omitempty,email,max=128"`
	IsActive *bool   `json:"isActive"`
}

// ValidateHotel accepts or rejects a candidate hotel.
func ValidateHotel(in InsertHotel) (domain.Hotel, Errors) {
	if errs := check(in); errs != nil {
		return domain.Hotel{}, errs
	}
	return domain.Hotel{
		Name:     in.Name,
		Address:  in.Address,
		Phone:    in.Phone,
		Email:    in.Email,
		IsActive: defaultTrue(in.IsActive),
	}, nil
}

// defaultTrue resolves an optional isActive flag, defaulting to true.
func defaultTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}

// orEmpty normalizes a nil slice to an empty one so array columns persist as
// [] rather than null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
