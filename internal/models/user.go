package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UsersColName = "users"

	DefaultPictureID  = "593247008d4926360077938e"
	DefaultPictureURL = "/api/file/placeholder.png"
)

// Phone categories accepted for a phone entry.
const (
	PhoneMobile = "Mobile"
	PhoneHome   = "Home"
	PhoneWork   = "Work"
)

type Phone struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Category string             `bson:"category" json:"category" validate:"required,oneof=Mobile Home Work"`
	Number   string             `bson:"number" json:"number" validate:"required,min=9,max=13"`
}

type Picture struct {
	ID  string `bson:"id" json:"id"`
	URL string `bson:"url" json:"url"`
}

type Profile struct {
	Picture Picture `bson:"picture" json:"picture"`
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email" validate:"required,email"`
	Password string             `bson:"password" json:"-"`
	Name     string             `bson:"name" json:"name" validate:"required,min=3"`
	Address  string             `bson:"address,omitempty" json:"address,omitempty" validate:"omitempty,min=7,max=140"`
	Phone    []Phone            `bson:"phone" json:"phone" validate:"dive"`
	Profile  Profile            `bson:"profile" json:"profile"`
	Loc      GeoPoint           `bson:"loc" json:"loc"`
	Role     string             `bson:"role" json:"role"`
	Active   bool               `bson:"active" json:"active"`

	// Reset credentials are present together or not at all.
	ResetPasswordToken   string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NormalizeEmail lowercases and trims an address; uniqueness is enforced on
// the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BeforeCreate fills in the defaults the store expects: document and phone
// entry ids, placeholder picture, default location, Member role, active flag
// and timestamps.
func (u *User) BeforeCreate() {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Email = NormalizeEmail(u.Email)
	// Phone entries need their own id up front or $pull by _id can never
	// match them.
	for i := range u.Phone {
		if u.Phone[i].ID.IsZero() {
			u.Phone[i].ID = primitive.NewObjectID()
		}
	}
	if u.Profile.Picture.ID == "" {
		u.Profile.Picture = Picture{ID: DefaultPictureID, URL: DefaultPictureURL}
	}
	if u.Loc.Type == "" {
		u.Loc = DefaultGeoPoint()
	}
	if u.Role == "" {
		u.Role = RoleMember
	}
	u.Active = true
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
}
