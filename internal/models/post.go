package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PostsColName = "posts"

// Post is a classified listing. Owner fields are a point-in-time snapshot of
// the creating user and are not kept in sync with later profile edits.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	UserName    string             `bson:"user_name" json:"user_name" validate:"required"`
	UserEmail   string             `bson:"user_email" json:"user_email" validate:"required,email"`
	UserPhone   []Phone            `bson:"user_phone" json:"user_phone"`
	UserPicture Picture            `bson:"user_picture" json:"user_picture"`
	UserAddress string             `bson:"user_address,omitempty" json:"user_address,omitempty" validate:"omitempty,min=7,max=140"`
	Title       string             `bson:"title" json:"title" validate:"required,min=5"`
	Description string             `bson:"description" json:"description" validate:"required,min=10,max=160"`
	MainPicture Picture            `bson:"main_picture" json:"main_picture"`
	Pictures    []Picture          `bson:"pictures" json:"pictures"`
	Qty         int                `bson:"qty" json:"qty" validate:"min=0"`
	Price       float64            `bson:"price" json:"price" validate:"min=0"`
	Loc         GeoPoint           `bson:"loc" json:"loc"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Snapshot copies the owner fields a listing denormalizes at creation time.
func (p *Post) Snapshot(owner *User) {
	p.UserID = owner.ID
	p.UserName = owner.Name
	p.UserEmail = owner.Email
	p.UserPhone = owner.Phone
	p.UserPicture = owner.Profile.Picture
	p.UserAddress = owner.Address
	p.Loc = owner.Loc
}

func (p *Post) BeforeCreate() {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.MainPicture.ID == "" {
		p.MainPicture = Picture{ID: DefaultPictureID, URL: DefaultPictureURL}
	}
	p.Active = true
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
}
