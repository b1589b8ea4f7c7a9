package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserInfo is the public projection of a user. It is the only user shape that
// leaves the API and the only shape embedded in tokens; password and reset
// credentials are excluded unconditionally.
type UserInfo struct {
	ID       primitive.ObjectID `json:"_id"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Phone    []Phone            `json:"phone"`
	Picture  Picture            `json:"picture"`
	Address  string             `json:"address,omitempty"`
	Location GeoPoint           `json:"location"`
	Role     string             `json:"role"`
	Active   bool               `json:"active"`
}

// PostInfo is the public projection of a listing.
type PostInfo struct {
	ID          primitive.ObjectID `json:"_id"`
	UserID      primitive.ObjectID `json:"user_id"`
	UserName    string             `json:"user_name"`
	UserEmail   string             `json:"user_email"`
	UserPhone   []Phone            `json:"user_phone"`
	UserPicture Picture            `json:"user_picture"`
	UserAddress string             `json:"user_address,omitempty"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	MainPicture Picture            `json:"main_picture"`
	Pictures    []Picture          `json:"pictures"`
	Qty         int                `json:"qty"`
	Price       float64            `json:"price"`
	Active      bool               `json:"active"`
}

func SetUserInfo(u *User) UserInfo {
	return UserInfo{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Picture:  u.Profile.Picture,
		Address:  u.Address,
		Location: u.Loc,
		Role:     u.Role,
		Active:   u.Active,
	}
}

func SetPostInfo(p *Post) PostInfo {
	return PostInfo{
		ID:          p.ID,
		UserID:      p.UserID,
		UserName:    p.UserName,
		UserEmail:   p.UserEmail,
		UserPhone:   p.UserPhone,
		UserPicture: p.UserPicture,
		UserAddress: p.UserAddress,
		Title:       p.Title,
		Description: p.Description,
		MainPicture: p.MainPicture,
		Pictures:    p.Pictures,
		Qty:         p.Qty,
		Price:       p.Price,
		Active:      p.Active,
	}
}
