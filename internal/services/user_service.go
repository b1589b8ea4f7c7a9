package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rdityo/nearbox/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var phoneCategoryRe = regexp.MustCompile(`^(Work|Home|Mobile)$`)

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return us.userRepo.GetUserByID(ctx, id)
}

func (us *UserService) ListUsers(ctx context.Context, skip, limit int64) ([]*models.UserSummary, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 50
	}
	return us.userRepo.ListUsers(ctx, skip, limit)
}

func (us *UserService) SearchUsers(ctx context.Context, name string) ([]*models.UserSummary, error) {
	return us.userRepo.SearchUsersByName(ctx, regexp.QuoteMeta(name))
}

// UpdateProfile changes name and address; the name is required, the address
// may be cleared.
func (us *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, address string) (*models.User, error) {
	if name == "" {
		return nil, models.NewFieldError("You must enter your full name.")
	}
	if err := models.Validate.Var(name, "min=3"); err != nil {
		return nil, err
	}
	if address != "" {
		if err := models.Validate.Var(address, "min=7,max=140"); err != nil {
			return nil, err
		}
	}

	update := bson.M{"$set": bson.M{"name": name, "address": address}}
	return us.userRepo.UpdateUser(ctx, id, update)
}

func (us *UserService) UpdateActive(ctx context.Context, id primitive.ObjectID, active bool) (*models.User, error) {
	update := bson.M{"$set": bson.M{"active": active}}
	return us.userRepo.UpdateUser(ctx, id, update)
}

func (us *UserService) UpdateLocation(ctx context.Context, id primitive.ObjectID, longitude, latitude float64) (*models.User, error) {
	if longitude < -180 || longitude > 180 {
		return nil, models.NewFieldError("You must enter a valid longitude.")
	}
	if latitude < -90 || latitude > 90 {
		return nil, models.NewFieldError("You must enter a valid latitude.")
	}

	update := bson.M{"$set": bson.M{"loc": models.NewGeoPoint(longitude, latitude)}}
	return us.userRepo.UpdateUser(ctx, id, update)
}

// UpdatePicture points the profile picture at an already-stored blob.
func (us *UserService) UpdatePicture(ctx context.Context, id primitive.ObjectID, picture models.Picture) (*models.User, error) {
	if picture.ID == "" || picture.URL == "" {
		return nil, models.NewFieldError("You must provide a picture id and url.")
	}

	update := bson.M{"$set": bson.M{"profile.picture": picture}}
	return us.userRepo.UpdateUser(ctx, id, update)
}

func (us *UserService) AddPhone(ctx context.Context, id primitive.ObjectID, category, number string) error {
	if !phoneCategoryRe.MatchString(category) {
		return models.NewFieldError("You must select a valid phone category [Work, Home, Mobile].")
	}

	phone := models.Phone{Category: category, Number: number}
	if err := models.Validate.Struct(&phone); err != nil {
		return err
	}

	return us.userRepo.AddPhone(ctx, id, phone)
}

func (us *UserService) RemovePhone(ctx context.Context, id primitive.ObjectID, phoneID string) error {
	oid, err := primitive.ObjectIDFromHex(phoneID)
	if err != nil {
		return models.NewFieldError("You must provide a valid phone id.")
	}
	return us.userRepo.RemovePhone(ctx, id, oid)
}

// NearbyUsers runs the proximity search from the caller's stored location.
func (us *UserService) NearbyUsers(ctx context.Context, near models.GeoPoint, minDist, maxDist float64, skip int64) ([]*models.NearbyUser, error) {
	if maxDist < minDist {
		return nil, models.NewFieldError("Maximum distance must not be less than minimum distance.")
	}
	if skip < 0 {
		skip = 0
	}

	q := models.NearbyQuery{
		Near:        near,
		MinDistance: minDist,
		MaxDistance: maxDist,
		Skip:        skip,
	}
	users, err := us.userRepo.NearbyUsers(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("nearby user query failed: %w", err)
	}
	return users, nil
}
