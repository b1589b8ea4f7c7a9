package services

import (
	"context"
	"sync"
	"time"

	"github.com/rdityo/nearbox/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserRepo is an in-memory UserRepo good enough for service tests. Its
// UpdateUser understands the $set/$unset keys the services actually compose.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User

	nearbyResult []*models.NearbyUser
	lastNearby   *models.NearbyQuery
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) snapshot(u *models.User) *models.User {
	copied := *u
	return &copied
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user.BeforeCreate()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, models.ErrDuplicateEmail
		}
	}
	f.users[user.ID] = f.snapshot(user)
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return f.snapshot(user), nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	normalized := models.NormalizeEmail(email)
	for _, user := range f.users {
		if user.Email == normalized {
			return f.snapshot(user), nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeUserRepo) GetUserByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ResetPasswordToken == token &&
			user.ResetPasswordExpires != nil &&
			user.ResetPasswordExpires.After(now) {
			return f.snapshot(user), nil
		}
	}
	return nil, models.ErrInvalidResetToken
}

func (f *fakeUserRepo) ListUsers(ctx context.Context, skip, limit int64) ([]*models.UserSummary, error) {
	return []*models.UserSummary{}, nil
}

func (f *fakeUserRepo) SearchUsersByName(ctx context.Context, name string) ([]*models.UserSummary, error) {
	return []*models.UserSummary{}, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	if set, ok := update["$set"].(bson.M); ok {
		for key, value := range set {
			switch key {
			case "name":
				user.Name = value.(string)
			case "address":
				user.Address = value.(string)
			case "active":
				user.Active = value.(bool)
			case "password":
				user.Password = value.(string)
			case "loc":
				user.Loc = value.(models.GeoPoint)
			case "profile.picture":
				user.Profile.Picture = value.(models.Picture)
			case "resetPasswordToken":
				user.ResetPasswordToken = value.(string)
			case "resetPasswordExpires":
				expires := value.(time.Time)
				user.ResetPasswordExpires = &expires
			case "updated_at":
				user.UpdatedAt = value.(time.Time)
			}
		}
	}
	if unset, ok := update["$unset"].(bson.M); ok {
		for key := range unset {
			switch key {
			case "resetPasswordToken":
				user.ResetPasswordToken = ""
			case "resetPasswordExpires":
				user.ResetPasswordExpires = nil
			}
		}
	}

	return f.snapshot(user), nil
}

func (f *fakeUserRepo) AddPhone(ctx context.Context, id primitive.ObjectID, phone models.Phone) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return models.ErrNotFound
	}
	if phone.ID.IsZero() {
		phone.ID = primitive.NewObjectID()
	}
	user.Phone = append(user.Phone, phone)
	return nil
}

func (f *fakeUserRepo) RemovePhone(ctx context.Context, id, phoneID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return models.ErrNotFound
	}
	kept := user.Phone[:0]
	for _, p := range user.Phone {
		if p.ID != phoneID {
			kept = append(kept, p)
		}
	}
	user.Phone = kept
	return nil
}

func (f *fakeUserRepo) NearbyUsers(ctx context.Context, q models.NearbyQuery) ([]*models.NearbyUser, error) {
	f.lastNearby = &q
	if f.nearbyResult == nil {
		return []*models.NearbyUser{}, nil
	}
	return f.nearbyResult, nil
}

// fakePostRepo records created posts and nearby queries.
type fakePostRepo struct {
	created    []*models.Post
	lastNearby *models.NearbyQuery
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	post.BeforeCreate()
	f.created = append(f.created, post)
	return post, nil
}

func (f *fakePostRepo) NearbyPosts(ctx context.Context, q models.NearbyQuery) ([]*models.NearbyPost, error) {
	f.lastNearby = &q
	return []*models.NearbyPost{}, nil
}

// fakeNotifier records every notification.
type notification struct {
	Address string
	Subject string
	Body    string
}

type fakeNotifier struct {
	sent []notification
	err  error
}

func (f *fakeNotifier) Notify(address, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, notification{Address: address, Subject: subject, Body: body})
	return nil
}
