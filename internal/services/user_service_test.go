package services

import (
	"context"
	"testing"

	"github.com/rdityo/nearbox/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserRepo, *models.User) {
	t.Helper()
	repo := newFakeUserRepo()
	user := &models.User{Email: "a@x.com", Name: "Ann", Password: "hash"}
	_, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	return NewUserService(repo), repo, user
}

func TestUpdateProfileRequiresName(t *testing.T) {
	us, _, user := newUserFixture(t)

	var fieldErr models.ValidationError
	_, err := us.UpdateProfile(context.Background(), user.ID, "", "Some address here")
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "You must enter your full name.", fieldErr.Message)
}

func TestUpdateProfile(t *testing.T) {
	us, repo, user := newUserFixture(t)

	updated, err := us.UpdateProfile(context.Background(), user.ID, "Ann Lee", "14 Harbor Road")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", updated.Name)
	assert.Equal(t, "14 Harbor Road", updated.Address)

	stored, err := repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", stored.Name)
}

func TestUpdateProfileRejectsShortAddress(t *testing.T) {
	us, _, user := newUserFixture(t)

	_, err := us.UpdateProfile(context.Background(), user.ID, "Ann Lee", "abc")
	assert.Error(t, err)
}

func TestUpdateActive(t *testing.T) {
	us, _, user := newUserFixture(t)

	updated, err := us.UpdateActive(context.Background(), user.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Active)
}

func TestUpdateLocation(t *testing.T) {
	us, _, user := newUserFixture(t)

	updated, err := us.UpdateLocation(context.Background(), user.ID, 100.5, -6.2)
	require.NoError(t, err)
	assert.Equal(t, models.NewGeoPoint(100.5, -6.2), updated.Loc)
}

func TestUpdateLocationRejectsOutOfRange(t *testing.T) {
	us, _, user := newUserFixture(t)
	ctx := context.Background()

	var fieldErr models.ValidationError
	_, err := us.UpdateLocation(ctx, user.ID, 181, 0)
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "You must enter a valid longitude.", fieldErr.Message)

	_, err = us.UpdateLocation(ctx, user.ID, 0, -91)
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "You must enter a valid latitude.", fieldErr.Message)
}

func TestAddPhoneValidatesCategory(t *testing.T) {
	us, _, user := newUserFixture(t)

	var fieldErr models.ValidationError
	err := us.AddPhone(context.Background(), user.ID, "Fax", "081234567")
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "You must select a valid phone category [Work, Home, Mobile].", fieldErr.Message)
}

func TestAddPhoneValidatesNumberLength(t *testing.T) {
	us, _, user := newUserFixture(t)

	assert.Error(t, us.AddPhone(context.Background(), user.ID, models.PhoneMobile, "12345"))
	assert.Error(t, us.AddPhone(context.Background(), user.ID, models.PhoneMobile, "12345678901234"))
	assert.NoError(t, us.AddPhone(context.Background(), user.ID, models.PhoneMobile, "081234567"))
}

func TestAddAndRemovePhone(t *testing.T) {
	us, repo, user := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, us.AddPhone(ctx, user.ID, models.PhoneWork, "0211234567"))

	stored, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stored.Phone, 1)

	require.NoError(t, us.RemovePhone(ctx, user.ID, stored.Phone[0].ID.Hex()))

	stored, err = repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Phone)
}

func TestRemovePhoneRejectsBadID(t *testing.T) {
	us, _, user := newUserFixture(t)

	var fieldErr models.ValidationError
	err := us.RemovePhone(context.Background(), user.ID, "not-an-object-id")
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "You must provide a valid phone id.", fieldErr.Message)
}

func TestNearbyUsersPassesQueryThrough(t *testing.T) {
	us, repo, _ := newUserFixture(t)

	near := models.NewGeoPoint(0, 0)
	_, err := us.NearbyUsers(context.Background(), near, 1, 5, 20)
	require.NoError(t, err)

	require.NotNil(t, repo.lastNearby)
	assert.Equal(t, near, repo.lastNearby.Near)
	assert.Equal(t, float64(1), repo.lastNearby.MinDistance)
	assert.Equal(t, float64(5), repo.lastNearby.MaxDistance)
	assert.Equal(t, int64(20), repo.lastNearby.Skip)
	assert.Nil(t, repo.lastNearby.ExcludeIDs)
}

func TestNearbyUsersRejectsInvertedBounds(t *testing.T) {
	us, _, _ := newUserFixture(t)

	var fieldErr models.ValidationError
	_, err := us.NearbyUsers(context.Background(), models.NewGeoPoint(0, 0), 10, 5, 0)
	require.ErrorAs(t, err, &fieldErr)
}

func TestNearbyUsersNegativeSkipClamped(t *testing.T) {
	us, repo, _ := newUserFixture(t)

	_, err := us.NearbyUsers(context.Background(), models.NewGeoPoint(0, 0), 0, 5, -3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), repo.lastNearby.Skip)
}

func TestNearbyUsersEmptyResultIsSuccess(t *testing.T) {
	us, _, _ := newUserFixture(t)

	users, err := us.NearbyUsers(context.Background(), models.NewGeoPoint(0, 0), 0, 5, 0)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestGetUserNotFound(t *testing.T) {
	us, _, _ := newUserFixture(t)

	_, err := us.GetUser(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
