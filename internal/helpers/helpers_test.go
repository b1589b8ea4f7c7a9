package helpers

import (
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"github.com/rdityo/nearbox/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-signing-secret"

func testUserInfo() models.UserInfo {
	return models.UserInfo{
		ID:       primitive.NewObjectID(),
		Name:     "Ann",
		Email:    "a@x.com",
		Picture:  models.Picture{ID: models.DefaultPictureID, URL: models.DefaultPictureURL},
		Location: models.NewGeoPoint(112.05, -8.12),
		Role:     models.RoleMember,
		Active:   true,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	info := testUserInfo()

	token, err := GenerateToken(info, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, info.ID, claims.UserInfo.ID)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, models.RoleMember, claims.Role)
	assert.True(t, claims.Active)
}

func TestTokenExpiryIsSevenDays(t *testing.T) {
	token, err := GenerateToken(testUserInfo(), testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	require.NotNil(t, claims.ExpiresAt)
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, TokenTTL.Seconds(), remaining.Seconds(), 60)
}

func TestTokenCarriesNoSecrets(t *testing.T) {
	token, err := GenerateToken(testUserInfo(), testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)

	data, err := json.Marshal(claims)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "password")
	assert.NotContains(t, decoded, "resetPasswordToken")
	assert.NotContains(t, decoded, "resetPasswordExpires")
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(testUserInfo(), testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(token, "some-other-secret")
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("secret123", "not-a-hash"))
}

func TestGenerateResetToken(t *testing.T) {
	token, err := GenerateResetToken()
	require.NoError(t, err)

	// 48 random bytes, hex encoded.
	assert.Len(t, token, 96)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	other, err := GenerateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestClaimsRoleHelpers(t *testing.T) {
	claims := &Claims{UserInfo: models.UserInfo{Role: models.RoleAdmin}}
	assert.True(t, claims.IsAdmin())
	assert.True(t, claims.HasRole(models.RoleOwner))

	claims = &Claims{UserInfo: models.UserInfo{Role: ""}}
	assert.Equal(t, models.RoleMember, claims.SafeRole())
	assert.False(t, claims.IsAdmin())
}
