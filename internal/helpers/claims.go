package helpers

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/rdityo/nearbox/internal/models"
)

// Claims is the token payload: the public user projection plus the
// registered claims. Nothing outside the projection ever enters a token.
type Claims struct {
	models.UserInfo
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

func (c *Claims) HasRole(role string) bool {
	return models.Authorized(c.Role, role)
}

// SafeRole returns the claim's role, falling back to Member when empty so a
// malformed claim never escalates.
func (c *Claims) SafeRole() string {
	if c.Role == "" {
		return models.RoleMember
	}
	return c.Role
}
