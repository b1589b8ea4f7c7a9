package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankOrdering(t *testing.T) {
	assert.Less(t, Rank(RoleMember), Rank(RoleClient))
	assert.Less(t, Rank(RoleClient), Rank(RoleOwner))
	assert.Less(t, Rank(RoleOwner), Rank(RoleAdmin))
}

func TestRankUnknownRoleFallsBackToMember(t *testing.T) {
	assert.Equal(t, Rank(RoleMember), Rank(""))
	assert.Equal(t, Rank(RoleMember), Rank("Superuser"))
	assert.Equal(t, Rank(RoleMember), Rank("admin")) // case-sensitive
}

func TestAuthorized(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		required string
		want     bool
	}{
		{"member denied admin content", RoleMember, RoleAdmin, false},
		{"client denied owner content", RoleClient, RoleOwner, false},
		{"admin admitted everywhere", RoleAdmin, RoleMember, true},
		{"owner admitted to client content", RoleOwner, RoleClient, true},
		{"exact rank admitted", RoleClient, RoleClient, true},
		{"unknown role treated as member", "???", RoleMember, true},
		{"unknown role denied client content", "???", RoleClient, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorized(tt.actual, tt.required))
		})
	}
}

func TestEveryKnownRolePassesMemberGate(t *testing.T) {
	for _, role := range []string{RoleMember, RoleClient, RoleOwner, RoleAdmin} {
		assert.True(t, Authorized(role, RoleMember), "role %s should pass the Member gate", role)
	}
}
