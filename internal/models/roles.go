package models

// Role names ordered least to most privileged.
const (
	RoleMember = "Member"
	RoleClient = "Client"
	RoleOwner  = "Owner"
	RoleAdmin  = "Admin"
)

// Rank maps a role name to its precedence. Unknown or empty roles fall back
// to the Member rank rather than failing, so a bad claim never grants more
// than the lowest privilege.
func Rank(role string) int {
	switch role {
	case RoleAdmin:
		return 4
	case RoleOwner:
		return 3
	case RoleClient:
		return 2
	case RoleMember:
		return 1
	default:
		return 1
	}
}

// Authorized reports whether a caller holding actualRole may access a
// resource gated on requiredRole.
func Authorized(actualRole, requiredRole string) bool {
	return Rank(actualRole) >= Rank(requiredRole)
}
