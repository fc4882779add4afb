package user

import "time"

type Role string

const (
	RoleUser        Role = "user"         // Read-only console access
	RoleAdmin       Role = "admin"        // Manages roster, shifts and corrections
	RoleMasterAdmin Role = "master_admin" // Also approves and promotes users
)

// Roles lists every assignable role.
var Roles = []Role{RoleUser, RoleAdmin, RoleMasterAdmin}

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	Role            Role
	IsVerified      bool
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPending checks if the account still waits for master admin approval
func (u *User) IsPending() bool {
	return !u.IsVerified
}

func (u *User) IsMasterAdmin() bool {
	return u.Role == RoleMasterAdmin
}
