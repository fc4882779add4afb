package user

import (
	"time"

	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	IsVerified    bool    `json:"is_verified"`
	OAuthProvider *string `json:"oauth_provider,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Role:          string(u.Role),
		IsVerified:    u.IsVerified,
		OAuthProvider: u.OAuthProvider,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

// UpdateUserRoleRequest represents request to update user role
type UpdateUserRoleRequest struct {
	ID   string `json:"-"`
	Role string `json:"role"`
}

func (r *UpdateUserRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if validator.IsEmpty(r.Role) {
		errs.Add("role", "role is required")
	} else {
		validRoles := []string{string(RoleUser), string(RoleAdmin), string(RoleMasterAdmin)}
		if !validator.IsInSlice(r.Role, validRoles) {
			errs.Add("role", "role must be one of user, admin, master_admin")
		}
	}

	return errs.Err()
}

// UpdateVerificationRequest approves or suspends an account
type UpdateVerificationRequest struct {
	ID         string `json:"-"`
	IsVerified *bool  `json:"is_verified"`
}

func (r *UpdateVerificationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.IsVerified == nil {
		errs.Add("is_verified", "is_verified is required")
	}

	return errs.Err()
}
