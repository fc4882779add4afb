package user

import "context"

// UserService covers master admin user management.
type UserService interface {
	ListUsers(ctx context.Context) ([]UserResponse, error)
	UpdateRole(ctx context.Context, req UpdateUserRoleRequest) (UserResponse, error)
	UpdateVerification(ctx context.Context, req UpdateVerificationRequest) (UserResponse, error)
}
