package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/turbo-fm/facility-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// callerID returns the user_id claim of the authenticated caller.
func callerID(ctx context.Context) string {
	_, claims, _ := jwtauth.FromContext(ctx)
	id, _ := claims["user_id"].(string)
	return id
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, req user.UpdateUserRoleRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if req.ID == callerID(ctx) {
		return user.UserResponse{}, user.ErrCannotModifySelf
	}

	updated, err := s.userRepo.UpdateRole(ctx, req.ID, user.Role(req.Role))
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user role changed", "user_id", updated.ID, "role", updated.Role, "by", callerID(ctx))
	return user.ToResponse(updated), nil
}

// UpdateVerification implements user.UserService.
func (s *UserServiceImpl) UpdateVerification(ctx context.Context, req user.UpdateVerificationRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if req.ID == callerID(ctx) {
		return user.UserResponse{}, user.ErrCannotModifySelf
	}

	updated, err := s.userRepo.UpdateVerification(ctx, req.ID, *req.IsVerified)
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user verification changed", "user_id", updated.ID, "is_verified", updated.IsVerified, "by", callerID(ctx))
	return user.ToResponse(updated), nil
}
