package auth

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAccountPending        = errors.New("account is pending approval")
	ErrEmailDomainNotAllowed = errors.New("email domain is not allowed")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenExpired          = errors.New("token has expired")
	ErrRefreshTokenRevoked   = errors.New("refresh token has been revoked")
	ErrUserNotFound          = errors.New("user not found")
	ErrOAuthStateMismatch    = errors.New("oauth state mismatch")
)
