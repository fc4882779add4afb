package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/turbo-fm/facility-backend-go/internal/domain/attendance"
	"github.com/turbo-fm/facility-backend-go/internal/domain/auth"
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/domain/report"
	"github.com/turbo-fm/facility-backend-go/internal/domain/shift"
	"github.com/turbo-fm/facility-backend-go/internal/domain/user"
	"github.com/turbo-fm/facility-backend-go/internal/domain/visitor"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountPending):
		Forbidden(w, "Account is pending approval")
	case errors.Is(err, auth.ErrEmailDomainNotAllowed):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrEmailAlreadyExists), errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrCannotModifySelf):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrPersonIDExists):
		Conflict(w, "Person ID already exists")
	case errors.Is(err, employee.ErrInvalidDepartment), errors.Is(err, employee.ErrResignationBeforeHire):
		BadRequest(w, err.Error(), nil)

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftOverlap):
		Conflict(w, err.Error())
	case errors.Is(err, shift.ErrBeforeEffectiveDate),
		errors.Is(err, shift.ErrAfterResignationDate),
		errors.Is(err, shift.ErrEmployeeNotOnboarded),
		errors.Is(err, shift.ErrExpiryBeforeActiveDate):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrLogAlreadyExists):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrLogNotFound), errors.Is(err, attendance.ErrNoLogOnDate):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidEntryMode):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrMissingEditorEmail):
		Unauthorized(w, err.Error())

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrArchiveNotFound):
		NotFound(w, "Archived report not found")
	case errors.Is(err, report.ErrInvalidArchiveName):
		BadRequest(w, err.Error(), nil)

	// Visitor domain errors
	case errors.Is(err, visitor.ErrMonthTooEarly), errors.Is(err, visitor.ErrFutureMonth):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
