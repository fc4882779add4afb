package shift

import "errors"

var (
	ErrShiftNotFound          = errors.New("shift not found")
	ErrShiftOverlap           = errors.New("date range overlaps with another existing shift")
	ErrBeforeEffectiveDate    = errors.New("cannot assign shift before employee's start date")
	ErrAfterResignationDate   = errors.New("cannot assign shift after employee's resignation date")
	ErrEmployeeNotOnboarded   = errors.New("employee has no effective date")
	ErrExpiryBeforeActiveDate = errors.New("expiry date cannot be before active date")
)
