package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrPersonIDExists        = errors.New("person id already exists")
	ErrInvalidDepartment     = errors.New("invalid department")
	ErrResignationBeforeHire = errors.New("resignation date cannot be before effective date")
)
