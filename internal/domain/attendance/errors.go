package attendance

import "errors"

var (
	ErrLogAlreadyExists   = errors.New("record already exists, use edit mode")
	ErrLogNotFound        = errors.New("no existing log found to edit for this date")
	ErrNoLogOnDate        = errors.New("no log found for this person on this date")
	ErrInvalidEntryMode   = errors.New("mode must be add or edit")
	ErrEmployeeNotFound   = errors.New("no employee with this person id")
	ErrMissingEditorEmail = errors.New("editor email missing from token")
)
