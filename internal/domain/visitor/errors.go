package visitor

import "errors"

var (
	ErrMonthTooEarly = errors.New("data is only available from December 2025 onwards")
	ErrFutureMonth   = errors.New("cannot select a future month")
)
