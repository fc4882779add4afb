package shift

import "context"

type ShiftService interface {
	ListShifts(ctx context.Context, filter ShiftFilter) ([]ShiftResponse, error)
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
}
