package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetActiveStaff returns who is employed on a date, counted per department
	GetActiveStaff(ctx context.Context, req ActiveStaffRequest) (ActiveStaffResponse, error)
}
