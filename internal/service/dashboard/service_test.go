package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbo-fm/facility-backend-go/internal/domain/dashboard"
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
)

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	date time.Time
}

func (f *fakeEmployeeRepo) ListActiveOn(ctx context.Context, date time.Time) ([]employee.Employee, error) {
	f.date = date
	return []employee.Employee{
		{ID: "e1", PersonID: "P001", Name: "Alice", Department: employee.DepartmentSecurity},
		{ID: "e2", PersonID: "P002", Name: "Bob", Department: employee.DepartmentSecurity},
		{ID: "e3", PersonID: "P003", Name: "Gina", Department: employee.DepartmentGardener},
	}, nil
}

func TestDashboardService_GetActiveStaff(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewDashboardService(repo).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC) }

	got, err := svc.GetActiveStaff(context.Background(), dashboard.ActiveStaffRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", got.Date)
	assert.Equal(t, "2025-03-10", utils.FormatDate(repo.date))
	assert.Equal(t, 3, got.TotalActive)
	assert.Equal(t, []dashboard.DepartmentCount{
		{Name: "Security", Count: 2},
		{Name: "Gardener", Count: 1},
		{Name: "Housekeeper", Count: 0},
		{Name: "Dishwasher", Count: 0},
	}, got.Departments)
	assert.Len(t, got.Staff, 3)
}

func TestDashboardService_GetActiveStaff_DepartmentFilter(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := NewDashboardService(repo)

	got, err := svc.GetActiveStaff(context.Background(), dashboard.ActiveStaffRequest{Date: "2025-01-15", Department: "Gardener"})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-15", got.Date)
	assert.Equal(t, 3, got.TotalActive, "totals ignore the list filter")
	require.Len(t, got.Staff, 1)
	assert.Equal(t, "Gina", got.Staff[0].Name)

	_, err = svc.GetActiveStaff(context.Background(), dashboard.ActiveStaffRequest{Date: "15-01-2025"})
	assert.Error(t, err)
}
