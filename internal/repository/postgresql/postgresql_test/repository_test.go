package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbo-fm/facility-backend-go/internal/domain/attendance"
	"github.com/turbo-fm/facility-backend-go/internal/domain/calendar"
	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/domain/shift"
	"github.com/turbo-fm/facility-backend-go/internal/domain/user"
	"github.com/turbo-fm/facility-backend-go/internal/repository/postgresql"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/utils"
)

func datePtr(s string) *time.Time {
	d := utils.MustParseDate(s)
	return &d
}

func createEmployee(t *testing.T, ctx context.Context, repo employee.EmployeeRepository, personID, name string, effective, resigned *time.Time) employee.Employee {
	t.Helper()
	emp, err := repo.Create(ctx, employee.Employee{
		PersonID:        personID,
		Name:            name,
		Department:      employee.DepartmentSecurity,
		EffectiveDate:   effective,
		ResignationDate: resigned,
	})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	alice := createEmployee(t, ctx, repo, "P001", "Alice", datePtr("2025-01-01"), nil)
	createEmployee(t, ctx, repo, "P002", "Bob", datePtr("2025-01-01"), datePtr("2025-01-10"))
	createEmployee(t, ctx, repo, "P003", "Carol", nil, nil)

	t.Run("duplicate person id", func(t *testing.T) {
		_, err := repo.Create(ctx, employee.Employee{PersonID: "P001", Name: "Dup", Department: employee.DepartmentGardener})
		assert.ErrorIs(t, err, employee.ErrPersonIDExists)
	})

	t.Run("exists excludes self", func(t *testing.T) {
		exists, err := repo.ExistsByPersonID(ctx, "P001", &alice.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsByPersonID(ctx, "P001", nil)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("active on date", func(t *testing.T) {
		active, err := repo.ListActiveOn(ctx, utils.MustParseDate("2025-01-15"))
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "P001", active[0].PersonID)
	})

	t.Run("list filters by name", func(t *testing.T) {
		list, err := repo.List(ctx, employee.EmployeeFilter{Name: "ob"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Bob", list[0].Name)
	})

	t.Run("list filters by exact name", func(t *testing.T) {
		list, err := repo.List(ctx, employee.EmployeeFilter{Name: "ob", ExactName: true})
		require.NoError(t, err)
		assert.Empty(t, list)

		list, err = repo.List(ctx, employee.EmployeeFilter{Name: "Bob", ExactName: true})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Bob", list[0].Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByPersonID(ctx, "missing")
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestShiftRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(setup.DB)
	repo := postgresql.NewShiftRepository(setup.DB)

	emp := createEmployee(t, ctx, employees, "P001", "Alice", datePtr("2025-01-01"), nil)

	created, err := repo.Create(ctx, shift.Shift{
		EmployeeID: emp.ID,
		StartTime:  utils.MustParseTimeOfDay("22:00"),
		EndTime:    utils.MustParseTimeOfDay("06:30"),
		ActiveDate: utils.MustParseDate("2025-01-01"),
		ExpiryDate: datePtr("2025-01-31"),
	})
	require.NoError(t, err)
	assert.Equal(t, "22:00", created.StartTime.String())
	assert.Equal(t, "06:30", created.EndTime.String())

	overlap, err := repo.HasOverlap(ctx, emp.ID, utils.MustParseDate("2025-01-31"), nil, nil)
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = repo.HasOverlap(ctx, emp.ID, utils.MustParseDate("2025-02-01"), nil, nil)
	require.NoError(t, err)
	assert.False(t, overlap)

	overlap, err = repo.HasOverlap(ctx, emp.ID, utils.MustParseDate("2025-01-10"), nil, &created.ID)
	require.NoError(t, err)
	assert.False(t, overlap)

	inRange, err := repo.ListForRange(ctx, utils.MustParseDate("2025-01-20"), utils.MustParseDate("2025-02-05"))
	require.NoError(t, err)
	assert.Len(t, inRange, 1)

	listed, err := repo.List(ctx, shift.ShiftFilter{ActiveOnly: true, ActiveOn: utils.MustParseDate("2025-02-01")})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestLogRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLogRepository(setup.DB)

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO door3_raw (person_no, date, full_entry_timestamp, full_exit_timestamp)
		VALUES ('P001', '2025-01-15', '2025-01-15 08:05:00', '2025-01-15 17:00:00'),
		       ('P002', '2025-01-15', '2025-01-15 07:55:00', NULL)
	`)
	require.NoError(t, err)

	edit, err := repo.CreateManualEdit(ctx, attendance.ManualEdit{
		PersonID:             "P001",
		Date:                 utils.MustParseDate("2025-01-15"),
		ManualEntryTimestamp: utils.MustParseTimeOfDay("08:00").On(utils.MustParseDate("2025-01-15")),
		ManualExitTimestamp:  utils.MustParseTimeOfDay("17:00").On(utils.MustParseDate("2025-01-15")),
		EditReason:           "forgot badge",
		UpdatedBy:            "admin@example.com",
		UpdatedAt:            time.Date(2025, 1, 16, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	logs, err := repo.FetchLogs(ctx, utils.MustParseDate("2025-01-15"), utils.MustParseDate("2025-01-15"))
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, attendance.SourceManual, logs[2].Source)
	assert.Equal(t, attendance.ManualIDPrefix+edit.ID, logs[2].ID)

	personLogs, err := repo.FetchPersonLogs(ctx, "P002", utils.MustParseDate("2025-01-15"), utils.MustParseDate("2025-01-15"))
	require.NoError(t, err)
	require.Len(t, personLogs, 1)
	assert.Nil(t, personLogs[0].CheckOut)
}

func TestCalendarRepository_Upsert(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewCalendarRepository(setup.DB)

	d := utils.MustParseDate("2025-04-14")
	require.NoError(t, repo.Upsert(ctx, []calendar.DayType{{Date: d, DayType: calendar.DayTypeWeekend}}))
	require.NoError(t, repo.Upsert(ctx, []calendar.DayType{{Date: d, DayType: "Songkran Holiday"}}))

	days, err := repo.List(ctx, d, d)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Songkran Holiday", days[0].DayType)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	errAbort := errors.New("abort")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		createEmployee(t, ctx, repo, "P100", "Rolled Back", nil, nil)
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	_, err = repo.GetByPersonID(ctx, "P100")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUserRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	created, err := repo.Create(ctx, user.User{Email: "guard@example.com", Role: user.RoleUser})
	require.NoError(t, err)
	assert.False(t, created.IsVerified)

	_, err = repo.Create(ctx, user.User{Email: "guard@example.com", Role: user.RoleUser})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	verified, err := repo.UpdateVerification(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	found, err := repo.GetByEmail(ctx, "GUARD@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.UpdateRole(ctx, "01890a5d-ac96-774b-bcce-b302099a8057", user.RoleAdmin)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
