package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/turbo-fm/facility-backend-go/internal/domain/employee"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/cache"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	transactor   database.Transactor
	employeeRepo employee.EmployeeRepository
	reportCache  cache.ReportCache
}

func NewEmployeeService(
	transactor database.Transactor,
	employeeRepo employee.EmployeeRepository,
	reportCache cache.ReportCache,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		transactor:   transactor,
		employeeRepo: employeeRepo,
		reportCache:  reportCache,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var created employee.Employee
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		newEmployee := req.ToEmployee()

		exists, err := s.employeeRepo.ExistsByPersonID(txCtx, newEmployee.PersonID, nil)
		if err != nil {
			return fmt.Errorf("failed to check person id: %w", err)
		}
		if exists {
			return employee.ErrPersonIDExists
		}

		created, err = s.employeeRepo.Create(txCtx, newEmployee)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.invalidateReports(ctx)
	slog.Info("employee created", "employee_id", created.ID, "person_id", created.PersonID)
	return employee.ToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		changes := req.ToEmployee()

		if _, err := s.employeeRepo.GetByID(txCtx, changes.ID); err != nil {
			return err
		}

		exists, err := s.employeeRepo.ExistsByPersonID(txCtx, changes.PersonID, &changes.ID)
		if err != nil {
			return fmt.Errorf("failed to check person id: %w", err)
		}
		if exists {
			return employee.ErrPersonIDExists
		}

		updated, err = s.employeeRepo.Update(txCtx, changes)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.invalidateReports(ctx)
	slog.Info("employee updated", "employee_id", updated.ID)
	return employee.ToResponse(updated), nil
}

func (s *EmployeeServiceImpl) invalidateReports(ctx context.Context) {
	if err := s.reportCache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate report cache", "error", err)
	}
}
