package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

type EmployeeService struct {
	c   *Client
	log *zap.Logger
}

func NewEmployeeService(c *Client, log *zap.Logger) *EmployeeService {
	return &EmployeeService{
		c:   c,
		log: log.With(zap.String("service", "employee")),
	}
}

func (s *EmployeeService) Employees(ctx context.Context, filter request.EmployeeFilter) ([]response.Employee, error) {
	params := url.Values{}
	if filter.Role != "" {
		params.Set("role", filter.Role)
	}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}

	path := "/employees"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var employees []response.Employee
	if err := s.c.get(ctx, path, &employees); err != nil {
		return nil, fmt.Errorf("get employees: %w", err)
	}
	return employees, nil
}

func (s *EmployeeService) Create(ctx context.Context, req *request.EmployeeRequest) (*response.Employee, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var employee response.Employee
	if err := s.c.post(ctx, "/employees", req, &employee); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.log.Info("Employee created", zap.String("employee_id", employee.ID))
	return &employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, req *request.EmployeeUpdateRequest) (*response.Employee, error) {
	if id == "" {
		return nil, fmt.Errorf("employee ID is required")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var employee response.Employee
	if err := s.c.put(ctx, "/employees/"+id, req, &employee); err != nil {
		return nil, fmt.Errorf("update employee %s: %w", id, err)
	}
	return &employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("employee ID is required")
	}

	if err := s.c.delete(ctx, "/employees/"+id, nil); err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}
	return nil
}

func (s *EmployeeService) Reactivate(ctx context.Context, id string) (*response.Employee, error) {
	if id == "" {
		return nil, fmt.Errorf("employee ID is required")
	}

	var employee response.Employee
	if err := s.c.post(ctx, "/employees/"+id+"/reactivate", nil, &employee); err != nil {
		return nil, fmt.Errorf("reactivate employee %s: %w", id, err)
	}
	return &employee, nil
}
