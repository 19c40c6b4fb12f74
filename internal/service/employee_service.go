package service

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"datakit/internal/dto"
	"datakit/internal/model"
	"datakit/internal/pkg/logger"
	"datakit/pkg/query"
	"datakit/pkg/repository"
	"datakit/pkg/specification"
)

const defaultPageSize = 20

type IEmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error)
	Update(ctx context.Context, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, req *dto.ListEmployeesRequest) (*dto.ListEmployeesResponse, error)
}

type employeeService struct {
	repo   repository.Repository[model.Employee, uuid.UUID]
	logger logger.ILogger
}

func NewEmployeeService(repo repository.Repository[model.Employee, uuid.UUID], log logger.ILogger) IEmployeeService {
	return &employeeService{repo: repo, logger: log}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	m := &model.Employee{
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		Salary:     req.Salary,
		Age:        req.Age,
	}
	if err := s.repo.Add(ctx, m); err != nil {
		s.logger.Error("EmployeeService", "Failed to create employee", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	s.logger.Info("EmployeeService", "Employee created", map[string]interface{}{"id": m.Id.String()})
	return toEmployeeResponse(m), nil
}

func (s *employeeService) Show(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "employee not found")
	}
	return toEmployeeResponse(m), nil
}

func (s *employeeService) Update(ctx context.Context, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	m, err := s.repo.Get(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "employee not found")
	}

	m.FullName = req.FullName
	m.Email = req.Email
	m.Department = req.Department
	m.Salary = req.Salary
	m.Age = req.Age

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.Error("EmployeeService", "Failed to update employee", map[string]interface{}{"id": m.Id.String(), "error": err.Error()})
		return nil, err
	}
	s.logger.Info("EmployeeService", "Employee updated", map[string]interface{}{"id": m.Id.String()})
	return toEmployeeResponse(m), nil
}

func (s *employeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("EmployeeService", "Failed to delete employee", map[string]interface{}{"id": id.String(), "error": err.Error()})
		return err
	}
	s.logger.Info("EmployeeService", "Employee deleted", map[string]interface{}{"id": id.String()})
	return nil
}

func (s *employeeService) List(ctx context.Context, req *dto.ListEmployeesRequest) (*dto.ListEmployeesResponse, error) {
	size := req.Size
	if size <= 0 {
		size = defaultPageSize
	}

	keys, err := ParseSort(req.Sort)
	if err != nil {
		s.logger.Warn("EmployeeService", "Rejected list request", map[string]interface{}{"sort": req.Sort, "error": err.Error()})
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	spec := buildEmployeeSpec(req)

	page := query.Page{Size: size, Index: req.Page}
	items, err := s.repo.List(ctx, page, keys, spec)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, spec)
	if err != nil {
		return nil, err
	}

	res := &dto.ListEmployeesResponse{
		Items: make([]dto.EmployeeResponse, 0, len(items)),
		Page:  req.Page,
		Size:  size,
		Total: total,
	}
	for i := range items {
		res.Items = append(res.Items, *toEmployeeResponse(&items[i]))
	}
	return res, nil
}

// ParseSort turns a comma-separated sort expression ("department,-salary")
// into sort keys, primary key first. An empty expression falls back to newest
// first. Unknown fields are rejected.
func ParseSort(expr string) ([]query.SortKey[model.Employee], error) {
	if strings.TrimSpace(expr) == "" {
		return []query.SortKey[model.Employee]{
			query.Desc("created_at", func(e model.Employee) int64 { return e.CreatedAt.UnixNano() }),
		}, nil
	}

	var keys []query.SortKey[model.Employee]
	for _, part := range strings.Split(expr, ",") {
		field := strings.TrimSpace(part)
		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")

		key, ok := employeeSortKey(field, desc)
		if !ok {
			return nil, fmt.Errorf("unknown sort field %q", field)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func employeeSortKey(field string, desc bool) (query.SortKey[model.Employee], bool) {
	switch field {
	case "full_name":
		return sortKey(field, desc, func(e model.Employee) string { return e.FullName }), true
	case "email":
		return sortKey(field, desc, func(e model.Employee) string { return e.Email }), true
	case "department":
		return sortKey(field, desc, func(e model.Employee) string { return e.Department }), true
	case "salary":
		return sortKey(field, desc, func(e model.Employee) float64 { return e.Salary }), true
	case "age":
		return sortKey(field, desc, func(e model.Employee) int { return e.Age }), true
	case "created_at":
		return sortKey(field, desc, func(e model.Employee) int64 { return e.CreatedAt.UnixNano() }), true
	default:
		return query.SortKey[model.Employee]{}, false
	}
}

func sortKey[K cmp.Ordered](column string, desc bool, key func(model.Employee) K) query.SortKey[model.Employee] {
	if desc {
		return query.Desc(column, key)
	}
	return query.Asc(column, key)
}

func buildEmployeeSpec(req *dto.ListEmployeesRequest) specification.Specification[model.Employee] {
	var specs []specification.Specification[model.Employee]
	if req.Department != "" {
		dept := req.Department
		specs = append(specs, specification.Where("department = ?", func(e model.Employee) bool {
			return e.Department == dept
		}, dept))
	}
	if req.MinSalary > 0 {
		minSalary := req.MinSalary
		specs = append(specs, specification.Where("salary >= ?", func(e model.Employee) bool {
			return e.Salary >= minSalary
		}, minSalary))
	}
	if req.MaxAge > 0 {
		maxAge := req.MaxAge
		specs = append(specs, specification.Where("age <= ?", func(e model.Employee) bool {
			return e.Age <= maxAge
		}, maxAge))
	}

	switch len(specs) {
	case 0:
		return nil
	case 1:
		return specs[0]
	default:
		return specification.And(specs...)
	}
}

func toEmployeeResponse(m *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		Id:         m.Id,
		FullName:   m.FullName,
		Email:      m.Email,
		Department: m.Department,
		Salary:     m.Salary,
		Age:        m.Age,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
