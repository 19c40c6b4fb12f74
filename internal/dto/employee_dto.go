package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEmployeeRequest struct {
	FullName   string  `json:"full_name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Department string  `json:"department" validate:"required"`
	Salary     float64 `json:"salary" validate:"gte=0"`
	Age        int     `json:"age" validate:"gte=0"`
}

type UpdateEmployeeRequest struct {
	Id         uuid.UUID
	FullName   string  `json:"full_name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Department string  `json:"department" validate:"required"`
	Salary     float64 `json:"salary" validate:"gte=0"`
	Age        int     `json:"age" validate:"gte=0"`
}

type EmployeeResponse struct {
	Id         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Salary     float64   `json:"salary"`
	Age        int       `json:"age"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListEmployeesRequest carries paging, sorting and filter parameters.
// Page is zero-based. Sort is a comma-separated field list; a leading "-"
// means descending, e.g. "department,-salary".
type ListEmployeesRequest struct {
	Page       int     `query:"page" validate:"gte=0"`
	Size       int     `query:"size" validate:"gte=0,lte=200"`
	Sort       string  `query:"sort"`
	Department string  `query:"department"`
	MinSalary  float64 `query:"min_salary" validate:"gte=0"`
	MaxAge     int     `query:"max_age" validate:"gte=0"`
}

type ListEmployeesResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
	Total int64              `json:"total"`
}
