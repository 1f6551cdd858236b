package services

import (
	"context"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
)

// EmployeeReader resolves employees of the company in context; others are
// NotFound.
type EmployeeReader interface {
	GetByID(ctx context.Context, id uint) (employee.Employee, error)
}
