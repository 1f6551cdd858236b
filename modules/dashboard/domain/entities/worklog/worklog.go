package worklog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Worklog is what an employee wrote about one day of work.
type Worklog struct {
	ID         uint
	CompanyID  uuid.UUID
	EmployeeID uint
	Content    string
	CreatedAt  time.Time
}

type Repository interface {
	// ListForEmployee returns every worklog of the employee, oldest first.
	ListForEmployee(ctx context.Context, employeeID uint) ([]Worklog, error)
}

// Dates extracts the creation times.
func Dates(logs []Worklog) []time.Time {
	out := make([]time.Time, len(logs))
	for i, l := range logs {
		out[i] = l.CreatedAt
	}
	return out
}
