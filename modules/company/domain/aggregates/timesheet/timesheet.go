package timesheet

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/officelife/pkg/calendar"
)

type Status string

const (
	StatusOpen          Status = "open"
	StatusReadyToSubmit Status = "ready_to_submit"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
)

// Timesheet covers one Monday–Sunday week of an employee.
type Timesheet struct {
	ID           uint
	CompanyID    uuid.UUID
	EmployeeID   uint
	StartedAt    time.Time
	EndedAt      time.Time
	Status       Status
	ApproverID   *uint
	ApproverName string
	ApprovedAt   *time.Time
}

// ForWeek returns an open timesheet for the week containing day.
func ForWeek(companyID uuid.UUID, employeeID uint, day time.Time) Timesheet {
	start, end := calendar.WeekBounds(day)
	return Timesheet{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		StartedAt:  start,
		EndedAt:    end,
		Status:     StatusOpen,
	}
}

func (t Timesheet) Approve(approverID uint, approverName string, at time.Time) Timesheet {
	return t.decide(StatusApproved, approverID, approverName, at)
}

func (t Timesheet) Reject(approverID uint, approverName string, at time.Time) Timesheet {
	return t.decide(StatusRejected, approverID, approverName, at)
}

func (t Timesheet) decide(status Status, approverID uint, approverName string, at time.Time) Timesheet {
	t.Status = status
	t.ApproverID = &approverID
	t.ApproverName = approverName
	t.ApprovedAt = &at
	return t
}

// Week renders the boundaries as "Jan 01, 2018".
func (t Timesheet) Week() (string, string) {
	return t.StartedAt.Format(calendar.ShortDate), t.EndedAt.Format(calendar.ShortDate)
}

type Repository interface {
	GetByID(ctx context.Context, id uint) (Timesheet, error)
	// FindForWeek returns a zero Timesheet when the employee has none
	// starting at start.
	FindForWeek(ctx context.Context, employeeID uint, start time.Time) (Timesheet, error)
	Create(ctx context.Context, t Timesheet) (Timesheet, error)
	Update(ctx context.Context, t Timesheet) error
}
