package project

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusCreated Status = "created"
	StatusStarted Status = "started"
	StatusPaused  Status = "paused"
	StatusClosed  Status = "closed"
)

type Project struct {
	ID                 uint
	CompanyID          uuid.UUID
	Name               string
	Status             Status
	LeadID             *uint
	ActuallyFinishedAt *time.Time
	UpdatedAt          time.Time
}

func (p Project) Close(at time.Time) Project {
	p.Status = StatusClosed
	p.ActuallyFinishedAt = &at
	p.UpdatedAt = at
	return p
}

func (p Project) SetLead(employeeID uint, at time.Time) Project {
	p.LeadID = &employeeID
	p.UpdatedAt = at
	return p
}

type Repository interface {
	GetByID(ctx context.Context, id uint) (Project, error)
	Create(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, p Project) error
	IsMember(ctx context.Context, projectID, employeeID uint) (bool, error)
	AddMember(ctx context.Context, projectID, employeeID uint, at time.Time) error
	// RecordActivity notes that employeeID touched the project at.
	RecordActivity(ctx context.Context, projectID, employeeID uint, at time.Time) error
}
