package auditlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/officelife/pkg/audit"
)

// AuditLog is one persisted trail row. Rows are never updated.
type AuditLog struct {
	ID         uuid.UUID
	Stream     audit.Stream
	CompanyID  uuid.UUID
	EmployeeID uint
	Action     string
	AuthorID   uint
	AuthorName string
	Objects    json.RawMessage
	AuditedAt  time.Time
}

func FromRecord(r audit.Record) AuditLog {
	return AuditLog{
		ID:         r.ID,
		Stream:     r.Stream,
		CompanyID:  r.CompanyID,
		EmployeeID: r.EmployeeID,
		Action:     r.Action,
		AuthorID:   r.AuthorID,
		AuthorName: r.AuthorName,
		Objects:    r.Objects,
		AuditedAt:  r.AuditedAt,
	}
}

// FindParams selects one stream of the company in context. EmployeeID is
// required for the employee stream.
type FindParams struct {
	Stream     audit.Stream
	EmployeeID uint
	Limit      int
	Offset     int
}

type Repository interface {
	audit.Store
	List(ctx context.Context, params *FindParams) ([]AuditLog, error)
	Count(ctx context.Context, params *FindParams) (int64, error)
}
