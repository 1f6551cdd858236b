package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Stream is one of the two append-only trails.
type Stream string

const (
	StreamCompany  Stream = "company"
	StreamEmployee Stream = "employee"
)

func (s Stream) Valid() bool {
	return s == StreamCompany || s == StreamEmployee
}

// Topic is the low-priority queue topic entries of s travel on.
func (s Stream) Topic() string {
	return "audit.low." + string(s)
}

type Author struct {
	ID   uint
	Name string
}

// Entry is an audit event before serialization. Payload carries the
// action tag and its typed objects.
type Entry struct {
	ID         uuid.UUID
	Stream     Stream
	CompanyID  uuid.UUID
	EmployeeID uint
	Author     Author
	AuditedAt  time.Time
	Payload    Payload
}

func ForCompany(companyID uuid.UUID, author Author, at time.Time, p Payload) Entry {
	return Entry{
		Stream:    StreamCompany,
		CompanyID: companyID,
		Author:    author,
		AuditedAt: at,
		Payload:   p,
	}
}

func ForEmployee(companyID uuid.UUID, employeeID uint, author Author, at time.Time, p Payload) Entry {
	return Entry{
		Stream:     StreamEmployee,
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Author:     author,
		AuditedAt:  at,
		Payload:    p,
	}
}

func (e Entry) Action() string {
	if e.Payload == nil {
		return ""
	}
	return e.Payload.Action()
}

// Record is the persisted, write-once shape of an entry.
type Record struct {
	ID         uuid.UUID       `json:"id"`
	Stream     Stream          `json:"stream"`
	CompanyID  uuid.UUID       `json:"company_id"`
	EmployeeID uint            `json:"employee_id,omitempty"`
	Action     string          `json:"action"`
	AuthorID   uint            `json:"author_id"`
	AuthorName string          `json:"author_name"`
	AuditedAt  time.Time       `json:"audited_at"`
	Objects    json.RawMessage `json:"objects"`
}

var (
	ErrInvalidStream = errors.New("audit: invalid stream")
	ErrMissingAction = errors.New("audit: missing action")
	ErrMissingScope  = errors.New("audit: missing company or employee")
)

// Record serializes the payload objects.
func (e Entry) Record() (Record, error) {
	if e.Payload == nil {
		return Record{}, ErrMissingAction
	}
	objects, err := json.Marshal(e.Payload)
	if err != nil {
		return Record{}, fmt.Errorf("audit: marshal %s objects: %w", e.Payload.Action(), err)
	}
	rec := Record{
		ID:         e.ID,
		Stream:     e.Stream,
		CompanyID:  e.CompanyID,
		EmployeeID: e.EmployeeID,
		Action:     e.Payload.Action(),
		AuthorID:   e.Author.ID,
		AuthorName: e.Author.Name,
		AuditedAt:  e.AuditedAt.UTC(),
		Objects:    objects,
	}
	return rec, rec.Validate()
}

func (r Record) Validate() error {
	if !r.Stream.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStream, r.Stream)
	}
	if r.Action == "" {
		return ErrMissingAction
	}
	if r.CompanyID == uuid.Nil || (r.Stream == StreamEmployee && r.EmployeeID == 0) {
		return ErrMissingScope
	}
	return nil
}
