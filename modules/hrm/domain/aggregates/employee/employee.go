package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/officelife/pkg/authz"
)

type Option func(e *Employee)

func WithID(id uint) Option {
	return func(e *Employee) { e.id = id }
}

func WithTwitter(handle string) Option {
	return func(e *Employee) { e.twitter = strings.TrimSpace(handle) }
}

func WithPosition(position string) Option {
	return func(e *Employee) { e.position = strings.TrimSpace(position) }
}

func WithBirthdate(t *time.Time) Option {
	return func(e *Employee) { e.birthdate = t }
}

func WithHiredAt(t *time.Time) Option {
	return func(e *Employee) { e.hiredAt = t }
}

func WithLocked(locked bool) Option {
	return func(e *Employee) { e.locked = locked }
}

func WithCreatedAt(t time.Time) Option {
	return func(e *Employee) { e.createdAt = t }
}

func WithUpdatedAt(t time.Time) Option {
	return func(e *Employee) { e.updatedAt = t }
}

// Employee is a company member. Birthdate and hire date are optional.
type Employee struct {
	id        uint
	companyID uuid.UUID
	firstName string
	lastName  string
	email     string
	role      authz.Role
	twitter   string
	position  string
	birthdate *time.Time
	hiredAt   *time.Time
	locked    bool
	createdAt time.Time
	updatedAt time.Time
}

func New(companyID uuid.UUID, firstName, lastName, email string, role authz.Role, opts ...Option) Employee {
	e := Employee{
		companyID: companyID,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		email:     NormalizeEmail(email),
		role:      role,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func (e Employee) ID() uint              { return e.id }
func (e Employee) CompanyID() uuid.UUID  { return e.companyID }
func (e Employee) FirstName() string     { return e.firstName }
func (e Employee) LastName() string      { return e.lastName }
func (e Employee) Email() string         { return e.email }
func (e Employee) Role() authz.Role      { return e.role }
func (e Employee) Twitter() string       { return e.twitter }
func (e Employee) Position() string      { return e.position }
func (e Employee) Birthdate() *time.Time { return e.birthdate }
func (e Employee) HiredAt() *time.Time   { return e.hiredAt }
func (e Employee) Locked() bool          { return e.locked }
func (e Employee) CreatedAt() time.Time  { return e.createdAt }
func (e Employee) UpdatedAt() time.Time  { return e.updatedAt }
func (e Employee) IsZero() bool          { return e.id == 0 && e.email == "" }

func (e Employee) Name() string {
	return strings.TrimSpace(e.firstName + " " + e.lastName)
}

// SetTwitter returns a copy with the handle replaced. An empty handle
// clears it.
func (e Employee) SetTwitter(handle string, at time.Time) Employee {
	e.twitter = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	e.updatedAt = at
	return e
}

// Actor is the authorization view of the employee.
func (e Employee) Actor() authz.Actor {
	return authz.Actor{
		ID:        e.id,
		CompanyID: e.companyID,
		Name:      e.Name(),
		Role:      e.role,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
