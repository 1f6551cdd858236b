package authz

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const rolePrefix = "role"

// Role is an employee permission level. Lower values carry more privilege.
type Role int

const (
	RoleAdministrator Role = 100
	RoleHR            Role = 200
	RoleUser          Role = 300
)

func (r Role) String() string {
	switch r {
	case RoleAdministrator:
		return "administrator"
	case RoleHR:
		return "hr"
	case RoleUser:
		return "user"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleHR || r == RoleUser
}

func (r Role) subject() string {
	return rolePrefix + ":" + r.String()
}

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "administrator", "admin", "100":
		return RoleAdministrator, nil
	case "hr", "200":
		return RoleHR, nil
	case "user", "normal", "300":
		return RoleUser, nil
	default:
		return 0, fmt.Errorf("authz: unknown role %q", s)
	}
}

// Actor is the employee an operation is performed as.
type Actor struct {
	ID        uint
	CompanyID uuid.UUID
	Name      string
	Role      Role
}

// Input is everything a check may look at. ManagesTarget is resolved by the
// caller from a single manager→report hop.
type Input struct {
	Actor            Actor
	CompanyID        uuid.UUID
	TargetEmployeeID uint
	ManagesTarget    bool
}

// Decision is recomputed on every call and never stored.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason string) Decision { return Decision{Reason: reason} }

// Requirement is the role floor of an operation plus the relationships
// that may bypass it.
type Requirement struct {
	Floor         Role
	ManagerBypass bool
	SelfBypass    bool
}

func AtLeast(floor Role) Requirement {
	return Requirement{Floor: floor}
}

func (r Requirement) OrManager() Requirement {
	r.ManagerBypass = true
	return r
}

func (r Requirement) OrSelf() Requirement {
	r.SelfBypass = true
	return r
}
