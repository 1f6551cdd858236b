package authz

import "github.com/google/uuid"

// Check is a pure predicate over an Input.
type Check func(in Input) Decision

const (
	ReasonMembershipUnknown = "membership_unknown"
	ReasonNotInCompany      = "not_in_company"
	ReasonBelowFloor        = "below_role_floor"
	ReasonNotManager        = "not_direct_manager"
	ReasonNotSelf           = "not_self"
	ReasonEnforcerError     = "enforcer_error"
)

// InCompany denies unless the actor is known to belong to the company.
func InCompany() Check {
	return func(in Input) Decision {
		if in.CompanyID == uuid.Nil || in.Actor.ID == 0 || in.Actor.CompanyID == uuid.Nil {
			return Deny(ReasonMembershipUnknown)
		}
		if in.Actor.CompanyID != in.CompanyID {
			return Deny(ReasonNotInCompany)
		}
		return Allow()
	}
}

func ManagerOfTarget() Check {
	return func(in Input) Decision {
		if in.TargetEmployeeID == 0 || !in.ManagesTarget {
			return Deny(ReasonNotManager)
		}
		return Allow()
	}
}

func SelfIsTarget() Check {
	return func(in Input) Decision {
		if in.TargetEmployeeID == 0 || in.TargetEmployeeID != in.Actor.ID {
			return Deny(ReasonNotSelf)
		}
		return Allow()
	}
}

// AnyOf allows when one of checks allows; otherwise it reports the first
// denial reason.
func AnyOf(checks ...Check) Check {
	return func(in Input) Decision {
		var first Decision
		for i, c := range checks {
			d := c(in)
			if d.Allowed {
				return d
			}
			if i == 0 {
				first = d
			}
		}
		if len(checks) == 0 {
			return Deny(ReasonBelowFloor)
		}
		return first
	}
}

// Evaluate runs checks in order and stops at the first denial.
func Evaluate(in Input, checks ...Check) Decision {
	for _, c := range checks {
		if d := c(in); !d.Allowed {
			return d
		}
	}
	return Allow()
}
