package main

import (
	"context"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/ptopolicy"
	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/pkg/constants"
)

// mapped adapts fn so its result is printed through view.
func mapped[R, T, V any](fn func(context.Context, *R) (T, error), view func(T) V) func(context.Context, *R) (V, error) {
	return func(ctx context.Context, req *R) (V, error) {
		out, err := fn(ctx, req)
		if err != nil {
			var zero V
			return zero, err
		}
		return view(out), nil
	}
}

type employeeView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Position  string `json:"position,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	HiredAt   string `json:"hired_at,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
	Locked    bool   `json:"locked"`
}

func newEmployeeView(e employee.Employee) employeeView {
	v := employeeView{
		ID:       e.ID(),
		Name:     e.Name(),
		Email:    e.Email(),
		Role:     e.Role().String(),
		Position: e.Position(),
		Twitter:  e.Twitter(),
		Locked:   e.Locked(),
	}
	if h := e.HiredAt(); h != nil {
		v.HiredAt = h.Format(constants.DateFormat)
	}
	if b := e.Birthdate(); b != nil {
		v.Birthdate = b.Format(constants.DateFormat)
	}
	return v
}

type policyView struct {
	ID              uint   `json:"id"`
	Year            int    `json:"year"`
	TotalWorkedDays int    `json:"total_worked_days"`
	DefaultHolidays int    `json:"default_amount_of_allowed_holidays"`
	DefaultSickDays int    `json:"default_amount_of_sick_days"`
	DefaultPTODays  int    `json:"default_amount_of_pto_days"`
	Days            int    `json:"days"`
	CreatedAt       string `json:"created_at"`
}

func newPolicyView(p ptopolicy.Policy) policyView {
	return policyView{
		ID:              p.ID,
		Year:            p.Year,
		TotalWorkedDays: p.TotalWorkedDays,
		DefaultHolidays: p.DefaultHolidays,
		DefaultSickDays: p.DefaultSickDays,
		DefaultPTODays:  p.DefaultPTODays,
		Days:            len(p.Days),
		CreatedAt:       p.CreatedAt.Format(constants.DateFormat),
	}
}
