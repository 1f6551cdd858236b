package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/ptopolicy"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/repo"
)

const policyColumns = `id, company_id, year, total_worked_days,
	default_amount_of_allowed_holidays, default_amount_of_sick_days, default_amount_of_pto_days, created_at`

type pgPTOPolicyRepository struct{}

func NewPTOPolicyRepository() ptopolicy.Repository {
	return &pgPTOPolicyRepository{}
}

func (r *pgPTOPolicyRepository) ExistsForYear(ctx context.Context, year int) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM company_pto_policies WHERE company_id = $1 AND year = $2)`,
		companyID, year,
	).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "failed to check pto policy year")
	}
	return exists, nil
}

// Create inserts the policy and its whole calendar in one statement each.
// A concurrent insert for the same year surfaces as AlreadyExists.
func (r *pgPTOPolicyRepository) Create(ctx context.Context, p ptopolicy.Policy) (ptopolicy.Policy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return ptopolicy.Policy{}, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return ptopolicy.Policy{}, err
	}
	p.CompanyID = companyID
	if err := tx.QueryRow(ctx, `
		INSERT INTO company_pto_policies (company_id, year, total_worked_days,
			default_amount_of_allowed_holidays, default_amount_of_sick_days, default_amount_of_pto_days, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.CompanyID, p.Year, p.TotalWorkedDays, p.DefaultHolidays, p.DefaultSickDays, p.DefaultPTODays, p.CreatedAt,
	).Scan(&p.ID); err != nil {
		return ptopolicy.Policy{}, errors.Wrap(repo.MapPgError(err, "company pto policy", fmt.Sprint(p.Year)), "failed to create pto policy")
	}

	dates := make([]time.Time, len(p.Days))
	weekdays := make([]int, len(p.Days))
	yearDays := make([]int, len(p.Days))
	worked := make([]bool, len(p.Days))
	for i, d := range p.Days {
		dates[i], weekdays[i], yearDays[i], worked[i] = d.Date, d.DayOfWeek(), d.DayOfYear(), d.IsWorked
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO company_calendars (company_pto_policy_id, day, day_of_week, day_of_year, is_worked)
		SELECT $1, d.day, d.day_of_week, d.day_of_year, d.is_worked
		FROM unnest($2::date[], $3::int[], $4::int[], $5::bool[]) AS d(day, day_of_week, day_of_year, is_worked)`,
		p.ID, dates, weekdays, yearDays, worked,
	); err != nil {
		return ptopolicy.Policy{}, errors.Wrap(err, "failed to materialize calendar")
	}
	return r.GetByID(ctx, p.ID)
}

func (r *pgPTOPolicyRepository) GetByID(ctx context.Context, id uint) (ptopolicy.Policy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return ptopolicy.Policy{}, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return ptopolicy.Policy{}, err
	}
	var p ptopolicy.Policy
	if err := tx.QueryRow(ctx,
		`SELECT `+policyColumns+` FROM company_pto_policies WHERE id = $1 AND company_id = $2`,
		id, companyID,
	).Scan(&p.ID, &p.CompanyID, &p.Year, &p.TotalWorkedDays,
		&p.DefaultHolidays, &p.DefaultSickDays, &p.DefaultPTODays, &p.CreatedAt,
	); err != nil {
		return ptopolicy.Policy{}, errors.Wrap(repo.MapPgError(err, "company pto policy", fmt.Sprint(id)), "failed to get pto policy")
	}

	rows, err := tx.Query(ctx, `
		SELECT id, day, is_worked FROM company_calendars
		WHERE company_pto_policy_id = $1
		ORDER BY day`, p.ID)
	if err != nil {
		return ptopolicy.Policy{}, errors.Wrap(err, "failed to query calendar")
	}
	defer rows.Close()
	for rows.Next() {
		var d ptopolicy.Day
		if err := rows.Scan(&d.ID, &d.Date, &d.IsWorked); err != nil {
			return ptopolicy.Policy{}, errors.Wrap(err, "failed to scan calendar day")
		}
		p.Days = append(p.Days, d)
	}
	if err := rows.Err(); err != nil {
		return ptopolicy.Policy{}, errors.Wrap(err, "error iterating calendar")
	}
	return p, nil
}

// List returns the company's policies without their calendars.
func (r *pgPTOPolicyRepository) List(ctx context.Context) ([]ptopolicy.Policy, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx,
		`SELECT `+policyColumns+` FROM company_pto_policies WHERE company_id = $1 ORDER BY year`, companyID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query pto policies")
	}
	defer rows.Close()

	var out []ptopolicy.Policy
	for rows.Next() {
		var p ptopolicy.Policy
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Year, &p.TotalWorkedDays,
			&p.DefaultHolidays, &p.DefaultSickDays, &p.DefaultPTODays, &p.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan pto policy")
		}
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "error iterating pto policies")
}

func (r *pgPTOPolicyRepository) UpdateDay(ctx context.Context, p ptopolicy.Policy, day ptopolicy.Day) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE company_calendars SET is_worked = $1 WHERE company_pto_policy_id = $2 AND day = $3`,
		day.IsWorked, p.ID, day.Date,
	); err != nil {
		return errors.Wrap(err, "failed to update calendar day")
	}
	if _, err := tx.Exec(ctx,
		`UPDATE company_pto_policies SET total_worked_days = $1 WHERE id = $2 AND company_id = $3`,
		p.TotalWorkedDays, p.ID, companyID,
	); err != nil {
		return errors.Wrap(err, "failed to update worked days")
	}
	return nil
}
