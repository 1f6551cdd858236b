package persistence

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/timesheet"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/repo"
)

const timesheetColumns = `id, company_id, employee_id, started_at, ended_at, status, approver_id, approver_name, approved_at`

type pgTimesheetRepository struct{}

func NewTimesheetRepository() timesheet.Repository {
	return &pgTimesheetRepository{}
}

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var t timesheet.Timesheet
	var status string
	var approverName *string
	if err := row.Scan(&t.ID, &t.CompanyID, &t.EmployeeID, &t.StartedAt, &t.EndedAt,
		&status, &t.ApproverID, &approverName, &t.ApprovedAt); err != nil {
		return timesheet.Timesheet{}, err
	}
	t.Status = timesheet.Status(status)
	if approverName != nil {
		t.ApproverName = *approverName
	}
	return t, nil
}

func (r *pgTimesheetRepository) GetByID(ctx context.Context, id uint) (timesheet.Timesheet, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return timesheet.Timesheet{}, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return timesheet.Timesheet{}, err
	}
	t, err := scanTimesheet(tx.QueryRow(ctx,
		`SELECT `+timesheetColumns+` FROM timesheets WHERE id = $1 AND company_id = $2`, id, companyID))
	if err != nil {
		return timesheet.Timesheet{}, errors.Wrap(repo.MapPgError(err, "timesheet", fmt.Sprint(id)), "failed to get timesheet")
	}
	return t, nil
}

func (r *pgTimesheetRepository) FindForWeek(ctx context.Context, employeeID uint, start time.Time) (timesheet.Timesheet, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return timesheet.Timesheet{}, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return timesheet.Timesheet{}, err
	}
	t, err := scanTimesheet(tx.QueryRow(ctx,
		`SELECT `+timesheetColumns+` FROM timesheets WHERE company_id = $1 AND employee_id = $2 AND started_at = $3`,
		companyID, employeeID, start))
	if stderrors.Is(err, pgx.ErrNoRows) {
		return timesheet.Timesheet{}, nil
	}
	if err != nil {
		return timesheet.Timesheet{}, errors.Wrap(err, "failed to find timesheet")
	}
	return t, nil
}

func (r *pgTimesheetRepository) Create(ctx context.Context, t timesheet.Timesheet) (timesheet.Timesheet, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return timesheet.Timesheet{}, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return timesheet.Timesheet{}, err
	}
	t.CompanyID = companyID
	if err := tx.QueryRow(ctx, `
		INSERT INTO timesheets (company_id, employee_id, started_at, ended_at, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		t.CompanyID, t.EmployeeID, t.StartedAt, t.EndedAt, string(t.Status),
	).Scan(&t.ID); err != nil {
		return timesheet.Timesheet{}, errors.Wrap(
			repo.MapPgError(err, "timesheet", t.StartedAt.Format(time.DateOnly)), "failed to create timesheet")
	}
	return t, nil
}

func (r *pgTimesheetRepository) Update(ctx context.Context, t timesheet.Timesheet) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE timesheets
		SET status = $1, approver_id = $2, approver_name = $3, approved_at = $4
		WHERE id = $5 AND company_id = $6`,
		string(t.Status), t.ApproverID, t.ApproverName, t.ApprovedAt, t.ID, companyID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to update timesheet")
	}
	if tag.RowsAffected() == 0 {
		return repo.MapPgError(pgx.ErrNoRows, "timesheet", fmt.Sprint(t.ID))
	}
	return nil
}
