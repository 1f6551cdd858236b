package persistence

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iota-uz/officelife/modules/dashboard/domain/entities/worklog"
	"github.com/iota-uz/officelife/pkg/composables"
)

type pgWorklogRepository struct{}

func NewWorklogRepository() worklog.Repository {
	return &pgWorklogRepository{}
}

func (r *pgWorklogRepository) ListForEmployee(ctx context.Context, employeeID uint) ([]worklog.Worklog, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
		SELECT w.id, e.company_id, w.employee_id, w.content, w.created_at
		FROM worklogs w
		JOIN employees e ON e.id = w.employee_id
		WHERE w.employee_id = $1 AND e.company_id = $2
		ORDER BY w.created_at, w.id`, employeeID, companyID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query worklogs")
	}
	defer rows.Close()

	var out []worklog.Worklog
	for rows.Next() {
		var w worklog.Worklog
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.EmployeeID, &w.Content, &w.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan worklog")
		}
		out = append(out, w)
	}
	return out, errors.Wrap(rows.Err(), "error iterating worklogs")
}
