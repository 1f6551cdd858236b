package persistence

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/iota-uz/officelife/modules/logging/domain/entities/auditlog"
	"github.com/iota-uz/officelife/modules/logging/infrastructure/persistence/models"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/repo"
)

const (
	companyLogColumns  = `id, company_id, action, author_id, author_name, objects, audited_at`
	employeeLogColumns = companyLogColumns + `, employee_id`
)

var ErrEmployeeRequired = errors.New("employee_id is required for the employee stream")

type AuditLogRepository struct{}

func NewAuditLogRepository() auditlog.Repository {
	return &AuditLogRepository{}
}

// Append writes r to its stream's table. The worker has no company in
// context, so the record's own company is used. Replays are ignored.
func (r *AuditLogRepository) Append(ctx context.Context, rec audit.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	switch rec.Stream {
	case audit.StreamEmployee:
		_, err = tx.Exec(ctx, `
			INSERT INTO employee_logs (`+employeeLogColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			rec.ID.String(), rec.CompanyID.String(), rec.Action, rec.AuthorID, rec.AuthorName,
			[]byte(rec.Objects), rec.AuditedAt, rec.EmployeeID,
		)
	default:
		_, err = tx.Exec(ctx, `
			INSERT INTO company_logs (`+companyLogColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING`,
			rec.ID.String(), rec.CompanyID.String(), rec.Action, rec.AuthorID, rec.AuthorName,
			[]byte(rec.Objects), rec.AuditedAt,
		)
	}
	return errors.Wrapf(err, "failed to append %s log", rec.Stream)
}

func filters(ctx context.Context, params *auditlog.FindParams) (string, string, []any, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return "", "", nil, err
	}
	if params.Stream == audit.StreamEmployee {
		if params.EmployeeID == 0 {
			return "", "", nil, ErrEmployeeRequired
		}
		return "employee_logs", "company_id = $1 AND employee_id = $2", []any{companyID.String(), params.EmployeeID}, nil
	}
	return "company_logs", "company_id = $1", []any{companyID.String()}, nil
}

func (r *AuditLogRepository) List(ctx context.Context, params *auditlog.FindParams) ([]auditlog.AuditLog, error) {
	if params == nil {
		params = &auditlog.FindParams{Stream: audit.StreamCompany}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	table, where, args, err := filters(ctx, params)
	if err != nil {
		return nil, err
	}
	columns := companyLogColumns
	if params.Stream == audit.StreamEmployee {
		columns = employeeLogColumns
	}
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY audited_at DESC, id DESC
	`, columns, table, where) + repo.FormatLimitOffset(params.Limit, params.Offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list logs")
	}
	defer rows.Close()

	var results []auditlog.AuditLog
	for rows.Next() {
		var row models.EmployeeLog
		dest := []any{&row.ID, &row.CompanyID, &row.Action, &row.AuthorID, &row.AuthorName, &row.Objects, &row.AuditedAt}
		if params.Stream == audit.StreamEmployee {
			dest = append(dest, &row.EmployeeID)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if params.Stream == audit.StreamEmployee {
			results = append(results, toDomainEmployeeLog(&row))
		} else {
			results = append(results, toDomainCompanyLog(&row.CompanyLog))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *AuditLogRepository) Count(ctx context.Context, params *auditlog.FindParams) (int64, error) {
	if params == nil {
		params = &auditlog.FindParams{Stream: audit.StreamCompany}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	table, where, args, err := filters(ctx, params)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM `+table+` WHERE `+where, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count logs")
	}
	return count, nil
}
