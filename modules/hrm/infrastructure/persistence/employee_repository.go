package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/modules/hrm/infrastructure/persistence/models"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/repo"
	"github.com/iota-uz/officelife/pkg/serrors"
)

const employeeColumns = `e.id, e.company_id, e.first_name, e.last_name, e.email, e.permission_level,
	e.twitter, e.position, e.birthdate, e.hired_at, e.locked, e.created_at, e.updated_at`

type EmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &EmployeeRepository{}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var m models.Employee
	if err := row.Scan(
		&m.ID, &m.CompanyID, &m.FirstName, &m.LastName, &m.Email, &m.PermissionLevel,
		&m.Twitter, &m.Position, &m.Birthdate, &m.HiredAt, &m.Locked, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return employee.Employee{}, err
	}
	return toDomainEmployee(m), nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uint) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	e, err := scanEmployee(tx.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees e WHERE e.id = $1 AND e.company_id = $2`,
		id, companyID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, serrors.NotFound("employee")
		}
		return employee.Employee{}, gerrors.Wrap(err, "failed to get employee")
	}
	return e, nil
}

// GetActor returns a zero Employee when id is unknown.
func (r *EmployeeRepository) GetActor(ctx context.Context, id uint) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	e, err := scanEmployee(tx.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees e WHERE e.id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, nil
		}
		return employee.Employee{}, gerrors.Wrap(err, "failed to get actor")
	}
	return e, nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE company_id = $1 AND email = $2)`,
		companyID, employee.NormalizeEmail(email),
	).Scan(&exists); err != nil {
		return false, gerrors.Wrap(err, "failed to check employee email")
	}
	return exists, nil
}

func (r *EmployeeRepository) List(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	if params == nil {
		params = &employee.FindParams{}
	}

	query := `SELECT ` + employeeColumns + ` FROM employees e`
	args := []any{companyID}
	where := ` WHERE e.company_id = $1`
	if params.TeamID != 0 {
		query += ` JOIN employee_team et ON et.employee_id = e.id`
		where += fmt.Sprintf(` AND et.team_id = $%d`, len(args)+1)
		args = append(args, params.TeamID)
	}
	if !params.IncludeLocked {
		where += ` AND e.locked = false`
	}
	query += where + ` ORDER BY e.id ` + repo.FormatLimitOffset(params.Limit, params.Offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list employees")
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, data employee.Employee) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	m := toDBEmployee(data)
	m.CompanyID = companyID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = m.CreatedAt

	if err := tx.QueryRow(ctx, `
		INSERT INTO employees (company_id, first_name, last_name, email, permission_level,
			twitter, position, birthdate, hired_at, locked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		m.CompanyID, m.FirstName, m.LastName, m.Email, m.PermissionLevel,
		m.Twitter, m.Position, m.Birthdate, m.HiredAt, m.Locked, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID); err != nil {
		return employee.Employee{}, gerrors.Wrap(repo.MapPgError(err, "employee", m.Email), "failed to create employee")
	}
	return toDomainEmployee(m), nil
}

func (r *EmployeeRepository) Update(ctx context.Context, data employee.Employee) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return err
	}
	m := toDBEmployee(data)
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now()
	}
	tag, err := tx.Exec(ctx, `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3, permission_level = $4,
			twitter = $5, position = $6, birthdate = $7, hired_at = $8, locked = $9, updated_at = $10
		WHERE id = $11 AND company_id = $12`,
		m.FirstName, m.LastName, m.Email, m.PermissionLevel,
		m.Twitter, m.Position, m.Birthdate, m.HiredAt, m.Locked, m.UpdatedAt,
		m.ID, companyID,
	)
	if err != nil {
		return gerrors.Wrap(err, "failed to update employee")
	}
	if tag.RowsAffected() == 0 {
		return serrors.NotFound("employee")
	}
	return nil
}

func (r *EmployeeRepository) IsDirectManager(ctx context.Context, companyID uuid.UUID, managerID, reportID uint) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM direct_reports
			WHERE company_id = $1 AND manager_id = $2 AND employee_id = $3
		)`,
		companyID, managerID, reportID,
	).Scan(&ok); err != nil {
		return false, gerrors.Wrap(err, "failed to check direct report")
	}
	return ok, nil
}
