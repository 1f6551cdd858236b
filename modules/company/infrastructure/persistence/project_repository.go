package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/project"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/repo"
)

type pgProjectRepository struct{}

func NewProjectRepository() project.Repository {
	return &pgProjectRepository{}
}

func (r *pgProjectRepository) GetByID(ctx context.Context, id uint) (project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return project.Project{}, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return project.Project{}, err
	}
	var p project.Project
	var status string
	if err := tx.QueryRow(ctx, `
		SELECT id, company_id, name, status, project_lead_id, actually_finished_at, updated_at
		FROM projects WHERE id = $1 AND company_id = $2`,
		id, companyID,
	).Scan(&p.ID, &p.CompanyID, &p.Name, &status, &p.LeadID, &p.ActuallyFinishedAt, &p.UpdatedAt); err != nil {
		return project.Project{}, errors.Wrap(repo.MapPgError(err, "project", fmt.Sprint(id)), "failed to get project")
	}
	p.Status = project.Status(status)
	return p, nil
}

func (r *pgProjectRepository) Create(ctx context.Context, p project.Project) (project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return project.Project{}, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return project.Project{}, err
	}
	p.CompanyID = companyID
	if err := tx.QueryRow(ctx, `
		INSERT INTO projects (company_id, name, status, project_lead_id, actually_finished_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.CompanyID, p.Name, string(p.Status), p.LeadID, p.ActuallyFinishedAt, p.UpdatedAt,
	).Scan(&p.ID); err != nil {
		return project.Project{}, errors.Wrap(err, "failed to create project")
	}
	return p, nil
}

func (r *pgProjectRepository) Update(ctx context.Context, p project.Project) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE projects
		SET name = $1, status = $2, project_lead_id = $3, actually_finished_at = $4, updated_at = $5
		WHERE id = $6 AND company_id = $7`,
		p.Name, string(p.Status), p.LeadID, p.ActuallyFinishedAt, p.UpdatedAt, p.ID, companyID,
	); err != nil {
		return errors.Wrap(err, "failed to update project")
	}
	return nil
}

func (r *pgProjectRepository) IsMember(ctx context.Context, projectID, employeeID uint) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}
	var ok bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employee_project WHERE project_id = $1 AND employee_id = $2)`,
		projectID, employeeID,
	).Scan(&ok); err != nil {
		return false, errors.Wrap(err, "failed to check project membership")
	}
	return ok, nil
}

func (r *pgProjectRepository) AddMember(ctx context.Context, projectID, employeeID uint, at time.Time) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO employee_project (project_id, employee_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, employee_id) DO NOTHING`,
		projectID, employeeID, at,
	)
	return errors.Wrap(err, "failed to add project member")
}

func (r *pgProjectRepository) RecordActivity(ctx context.Context, projectID, employeeID uint, at time.Time) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO project_member_activities (project_id, employee_id, created_at) VALUES ($1, $2, $3)`,
		projectID, employeeID, at,
	)
	return errors.Wrap(err, "failed to record project activity")
}
