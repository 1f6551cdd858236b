package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/officelife/modules/hrm/domain/entities/importjob"
	"github.com/iota-uz/officelife/modules/hrm/infrastructure/persistence/models"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/serrors"
)

type ImportJobRepository struct{}

func NewImportJobRepository() importjob.Repository {
	return &ImportJobRepository{}
}

func (r *ImportJobRepository) GetByID(ctx context.Context, id uint) (importjob.ImportJob, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return importjob.ImportJob{}, err
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return importjob.ImportJob{}, err
	}
	var m models.ImportJob
	if err := tx.QueryRow(ctx, `
		SELECT id, company_id, author_id, author_name, status, import_started_at, import_ended_at, created_at
		FROM import_jobs WHERE id = $1 AND company_id = $2`,
		id, companyID,
	).Scan(&m.ID, &m.CompanyID, &m.AuthorID, &m.AuthorName, &m.Status, &m.ImportStartedAt, &m.ImportEndedAt, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return importjob.ImportJob{}, serrors.NotFound("import job")
		}
		return importjob.ImportJob{}, gerrors.Wrap(err, "failed to get import job")
	}
	return toDomainImportJob(m), nil
}

func (r *ImportJobRepository) Rows(ctx context.Context, jobID uint) ([]importjob.Row, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `
		SELECT id, import_job_id, employee_first_name, employee_last_name, employee_email, skipped_during_upload
		FROM import_job_reports WHERE import_job_id = $1 ORDER BY id`,
		jobID,
	)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list import job rows")
	}
	defer rows.Close()

	var out []importjob.Row
	for rows.Next() {
		var m models.ImportJobReport
		if err := rows.Scan(&m.ID, &m.ImportJobID, &m.FirstName, &m.LastName, &m.Email, &m.SkippedDuringUpload); err != nil {
			return nil, err
		}
		out = append(out, toDomainRow(m))
	}
	return out, rows.Err()
}

func (r *ImportJobRepository) Create(ctx context.Context, job importjob.ImportJob, rows []importjob.Row) (importjob.ImportJob, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return importjob.ImportJob{}, err
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return importjob.ImportJob{}, err
	}
	job.CompanyID = companyID
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	if err := tx.QueryRow(ctx, `
		INSERT INTO import_jobs (company_id, author_id, author_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		job.CompanyID, job.AuthorID, job.AuthorName, string(job.Status), job.CreatedAt,
	).Scan(&job.ID); err != nil {
		return importjob.ImportJob{}, gerrors.Wrap(err, "failed to create import job")
	}
	for _, row := range rows {
		if _, err := tx.Exec(ctx, `
			INSERT INTO import_job_reports (import_job_id, employee_first_name, employee_last_name, employee_email, skipped_during_upload)
			VALUES ($1, $2, $3, $4, $5)`,
			job.ID, row.FirstName, row.LastName, row.Email, row.SkippedDuringUpload,
		); err != nil {
			return importjob.ImportJob{}, gerrors.Wrap(err, "failed to stage import row")
		}
	}
	return job, nil
}

func (r *ImportJobRepository) UpdateStatus(ctx context.Context, from importjob.Status, job importjob.ImportJob) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE import_jobs
		SET status = $1, import_started_at = $2, import_ended_at = $3
		WHERE id = $4 AND company_id = $5 AND status = $6`,
		string(job.Status), job.ImportStartedAt, job.ImportEndedAt, job.ID, companyID, string(from),
	)
	if err != nil {
		return gerrors.Wrap(err, "failed to update import job")
	}
	if tag.RowsAffected() == 0 {
		return importjob.StaleError(from)
	}
	return nil
}
