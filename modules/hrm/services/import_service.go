package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/officelife/modules/hrm/domain/entities/importjob"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/execution"
	"github.com/iota-uz/officelife/pkg/logging"
	"github.com/iota-uz/officelife/pkg/serrors"
	"github.com/iota-uz/officelife/pkg/validation"
)

const failurePersistTimeout = 5 * time.Second

type ImportRequest struct {
	execution.Base
	ImportJobID uint `form:"import_job_id" validate:"required"`
}

// StageRequest uploads rows into a new pending job.
type StageRequest struct {
	execution.Base
	Rows []importjob.Row `form:"-"`
}

type ImportService struct {
	exec      *execution.Executor
	jobs      importjob.Repository
	employees *EmployeeService
	logger    *logrus.Entry
}

func NewImportService(exec *execution.Executor, jobs importjob.Repository, employees *EmployeeService, logger *logrus.Entry) *ImportService {
	return &ImportService{
		exec:      exec,
		jobs:      jobs,
		employees: employees,
		logger:    logging.Component(logger, "hrm.import"),
	}
}

// Stage creates a pending job holding rows. Nothing is imported yet.
func (s *ImportService) Stage(ctx context.Context, req *StageRequest) (importjob.ImportJob, error) {
	return execution.Run(ctx, s.exec, execution.Operation[struct{}, importjob.ImportJob]{
		Name:        "stage_employee_import",
		Request:     req,
		Requirement: authz.AtLeast(authz.RoleHR),
		Mutate: func(ctx context.Context, call execution.Call, _ struct{}) (importjob.ImportJob, error) {
			job := importjob.New(call.Scope.CompanyID, call.Actor.ID, call.Actor.Name, call.Now)
			return s.jobs.Create(ctx, job, req.Rows)
		},
	})
}

// ImportEmployeesFromTemporaryTable adds every non-skipped staged row as a
// normal user. Once the job has started, any failure marks it failed and
// is returned as a pipeline failure wrapping the cause.
func (s *ImportService) ImportEmployeesFromTemporaryTable(ctx context.Context, req *ImportRequest) (importjob.ImportJob, error) {
	if err := validation.Struct(req); err != nil {
		return importjob.ImportJob{}, err
	}
	scope := req.Scope()
	ctx = composables.WithCompanyID(ctx, scope.CompanyID)

	call, err := s.exec.Admit(ctx, scope)
	if err != nil {
		return importjob.ImportJob{}, err
	}

	var job importjob.ImportJob
	var rows []importjob.Row
	err = s.exec.Tx().InTx(ctx, func(txCtx context.Context) error {
		found, err := s.jobs.GetByID(txCtx, req.ImportJobID)
		if err != nil {
			return err
		}
		started, err := found.Start(s.exec.Now())
		if err != nil {
			return err
		}
		if err := s.jobs.UpdateStatus(txCtx, found.Status, started); err != nil {
			return err
		}
		staged, err := s.jobs.Rows(txCtx, started.ID)
		if err != nil {
			return err
		}
		job, rows = started, importjob.Pending(staged)
		return nil
	})
	if err != nil {
		return importjob.ImportJob{}, err
	}

	if err := s.importRows(ctx, call, rows); err != nil {
		return s.fail(ctx, job, err)
	}

	done, err := job.Complete(s.exec.Now())
	if err != nil {
		return s.fail(ctx, job, err)
	}
	if err := s.exec.Tx().InTx(ctx, func(txCtx context.Context) error {
		return s.jobs.UpdateStatus(txCtx, job.Status, done)
	}); err != nil {
		return s.fail(ctx, job, err)
	}
	recordImport(done.Status)

	s.exec.Audit().Record(ctx, audit.ForCompany(scope.CompanyID, call.Author(), s.exec.Now(), audit.EmployeeImportCompleted{
		ImportJobID:       done.ID,
		NumberOfEmployees: len(rows),
	}))
	return done, nil
}

func (s *ImportService) importRows(ctx context.Context, call execution.Call, rows []importjob.Row) error {
	if err := s.exec.Permit(ctx, call, authz.AtLeast(authz.RoleHR), 0); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := s.employees.AddEmployeeToCompany(ctx, &AddEmployeeRequest{
			Base:            execution.Base{CompanyID: call.Scope.CompanyID, AuthorID: call.Actor.ID},
			FirstName:       row.FirstName,
			LastName:        row.LastName,
			Email:           row.Email,
			PermissionLevel: int(authz.RoleUser),
		}); err != nil {
			return err
		}
	}
	return nil
}

// fail persists the failed status even when ctx is already cancelled.
func (s *ImportService) fail(ctx context.Context, job importjob.ImportJob, cause error) (importjob.ImportJob, error) {
	failed, err := job.Fail(s.exec.Now())
	if err != nil {
		return job, serrors.PipelineFailure(cause)
	}
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failurePersistTimeout)
	defer cancel()
	if err := s.exec.Tx().InTx(persistCtx, func(txCtx context.Context) error {
		return s.jobs.UpdateStatus(txCtx, job.Status, failed)
	}); err != nil {
		s.logger.WithContext(ctx).WithFields(logrus.Fields{
			"import_job_id": job.ID,
			"company_id":    job.CompanyID,
		}).WithError(err).Error("failed to mark import job as failed")
	}
	recordImport(failed.Status)
	return failed, serrors.PipelineFailure(cause)
}
