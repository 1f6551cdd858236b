package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/modules/hrm/domain/entities/importjob"
	"github.com/iota-uz/officelife/modules/hrm/infrastructure/persistence"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/serrors"
)

func withCompany() context.Context {
	return composables.WithCompanyID(context.Background(), acme)
}

func stage(t *testing.T, f *fixture, rows ...importjob.Row) importjob.ImportJob {
	t.Helper()
	job, err := f.jobs.Create(withCompany(), importjob.New(acme, f.hr.ID(), f.hr.Name(), f.clock.Now()), rows)
	require.NoError(t, err)
	return job
}

func newImportService(f *fixture) *ImportService {
	return NewImportService(f.exec, f.jobs, NewEmployeeService(f.exec, f.repo), nil)
}

func TestImport_AddsPendingRows(t *testing.T) {
	f := newFixture(t)
	svc := newImportService(f)
	job := stage(t, f,
		importjob.Row{FirstName: "Jim", LastName: "Halpert", Email: "jim@acme.test"},
		importjob.Row{FirstName: "Skip", LastName: "Me", Email: "broken", SkippedDuringUpload: true},
		importjob.Row{FirstName: "Pam", LastName: "Beesly", Email: "pam@acme.test"},
	)

	done, err := svc.ImportEmployeesFromTemporaryTable(context.Background(), &ImportRequest{
		Base:        f.base(f.hr),
		ImportJobID: job.ID,
	})
	require.NoError(t, err)
	require.Equal(t, importjob.StatusImported, done.Status)
	require.NotNil(t, done.ImportStartedAt)
	require.NotNil(t, done.ImportEndedAt)

	list, err := f.repo.List(withCompany(), &employee.FindParams{})
	require.NoError(t, err)
	require.Len(t, list, 6)

	company := f.capture.Stream(audit.StreamCompany)
	require.Len(t, company, 3)
	require.Equal(t, audit.EmployeeImportCompleted{ImportJobID: job.ID, NumberOfEmployees: 2}, company[2].Payload)
}

func TestImport_NormalUserFailsJob(t *testing.T) {
	f := newFixture(t)
	svc := newImportService(f)
	job := stage(t, f, importjob.Row{FirstName: "Jim", LastName: "Halpert", Email: "jim@acme.test"})

	_, err := svc.ImportEmployeesFromTemporaryTable(context.Background(), &ImportRequest{
		Base:        f.base(f.user),
		ImportJobID: job.ID,
	})
	require.Equal(t, serrors.KindPipelineFailure, serrors.KindOf(err))
	require.True(t, serrors.HasKind(err, serrors.KindForbidden))

	stored, err := f.jobs.GetByID(withCompany(), job.ID)
	require.NoError(t, err)
	require.Equal(t, importjob.StatusFailed, stored.Status)
	require.Empty(t, f.capture.Entries())
}

func TestImport_DuplicateRowFailsJob(t *testing.T) {
	f := newFixture(t)
	svc := newImportService(f)
	job := stage(t, f,
		importjob.Row{FirstName: "Jim", LastName: "Halpert", Email: "jim@acme.test"},
		importjob.Row{FirstName: "Uma", LastName: "Dup", Email: "uma@acme.test"},
	)

	_, err := svc.ImportEmployeesFromTemporaryTable(context.Background(), &ImportRequest{
		Base:        f.base(f.hr),
		ImportJobID: job.ID,
	})
	require.ErrorIs(t, err, serrors.ErrPipelineFailure)
	require.True(t, serrors.HasKind(err, serrors.KindAlreadyExists))

	stored, err := f.jobs.GetByID(withCompany(), job.ID)
	require.NoError(t, err)
	require.Equal(t, importjob.StatusFailed, stored.Status)
}

func TestImport_FinishedJobIsSticky(t *testing.T) {
	f := newFixture(t)
	svc := newImportService(f)
	job := stage(t, f)

	req := &ImportRequest{Base: f.base(f.hr), ImportJobID: job.ID}
	_, err := svc.ImportEmployeesFromTemporaryTable(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.ImportEmployeesFromTemporaryTable(context.Background(), req)
	require.ErrorIs(t, err, importjob.ErrNotPending)

	stored, err := f.jobs.GetByID(withCompany(), job.ID)
	require.NoError(t, err)
	require.Equal(t, importjob.StatusImported, stored.Status)
}

// racingJobs lets another run start the job between the read and the write.
type racingJobs struct {
	*persistence.InMemoryImportJobRepository
}

func (r racingJobs) GetByID(ctx context.Context, id uint) (importjob.ImportJob, error) {
	stale, err := r.InMemoryImportJobRepository.GetByID(ctx, id)
	if err != nil {
		return stale, err
	}
	started, err := stale.Start(time.Now())
	if err != nil {
		return stale, err
	}
	if err := r.InMemoryImportJobRepository.UpdateStatus(ctx, stale.Status, started); err != nil {
		return stale, err
	}
	return stale, nil
}

func TestImport_ConcurrentStartLoses(t *testing.T) {
	f := newFixture(t)
	job := stage(t, f, importjob.Row{FirstName: "Jim", LastName: "Halpert", Email: "jim@acme.test"})
	svc := NewImportService(f.exec, racingJobs{f.jobs}, NewEmployeeService(f.exec, f.repo), nil)

	_, err := svc.ImportEmployeesFromTemporaryTable(context.Background(), &ImportRequest{Base: f.base(f.hr), ImportJobID: job.ID})
	require.ErrorIs(t, err, importjob.ErrNotPending)

	stored, err := f.jobs.GetByID(withCompany(), job.ID)
	require.NoError(t, err)
	require.Equal(t, importjob.StatusImporting, stored.Status)

	list, err := f.repo.List(withCompany(), &employee.FindParams{})
	require.NoError(t, err)
	require.Len(t, list, 4)
}

func TestImport_CancelledContextStillPersistsFailure(t *testing.T) {
	f := newFixture(t)
	svc := newImportService(f)
	job := stage(t, f, importjob.Row{FirstName: "Uma", LastName: "Dup", Email: "uma@acme.test"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.ImportEmployeesFromTemporaryTable(ctx, &ImportRequest{Base: f.base(f.hr), ImportJobID: job.ID})
	require.ErrorIs(t, err, serrors.ErrPipelineFailure)

	stored, err := f.jobs.GetByID(withCompany(), job.ID)
	require.NoError(t, err)
	require.Equal(t, importjob.StatusFailed, stored.Status)
}

func TestImport_OtherCompanyJobNotFound(t *testing.T) {
	f := newFixture(t)
	svc := newImportService(f)
	foreign, err := f.jobs.Create(
		composables.WithCompanyID(context.Background(), globex),
		importjob.New(globex, f.outsider.ID(), f.outsider.Name(), f.clock.Now()),
		nil,
	)
	require.NoError(t, err)

	_, err = svc.ImportEmployeesFromTemporaryTable(context.Background(), &ImportRequest{
		Base:        f.base(f.admin),
		ImportJobID: foreign.ID,
	})
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestStage_CreatesPendingJob(t *testing.T) {
	f := newFixture(t)
	svc := newImportService(f)

	job, err := svc.Stage(context.Background(), &StageRequest{
		Base: f.base(f.hr),
		Rows: []importjob.Row{{FirstName: "Jim", LastName: "Halpert", Email: "jim@acme.test"}},
	})
	require.NoError(t, err)
	require.Equal(t, importjob.StatusPending, job.Status)
	require.Equal(t, f.hr.ID(), job.AuthorID)

	rows, err := f.jobs.Rows(withCompany(), job.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
