package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	hrmpersistence "github.com/iota-uz/officelife/modules/hrm/infrastructure/persistence"
	hrmservices "github.com/iota-uz/officelife/modules/hrm/services"
	"github.com/iota-uz/officelife/modules/logging/infrastructure/persistence"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/execution"
	"github.com/iota-uz/officelife/pkg/serrors"
)

var (
	acme   = uuid.MustParse("6f1e2c3d-4b5a-4c7d-8e9f-0a1b2c3d4e5f")
	globex = uuid.MustParse("a0b1c2d3-e4f5-4a6b-9c8d-7e6f5a4b3c2d")
)

type fixture struct {
	svc                                 *LogsService
	logs                                *persistence.InMemoryAuditLogRepository
	admin, hr, manager, report, peer, x employee.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	people := hrmpersistence.NewInMemoryEmployeeRepository()
	f := &fixture{logs: persistence.NewInMemoryAuditLogRepository()}
	f.admin = people.Seed(employee.New(acme, "Ada", "Admin", "ada@acme.test", authz.RoleAdministrator))
	f.hr = people.Seed(employee.New(acme, "Hal", "Resources", "hal@acme.test", authz.RoleHR))
	f.manager = people.Seed(employee.New(acme, "Mia", "Manager", "mia@acme.test", authz.RoleUser))
	f.report = people.Seed(employee.New(acme, "Rob", "Report", "rob@acme.test", authz.RoleUser))
	f.peer = people.Seed(employee.New(acme, "Pete", "Peer", "pete@acme.test", authz.RoleUser))
	f.x = people.Seed(employee.New(globex, "Xan", "Outside", "xan@globex.test", authz.RoleAdministrator))
	people.AddDirectReport(f.manager.ID(), f.report.ID())

	authzSvc, err := authz.NewService(authz.Config{})
	require.NoError(t, err)
	actors := hrmservices.NewActors(people)
	exec := execution.NewExecutor(execution.Deps{
		Authz:     authzSvc,
		Actors:    actors,
		Relations: actors,
		Tx:        execution.NoTx{},
		Clock:     clockwork.NewFakeClock(),
	})
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	f.svc = NewLogsService(exec, f.logs, people, paris)

	base := time.Date(2018, 1, 2, 14, 4, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		f.append(t, audit.StreamCompany, 0, base.Add(time.Duration(i)*time.Hour))
	}
	f.append(t, audit.StreamEmployee, f.report.ID(), base)
	f.append(t, audit.StreamEmployee, f.peer.ID(), base)
	return f
}

func (f *fixture) append(t *testing.T, stream audit.Stream, employeeID uint, at time.Time) {
	t.Helper()
	require.NoError(t, f.logs.Append(context.Background(), audit.Record{
		ID:         uuid.New(),
		Stream:     stream,
		CompanyID:  acme,
		EmployeeID: employeeID,
		Action:     audit.ActionTwitterReset,
		AuthorID:   f.admin.ID(),
		AuthorName: f.admin.Name(),
		AuditedAt:  at,
		Objects:    json.RawMessage(`{}`),
	}))
}

func base(e employee.Employee) execution.Base {
	return execution.Base{CompanyID: acme, AuthorID: e.ID()}
}

func TestListCompanyLogs_AdministratorOnly(t *testing.T) {
	f := newFixture(t)

	page, err := f.svc.ListCompanyLogs(context.Background(), &ListCompanyLogsRequest{
		Base:       base(f.admin),
		Pagination: Pagination{PerPage: 2},
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), page.Total)
	require.Len(t, page.Logs, 2)
	require.Equal(t, "Jan 02, 2018 5:04 PM", page.Logs[0].LocalizedAuditedAt)
	require.Equal(t, "Ada Admin", page.Logs[0].Author.Name)

	_, err = f.svc.ListCompanyLogs(context.Background(), &ListCompanyLogsRequest{Base: base(f.hr)})
	require.ErrorIs(t, err, serrors.ErrForbidden)
}

func TestListCompanyLogs_SecondPage(t *testing.T) {
	f := newFixture(t)

	page, err := f.svc.ListCompanyLogs(context.Background(), &ListCompanyLogsRequest{
		Base:       base(f.admin),
		Pagination: Pagination{Page: 2, PerPage: 2},
	})
	require.NoError(t, err)
	require.Len(t, page.Logs, 1)
	require.Equal(t, "Jan 02, 2018 3:04 PM", page.Logs[0].LocalizedAuditedAt)
}

func TestListEmployeeLogs_Access(t *testing.T) {
	f := newFixture(t)
	list := func(author employee.Employee) error {
		_, err := f.svc.ListEmployeeLogs(context.Background(), &ListEmployeeLogsRequest{
			Base:       base(author),
			EmployeeID: f.report.ID(),
		})
		return err
	}

	require.NoError(t, list(f.hr))
	require.NoError(t, list(f.report))
	require.NoError(t, list(f.manager))
	require.ErrorIs(t, list(f.peer), serrors.ErrForbidden)
	require.ErrorIs(t, list(f.x), serrors.ErrForbidden)
}

func TestListEmployeeLogs_OnlyThatEmployee(t *testing.T) {
	f := newFixture(t)

	page, err := f.svc.ListEmployeeLogs(context.Background(), &ListEmployeeLogsRequest{
		Base:       base(f.report),
		EmployeeID: f.report.ID(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	require.Equal(t, 15, page.PerPage)
}

func TestListEmployeeLogs_CrossCompanyEmployeeNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListEmployeeLogs(context.Background(), &ListEmployeeLogsRequest{
		Base:       base(f.admin),
		EmployeeID: f.x.ID(),
	})
	require.ErrorIs(t, err, serrors.ErrNotFound)
}
