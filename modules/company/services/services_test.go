package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	hrmpersistence "github.com/iota-uz/officelife/modules/hrm/infrastructure/persistence"
	hrmservices "github.com/iota-uz/officelife/modules/hrm/services"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/execution"
)

var (
	acme   = uuid.MustParse("6f1e2c3d-4b5a-4c7d-8e9f-0a1b2c3d4e5f")
	globex = uuid.MustParse("a0b1c2d3-e4f5-4a6b-9c8d-7e6f5a4b3c2d")
)

type fixture struct {
	employees *hrmpersistence.InMemoryEmployeeRepository
	capture   *audit.Capture
	clock     *clockwork.FakeClock
	exec      *execution.Executor

	admin, hr, manager, report, peer, stranger employee.Employee
}

// newFixture seeds acme with one employee per role and a manager with a
// single direct report, plus a globex employee.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		employees: hrmpersistence.NewInMemoryEmployeeRepository(),
		capture:   &audit.Capture{},
		clock:     clockwork.NewFakeClockAt(time.Date(2018, 1, 3, 14, 30, 0, 0, time.UTC)),
	}
	f.admin = f.employees.Seed(employee.New(acme, "Ada", "Admin", "ada@acme.test", authz.RoleAdministrator))
	f.hr = f.employees.Seed(employee.New(acme, "Hal", "Resources", "hal@acme.test", authz.RoleHR))
	f.manager = f.employees.Seed(employee.New(acme, "Mia", "Manager", "mia@acme.test", authz.RoleUser))
	f.report = f.employees.Seed(employee.New(acme, "Rob", "Report", "rob@acme.test", authz.RoleUser))
	f.peer = f.employees.Seed(employee.New(acme, "Pete", "Peer", "pete@acme.test", authz.RoleUser))
	f.stranger = f.employees.Seed(employee.New(globex, "Olga", "Outside", "olga@globex.test", authz.RoleUser))
	f.employees.AddDirectReport(f.manager.ID(), f.report.ID())

	svc, err := authz.NewService(authz.Config{})
	require.NoError(t, err)
	actors := hrmservices.NewActors(f.employees)
	f.exec = execution.NewExecutor(execution.Deps{
		Authz:     svc,
		Actors:    actors,
		Relations: actors,
		Tx:        execution.NoTx{},
		Audit:     f.capture,
		Clock:     f.clock,
	})
	return f
}

func (f *fixture) base(author employee.Employee) execution.Base {
	return execution.Base{CompanyID: acme, AuthorID: author.ID()}
}

func acmeCtx() context.Context {
	return composables.WithCompanyID(context.Background(), acme)
}

func globexCtx() context.Context {
	return composables.WithCompanyID(context.Background(), globex)
}

func intp(v int) *int { return &v }

func uintp(v uint) *uint { return &v }

func strp(v string) *string { return &v }
