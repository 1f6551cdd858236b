package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	hrmpersistence "github.com/iota-uz/officelife/modules/hrm/infrastructure/persistence"
	hrmservices "github.com/iota-uz/officelife/modules/hrm/services"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/execution"
)

const sales uint = 1

var (
	acme   = uuid.MustParse("6f1e2c3d-4b5a-4c7d-8e9f-0a1b2c3d4e5f")
	globex = uuid.MustParse("a0b1c2d3-e4f5-4a6b-9c8d-7e6f5a4b3c2d")
)

type fixture struct {
	employees *hrmpersistence.InMemoryEmployeeRepository
	clock     *clockwork.FakeClock
	exec      *execution.Executor
	viewer    employee.Employee
	outsider  employee.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		employees: hrmpersistence.NewInMemoryEmployeeRepository(),
		clock:     clockwork.NewFakeClockAt(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	f.viewer = f.employees.Seed(employee.New(acme, "Michael", "Scott", "michael@acme.test", authz.RoleUser))
	f.outsider = f.employees.Seed(employee.New(globex, "Olga", "Outside", "olga@globex.test", authz.RoleAdministrator))

	svc, err := authz.NewService(authz.Config{})
	require.NoError(t, err)
	actors := hrmservices.NewActors(f.employees)
	f.exec = execution.NewExecutor(execution.Deps{
		Authz:     svc,
		Actors:    actors,
		Relations: actors,
		Tx:        execution.NoTx{},
		Clock:     f.clock,
	})
	return f
}

// member seeds an acme employee on the sales team.
func (f *fixture) member(first, email string, opts ...employee.Option) employee.Employee {
	e := f.employees.Seed(employee.New(acme, first, "Doe", email, authz.RoleUser, opts...))
	f.employees.AddToTeam(sales, e.ID())
	return e
}

func (f *fixture) team() *TeamRequest {
	return &TeamRequest{Base: execution.Base{CompanyID: acme, AuthorID: f.viewer.ID()}, TeamID: sales}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
