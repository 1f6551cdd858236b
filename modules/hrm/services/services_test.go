package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/modules/hrm/infrastructure/persistence"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/execution"
)

var (
	acme   = uuid.MustParse("6f1e2c3d-4b5a-4c7d-8e9f-0a1b2c3d4e5f")
	globex = uuid.MustParse("a0b1c2d3-e4f5-4a6b-9c8d-7e6f5a4b3c2d")
)

type fixture struct {
	repo    *persistence.InMemoryEmployeeRepository
	jobs    *persistence.InMemoryImportJobRepository
	capture *audit.Capture
	clock   *clockwork.FakeClock
	exec    *execution.Executor

	admin, hr, user, peer, outsider employee.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:    persistence.NewInMemoryEmployeeRepository(),
		jobs:    persistence.NewInMemoryImportJobRepository(),
		capture: &audit.Capture{},
		clock:   clockwork.NewFakeClockAt(time.Date(2018, 1, 1, 9, 0, 0, 0, time.UTC)),
	}
	f.admin = f.repo.Seed(employee.New(acme, "Ada", "Admin", "ada@acme.test", authz.RoleAdministrator))
	f.hr = f.repo.Seed(employee.New(acme, "Hal", "Resources", "hal@acme.test", authz.RoleHR))
	f.user = f.repo.Seed(employee.New(acme, "Uma", "User", "uma@acme.test", authz.RoleUser))
	f.peer = f.repo.Seed(employee.New(acme, "Pete", "Peer", "pete@acme.test", authz.RoleUser))
	f.outsider = f.repo.Seed(employee.New(globex, "Olga", "Outside", "olga@globex.test", authz.RoleAdministrator))

	svc, err := authz.NewService(authz.Config{})
	require.NoError(t, err)
	actors := NewActors(f.repo)
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

func TestActors_UnknownEmployeeIsZero(t *testing.T) {
	f := newFixture(t)
	actors := NewActors(f.repo)

	actor, err := actors.ResolveActor(context.Background(), 999)
	require.NoError(t, err)
	require.Zero(t, actor)

	actor, err = actors.ResolveActor(context.Background(), f.outsider.ID())
	require.NoError(t, err)
	require.Equal(t, globex, actor.CompanyID)
}
