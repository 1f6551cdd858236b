package dashboard

import (
	"time"

	"github.com/iota-uz/officelife/modules/dashboard/domain/entities/morale"
	"github.com/iota-uz/officelife/modules/dashboard/domain/entities/worklog"
	"github.com/iota-uz/officelife/modules/dashboard/infrastructure/persistence"
	"github.com/iota-uz/officelife/modules/dashboard/services"
	"github.com/iota-uz/officelife/pkg/execution"
)

// Module serves the read-only team and employee widgets.
type Module struct {
	Morale   morale.Repository
	Worklogs worklog.Repository

	PeopleService  *services.PeopleService
	MoraleService  *services.MoraleService
	WorklogService *services.WorklogService
}

func NewModule(morales morale.Repository, worklogs worklog.Repository) *Module {
	return &Module{Morale: morales, Worklogs: worklogs}
}

func NewPostgresModule() *Module {
	return NewModule(persistence.NewMoraleRepository(), persistence.NewWorklogRepository())
}

func NewInMemoryModule() *Module {
	return NewModule(persistence.NewInMemoryMoraleRepository(), persistence.NewInMemoryWorklogRepository())
}

// Register builds the services. loc decides what "today" means.
func (m *Module) Register(exec *execution.Executor, employees services.EmployeeLister, loc *time.Location) {
	m.PeopleService = services.NewPeopleService(exec, employees, loc)
	m.MoraleService = services.NewMoraleService(exec, m.Morale, employees, loc)
	m.WorklogService = services.NewWorklogService(exec, m.Worklogs, employees)
}

func (m *Module) Name() string {
	return "dashboard"
}
