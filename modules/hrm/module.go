package hrm

import (
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/modules/hrm/domain/entities/importjob"
	"github.com/iota-uz/officelife/modules/hrm/infrastructure/persistence"
	"github.com/iota-uz/officelife/modules/hrm/services"
	"github.com/iota-uz/officelife/pkg/execution"
)

// Module owns employees and the import pipeline. Its actor resolver feeds
// the shared executor, so it is built before any service.
type Module struct {
	Employees  employee.Repository
	ImportJobs importjob.Repository
	Actors     *services.Actors

	EmployeeService *services.EmployeeService
	ImportService   *services.ImportService
}

func NewModule(employees employee.Repository, jobs importjob.Repository) *Module {
	return &Module{
		Employees:  employees,
		ImportJobs: jobs,
		Actors:     services.NewActors(employees),
	}
}

// NewPostgresModule uses the pgx repositories.
func NewPostgresModule() *Module {
	return NewModule(persistence.NewEmployeeRepository(), persistence.NewImportJobRepository())
}

func (m *Module) Register(exec *execution.Executor, logger *logrus.Entry) {
	m.EmployeeService = services.NewEmployeeService(exec, m.Employees)
	m.ImportService = services.NewImportService(exec, m.ImportJobs, m.EmployeeService, logger)
}

func (m *Module) Name() string {
	return "hrm"
}
