package company

import (
	"github.com/iota-uz/officelife/modules/company/domain/aggregates/group"
	"github.com/iota-uz/officelife/modules/company/domain/aggregates/project"
	"github.com/iota-uz/officelife/modules/company/domain/aggregates/ptopolicy"
	"github.com/iota-uz/officelife/modules/company/domain/aggregates/timesheet"
	"github.com/iota-uz/officelife/modules/company/domain/entities/news"
	"github.com/iota-uz/officelife/modules/company/infrastructure/persistence"
	"github.com/iota-uz/officelife/modules/company/services"
	"github.com/iota-uz/officelife/pkg/execution"
)

type Repositories struct {
	Policies   ptopolicy.Repository
	Timesheets timesheet.Repository
	Projects   project.Repository
	News       news.Repository
	Groups     group.Repository
}

// Module owns company-wide records: PTO policies, timesheets, projects,
// news and group meetings.
type Module struct {
	Repositories

	PTOPolicyService *services.PTOPolicyService
	TimesheetService *services.TimesheetService
	ProjectService   *services.ProjectService
	NewsService      *services.NewsService
	GroupService     *services.GroupService
	CalendarExporter *services.CalendarExporter
}

func NewModule(repos Repositories) *Module {
	return &Module{Repositories: repos}
}

func NewPostgresModule() *Module {
	return NewModule(Repositories{
		Policies:   persistence.NewPTOPolicyRepository(),
		Timesheets: persistence.NewTimesheetRepository(),
		Projects:   persistence.NewProjectRepository(),
		News:       persistence.NewNewsRepository(),
		Groups:     persistence.NewGroupRepository(),
	})
}

func NewInMemoryModule() *Module {
	return NewModule(Repositories{
		Policies:   persistence.NewInMemoryPTOPolicyRepository(),
		Timesheets: persistence.NewInMemoryTimesheetRepository(),
		Projects:   persistence.NewInMemoryProjectRepository(),
		News:       persistence.NewInMemoryNewsRepository(),
		Groups:     persistence.NewInMemoryGroupRepository(),
	})
}

// Register builds the services. employees resolves employee references
// inside the company.
func (m *Module) Register(exec *execution.Executor, employees services.EmployeeReader) {
	m.PTOPolicyService = services.NewPTOPolicyService(exec, m.Policies)
	m.TimesheetService = services.NewTimesheetService(exec, m.Timesheets, employees)
	m.ProjectService = services.NewProjectService(exec, m.Projects, employees)
	m.NewsService = services.NewNewsService(exec, m.News)
	m.GroupService = services.NewGroupService(exec, m.Groups, employees)
	m.CalendarExporter = services.NewCalendarExporter()
}

func (m *Module) Name() string {
	return "company"
}
