package logging

import (
	"time"

	"github.com/iota-uz/officelife/modules/logging/domain/entities/auditlog"
	"github.com/iota-uz/officelife/modules/logging/infrastructure/persistence"
	"github.com/iota-uz/officelife/modules/logging/services"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/execution"
	"github.com/iota-uz/officelife/pkg/taskqueue"
)

// Module persists both audit trails and serves the log views.
type Module struct {
	Logs        auditlog.Repository
	LogsService *services.LogsService
}

func NewModule(logs auditlog.Repository) *Module {
	return &Module{Logs: logs}
}

func NewPostgresModule() *Module {
	return NewModule(persistence.NewAuditLogRepository())
}

func (m *Module) Register(exec *execution.Executor, employees services.EmployeeReader, loc *time.Location) {
	m.LogsService = services.NewLogsService(exec, m.Logs, employees, loc)
}

// Consume attaches the trail writer to both audit topics of w.
func (m *Module) Consume(w *taskqueue.Worker) {
	audit.Register(w, m.Logs)
}

func (m *Module) Name() string {
	return "logging"
}
