package mappers

import (
	"time"

	"github.com/iota-uz/officelife/modules/logging/domain/entities/auditlog"
	"github.com/iota-uz/officelife/modules/logging/presentation/viewmodels"
	"github.com/iota-uz/officelife/pkg/calendar"
)

// AuditLogToViewModel renders audited_at in loc.
func AuditLogToViewModel(log auditlog.AuditLog, loc *time.Location) viewmodels.Log {
	if loc == nil {
		loc = time.UTC
	}
	return viewmodels.Log{
		ID:                 log.ID.String(),
		Action:             log.Action,
		Objects:            log.Objects,
		Author:             viewmodels.Author{ID: log.AuthorID, Name: log.AuthorName},
		LocalizedAuditedAt: log.AuditedAt.In(loc).Format(calendar.LogTimestamp),
	}
}

func AuditLogsToViewModels(logs []auditlog.AuditLog, loc *time.Location) []viewmodels.Log {
	out := make([]viewmodels.Log, 0, len(logs))
	for _, l := range logs {
		out = append(out, AuditLogToViewModel(l, loc))
	}
	return out
}
