package persistence

import (
	"github.com/google/uuid"

	"github.com/iota-uz/officelife/modules/logging/domain/entities/auditlog"
	"github.com/iota-uz/officelife/modules/logging/infrastructure/persistence/models"
	"github.com/iota-uz/officelife/pkg/audit"
)

func toDomainCompanyLog(row *models.CompanyLog) auditlog.AuditLog {
	id, _ := uuid.Parse(row.ID)
	companyID, _ := uuid.Parse(row.CompanyID)
	return auditlog.AuditLog{
		ID:         id,
		Stream:     audit.StreamCompany,
		CompanyID:  companyID,
		Action:     row.Action,
		AuthorID:   row.AuthorID,
		AuthorName: row.AuthorName,
		Objects:    row.Objects,
		AuditedAt:  row.AuditedAt,
	}
}

func toDomainEmployeeLog(row *models.EmployeeLog) auditlog.AuditLog {
	log := toDomainCompanyLog(&row.CompanyLog)
	log.Stream = audit.StreamEmployee
	log.EmployeeID = row.EmployeeID
	return log
}
