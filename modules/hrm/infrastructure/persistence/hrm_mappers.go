package persistence

import (
	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/modules/hrm/domain/entities/importjob"
	"github.com/iota-uz/officelife/modules/hrm/infrastructure/persistence/models"
	"github.com/iota-uz/officelife/pkg/authz"
)

func toDomainEmployee(m models.Employee) employee.Employee {
	opts := []employee.Option{
		employee.WithID(m.ID),
		employee.WithBirthdate(m.Birthdate),
		employee.WithHiredAt(m.HiredAt),
		employee.WithLocked(m.Locked),
		employee.WithCreatedAt(m.CreatedAt),
		employee.WithUpdatedAt(m.UpdatedAt),
	}
	if m.Twitter != nil {
		opts = append(opts, employee.WithTwitter(*m.Twitter))
	}
	if m.Position != nil {
		opts = append(opts, employee.WithPosition(*m.Position))
	}
	return employee.New(m.CompanyID, m.FirstName, m.LastName, m.Email, authz.Role(m.PermissionLevel), opts...)
}

func toDBEmployee(e employee.Employee) models.Employee {
	return models.Employee{
		ID:              e.ID(),
		CompanyID:       e.CompanyID(),
		FirstName:       e.FirstName(),
		LastName:        e.LastName(),
		Email:           e.Email(),
		PermissionLevel: int(e.Role()),
		Twitter:         nullableString(e.Twitter()),
		Position:        nullableString(e.Position()),
		Birthdate:       e.Birthdate(),
		HiredAt:         e.HiredAt(),
		Locked:          e.Locked(),
		CreatedAt:       e.CreatedAt(),
		UpdatedAt:       e.UpdatedAt(),
	}
}

func toDomainImportJob(m models.ImportJob) importjob.ImportJob {
	return importjob.ImportJob{
		ID:              m.ID,
		CompanyID:       m.CompanyID,
		AuthorID:        m.AuthorID,
		AuthorName:      m.AuthorName,
		Status:          importjob.Status(m.Status),
		ImportStartedAt: m.ImportStartedAt,
		ImportEndedAt:   m.ImportEndedAt,
		CreatedAt:       m.CreatedAt,
	}
}

func toDomainRow(m models.ImportJobReport) importjob.Row {
	return importjob.Row{
		ID:                  m.ID,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		Email:               m.Email,
		SkippedDuringUpload: m.SkippedDuringUpload,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
