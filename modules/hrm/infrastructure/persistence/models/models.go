package models

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID              uint
	CompanyID       uuid.UUID
	FirstName       string
	LastName        string
	Email           string
	PermissionLevel int
	Twitter         *string
	Position        *string
	Birthdate       *time.Time
	HiredAt         *time.Time
	Locked          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ImportJob struct {
	ID              uint
	CompanyID       uuid.UUID
	AuthorID        uint
	AuthorName      string
	Status          string
	ImportStartedAt *time.Time
	ImportEndedAt   *time.Time
	CreatedAt       time.Time
}

type ImportJobReport struct {
	ID                  uint
	ImportJobID         uint
	FirstName           string
	LastName            string
	Email               string
	SkippedDuringUpload bool
}
