package models

import (
	"encoding/json"
	"time"
)

type CompanyLog struct {
	ID         string
	CompanyID  string
	Action     string
	AuthorID   uint
	AuthorName string
	Objects    json.RawMessage
	AuditedAt  time.Time
}

type EmployeeLog struct {
	CompanyLog
	EmployeeID uint
}
