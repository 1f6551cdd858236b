package importjob

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/officelife/pkg/serrors"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusImporting Status = "importing"
	StatusImported  Status = "imported"
	StatusFailed    Status = "failed"
)

func (s Status) Terminal() bool {
	return s == StatusImported || s == StatusFailed
}

var (
	ErrNotPending = &serrors.BaseError{
		Kind:      serrors.KindValidation,
		Code:      "IMPORT_JOB_NOT_PENDING",
		Message:   "import job was already started",
		LocaleKey: "Errors.ImportJobNotPending",
	}
	ErrNotImporting = &serrors.BaseError{
		Kind:      serrors.KindValidation,
		Code:      "IMPORT_JOB_NOT_IMPORTING",
		Message:   "import job is not importing",
		LocaleKey: "Errors.ImportJobNotImporting",
	}
	ErrFinished = &serrors.BaseError{
		Kind:      serrors.KindValidation,
		Code:      "IMPORT_JOB_FINISHED",
		Message:   "import job already finished",
		LocaleKey: "Errors.ImportJobFinished",
	}
)

// StaleError is what a transition out of from returns when another writer
// moved the job first.
func StaleError(from Status) *serrors.BaseError {
	if from == StatusPending {
		return ErrNotPending
	}
	return ErrFinished
}

// Row is one staged employee.
type Row struct {
	ID                  uint
	FirstName           string
	LastName            string
	Email               string
	SkippedDuringUpload bool
}

// ImportJob moves pending → importing → imported|failed. Terminal states
// never change again.
type ImportJob struct {
	ID              uint
	CompanyID       uuid.UUID
	AuthorID        uint
	AuthorName      string
	Status          Status
	ImportStartedAt *time.Time
	ImportEndedAt   *time.Time
	CreatedAt       time.Time
}

func New(companyID uuid.UUID, authorID uint, authorName string, at time.Time) ImportJob {
	return ImportJob{
		CompanyID:  companyID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Status:     StatusPending,
		CreatedAt:  at,
	}
}

func (j ImportJob) Start(at time.Time) (ImportJob, error) {
	if j.Status != StatusPending {
		return j, ErrNotPending
	}
	j.Status = StatusImporting
	j.ImportStartedAt = &at
	return j, nil
}

func (j ImportJob) Complete(at time.Time) (ImportJob, error) {
	if j.Status != StatusImporting {
		return j, ErrNotImporting
	}
	j.Status = StatusImported
	j.ImportEndedAt = &at
	return j, nil
}

func (j ImportJob) Fail(at time.Time) (ImportJob, error) {
	if j.Status.Terminal() {
		return j, ErrFinished
	}
	j.Status = StatusFailed
	j.ImportEndedAt = &at
	return j, nil
}

// Pending returns the rows that were not skipped during upload.
func Pending(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if !r.SkippedDuringUpload {
			out = append(out, r)
		}
	}
	return out
}

type Repository interface {
	GetByID(ctx context.Context, id uint) (ImportJob, error)
	Rows(ctx context.Context, jobID uint) ([]Row, error)
	Create(ctx context.Context, job ImportJob, rows []Row) (ImportJob, error)
	// UpdateStatus stores job only while the persisted status still equals
	// from, returning StaleError(from) otherwise.
	UpdateStatus(ctx context.Context, from Status, job ImportJob) error
}
