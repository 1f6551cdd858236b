package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/iota-uz/officelife/modules/logging/domain/entities/auditlog"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/composables"
)

type InMemoryAuditLogRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]auditlog.AuditLog
}

func NewInMemoryAuditLogRepository() *InMemoryAuditLogRepository {
	return &InMemoryAuditLogRepository{byID: map[uuid.UUID]auditlog.AuditLog{}}
}

func (r *InMemoryAuditLogRepository) Append(_ context.Context, rec audit.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rec.ID]; !ok {
		r.byID[rec.ID] = auditlog.FromRecord(rec)
	}
	return nil
}

func (r *InMemoryAuditLogRepository) matching(ctx context.Context, params *auditlog.FindParams) ([]auditlog.AuditLog, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	if params == nil {
		params = &auditlog.FindParams{Stream: audit.StreamCompany}
	}
	stream := params.Stream
	if stream == "" {
		stream = audit.StreamCompany
	}
	if stream == audit.StreamEmployee && params.EmployeeID == 0 {
		return nil, ErrEmployeeRequired
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []auditlog.AuditLog
	for _, l := range r.byID {
		if l.CompanyID != companyID || l.Stream != stream {
			continue
		}
		if stream == audit.StreamEmployee && l.EmployeeID != params.EmployeeID {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AuditedAt.Equal(out[j].AuditedAt) {
			return out[i].AuditedAt.After(out[j].AuditedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

func (r *InMemoryAuditLogRepository) List(ctx context.Context, params *auditlog.FindParams) ([]auditlog.AuditLog, error) {
	out, err := r.matching(ctx, params)
	if err != nil || params == nil {
		return out, err
	}
	if params.Offset > 0 {
		if params.Offset >= len(out) {
			return nil, nil
		}
		out = out[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(out) {
		out = out[:params.Limit]
	}
	return out, nil
}

func (r *InMemoryAuditLogRepository) Count(ctx context.Context, params *auditlog.FindParams) (int64, error) {
	out, err := r.matching(ctx, params)
	return int64(len(out)), err
}
