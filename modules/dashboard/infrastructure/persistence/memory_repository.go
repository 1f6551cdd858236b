package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iota-uz/officelife/modules/dashboard/domain/entities/morale"
	"github.com/iota-uz/officelife/modules/dashboard/domain/entities/worklog"
	"github.com/iota-uz/officelife/pkg/composables"
)

type InMemoryMoraleRepository struct {
	mu      sync.RWMutex
	history []morale.TeamHistory
	entries []morale.Morale
}

func NewInMemoryMoraleRepository() *InMemoryMoraleRepository {
	return &InMemoryMoraleRepository{}
}

func (r *InMemoryMoraleRepository) AddTeamHistory(h morale.TeamHistory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, h)
}

func (r *InMemoryMoraleRepository) AddMorale(m morale.Morale) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, m)
}

func (r *InMemoryMoraleRepository) ListTeamHistory(ctx context.Context, teamID uint, since time.Time) ([]morale.TeamHistory, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []morale.TeamHistory
	for _, h := range r.history {
		if h.CompanyID == companyID && h.TeamID == teamID && !h.CreatedAt.Before(since) {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryMoraleRepository) ListForEmployee(ctx context.Context, employeeID uint, from, to time.Time) ([]morale.Morale, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []morale.Morale
	for _, m := range r.entries {
		if m.CompanyID != companyID || m.EmployeeID != employeeID {
			continue
		}
		if m.CreatedAt.Before(from) || !m.CreatedAt.Before(to) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type InMemoryWorklogRepository struct {
	mu   sync.RWMutex
	logs []worklog.Worklog
}

func NewInMemoryWorklogRepository() *InMemoryWorklogRepository {
	return &InMemoryWorklogRepository{}
}

func (r *InMemoryWorklogRepository) Add(w worklog.Worklog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = uint(len(r.logs) + 1)
	r.logs = append(r.logs, w)
}

func (r *InMemoryWorklogRepository) ListForEmployee(ctx context.Context, employeeID uint) ([]worklog.Worklog, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []worklog.Worklog
	for _, w := range r.logs {
		if w.CompanyID == companyID && w.EmployeeID == employeeID {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
