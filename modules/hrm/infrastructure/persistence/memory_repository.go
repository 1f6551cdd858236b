package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/officelife/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/officelife/modules/hrm/domain/entities/importjob"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/serrors"
)

// InMemoryEmployeeRepository keeps employees, team membership and direct
// reports in process. It honours the company in context like the Postgres
// repository.
type InMemoryEmployeeRepository struct {
	mu      sync.RWMutex
	nextID  uint
	byID    map[uint]employee.Employee
	teams   map[uint]map[uint]bool
	reports map[uint]map[uint]bool
}

func NewInMemoryEmployeeRepository() *InMemoryEmployeeRepository {
	return &InMemoryEmployeeRepository{
		byID:    map[uint]employee.Employee{},
		teams:   map[uint]map[uint]bool{},
		reports: map[uint]map[uint]bool{},
	}
}

func (r *InMemoryEmployeeRepository) GetByID(ctx context.Context, id uint) (employee.Employee, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	if !ok || e.CompanyID() != companyID {
		return employee.Employee{}, serrors.NotFound("employee")
	}
	return e, nil
}

func (r *InMemoryEmployeeRepository) GetActor(_ context.Context, id uint) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id], nil
}

func (r *InMemoryEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emailTaken(companyID, employee.NormalizeEmail(email)), nil
}

func (r *InMemoryEmployeeRepository) emailTaken(companyID uuid.UUID, email string) bool {
	for _, e := range r.byID {
		if e.CompanyID() == companyID && e.Email() == email {
			return true
		}
	}
	return false
}

func (r *InMemoryEmployeeRepository) List(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	if params == nil {
		params = &employee.FindParams{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []employee.Employee
	for id, e := range r.byID {
		if e.CompanyID() != companyID {
			continue
		}
		if params.TeamID != 0 && !r.teams[params.TeamID][id] {
			continue
		}
		if e.Locked() && !params.IncludeLocked {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
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

// Create enforces the per-company email uniqueness the database index does.
func (r *InMemoryEmployeeRepository) Create(ctx context.Context, data employee.Employee) (employee.Employee, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(companyID, data.Email()) {
		return employee.Employee{}, serrors.AlreadyExists("employee", data.Email())
	}
	r.nextID++
	created := data.CreatedAt()
	if created.IsZero() {
		created = time.Now()
	}
	e := employee.New(companyID, data.FirstName(), data.LastName(), data.Email(), data.Role(),
		employee.WithID(r.nextID),
		employee.WithTwitter(data.Twitter()),
		employee.WithPosition(data.Position()),
		employee.WithBirthdate(data.Birthdate()),
		employee.WithHiredAt(data.HiredAt()),
		employee.WithLocked(data.Locked()),
		employee.WithCreatedAt(created),
		employee.WithUpdatedAt(created),
	)
	r.byID[e.ID()] = e
	return e, nil
}

func (r *InMemoryEmployeeRepository) Update(ctx context.Context, data employee.Employee) error {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[data.ID()]
	if !ok || existing.CompanyID() != companyID {
		return serrors.NotFound("employee")
	}
	r.byID[data.ID()] = data
	return nil
}

func (r *InMemoryEmployeeRepository) IsDirectManager(_ context.Context, companyID uuid.UUID, managerID, reportID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[managerID]
	if !ok || m.CompanyID() != companyID {
		return false, nil
	}
	return r.reports[managerID][reportID], nil
}

// AddDirectReport records a single manager → report edge.
func (r *InMemoryEmployeeRepository) AddDirectReport(managerID, reportID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reports[managerID] == nil {
		r.reports[managerID] = map[uint]bool{}
	}
	r.reports[managerID][reportID] = true
}

func (r *InMemoryEmployeeRepository) AddToTeam(teamID, employeeID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.teams[teamID] == nil {
		r.teams[teamID] = map[uint]bool{}
	}
	r.teams[teamID][employeeID] = true
}

// Seed stores e under its own company, assigning an ID when it has none.
func (r *InMemoryEmployeeRepository) Seed(e employee.Employee) employee.Employee {
	ctx := composables.WithCompanyID(context.Background(), e.CompanyID())
	created, err := r.Create(ctx, e)
	if err != nil {
		panic(err)
	}
	return created
}

type InMemoryImportJobRepository struct {
	mu     sync.RWMutex
	nextID uint
	jobs   map[uint]importjob.ImportJob
	rows   map[uint][]importjob.Row
}

func NewInMemoryImportJobRepository() *InMemoryImportJobRepository {
	return &InMemoryImportJobRepository{
		jobs: map[uint]importjob.ImportJob{},
		rows: map[uint][]importjob.Row{},
	}
}

func (r *InMemoryImportJobRepository) GetByID(ctx context.Context, id uint) (importjob.ImportJob, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return importjob.ImportJob{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	if !ok || j.CompanyID != companyID {
		return importjob.ImportJob{}, serrors.NotFound("import job")
	}
	return j, nil
}

func (r *InMemoryImportJobRepository) Rows(_ context.Context, jobID uint) ([]importjob.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]importjob.Row, len(r.rows[jobID]))
	copy(out, r.rows[jobID])
	return out, nil
}

func (r *InMemoryImportJobRepository) Create(ctx context.Context, job importjob.ImportJob, rows []importjob.Row) (importjob.ImportJob, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return importjob.ImportJob{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	job.ID = r.nextID
	job.CompanyID = companyID
	r.jobs[job.ID] = job
	staged := make([]importjob.Row, len(rows))
	for i, row := range rows {
		row.ID = uint(i + 1)
		staged[i] = row
	}
	r.rows[job.ID] = staged
	return job, nil
}

func (r *InMemoryImportJobRepository) UpdateStatus(ctx context.Context, from importjob.Status, job importjob.ImportJob) error {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[job.ID]
	if !ok || existing.CompanyID != companyID {
		return serrors.NotFound("import job")
	}
	if existing.Status != from {
		return importjob.StaleError(from)
	}
	r.jobs[job.ID] = job
	return nil
}
