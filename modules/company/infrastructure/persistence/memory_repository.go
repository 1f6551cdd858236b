package persistence

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/group"
	"github.com/iota-uz/officelife/modules/company/domain/aggregates/project"
	"github.com/iota-uz/officelife/modules/company/domain/aggregates/ptopolicy"
	"github.com/iota-uz/officelife/modules/company/domain/aggregates/timesheet"
	"github.com/iota-uz/officelife/modules/company/domain/entities/news"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/serrors"
)

type InMemoryPTOPolicyRepository struct {
	mu       sync.RWMutex
	nextID   uint
	policies map[uint]ptopolicy.Policy
}

func NewInMemoryPTOPolicyRepository() *InMemoryPTOPolicyRepository {
	return &InMemoryPTOPolicyRepository{policies: map[uint]ptopolicy.Policy{}}
}

func (r *InMemoryPTOPolicyRepository) ExistsForYear(ctx context.Context, year int) (bool, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.policies {
		if p.CompanyID == companyID && p.Year == year {
			return true, nil
		}
	}
	return false, nil
}

// Create checks the year under the lock, mirroring the unique index.
func (r *InMemoryPTOPolicyRepository) Create(ctx context.Context, p ptopolicy.Policy) (ptopolicy.Policy, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return ptopolicy.Policy{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.policies {
		if existing.CompanyID == companyID && existing.Year == p.Year {
			return ptopolicy.Policy{}, serrors.AlreadyExists("company pto policy", fmt.Sprint(p.Year))
		}
	}
	r.nextID++
	p.ID = r.nextID
	p.CompanyID = companyID
	days := make([]ptopolicy.Day, len(p.Days))
	for i, d := range p.Days {
		d.ID = uint(i + 1)
		days[i] = d
	}
	p.Days = days
	r.policies[p.ID] = p
	return p, nil
}

func (r *InMemoryPTOPolicyRepository) GetByID(ctx context.Context, id uint) (ptopolicy.Policy, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return ptopolicy.Policy{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.policies[id]
	if !ok || p.CompanyID != companyID {
		return ptopolicy.Policy{}, serrors.NotFound("company pto policy")
	}
	days := make([]ptopolicy.Day, len(p.Days))
	copy(days, p.Days)
	p.Days = days
	return p, nil
}

func (r *InMemoryPTOPolicyRepository) List(ctx context.Context) ([]ptopolicy.Policy, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ptopolicy.Policy
	for _, p := range r.policies {
		if p.CompanyID == companyID {
			p.Days = nil
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (r *InMemoryPTOPolicyRepository) UpdateDay(ctx context.Context, p ptopolicy.Policy, day ptopolicy.Day) error {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.policies[p.ID]
	if !ok || stored.CompanyID != companyID {
		return serrors.NotFound("company pto policy")
	}
	for i, d := range stored.Days {
		if d.Date.Equal(day.Date) {
			stored.Days[i].IsWorked = day.IsWorked
		}
	}
	stored.TotalWorkedDays = p.TotalWorkedDays
	r.policies[p.ID] = stored
	return nil
}

type InMemoryTimesheetRepository struct {
	mu     sync.RWMutex
	nextID uint
	sheets map[uint]timesheet.Timesheet
}

func NewInMemoryTimesheetRepository() *InMemoryTimesheetRepository {
	return &InMemoryTimesheetRepository{sheets: map[uint]timesheet.Timesheet{}}
}

func (r *InMemoryTimesheetRepository) GetByID(ctx context.Context, id uint) (timesheet.Timesheet, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return timesheet.Timesheet{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.sheets[id]
	if !ok || t.CompanyID != companyID {
		return timesheet.Timesheet{}, serrors.NotFound("timesheet")
	}
	return t, nil
}

func (r *InMemoryTimesheetRepository) FindForWeek(ctx context.Context, employeeID uint, start time.Time) (timesheet.Timesheet, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return timesheet.Timesheet{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.sheets {
		if t.CompanyID == companyID && t.EmployeeID == employeeID && t.StartedAt.Equal(start) {
			return t, nil
		}
	}
	return timesheet.Timesheet{}, nil
}

func (r *InMemoryTimesheetRepository) Create(ctx context.Context, t timesheet.Timesheet) (timesheet.Timesheet, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return timesheet.Timesheet{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sheets {
		if existing.EmployeeID == t.EmployeeID && existing.StartedAt.Equal(t.StartedAt) {
			return timesheet.Timesheet{}, serrors.AlreadyExists("timesheet", t.StartedAt.Format(time.DateOnly))
		}
	}
	r.nextID++
	t.ID = r.nextID
	t.CompanyID = companyID
	r.sheets[t.ID] = t
	return t, nil
}

func (r *InMemoryTimesheetRepository) Update(ctx context.Context, t timesheet.Timesheet) error {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.sheets[t.ID]
	if !ok || existing.CompanyID != companyID {
		return serrors.NotFound("timesheet")
	}
	r.sheets[t.ID] = t
	return nil
}

type Activity struct {
	ProjectID  uint
	EmployeeID uint
	At         time.Time
}

type InMemoryProjectRepository struct {
	mu         sync.RWMutex
	nextID     uint
	projects   map[uint]project.Project
	members    map[uint]map[uint]bool
	activities []Activity
}

func NewInMemoryProjectRepository() *InMemoryProjectRepository {
	return &InMemoryProjectRepository{
		projects: map[uint]project.Project{},
		members:  map[uint]map[uint]bool{},
	}
}

func (r *InMemoryProjectRepository) GetByID(ctx context.Context, id uint) (project.Project, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return project.Project{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	if !ok || p.CompanyID != companyID {
		return project.Project{}, serrors.NotFound("project")
	}
	return p, nil
}

func (r *InMemoryProjectRepository) Create(ctx context.Context, p project.Project) (project.Project, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return project.Project{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	p.CompanyID = companyID
	r.projects[p.ID] = p
	return p, nil
}

func (r *InMemoryProjectRepository) Update(ctx context.Context, p project.Project) error {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.projects[p.ID]
	if !ok || existing.CompanyID != companyID {
		return serrors.NotFound("project")
	}
	r.projects[p.ID] = p
	return nil
}

func (r *InMemoryProjectRepository) IsMember(_ context.Context, projectID, employeeID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.members[projectID][employeeID], nil
}

func (r *InMemoryProjectRepository) AddMember(_ context.Context, projectID, employeeID uint, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.members[projectID] == nil {
		r.members[projectID] = map[uint]bool{}
	}
	r.members[projectID][employeeID] = true
	return nil
}

func (r *InMemoryProjectRepository) RecordActivity(_ context.Context, projectID, employeeID uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities = append(r.activities, Activity{ProjectID: projectID, EmployeeID: employeeID, At: at})
	return nil
}

func (r *InMemoryProjectRepository) Activities() []Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Activity, len(r.activities))
	copy(out, r.activities)
	return out
}

type InMemoryNewsRepository struct {
	mu     sync.RWMutex
	nextID uint
	items  []news.News
}

func NewInMemoryNewsRepository() *InMemoryNewsRepository {
	return &InMemoryNewsRepository{}
}

func (r *InMemoryNewsRepository) Create(ctx context.Context, n news.News) (news.News, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return news.News{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	n.ID = r.nextID
	n.CompanyID = companyID
	r.items = append(r.items, n)
	return n, nil
}

func (r *InMemoryNewsRepository) List(ctx context.Context, limit, offset int) ([]news.News, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []news.News
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].CompanyID == companyID {
			out = append(out, r.items[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type InMemoryGroupRepository struct {
	mu       sync.RWMutex
	groups   map[uint]group.Group
	meetings map[uint]group.Meeting
	items    map[uint]group.AgendaItem
}

func NewInMemoryGroupRepository() *InMemoryGroupRepository {
	return &InMemoryGroupRepository{
		groups:   map[uint]group.Group{},
		meetings: map[uint]group.Meeting{},
		items:    map[uint]group.AgendaItem{},
	}
}

// Seed stores fixtures as given, IDs included.
func (r *InMemoryGroupRepository) Seed(g group.Group, meetings []group.Meeting, items []group.AgendaItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[g.ID] = g
	for _, m := range meetings {
		r.meetings[m.ID] = m
	}
	for _, a := range items {
		r.items[a.ID] = a
	}
}

func (r *InMemoryGroupRepository) GetGroup(ctx context.Context, id uint) (group.Group, error) {
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return group.Group{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.groups[id]
	if !ok || g.CompanyID != companyID {
		return group.Group{}, serrors.NotFound("group")
	}
	return g, nil
}

func (r *InMemoryGroupRepository) GetMeeting(_ context.Context, groupID, id uint) (group.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.meetings[id]
	if !ok || m.GroupID != groupID {
		return group.Meeting{}, serrors.NotFound("meeting")
	}
	return m, nil
}

func (r *InMemoryGroupRepository) GetAgendaItem(_ context.Context, meetingID, id uint) (group.AgendaItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok || a.MeetingID != meetingID {
		return group.AgendaItem{}, serrors.NotFound("agenda item")
	}
	return a, nil
}

func (r *InMemoryGroupRepository) UpdateAgendaItem(_ context.Context, item group.AgendaItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return serrors.NotFound("agenda item")
	}
	r.items[item.ID] = item
	return nil
}
