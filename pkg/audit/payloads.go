package audit

const (
	ActionPTOPolicyCreated        = "company_pto_policy_created"
	ActionPTOPolicyDayToggled     = "company_pto_policy_day_toggled"
	ActionTimesheetCreated        = "timesheet_created"
	ActionTimesheetApproved       = "timesheet_approved"
	ActionTimesheetRejected       = "timesheet_rejected"
	ActionEmployeeAdded           = "employee_added_to_company"
	ActionEmployeeCreated         = "employee_created"
	ActionEmployeeTwitterSet      = "employee_twitter_set"
	ActionEmployeeTwitterReset    = "employee_twitter_reset"
	ActionTwitterSet              = "twitter_set"
	ActionTwitterReset            = "twitter_reset"
	ActionEmployeeImportCompleted = "employee_import_completed"
	ActionProjectClosed           = "project_closed"
	ActionProjectLeadUpdated      = "project_team_lead_updated"
	ActionCompanyNewsCreated      = "company_news_created"
	ActionAgendaItemUpdated       = "agenda_item_updated"
)

// Payload is the typed objects body of one action. The set of
// implementations is closed.
type Payload interface {
	Action() string
	payload()
}

type PTOPolicyCreated struct {
	PolicyID uint `json:"company_pto_policy_id"`
	Year     int  `json:"company_pto_policy_year"`
}

func (PTOPolicyCreated) Action() string { return ActionPTOPolicyCreated }
func (PTOPolicyCreated) payload()       {}

type PTOPolicyDayToggled struct {
	PolicyID uint   `json:"company_pto_policy_id"`
	Day      string `json:"day"`
}

func (PTOPolicyDayToggled) Action() string { return ActionPTOPolicyDayToggled }
func (PTOPolicyDayToggled) payload()       {}

// TimesheetEvent covers created, approved and rejected. EmployeeID is only
// set on the company stream.
type TimesheetEvent struct {
	Tag         string `json:"-"`
	EmployeeID  uint   `json:"employee_id,omitempty"`
	TimesheetID uint   `json:"timesheet_id"`
	StartedAt   string `json:"started_at"`
	EndedAt     string `json:"ended_at"`
}

func (t TimesheetEvent) Action() string { return t.Tag }
func (TimesheetEvent) payload()         {}

type EmployeeAdded struct {
	EmployeeID uint   `json:"employee_id"`
	FirstName  string `json:"employee_first_name"`
	LastName   string `json:"employee_last_name"`
}

func (EmployeeAdded) Action() string { return ActionEmployeeAdded }
func (EmployeeAdded) payload()       {}

type EmployeeCreated struct{}

func (EmployeeCreated) Action() string { return ActionEmployeeCreated }
func (EmployeeCreated) payload()       {}

type EmployeeTwitterSet struct {
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Twitter      string `json:"twitter"`
}

func (EmployeeTwitterSet) Action() string { return ActionEmployeeTwitterSet }
func (EmployeeTwitterSet) payload()       {}

type EmployeeTwitterReset struct {
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}

func (EmployeeTwitterReset) Action() string { return ActionEmployeeTwitterReset }
func (EmployeeTwitterReset) payload()       {}

type TwitterSet struct {
	Twitter string `json:"twitter"`
}

func (TwitterSet) Action() string { return ActionTwitterSet }
func (TwitterSet) payload()       {}

type TwitterReset struct{}

func (TwitterReset) Action() string { return ActionTwitterReset }
func (TwitterReset) payload()       {}

type EmployeeImportCompleted struct {
	ImportJobID       uint `json:"import_job_id"`
	NumberOfEmployees int  `json:"number_of_employees"`
}

func (EmployeeImportCompleted) Action() string { return ActionEmployeeImportCompleted }
func (EmployeeImportCompleted) payload()       {}

type ProjectClosed struct {
	ProjectID   uint   `json:"project_id"`
	ProjectName string `json:"project_name"`
}

func (ProjectClosed) Action() string { return ActionProjectClosed }
func (ProjectClosed) payload()       {}

// ProjectLeadUpdated omits the employee fields on the lead's own stream.
type ProjectLeadUpdated struct {
	ProjectID    uint   `json:"project_id"`
	ProjectName  string `json:"project_name"`
	EmployeeID   uint   `json:"employee_id,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
}

func (ProjectLeadUpdated) Action() string { return ActionProjectLeadUpdated }
func (ProjectLeadUpdated) payload()       {}

type CompanyNewsCreated struct {
	NewsID uint   `json:"company_news_id"`
	Title  string `json:"company_news_title"`
}

func (CompanyNewsCreated) Action() string { return ActionCompanyNewsCreated }
func (CompanyNewsCreated) payload()       {}

type AgendaItemUpdated struct {
	GroupID   uint   `json:"group_id"`
	GroupName string `json:"group_name"`
	MeetingID uint   `json:"meeting_id"`
}

func (AgendaItemUpdated) Action() string { return ActionAgendaItemUpdated }
func (AgendaItemUpdated) payload()       {}
