package services

import (
	"context"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/group"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/execution"
)

type UpdateAgendaItemRequest struct {
	execution.Base
	GroupID       uint    `form:"group_id" validate:"required"`
	MeetingID     uint    `form:"meeting_id" validate:"required"`
	AgendaItemID  uint    `form:"agenda_item_id" validate:"required"`
	Summary       string  `form:"summary" validate:"required,max=255"`
	Description   *string `form:"description" validate:"omitempty,max=65535"`
	PresentedByID *uint   `form:"presented_by_id"`
}

type GroupService struct {
	exec      *execution.Executor
	repo      group.Repository
	employees EmployeeReader
}

func NewGroupService(exec *execution.Executor, repo group.Repository, employees EmployeeReader) *GroupService {
	return &GroupService{exec: exec, repo: repo, employees: employees}
}

type agendaTarget struct {
	group   group.Group
	meeting group.Meeting
	item    group.AgendaItem
}

func (s *GroupService) UpdateAgendaItem(ctx context.Context, req *UpdateAgendaItemRequest) (group.AgendaItem, error) {
	return execution.Run(ctx, s.exec, execution.Operation[agendaTarget, group.AgendaItem]{
		Name:        "update_agenda_item",
		Request:     req,
		Requirement: authz.AtLeast(authz.RoleUser),
		Resolve: func(ctx context.Context, _ execution.Call) (agendaTarget, error) {
			g, err := s.repo.GetGroup(ctx, req.GroupID)
			if err != nil {
				return agendaTarget{}, err
			}
			m, err := s.repo.GetMeeting(ctx, g.ID, req.MeetingID)
			if err != nil {
				return agendaTarget{}, err
			}
			item, err := s.repo.GetAgendaItem(ctx, m.ID, req.AgendaItemID)
			if err != nil {
				return agendaTarget{}, err
			}
			if req.PresentedByID != nil && *req.PresentedByID != 0 {
				if _, err := s.employees.GetByID(ctx, *req.PresentedByID); err != nil {
					return agendaTarget{}, err
				}
			}
			return agendaTarget{group: g, meeting: m, item: item}, nil
		},
		Mutate: func(ctx context.Context, _ execution.Call, st agendaTarget) (group.AgendaItem, error) {
			updated := st.item.Update(req.Summary, req.Description, req.PresentedByID)
			if err := s.repo.UpdateAgendaItem(ctx, updated); err != nil {
				return group.AgendaItem{}, err
			}
			return updated, nil
		},
		Audit: func(call execution.Call, st agendaTarget, _ group.AgendaItem) []audit.Entry {
			objects := audit.AgendaItemUpdated{
				GroupID:   st.group.ID,
				GroupName: st.group.Name,
				MeetingID: st.meeting.ID,
			}
			return []audit.Entry{
				audit.ForCompany(call.Scope.CompanyID, call.Author(), call.Now, objects),
				audit.ForEmployee(call.Scope.CompanyID, call.Actor.ID, call.Author(), call.Now, objects),
			}
		},
	})
}
