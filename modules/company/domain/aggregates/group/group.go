package group

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Group struct {
	ID        uint
	CompanyID uuid.UUID
	Name      string
}

type Meeting struct {
	ID         uint
	GroupID    uint
	HappenedAt *time.Time
}

type AgendaItem struct {
	ID            uint
	MeetingID     uint
	Position      int
	Summary       string
	Description   *string
	PresentedByID *uint
}

// Update replaces the editable fields. A blank description is stored as
// NULL.
func (a AgendaItem) Update(summary string, description *string, presenter *uint) AgendaItem {
	a.Summary = strings.TrimSpace(summary)
	a.Description = nil
	if description != nil && strings.TrimSpace(*description) != "" {
		d := *description
		a.Description = &d
	}
	a.PresentedByID = nil
	if presenter != nil && *presenter != 0 {
		p := *presenter
		a.PresentedByID = &p
	}
	return a
}

// Repository resolves each level strictly inside its parent: groups in
// the company in context, meetings in a group, items in a meeting.
type Repository interface {
	GetGroup(ctx context.Context, id uint) (Group, error)
	GetMeeting(ctx context.Context, groupID, id uint) (Meeting, error)
	GetAgendaItem(ctx context.Context, meetingID, id uint) (AgendaItem, error)
	UpdateAgendaItem(ctx context.Context, item AgendaItem) error
}
