package persistence

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/group"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/repo"
)

type pgGroupRepository struct{}

func NewGroupRepository() group.Repository {
	return &pgGroupRepository{}
}

func (r *pgGroupRepository) GetGroup(ctx context.Context, id uint) (group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return group.Group{}, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return group.Group{}, err
	}
	var g group.Group
	if err := tx.QueryRow(ctx,
		`SELECT id, company_id, name FROM groups WHERE id = $1 AND company_id = $2`, id, companyID,
	).Scan(&g.ID, &g.CompanyID, &g.Name); err != nil {
		return group.Group{}, errors.Wrap(repo.MapPgError(err, "group", fmt.Sprint(id)), "failed to get group")
	}
	return g, nil
}

func (r *pgGroupRepository) GetMeeting(ctx context.Context, groupID, id uint) (group.Meeting, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return group.Meeting{}, errors.Wrap(err, "failed to get transaction")
	}
	var m group.Meeting
	if err := tx.QueryRow(ctx,
		`SELECT id, group_id, happened_at FROM meetings WHERE id = $1 AND group_id = $2`, id, groupID,
	).Scan(&m.ID, &m.GroupID, &m.HappenedAt); err != nil {
		return group.Meeting{}, errors.Wrap(repo.MapPgError(err, "meeting", fmt.Sprint(id)), "failed to get meeting")
	}
	return m, nil
}

func (r *pgGroupRepository) GetAgendaItem(ctx context.Context, meetingID, id uint) (group.AgendaItem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return group.AgendaItem{}, errors.Wrap(err, "failed to get transaction")
	}
	var a group.AgendaItem
	if err := tx.QueryRow(ctx, `
		SELECT id, meeting_id, position, summary, description, presented_by_id
		FROM agenda_items WHERE id = $1 AND meeting_id = $2`, id, meetingID,
	).Scan(&a.ID, &a.MeetingID, &a.Position, &a.Summary, &a.Description, &a.PresentedByID); err != nil {
		return group.AgendaItem{}, errors.Wrap(repo.MapPgError(err, "agenda item", fmt.Sprint(id)), "failed to get agenda item")
	}
	return a, nil
}

func (r *pgGroupRepository) UpdateAgendaItem(ctx context.Context, item group.AgendaItem) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	_, err = tx.Exec(ctx, `
		UPDATE agenda_items SET summary = $1, description = $2, presented_by_id = $3
		WHERE id = $4 AND meeting_id = $5`,
		item.Summary, item.Description, item.PresentedByID, item.ID, item.MeetingID,
	)
	return errors.Wrap(err, "failed to update agenda item")
}
