package persistence

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/iota-uz/officelife/modules/dashboard/domain/entities/morale"
	"github.com/iota-uz/officelife/pkg/composables"
)

const (
	teamHistoryQuery = `
		SELECT t.company_id, h.team_id, h.average, h.created_at
		FROM morale_team_history h
		JOIN teams t ON t.id = h.team_id
		WHERE h.team_id = $1 AND t.company_id = $2 AND h.created_at >= $3
		ORDER BY h.created_at`

	employeeMoraleQuery = `
		SELECT m.id, e.company_id, m.employee_id, m.emotion, COALESCE(m.comment, ''), m.created_at
		FROM morales m
		JOIN employees e ON e.id = m.employee_id
		WHERE m.employee_id = $1 AND e.company_id = $2 AND m.created_at >= $3 AND m.created_at < $4
		ORDER BY m.created_at`
)

type pgMoraleRepository struct{}

func NewMoraleRepository() morale.Repository {
	return &pgMoraleRepository{}
}

func (r *pgMoraleRepository) ListTeamHistory(ctx context.Context, teamID uint, since time.Time) ([]morale.TeamHistory, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, teamHistoryQuery, teamID, companyID, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query team morale")
	}
	defer rows.Close()

	var out []morale.TeamHistory
	for rows.Next() {
		var h morale.TeamHistory
		if err := rows.Scan(&h.CompanyID, &h.TeamID, &h.Average, &h.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan team morale")
		}
		out = append(out, h)
	}
	return out, errors.Wrap(rows.Err(), "error iterating team morale")
}

func (r *pgMoraleRepository) ListForEmployee(ctx context.Context, employeeID uint, from, to time.Time) ([]morale.Morale, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}
	companyID, err := composables.UseCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, employeeMoraleQuery, employeeID, companyID, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query morale")
	}
	defer rows.Close()

	var out []morale.Morale
	for rows.Next() {
		var m morale.Morale
		var emotion int
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.EmployeeID, &emotion, &m.Comment, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan morale")
		}
		m.Emotion = morale.Emotion(emotion)
		out = append(out, m)
	}
	return out, errors.Wrap(rows.Err(), "error iterating morale")
}
