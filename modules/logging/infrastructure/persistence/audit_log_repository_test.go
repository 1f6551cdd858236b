package persistence

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/officelife/modules/logging/domain/entities/auditlog"
	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/repo/pgstub"
)

var companyID = uuid.MustParse("6f1e2c3d-4b5a-4c7d-8e9f-0a1b2c3d4e5f")

func record(stream audit.Stream, employeeID uint) audit.Record {
	return audit.Record{
		ID:         uuid.New(),
		Stream:     stream,
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Action:     audit.ActionTwitterReset,
		AuthorID:   1,
		AuthorName: "Ada Admin",
		AuditedAt:  time.Date(2018, 1, 1, 9, 0, 0, 0, time.UTC),
		Objects:    json.RawMessage(`{}`),
	}
}

func TestAuditLogRepository_AppendRoutesByStream(t *testing.T) {
	tx := &pgstub.Tx{}
	ctx := pgstub.Bind(context.Background(), tx)
	r := NewAuditLogRepository()

	require.NoError(t, r.Append(ctx, record(audit.StreamCompany, 0)))
	require.NoError(t, r.Append(ctx, record(audit.StreamEmployee, 7)))

	execs := tx.Execs()
	require.Len(t, execs, 2)
	require.Contains(t, execs[0].SQL, "INSERT INTO company_logs")
	require.Contains(t, execs[0].SQL, "ON CONFLICT (id) DO NOTHING")
	require.Equal(t, companyID.String(), execs[0].Args[1])
	require.Contains(t, execs[1].SQL, "INSERT INTO employee_logs")
	require.Equal(t, uint(7), execs[1].Args[7])
}

func TestAuditLogRepository_AppendRejectsInvalid(t *testing.T) {
	tx := &pgstub.Tx{}
	ctx := pgstub.Bind(context.Background(), tx)

	err := NewAuditLogRepository().Append(ctx, record(audit.StreamEmployee, 0))
	require.ErrorIs(t, err, audit.ErrMissingScope)
	require.Empty(t, tx.Execs())
}

func TestAuditLogRepository_ListEmployeeStream(t *testing.T) {
	id := uuid.New()
	at := time.Date(2018, 1, 2, 15, 4, 0, 0, time.UTC)
	tx := &pgstub.Tx{QueryFunc: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
		require.Contains(t, sql, "FROM employee_logs")
		require.Contains(t, sql, "ORDER BY audited_at DESC")
		require.Contains(t, sql, "LIMIT 10 OFFSET 20")
		require.Equal(t, []any{companyID.String(), uint(7)}, args)
		return &pgstub.Rows{Data: [][]any{
			{id.String(), companyID.String(), audit.ActionTwitterSet, uint(1), "Ada Admin", []byte(`{"twitter":"uma"}`), at, uint(7)},
		}}, nil
	}}
	ctx := pgstub.Bind(composables.WithCompanyID(context.Background(), companyID), tx)

	logs, err := NewAuditLogRepository().List(ctx, &auditlog.FindParams{
		Stream: audit.StreamEmployee, EmployeeID: 7, Limit: 10, Offset: 20,
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, id, logs[0].ID)
	require.Equal(t, audit.StreamEmployee, logs[0].Stream)
	require.Equal(t, uint(7), logs[0].EmployeeID)
	require.JSONEq(t, `{"twitter":"uma"}`, string(logs[0].Objects))
}

func TestAuditLogRepository_EmployeeStreamNeedsEmployee(t *testing.T) {
	ctx := pgstub.Bind(composables.WithCompanyID(context.Background(), companyID), &pgstub.Tx{})

	_, err := NewAuditLogRepository().Count(ctx, &auditlog.FindParams{Stream: audit.StreamEmployee})
	require.ErrorIs(t, err, ErrEmployeeRequired)
}

func TestAuditLogRepository_Count(t *testing.T) {
	tx := &pgstub.Tx{QueryRowFunc: func(_ context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "FROM company_logs")
		require.Equal(t, companyID.String(), args[0])
		return pgstub.ValuesRow(int64(3))
	}}
	ctx := pgstub.Bind(composables.WithCompanyID(context.Background(), companyID), tx)

	n, err := NewAuditLogRepository().Count(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
}

func TestInMemoryAuditLogRepository_AppendIsIdempotent(t *testing.T) {
	r := NewInMemoryAuditLogRepository()
	rec := record(audit.StreamCompany, 0)
	require.NoError(t, r.Append(context.Background(), rec))
	require.NoError(t, r.Append(context.Background(), rec))

	n, err := r.Count(composables.WithCompanyID(context.Background(), companyID), nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}
