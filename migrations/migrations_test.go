package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFiles_HaveUpAndDown(t *testing.T) {
	entries, err := fs.Glob(Files, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, name := range entries {
		body, err := fs.ReadFile(Files, name)
		require.NoError(t, err)
		s := string(body)
		up := strings.Index(s, "-- +goose Up")
		down := strings.Index(s, "-- +goose Down")
		require.GreaterOrEqual(t, up, 0, name)
		require.Greater(t, down, up, name)
	}
}

func TestFiles_CreateEveryQueriedTable(t *testing.T) {
	var all strings.Builder
	entries, err := fs.Glob(Files, "*.sql")
	require.NoError(t, err)
	for _, name := range entries {
		body, err := fs.ReadFile(Files, name)
		require.NoError(t, err)
		all.Write(body)
	}
	for _, table := range []string{
		"employees", "teams", "employee_team", "direct_reports", "import_jobs", "import_job_reports",
		"company_logs", "employee_logs",
		"company_pto_policies", "company_calendars", "timesheets", "projects", "employee_project",
		"project_member_activities", "company_news", "groups", "meetings", "agenda_items",
		"morales", "morale_team_history", "worklogs",
	} {
		require.Contains(t, all.String(), "CREATE TABLE "+table+" (", table)
	}
}
