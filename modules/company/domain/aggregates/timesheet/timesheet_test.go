package timesheet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestForWeek_SameBoundsForAnyDay(t *testing.T) {
	company := uuid.New()
	monday := ForWeek(company, 1, time.Date(2018, 1, 1, 8, 0, 0, 0, time.UTC))
	sunday := ForWeek(company, 1, time.Date(2018, 1, 7, 23, 0, 0, 0, time.UTC))

	require.Equal(t, monday.StartedAt, sunday.StartedAt)
	require.Equal(t, monday.EndedAt, sunday.EndedAt)
	require.Equal(t, StatusOpen, monday.Status)

	start, end := monday.Week()
	require.Equal(t, "Jan 01, 2018", start)
	require.Equal(t, "Jan 07, 2018", end)
}

func TestApproveAndReject(t *testing.T) {
	at := time.Date(2018, 1, 3, 0, 0, 0, 0, time.UTC)
	ts := ForWeek(uuid.New(), 3, at)

	approved := ts.Approve(1, "Michael Scott", at)
	require.Equal(t, StatusApproved, approved.Status)
	require.Equal(t, uint(1), *approved.ApproverID)
	require.Equal(t, "Michael Scott", approved.ApproverName)
	require.Nil(t, ts.ApproverID)

	rejected := ts.Reject(2, "Toby Flenderson", at)
	require.Equal(t, StatusRejected, rejected.Status)
	require.Equal(t, at, *rejected.ApprovedAt)
}
