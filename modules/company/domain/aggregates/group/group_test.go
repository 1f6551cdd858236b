package group

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAgendaItemUpdate(t *testing.T) {
	desc := "quarterly numbers"
	presenter := uint(4)
	item := AgendaItem{ID: 1, MeetingID: 2, Summary: "old"}

	updated := item.Update("  Budget  ", &desc, &presenter)
	require.Equal(t, "Budget", updated.Summary)
	require.Equal(t, "quarterly numbers", *updated.Description)
	require.Equal(t, uint(4), *updated.PresentedByID)

	blank := "   "
	none := uint(0)
	cleared := updated.Update("Budget", &blank, &none)
	require.Nil(t, cleared.Description)
	require.Nil(t, cleared.PresentedByID)
}
