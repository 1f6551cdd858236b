package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCapture_FiltersByStream(t *testing.T) {
	var c Capture
	c.Record(context.Background(),
		ForCompany(companyID, author, auditedAt, TwitterReset{}),
		ForEmployee(companyID, 3, author, auditedAt, TwitterReset{}),
	)

	require.Len(t, c.Entries(), 2)
	require.Len(t, c.Stream(StreamEmployee), 1)

	c.Reset()
	require.Empty(t, c.Entries())
}
