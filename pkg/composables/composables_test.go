package composables

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/officelife/pkg/constants"
	"github.com/iota-uz/officelife/pkg/repo"
)

func TestUseCompanyID(t *testing.T) {
	_, err := UseCompanyID(context.Background())
	require.ErrorIs(t, err, ErrNoCompany)

	_, err = UseCompanyID(WithCompanyID(context.Background(), uuid.Nil))
	require.ErrorIs(t, err, ErrNoCompany)

	id := uuid.New()
	got, err := UseCompanyID(WithCompanyID(context.Background(), id))
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestUseTx_WithoutPool(t *testing.T) {
	_, err := UseTx(context.Background())
	require.ErrorIs(t, err, ErrNoPool)
}

func TestInCompanyTx_RequiresPool(t *testing.T) {
	called := false
	err := InCompanyTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrNoPool)
	require.False(t, called)
}

func TestApplyCompanyRLS_DisabledIsNoop(t *testing.T) {
	orig := rlsModeFn
	t.Cleanup(func() { rlsModeFn = orig })
	rlsModeFn = func() string { return "disabled" }

	require.NoError(t, ApplyCompanyRLS(context.Background(), nil))
}

func TestUseLogger_FallsBackToStandardLogger(t *testing.T) {
	require.NotNil(t, UseLogger(context.Background()))

	entry := logrus.NewEntry(logrus.New()).WithField("request_id", "abc")
	require.Same(t, entry, UseLogger(WithLogger(context.Background(), entry)))
}

type fakeTx struct{ repo.Tx }

func TestUseTx_PrefersContextTx(t *testing.T) {
	tx := fakeTx{}
	ctx := context.WithValue(context.Background(), constants.TxKey, tx)

	got, err := UseTx(ctx)
	require.NoError(t, err)
	require.Equal(t, tx, got)
}

func TestUsePool_Missing(t *testing.T) {
	_, err := UsePool(context.Background())
	require.ErrorIs(t, err, ErrNoPool)
}
