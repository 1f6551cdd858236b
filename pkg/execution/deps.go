package execution

import (
	"context"

	"github.com/google/uuid"

	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/composables"
)

// ActorResolver loads the acting employee wherever it lives. A missing
// employee yields a zero Actor and no error.
type ActorResolver interface {
	ResolveActor(ctx context.Context, employeeID uint) (authz.Actor, error)
}

// RelationshipReader answers single-hop manager questions.
type RelationshipReader interface {
	IsDirectManager(ctx context.Context, companyID uuid.UUID, managerID, reportID uint) (bool, error)
}

// TxRunner runs fn as one logical unit.
type TxRunner interface {
	InTx(ctx context.Context, fn func(context.Context) error) error
}

// PgTxRunner runs fn in a company-scoped Postgres transaction.
type PgTxRunner struct{}

func (PgTxRunner) InTx(ctx context.Context, fn func(context.Context) error) error {
	return composables.InCompanyTx(ctx, fn)
}

// NoTx runs fn directly. In-memory stores use it.
type NoTx struct{}

func (NoTx) InTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
