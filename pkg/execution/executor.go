package execution

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/officelife/pkg/audit"
	"github.com/iota-uz/officelife/pkg/authz"
	"github.com/iota-uz/officelife/pkg/composables"
	"github.com/iota-uz/officelife/pkg/logging"
	"github.com/iota-uz/officelife/pkg/validation"
)

type Deps struct {
	Authz     *authz.Service
	Actors    ActorResolver
	Relations RelationshipReader
	Tx        TxRunner
	Audit     audit.Recorder
	Clock     clockwork.Clock
	Logger    *logrus.Entry
}

// Executor holds what every operation shares.
type Executor struct {
	authz     *authz.Service
	actors    ActorResolver
	relations RelationshipReader
	tx        TxRunner
	audit     audit.Recorder
	clock     clockwork.Clock
	logger    *logrus.Entry
}

func NewExecutor(deps Deps) *Executor {
	if deps.Tx == nil {
		deps.Tx = PgTxRunner{}
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Audit == nil {
		deps.Audit = &audit.Capture{}
	}
	return &Executor{
		authz:     deps.Authz,
		actors:    deps.Actors,
		relations: deps.Relations,
		tx:        deps.Tx,
		audit:     deps.Audit,
		clock:     deps.Clock,
		logger:    logging.Component(deps.Logger, "execution"),
	}
}

func (e *Executor) Now() time.Time { return e.clock.Now() }

func (e *Executor) Clock() clockwork.Clock { return e.clock }

func (e *Executor) Audit() audit.Recorder { return e.audit }

func (e *Executor) Tx() TxRunner { return e.tx }

// Call is what an operation's steps see once the actor is admitted.
type Call struct {
	Actor authz.Actor
	Scope Scope
	Now   time.Time
}

func (c Call) Author() audit.Author {
	return audit.Author{ID: c.Actor.ID, Name: c.Actor.Name}
}

// Admit resolves the author and checks company membership. Unknown authors
// are denied.
func (e *Executor) Admit(ctx context.Context, scope Scope) (Call, error) {
	actor, err := e.actors.ResolveActor(ctx, scope.AuthorID)
	if err != nil {
		return Call{}, err
	}
	in := authz.Input{Actor: actor, CompanyID: scope.CompanyID}
	if err := e.authz.Membership(ctx, in); err != nil {
		return Call{}, err
	}
	return Call{Actor: actor, Scope: scope, Now: e.clock.Now()}, nil
}

// Permit runs the full chain for req against target. The manager relation
// is only looked up when the requirement can use it.
func (e *Executor) Permit(ctx context.Context, call Call, req authz.Requirement, target uint) error {
	in := authz.Input{
		Actor:            call.Actor,
		CompanyID:        call.Scope.CompanyID,
		TargetEmployeeID: target,
	}
	if req.ManagerBypass && target != 0 && target != call.Actor.ID && e.relations != nil {
		ok, err := e.relations.IsDirectManager(ctx, call.Scope.CompanyID, call.Actor.ID, target)
		if err != nil {
			return err
		}
		in.ManagesTarget = ok
	}
	return e.authz.Authorize(ctx, in, req)
}

// Operation describes one state-changing service call. S is whatever
// Resolve loads, T the returned entity.
type Operation[S, T any] struct {
	Name        string
	Request     Request
	Requirement authz.Requirement

	// Resolve loads referenced records scoped to the company; records of
	// another company must surface as NotFound.
	Resolve func(ctx context.Context, call Call) (S, error)
	// Target names the employee the relationship bypasses apply to.
	Target func(state S) uint
	Guard  func(ctx context.Context, call Call, state S) error
	Mutate func(ctx context.Context, call Call, state S) (T, error)
	Audit  func(call Call, state S, result T) []audit.Entry
	// Refresh reloads the result after commit, in a read transaction of
	// its own.
	Refresh func(ctx context.Context, call Call, result T) (T, error)
}

// Reload re-reads the result by id after commit.
func Reload[T any](get func(ctx context.Context, id uint) (T, error), id func(T) uint) func(context.Context, Call, T) (T, error) {
	return func(ctx context.Context, _ Call, result T) (T, error) {
		return get(ctx, id(result))
	}
}

// Run executes op: validate, admit, then resolve, authorize, guard and
// mutate in one transaction, then audit and refresh.
func Run[S, T any](ctx context.Context, e *Executor, op Operation[S, T]) (result T, err error) {
	start := e.clock.Now()
	defer func() { observe(op.Name, err, e.clock.Since(start)) }()

	if err := validation.Struct(op.Request); err != nil {
		return result, err
	}
	scope := op.Request.Scope()
	ctx = composables.WithCompanyID(ctx, scope.CompanyID)

	call, err := e.Admit(ctx, scope)
	if err != nil {
		return result, err
	}

	var state S
	err = e.tx.InTx(ctx, func(txCtx context.Context) error {
		if op.Resolve != nil {
			s, err := op.Resolve(txCtx, call)
			if err != nil {
				return err
			}
			state = s
		}
		var target uint
		if op.Target != nil {
			target = op.Target(state)
		}
		if err := e.Permit(txCtx, call, op.Requirement, target); err != nil {
			return err
		}
		if op.Guard != nil {
			if err := op.Guard(txCtx, call, state); err != nil {
				return err
			}
		}
		r, err := op.Mutate(txCtx, call, state)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		e.logger.WithContext(ctx).WithFields(logrus.Fields{
			"operation":  op.Name,
			"company_id": scope.CompanyID,
			"author_id":  scope.AuthorID,
		}).WithError(err).Debug("operation aborted")
		return result, err
	}

	if op.Audit != nil {
		if entries := op.Audit(call, state, result); len(entries) > 0 {
			e.audit.Record(ctx, entries...)
		}
	}

	if op.Refresh == nil {
		return result, nil
	}
	// Company tables only show rows under the company setting, which lives
	// in a transaction.
	var fresh T
	err = e.tx.InTx(ctx, func(txCtx context.Context) error {
		r, err := op.Refresh(txCtx, call, result)
		fresh = r
		return err
	})
	return fresh, err
}
