package employee

import (
	"context"

	"github.com/google/uuid"
)

type FindParams struct {
	TeamID        uint
	IncludeLocked bool
	Limit         int
	Offset        int
}

// Repository reads and writes employees of the company in context. GetActor
// is the only lookup that ignores the company scope.
type Repository interface {
	GetByID(ctx context.Context, id uint) (Employee, error)
	GetActor(ctx context.Context, id uint) (Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, params *FindParams) ([]Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) error
	IsDirectManager(ctx context.Context, companyID uuid.UUID, managerID, reportID uint) (bool, error)
}
