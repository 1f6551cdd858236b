package news

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type News struct {
	ID         uint
	CompanyID  uuid.UUID
	AuthorID   uint
	AuthorName string
	Title      string
	Content    string
	CreatedAt  time.Time
}

type Repository interface {
	Create(ctx context.Context, n News) (News, error)
	List(ctx context.Context, limit, offset int) ([]News, error)
}
