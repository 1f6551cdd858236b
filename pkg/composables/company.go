package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iota-uz/officelife/pkg/constants"
)

var ErrNoCompany = errors.New("no company found in context")

func WithCompanyID(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.CompanyKey, companyID)
}

func UseCompanyID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(constants.CompanyKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrNoCompany
	}
	return id, nil
}
