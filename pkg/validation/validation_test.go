package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/officelife/pkg/serrors"
)

type policyRequest struct {
	CompanyID   uuid.UUID `form:"company_id" validate:"required"`
	AuthorID    uint      `form:"author_id" validate:"required"`
	Year        int       `form:"year" validate:"required,gte=1900,lte=3000"`
	Description *string   `form:"description" validate:"omitempty,max=10"`
	Email       string    `form:"email" validate:"omitempty,email"`
}

func TestStruct_ReportsEveryField(t *testing.T) {
	err := Struct(&policyRequest{})
	require.Error(t, err)
	require.Equal(t, serrors.KindValidation, serrors.KindOf(err))

	fields := serrors.FieldsOf(err)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	require.ElementsMatch(t, []string{"company_id", "author_id", "year"}, names)
}

func TestStruct_OptionalFieldsAndLimits(t *testing.T) {
	long := strings.Repeat("x", 11)
	err := Struct(&policyRequest{
		CompanyID:   uuid.New(),
		AuthorID:    1,
		Year:        2020,
		Description: &long,
		Email:       "not-an-email",
	})
	fields := serrors.FieldsOf(err)
	require.Len(t, fields, 2)
	require.Equal(t, "description", fields[0].Field)
	require.Equal(t, "must be at most 10 characters", fields[0].Message)
	require.Equal(t, "email", fields[1].Field)
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(&policyRequest{CompanyID: uuid.New(), AuthorID: 1, Year: 2020}))
}
