package authz

import (
	"fmt"
	"strconv"

	"github.com/iota-uz/officelife/pkg/serrors"
)

// forbiddenError builds the single error a failed chain produces.
func forbiddenError(in Input, reason string) *serrors.BaseError {
	return serrors.Forbidden(reason).WithTemplateData(map[string]string{
		"reason":     reason,
		"actor_id":   strconv.FormatUint(uint64(in.Actor.ID), 10),
		"actor_role": in.Actor.Role.String(),
		"company_id": in.CompanyID.String(),
	})
}

// configError standardizes configuration validation errors.
func configError(msg string, args ...any) error {
	return fmt.Errorf("authz: "+msg, args...)
}
