package composables

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/officelife/pkg/configuration"
)

var rlsModeFn = func() string { return configuration.Use().RLSEnforce }

func ApplyCompanyRLS(ctx context.Context, tx pgx.Tx) error {
	if rlsModeFn() != "enforce" {
		return nil
	}
	companyID, err := UseCompanyID(ctx)
	if err != nil {
		return fmt.Errorf("rls requires company in context: %w", err)
	}
	_, err = tx.Exec(ctx, "SELECT set_config('app.current_company', $1, true)", companyID.String())
	if err != nil {
		return fmt.Errorf("failed to set rls company context: %w", err)
	}
	return nil
}
