package postgres

import (
	"context"
	"log/slog"

	"credit-advisor/internal/pkg/apperrors"
)

const createCustomersTable = `
        CREATE TABLE IF NOT EXISTS customers (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            pesel TEXT NOT NULL UNIQUE,
            income DOUBLE PRECISION NOT NULL,
            liabilities DOUBLE PRECISION NOT NULL,
            age INTEGER,
            employment_type TEXT,
            credit_history TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`

// Tables created by the first release only had name, pesel, income and
// liabilities. Columns are added, never renamed, so those rows survive.
var customersColumnUpgrades = []string{
	`ALTER TABLE customers ADD COLUMN IF NOT EXISTS age INTEGER`,
	`ALTER TABLE customers ADD COLUMN IF NOT EXISTS employment_type TEXT`,
	`ALTER TABLE customers ADD COLUMN IF NOT EXISTS credit_history TEXT`,
	`ALTER TABLE customers ADD COLUMN IF NOT EXISTS created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()`,
	`ALTER TABLE customers ADD COLUMN IF NOT EXISTS updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()`,
}

func schemaStatements() []string {
	return append([]string{createCustomersTable}, customersColumnUpgrades...)
}

func (r *CustomerRepository) Initialize(ctx context.Context) error {
	r.logger.InfoContext(ctx, "Ensuring customers schema exists")

	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}

	for _, stmt := range schemaStatements() {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			r.logger.ErrorContext(ctx, "Failed to apply schema statement", slog.Any("error", err))
			_ = r.RollbackTx(ctx, tx)
			return apperrors.WrapDatabaseError(err, "failed to initialize customers schema")
		}
	}

	if err := r.CommitTx(ctx, tx); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "Customers schema is up to date")
	return nil
}
