package postgres

import (
	"errors"
	"testing"

	"credit-advisor/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateDBError(t *testing.T) {
	tests := []struct {
		name   string
		in     error
		target error
	}{
		{"NoRows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"UniqueViolation", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "customers_pesel_key"}, apperrors.ErrAlreadyExists},
		{"OtherPgError", &pgconn.PgError{Code: "42P01"}, apperrors.ErrDatabase},
		{"GenericError", errors.New("broken pipe"), apperrors.ErrDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateDBError(tt.in, logger), tt.target)
		})
	}

	assert.NoError(t, translateDBError(nil, logger))
}
