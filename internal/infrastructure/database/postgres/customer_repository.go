package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"credit-advisor/internal/domain/customer"
	"credit-advisor/internal/infrastructure/monitoring"
	"credit-advisor/internal/pkg/apperrors"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

const selectCustomerColumns = `
        SELECT id, name, pesel, income, liabilities,
            COALESCE(age, 0) AS age,
            COALESCE(employment_type, '') AS employment_type,
            COALESCE(credit_history, '') AS credit_history,
            created_at, updated_at
        FROM customers`

const (
	insertCustomerQuery = `
        INSERT INTO customers (name, pesel, income, liabilities, age, employment_type, credit_history, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	updateCustomerQuery = `
        UPDATE customers
        SET name = $1,
            income = $2,
            liabilities = $3,
            age = $4,
            employment_type = $5,
            credit_history = $6,
            updated_at = NOW()
        WHERE pesel = $7`

	findByNationalIDOrNameQuery = selectCustomerColumns + `
        WHERE pesel = $1 OR name ILIKE $2
        ORDER BY id ASC LIMIT 1`

	findByNationalIDQuery = selectCustomerColumns + `
        WHERE pesel = $1
        ORDER BY id ASC LIMIT 1`

	findByNameQuery = selectCustomerColumns + `
        WHERE name ILIKE $1
        ORDER BY id ASC LIMIT 1`

	findAllCustomersQuery = selectCustomerColumns + `
        ORDER BY id ASC`
)

type customerRow struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	NationalID     string    `db:"pesel"`
	Income         float64   `db:"income"`
	Liabilities    float64   `db:"liabilities"`
	Age            int       `db:"age"`
	EmploymentType string    `db:"employment_type"`
	CreditHistory  string    `db:"credit_history"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (row customerRow) toDomain() *customer.Customer {
	return &customer.Customer{
		ID:             row.ID,
		Name:           row.Name,
		NationalID:     row.NationalID,
		Income:         row.Income,
		Liabilities:    row.Liabilities,
		Age:            row.Age,
		EmploymentType: customer.EmploymentType(row.EmploymentType),
		CreditHistory:  customer.CreditHistory(row.CreditHistory),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	r.logger.DebugContext(ctx, "Beginning transaction")
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to begin transaction")
	}
	return tx, nil
}

func (r *CustomerRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Commit(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to commit transaction")
	}
	r.logger.DebugContext(ctx, "Transaction committed successfully")
	return nil
}

func (r *CustomerRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to rollback transaction")
	}
	return nil
}

func observe(queryName string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery(queryName, status, time.Since(start))
}

func (r *CustomerRepository) Create(ctx context.Context, cust *customer.Customer) (err error) {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	defer func(start time.Time) { observe("create_customer", start, err) }(time.Now())

	logCtx := r.logger.With(slog.String("nationalID", cust.NationalID))
	logCtx.InfoContext(ctx, "Attempting to insert new customer")

	// The unique index on pesel decides duplicates; there is no separate
	// existence check that a concurrent insert could slip past.
	err = r.db.QueryRow(ctx, insertCustomerQuery,
		cust.Name,
		cust.NationalID,
		cust.Income,
		cust.Liabilities,
		cust.Age,
		string(cust.EmploymentType),
		string(cust.CreditHistory),
	).Scan(
		&cust.ID,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)

	if err != nil {
		translatedErr := translateDBError(err, logCtx)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			logCtx.WarnContext(ctx, "Failed to insert customer due to unique constraint violation")
			return fmt.Errorf("%w: %w", customer.ErrDuplicateNationalID, translatedErr)
		}
		logCtx.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to insert customer")
	}

	logCtx.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

// escapeLike turns a free-text fragment into an ILIKE substring pattern.
func escapeLike(fragment string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(fragment) + "%"
}

func (r *CustomerRepository) FindOne(ctx context.Context, criteria customer.SearchCriteria) (c *customer.Customer, err error) {
	criteria = criteria.Normalize()

	var (
		query string
		args  []any
	)
	switch {
	case criteria.NationalID != "" && criteria.NamePattern != "":
		query, args = findByNationalIDOrNameQuery, []any{criteria.NationalID, escapeLike(criteria.NamePattern)}
	case criteria.NationalID != "":
		query, args = findByNationalIDQuery, []any{criteria.NationalID}
	case criteria.NamePattern != "":
		query, args = findByNameQuery, []any{escapeLike(criteria.NamePattern)}
	default:
		return nil, customer.ErrNotFound
	}
	defer func(start time.Time) { observe("find_customer", start, err) }(time.Now())

	r.logger.InfoContext(ctx, "Attempting to find customer")

	var row customerRow
	if err = pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			r.logger.WarnContext(ctx, "Customer not found")
			return nil, customer.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to find customer")
	}

	r.logger.InfoContext(ctx, "Customer found successfully", slog.Int64("customerID", row.ID))
	return row.toDomain(), nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) (customers []*customer.Customer, err error) {
	defer func(start time.Time) { observe("find_all_customers", start, err) }(time.Now())
	r.logger.InfoContext(ctx, "Attempting to find all customers")

	var rows []customerRow
	if err = pgxscan.Select(ctx, r.db, &rows, findAllCustomersQuery); err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, apperrors.WrapDatabaseError(err, "failed to query customers")
	}

	customers = make([]*customer.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, row.toDomain())
	}

	r.logger.InfoContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) Update(ctx context.Context, nationalID string, details customer.Details) (err error) {
	defer func(start time.Time) { observe("update_customer", start, err) }(time.Now())

	logCtx := r.logger.With(slog.String("nationalID", nationalID))
	logCtx.InfoContext(ctx, "Attempting to update customer")

	cmdTag, err := r.db.Exec(ctx, updateCustomerQuery,
		details.Name,
		details.Income,
		details.Liabilities,
		details.Age,
		string(details.EmploymentType),
		string(details.CreditHistory),
		nationalID,
	)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return apperrors.WrapDatabaseError(err, "failed to update customer")
	}

	if cmdTag.RowsAffected() == 0 {
		logCtx.WarnContext(ctx, "Update affected zero rows, customer not found")
		return customer.ErrNotFound
	}

	logCtx.InfoContext(ctx, "Customer updated successfully")
	return nil
}
