package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"expensetrack/internal/apperrors"
	"expensetrack/internal/core/domain"
	portsrepo "expensetrack/internal/core/ports/repositories"
	"expensetrack/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const expenseColumns = "id, description, amount, category, date, created_at, updated_at, deleted_at"

// PgxExpenseRepository is the PostgreSQL implementation of the expense
// repository facade.
type PgxExpenseRepository struct {
	BaseRepository
}

// NewExpenseRepository creates a PostgreSQL-backed expense repository.
func NewExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func toDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ID:          m.ID,
		Description: m.Description,
		Amount:      m.Amount,
		Category:    domain.Category(m.Category),
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   m.DeletedAt,
	}
}

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ID,
		&m.Description,
		&m.Amount,
		&m.Category,
		&m.Date,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	return m, err
}

// buildWhere translates a filter into a WHERE clause plus positional args.
func buildWhere(filter portsrepo.ExpenseFilter, includeTrashed bool) (string, []any) {
	conditions := []string{}
	args := []any{}

	if !includeTrashed {
		conditions = append(conditions, "deleted_at IS NULL")
	}
	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("date = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func orderClause(order portsrepo.Order) string {
	switch order {
	case portsrepo.OrderByCreatedDesc:
		return " ORDER BY created_at DESC, id DESC"
	default:
		return " ORDER BY date DESC, created_at DESC, id DESC"
	}
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, id int64) (*domain.Expense, error) {
	query := "SELECT " + expenseColumns + " FROM expenses WHERE id = $1 AND deleted_at IS NULL"
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %d: %w", id, err)
	}
	d := toDomainExpense(m)
	return &d, nil
}

func (r *PgxExpenseRepository) FindExpenses(ctx context.Context, filter portsrepo.ExpenseFilter, limit, offset int) ([]domain.Expense, error) {
	where, args := buildWhere(filter, false)
	query := "SELECT " + expenseColumns + " FROM expenses" + where + orderClause(filter.Order)
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return r.queryExpenses(ctx, query, args)
}

func (r *PgxExpenseRepository) FindExpensesWithTrashed(ctx context.Context, filter portsrepo.ExpenseFilter) ([]domain.Expense, error) {
	where, args := buildWhere(filter, true)
	query := "SELECT " + expenseColumns + " FROM expenses" + where + orderClause(filter.Order)
	return r.queryExpenses(ctx, query, args)
}

func (r *PgxExpenseRepository) queryExpenses(ctx context.Context, query string, args []any) ([]domain.Expense, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, toDomainExpense(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) CountExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) (int64, error) {
	where, args := buildWhere(filter, false)
	var count int64
	err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM expenses"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

func (r *PgxExpenseRepository) SumExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) (decimal.Decimal, error) {
	where, args := buildWhere(filter, false)
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, "SELECT COALESCE(SUM(amount), 0) FROM expenses"+where, args...).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense *domain.Expense) error {
	query := `
        INSERT INTO expenses (description, amount, category, date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, now(), now())
        RETURNING id, created_at, updated_at;
    `
	err := r.Pool.QueryRow(ctx, query,
		expense.Description,
		expense.Amount,
		string(expense.Category),
		expense.Date,
	).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	query := `
        UPDATE expenses
        SET description = $1, amount = $2, category = $3, date = $4, updated_at = now()
        WHERE id = $5 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		expense.Description,
		expense.Amount,
		string(expense.Category),
		expense.Date,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense not found or deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxExpenseRepository) MarkExpenseDeleted(ctx context.Context, id int64, deletedAt time.Time) error {
	query := `
        UPDATE expenses
        SET deleted_at = $1, updated_at = $1
        WHERE id = $2 AND deleted_at IS NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, deletedAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark expense as deleted: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense not found or already deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxExpenseRepository) RestoreExpense(ctx context.Context, id int64) error {
	query := `
        UPDATE expenses
        SET deleted_at = NULL, updated_at = now()
        WHERE id = $1 AND deleted_at IS NOT NULL;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to restore expense: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("expense not found or not deleted: %w", apperrors.ErrNotFound)
	}
	return nil
}

// ReplaceAllExpenses wipes the table and loads the given records inside one
// transaction, so a failed load never leaves the table half-seeded.
func (r *PgxExpenseRepository) ReplaceAllExpenses(ctx context.Context, expenses []domain.Expense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// No-op once the transaction committed.
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM expenses"); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	query := `
        INSERT INTO expenses (description, amount, category, date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, now(), now());
    `
	for _, e := range expenses {
		_, err := tx.Exec(ctx, query,
			e.Description,
			e.Amount,
			string(e.Category),
			e.Date,
		)
		if err != nil {
			return fmt.Errorf("failed to load expense: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}
