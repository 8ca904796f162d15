package repositories

import (
	"context"
	"time"

	"expensetrack/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Order selects the sort applied to a filtered read.
type Order int

const (
	// OrderByDateDesc sorts by date descending, creation timestamp
	// descending as tie-break (list and monthly views).
	OrderByDateDesc Order = iota
	// OrderByCreatedDesc sorts by creation timestamp descending only
	// (daily detail lists).
	OrderByCreatedDesc
)

// ExpenseFilter constrains a read against the expense store. Zero values
// mean "no constraint". Category is only ever populated with a valid label;
// translating (and silently dropping) raw query values is the service's
// concern, not the repository's.
type ExpenseFilter struct {
	Category *domain.Category
	Date     *time.Time // exactly this calendar day
	From     *time.Time // inclusive range start (month views)
	To       *time.Time // inclusive range end
	Order    Order
}

// ExpenseReader defines read operations for expense data. All reads exclude
// soft-deleted rows unless stated otherwise.
type ExpenseReader interface {
	// FindExpenseByID retrieves one expense; apperrors.ErrNotFound when the
	// id is missing or soft-deleted.
	FindExpenseByID(ctx context.Context, id int64) (*domain.Expense, error)

	// FindExpenses retrieves a filtered, ordered page of expenses.
	// limit <= 0 means no limit.
	FindExpenses(ctx context.Context, filter ExpenseFilter, limit, offset int) ([]domain.Expense, error)

	// CountExpenses counts the filtered set independently of pagination.
	CountExpenses(ctx context.Context, filter ExpenseFilter) (int64, error)

	// SumExpenses returns the filtered amount total straight from the store.
	SumExpenses(ctx context.Context, filter ExpenseFilter) (decimal.Decimal, error)

	// FindExpensesWithTrashed retrieves the filtered set including
	// soft-deleted rows.
	FindExpensesWithTrashed(ctx context.Context, filter ExpenseFilter) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data.
type ExpenseWriter interface {
	// SaveExpense persists a new expense and assigns its ID and timestamps.
	SaveExpense(ctx context.Context, expense *domain.Expense) error

	// UpdateExpense replaces the four editable fields of an existing
	// expense. Last write wins; apperrors.ErrNotFound when the id is
	// missing or soft-deleted.
	UpdateExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseLifecycleManager defines soft-delete lifecycle operations.
type ExpenseLifecycleManager interface {
	// MarkExpenseDeleted soft-deletes an expense.
	MarkExpenseDeleted(ctx context.Context, id int64, deletedAt time.Time) error

	// RestoreExpense clears the soft-delete marker with no data loss.
	RestoreExpense(ctx context.Context, id int64) error

	// ReplaceAllExpenses atomically empties the table and loads the given
	// records in order. Seeding only.
	ReplaceAllExpenses(ctx context.Context, expenses []domain.Expense) error
}

// ExpenseRepositoryFacade combines all expense repository interfaces for
// clients that need the full surface.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpenseLifecycleManager
}
