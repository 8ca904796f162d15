package services

import (
	"context"
	"fmt"
	"time"

	"expensetrack/internal/core/domain"
	portsrepo "expensetrack/internal/core/ports/repositories"
	"expensetrack/internal/core/validation"
	"expensetrack/internal/dto"
)

// PageSize is the fixed page length of the list view.
const PageSize = 15

// MonthLayout is the wire format for month selections (HTML month inputs).
const MonthLayout = "2006-01"

// ExpenseService implements the expense operations behind the HTTP
// handlers: validated writes, filtered reads, view aggregation and the
// soft-delete lifecycle.
type ExpenseService struct {
	repo portsrepo.ExpenseRepositoryFacade
	now  func() time.Time
}

// NewExpenseService creates an ExpenseService backed by repo.
func NewExpenseService(repo portsrepo.ExpenseRepositoryFacade) *ExpenseService {
	return &ExpenseService{repo: repo, now: time.Now}
}

// NewExpenseServiceWithClock creates an ExpenseService with an injected
// clock, for tests that need a fixed "today".
func NewExpenseServiceWithClock(repo portsrepo.ExpenseRepositoryFacade, now func() time.Time) *ExpenseService {
	return &ExpenseService{repo: repo, now: now}
}

// categoryFilter translates a raw category query value into a filter
// constraint. Invalid values are silently ignored on read paths: the
// unfiltered set is returned rather than an error. This intentionally
// diverges from the write path, which rejects invalid categories.
func categoryFilter(raw string) *domain.Category {
	if raw != "" && domain.IsValidCategory(raw) {
		c := domain.Category(raw)
		return &c
	}
	return nil
}

// selectedCategory echoes the raw value back to the view only when it was
// actually applied as a constraint.
func selectedCategory(c *domain.Category) string {
	if c == nil {
		return ""
	}
	return string(*c)
}

// CreateExpense validates raw input and persists a new expense. On
// validation failure the returned error is an apperrors.ValidationErrors.
func (s *ExpenseService) CreateExpense(ctx context.Context, input validation.ExpenseInput) (*domain.Expense, error) {
	normalized, errs := validation.ValidateExpense(input, s.now())
	if errs != nil {
		return nil, errs
	}

	expense := &domain.Expense{
		Description: normalized.Description,
		Amount:      normalized.Amount,
		Category:    normalized.Category,
		Date:        normalized.Date,
	}
	if err := s.repo.SaveExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

// UpdateExpense validates raw input and replaces all four editable fields
// of an existing expense. There are no partial-field semantics.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id int64, input validation.ExpenseInput) (*domain.Expense, error) {
	existing, err := s.repo.FindExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, errs := validation.ValidateExpense(input, s.now())
	if errs != nil {
		return nil, errs
	}

	updated := *existing
	updated.Description = normalized.Description
	updated.Amount = normalized.Amount
	updated.Category = normalized.Category
	updated.Date = normalized.Date

	if err := s.repo.UpdateExpense(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return &updated, nil
}

// GetExpense retrieves one expense; apperrors.ErrNotFound for missing or
// soft-deleted ids.
func (s *ExpenseService) GetExpense(ctx context.Context, id int64) (*domain.Expense, error) {
	return s.repo.FindExpenseByID(ctx, id)
}

// ListExpenses returns one page of the (optionally category-filtered) list
// view, ordered by date descending then creation descending. Total and
// TotalAmount cover the whole filtered set regardless of page.
func (s *ExpenseService) ListExpenses(ctx context.Context, rawCategory string, page int) (*dto.ListPage, error) {
	if page < 1 {
		page = 1
	}
	filter := portsrepo.ExpenseFilter{
		Category: categoryFilter(rawCategory),
		Order:    portsrepo.OrderByDateDesc,
	}

	total, err := s.repo.CountExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count expenses: %w", err)
	}
	totalAmount, err := s.repo.SumExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to total expenses: %w", err)
	}
	expenses, err := s.repo.FindExpenses(ctx, filter, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	return &dto.ListPage{
		Expenses:         expenses,
		Total:            total,
		TotalAmount:      totalAmount,
		Page:             page,
		PageSize:         PageSize,
		TotalPages:       totalPages,
		SelectedCategory: selectedCategory(filter.Category),
	}, nil
}

// DailyView returns all expenses for one calendar day with a category
// breakdown. An absent or unparseable date defaults to the current date.
func (s *ExpenseService) DailyView(ctx context.Context, rawDate, rawCategory string) (*dto.DailyPage, error) {
	day := domain.DateOnly(s.now())
	if parsed, err := time.Parse(validation.DateLayout, rawDate); err == nil {
		day = domain.DateOnly(parsed)
	}

	filter := portsrepo.ExpenseFilter{
		Category: categoryFilter(rawCategory),
		Date:     &day,
		Order:    portsrepo.OrderByCreatedDesc,
	}
	expenses, err := s.repo.FindExpenses(ctx, filter, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily expenses: %w", err)
	}

	total := domain.SumAmounts(expenses)
	return &dto.DailyPage{
		Date:             day,
		Expenses:         expenses,
		Total:            total,
		ByCategory:       domain.SummarizeByCategory(expenses, total),
		SelectedCategory: selectedCategory(filter.Category),
	}, nil
}

// MonthlyView returns all expenses for one calendar month with category and
// daily breakdowns. An absent or unparseable month defaults to the current
// month. The same data backs the CSV export.
func (s *ExpenseService) MonthlyView(ctx context.Context, rawMonth, rawCategory string) (*dto.MonthlyPage, error) {
	month := s.now()
	if parsed, err := time.Parse(MonthLayout, rawMonth); err == nil {
		month = parsed
	}
	from, to := domain.MonthRange(month)

	filter := portsrepo.ExpenseFilter{
		Category: categoryFilter(rawCategory),
		From:     &from,
		To:       &to,
		Order:    portsrepo.OrderByDateDesc,
	}
	expenses, err := s.repo.FindExpenses(ctx, filter, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly expenses: %w", err)
	}

	total := domain.SumAmounts(expenses)
	return &dto.MonthlyPage{
		Month:            from,
		Expenses:         expenses,
		Total:            total,
		ByCategory:       domain.SummarizeByCategory(expenses, total),
		ByDay:            domain.SummarizeByDay(expenses),
		SelectedCategory: selectedCategory(filter.Category),
	}, nil
}

// SoftDeleteExpense marks an expense deleted. The record stays queryable
// via ListExpensesWithTrashed and can be restored.
func (s *ExpenseService) SoftDeleteExpense(ctx context.Context, id int64) error {
	return s.repo.MarkExpenseDeleted(ctx, id, s.now())
}

// RestoreExpense reverses a soft delete with no data loss.
func (s *ExpenseService) RestoreExpense(ctx context.Context, id int64) error {
	return s.repo.RestoreExpense(ctx, id)
}

// ListExpensesWithTrashed returns the filtered set including soft-deleted
// rows, most recent first.
func (s *ExpenseService) ListExpensesWithTrashed(ctx context.Context, rawCategory string) ([]domain.Expense, error) {
	filter := portsrepo.ExpenseFilter{
		Category: categoryFilter(rawCategory),
		Order:    portsrepo.OrderByDateDesc,
	}
	return s.repo.FindExpensesWithTrashed(ctx, filter)
}
