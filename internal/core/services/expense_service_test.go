package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"expensetrack/internal/apperrors"
	"expensetrack/internal/core/domain"
	portsrepo "expensetrack/internal/core/ports/repositories"
	"expensetrack/internal/core/services"
	"expensetrack/internal/core/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseRepository ---

type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, id int64) (*domain.Expense, error) {
	args := m.Called(ctx, id)
	var expense *domain.Expense
	if args.Get(0) != nil {
		expense = args.Get(0).(*domain.Expense)
	}
	return expense, args.Error(1)
}

func (m *MockExpenseRepository) FindExpenses(ctx context.Context, filter portsrepo.ExpenseFilter, limit, offset int) ([]domain.Expense, error) {
	args := m.Called(ctx, filter, limit, offset)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

func (m *MockExpenseRepository) CountExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) SumExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) FindExpensesWithTrashed(ctx context.Context, filter portsrepo.ExpenseFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, filter)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) MarkExpenseDeleted(ctx context.Context, id int64, deletedAt time.Time) error {
	args := m.Called(ctx, id, deletedAt)
	return args.Error(0)
}

func (m *MockExpenseRepository) RestoreExpense(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) ReplaceAllExpenses(ctx context.Context, expenses []domain.Expense) error {
	args := m.Called(ctx, expenses)
	return args.Error(0)
}

// --- Test Suite ---

type ExpenseServiceTestSuite struct {
	suite.Suite
	mockRepo *MockExpenseRepository
	service  *services.ExpenseService
	now      time.Time
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExpenseRepository)
	suite.now = time.Date(2026, time.August, 28, 10, 30, 0, 0, time.UTC)
	suite.service = services.NewExpenseServiceWithClock(suite.mockRepo, func() time.Time { return suite.now })
}

// --- CreateExpense Tests ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success_RoundsAmount() {
	ctx := context.Background()
	input := validation.ExpenseInput{
		Description: "Weekly groceries",
		Amount:      "123.456",
		Category:    "Groceries",
		Date:        "2026-08-27",
	}

	suite.mockRepo.On("SaveExpense", ctx, mock.MatchedBy(func(e *domain.Expense) bool {
		return e.Description == "Weekly groceries" &&
			e.Amount.Equal(decimal.RequireFromString("123.46")) &&
			e.Category == domain.CategoryGroceries
	})).Return(nil).Once()

	created, err := suite.service.CreateExpense(ctx, input)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("123.46", created.Amount.StringFixed(2))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_ValidationFailure_SkipsRepository() {
	ctx := context.Background()
	input := validation.ExpenseInput{
		Description: "",
		Amount:      "abc",
		Category:    "Gadgets",
		Date:        "2026-08-29", // tomorrow relative to the fixed clock
	}

	created, err := suite.service.CreateExpense(ctx, input)

	suite.Require().Error(err)
	suite.Nil(created)

	var validationErrs apperrors.ValidationErrors
	suite.Require().ErrorAs(err, &validationErrs)
	suite.Equal("Description is required.", validationErrs[validation.FieldDescription])
	suite.Equal("Amount must be a number.", validationErrs[validation.FieldAmount])
	suite.Equal("Invalid category selected.", validationErrs[validation.FieldCategory])
	suite.Equal("Date cannot be in the future.", validationErrs[validation.FieldDate])
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

// --- UpdateExpense Tests ---

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_ReplacesAllFields() {
	ctx := context.Background()
	existing := &domain.Expense{
		ID:          42,
		Description: "Old description",
		Amount:      decimal.RequireFromString("10.00"),
		Category:    domain.CategoryTransport,
		Date:        time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC),
	}
	suite.mockRepo.On("FindExpenseByID", ctx, int64(42)).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ID == 42 &&
			e.Description == "Dinner with friends" &&
			e.Amount.Equal(decimal.RequireFromString("55.50")) &&
			e.Category == domain.CategoryRestaurants
	})).Return(nil).Once()

	updated, err := suite.service.UpdateExpense(ctx, 42, validation.ExpenseInput{
		Description: "Dinner with friends",
		Amount:      "55.50",
		Category:    "Restaurants and Cafes",
		Date:        "2026-08-20",
	})

	suite.Require().NoError(err)
	suite.Equal("Dinner with friends", updated.Description)
	suite.Equal(existing.CreatedAt, updated.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestUpdateExpense_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindExpenseByID", ctx, int64(999)).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateExpense(ctx, 999, validation.ExpenseInput{
		Description: "Anything",
		Amount:      "5.00",
		Category:    "Groceries",
		Date:        "2026-08-20",
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.Nil(updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateExpense", mock.Anything, mock.Anything)
}

// --- ListExpenses Tests ---

func (suite *ExpenseServiceTestSuite) TestListExpenses_PaginatesAndTotals() {
	ctx := context.Background()
	expenses := []domain.Expense{{ID: 1}, {ID: 2}}
	filter := portsrepo.ExpenseFilter{Order: portsrepo.OrderByDateDesc}

	suite.mockRepo.On("CountExpenses", ctx, filter).Return(int64(31), nil).Once()
	suite.mockRepo.On("SumExpenses", ctx, filter).Return(decimal.RequireFromString("930.00"), nil).Once()
	// Page 3 of a 15-per-page list starts at offset 30.
	suite.mockRepo.On("FindExpenses", ctx, filter, 15, 30).Return(expenses, nil).Once()

	page, err := suite.service.ListExpenses(ctx, "", 3)

	suite.Require().NoError(err)
	suite.Equal(int64(31), page.Total)
	suite.Equal("930.00", page.TotalAmount.StringFixed(2))
	suite.Equal(3, page.Page)
	suite.Equal(3, page.TotalPages)
	suite.False(page.HasNext())
	suite.True(page.HasPrev())
	suite.Empty(page.SelectedCategory)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_InvalidCategoryIgnored() {
	ctx := context.Background()
	// An unknown category label must not become a filter constraint.
	filter := portsrepo.ExpenseFilter{Order: portsrepo.OrderByDateDesc}

	suite.mockRepo.On("CountExpenses", ctx, filter).Return(int64(0), nil).Once()
	suite.mockRepo.On("SumExpenses", ctx, filter).Return(decimal.Zero, nil).Once()
	suite.mockRepo.On("FindExpenses", ctx, filter, 15, 0).Return([]domain.Expense{}, nil).Once()

	page, err := suite.service.ListExpenses(ctx, "Gadgets", 1)

	suite.Require().NoError(err)
	suite.Empty(page.SelectedCategory)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_ValidCategoryApplied() {
	ctx := context.Background()
	category := domain.CategoryGroceries
	filter := portsrepo.ExpenseFilter{Category: &category, Order: portsrepo.OrderByDateDesc}

	suite.mockRepo.On("CountExpenses", ctx, filter).Return(int64(1), nil).Once()
	suite.mockRepo.On("SumExpenses", ctx, filter).Return(decimal.RequireFromString("12.00"), nil).Once()
	suite.mockRepo.On("FindExpenses", ctx, filter, 15, 0).Return([]domain.Expense{{ID: 7}}, nil).Once()

	page, err := suite.service.ListExpenses(ctx, "Groceries", 0) // page 0 clamps to 1

	suite.Require().NoError(err)
	suite.Equal("Groceries", page.SelectedCategory)
	suite.Equal(1, page.Page)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- DailyView Tests ---

func (suite *ExpenseServiceTestSuite) TestDailyView_DefaultsToToday() {
	ctx := context.Background()
	today := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindExpenses", ctx, mock.MatchedBy(func(f portsrepo.ExpenseFilter) bool {
		return f.Date != nil && f.Date.Equal(today) && f.Order == portsrepo.OrderByCreatedDesc
	}), 0, 0).Return([]domain.Expense{}, nil).Once()

	page, err := suite.service.DailyView(ctx, "not-a-date", "")

	suite.Require().NoError(err)
	suite.Equal(today, page.Date)
	suite.True(page.Total.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDailyView_AggregatesByCategory() {
	ctx := context.Background()
	day := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	expenses := []domain.Expense{
		{ID: 1, Category: domain.CategoryGroceries, Amount: decimal.RequireFromString("60.00"), Date: day},
		{ID: 2, Category: domain.CategoryTransport, Amount: decimal.RequireFromString("40.00"), Date: day},
	}

	suite.mockRepo.On("FindExpenses", ctx, mock.MatchedBy(func(f portsrepo.ExpenseFilter) bool {
		return f.Date != nil && f.Date.Equal(day)
	}), 0, 0).Return(expenses, nil).Once()

	page, err := suite.service.DailyView(ctx, "2026-08-20", "")

	suite.Require().NoError(err)
	suite.Equal("100.00", page.Total.StringFixed(2))
	suite.Require().Len(page.ByCategory, 2)
	suite.Equal(domain.CategoryGroceries, page.ByCategory[0].Category)
	suite.Equal("60.0", page.ByCategory[0].Percentage.StringFixed(1))
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- MonthlyView Tests ---

func (suite *ExpenseServiceTestSuite) TestMonthlyView_UsesMonthRange() {
	ctx := context.Background()
	from := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindExpenses", ctx, mock.MatchedBy(func(f portsrepo.ExpenseFilter) bool {
		return f.From != nil && f.From.Equal(from) &&
			f.To != nil && f.To.Equal(to) &&
			f.Order == portsrepo.OrderByDateDesc
	}), 0, 0).Return([]domain.Expense{}, nil).Once()

	page, err := suite.service.MonthlyView(ctx, "2026-02", "")

	suite.Require().NoError(err)
	suite.Equal(from, page.Month)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestMonthlyView_DefaultsToCurrentMonth() {
	ctx := context.Background()
	from := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindExpenses", ctx, mock.MatchedBy(func(f portsrepo.ExpenseFilter) bool {
		return f.From != nil && f.From.Equal(from)
	}), 0, 0).Return([]domain.Expense{}, nil).Once()

	page, err := suite.service.MonthlyView(ctx, "", "")

	suite.Require().NoError(err)
	suite.Equal(from, page.Month)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Lifecycle Tests ---

func (suite *ExpenseServiceTestSuite) TestSoftDeleteExpense_UsesClock() {
	ctx := context.Background()
	suite.mockRepo.On("MarkExpenseDeleted", ctx, int64(5), suite.now).Return(nil).Once()

	err := suite.service.SoftDeleteExpense(ctx, 5)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestListExpensesWithTrashed_IncludesDeletedRows() {
	ctx := context.Background()
	deletedAt := time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)
	rows := []domain.Expense{
		{ID: 1},
		{ID: 2, DeletedAt: &deletedAt},
	}
	filter := portsrepo.ExpenseFilter{Order: portsrepo.OrderByDateDesc}
	suite.mockRepo.On("FindExpensesWithTrashed", ctx, filter).Return(rows, nil).Once()

	expenses, err := suite.service.ListExpensesWithTrashed(ctx, "")

	suite.Require().NoError(err)
	suite.Require().Len(expenses, 2)
	suite.False(expenses[0].IsDeleted())
	suite.True(expenses[1].IsDeleted())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestRestoreExpense_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("RestoreExpense", ctx, int64(5)).Return(apperrors.ErrNotFound).Once()

	err := suite.service.RestoreExpense(ctx, 5)

	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
