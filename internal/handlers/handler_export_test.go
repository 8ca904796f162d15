package handlers_test

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"expensetrack/internal/core/domain"
	portsrepo "expensetrack/internal/core/ports/repositories"
	"expensetrack/internal/core/services"
	"expensetrack/internal/handlers"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExpenseRepo serves canned rows to the service under test.
type stubExpenseRepo struct {
	expenses []domain.Expense
}

func (s *stubExpenseRepo) FindExpenseByID(ctx context.Context, id int64) (*domain.Expense, error) {
	return nil, nil
}

func (s *stubExpenseRepo) FindExpenses(ctx context.Context, filter portsrepo.ExpenseFilter, limit, offset int) ([]domain.Expense, error) {
	return s.expenses, nil
}

func (s *stubExpenseRepo) CountExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) (int64, error) {
	return int64(len(s.expenses)), nil
}

func (s *stubExpenseRepo) SumExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) (decimal.Decimal, error) {
	return domain.SumAmounts(s.expenses), nil
}

func (s *stubExpenseRepo) FindExpensesWithTrashed(ctx context.Context, filter portsrepo.ExpenseFilter) ([]domain.Expense, error) {
	return s.expenses, nil
}

func (s *stubExpenseRepo) SaveExpense(ctx context.Context, expense *domain.Expense) error {
	return nil
}

func (s *stubExpenseRepo) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	return nil
}

func (s *stubExpenseRepo) MarkExpenseDeleted(ctx context.Context, id int64, deletedAt time.Time) error {
	return nil
}

func (s *stubExpenseRepo) RestoreExpense(ctx context.Context, id int64) error {
	return nil
}

func (s *stubExpenseRepo) ReplaceAllExpenses(ctx context.Context, expenses []domain.Expense) error {
	return nil
}

func exportRouter(expenses []domain.Expense) *gin.Engine {
	gin.SetMode(gin.TestMode)
	now := func() time.Time {
		return time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	}
	service := services.NewExpenseServiceWithClock(&stubExpenseRepo{expenses: expenses}, now)
	handler := handlers.NewExportHandler(service)

	r := gin.New()
	r.GET("/expenses/export/monthly-csv", handler.MonthlyCSV)
	return r
}

func exportCSV(t *testing.T, r *gin.Engine, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/expenses/export/monthly-csv?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w
}

func TestMonthlyCSV_HeaderAndRowOrder(t *testing.T) {
	day := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	r := exportRouter([]domain.Expense{
		{ID: 2, Description: "Electric bill", Amount: decimal.RequireFromString("120.50"), Category: domain.CategoryHousing, Date: day},
		{ID: 1, Description: "Morning coffee", Amount: decimal.RequireFromString("4.75"), Category: domain.CategoryRestaurants, Date: day.AddDate(0, 0, -5)},
	})

	w := exportCSV(t, r, url.Values{"month": {"2026-08"}})

	assert.Equal(t, "text/csv; charset=UTF-8", w.Header().Get("Content-Type"))

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Description", "Amount", "Category", "Date"}, records[0])
	// Rows keep the monthly view's order.
	assert.Equal(t, []string{"Electric bill", "120.50", "Housing and Utilities", "2026-08-20"}, records[1])
	assert.Equal(t, []string{"Morning coffee", "4.75", "Restaurants and Cafes", "2026-08-15"}, records[2])
}

func TestMonthlyCSV_QuotesSpecialCharacters(t *testing.T) {
	day := time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)
	tricky := "Said \"ok\", then\nleft"
	r := exportRouter([]domain.Expense{
		{ID: 1, Description: tricky, Amount: decimal.RequireFromString("9.99"), Category: domain.CategoryEntertainment, Date: day},
	})

	w := exportCSV(t, r, url.Values{"month": {"2026-08"}})

	// The raw stream must quote the field and double the inner quotes.
	assert.Contains(t, w.Body.String(), `"Said ""ok"", then`)

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, tricky, records[1][0], "description must survive a CSV round trip")
}

func TestMonthlyCSV_FilenameWithoutCategory(t *testing.T) {
	r := exportRouter(nil)

	w := exportCSV(t, r, url.Values{"month": {"2026-02"}})

	assert.Equal(t,
		`attachment; filename="monthly_expenses_2026_02.csv"`,
		w.Header().Get("Content-Disposition"))
}

func TestMonthlyCSV_FilenameWithCategory(t *testing.T) {
	r := exportRouter(nil)

	w := exportCSV(t, r, url.Values{
		"month":    {"2026-02"},
		"category": {"Clothing & Footwear"},
	})

	assert.Equal(t,
		`attachment; filename="monthly_expenses_2026_02_clothing_footwear.csv"`,
		w.Header().Get("Content-Disposition"))
}

func TestMonthlyCSV_InvalidCategoryIgnoredInFilename(t *testing.T) {
	r := exportRouter(nil)

	w := exportCSV(t, r, url.Values{
		"month":    {"2026-02"},
		"category": {"Gadgets"},
	})

	// An unknown category is dropped on read paths, so the filename stays
	// unfiltered.
	assert.Equal(t,
		`attachment; filename="monthly_expenses_2026_02.csv"`,
		w.Header().Get("Content-Disposition"))
}
