package dto

import (
	"time"

	"expensetrack/internal/core/domain"

	"github.com/shopspring/decimal"
)

// ExpenseForm carries the raw expense form fields as submitted. Values stay
// strings until the validation layer normalizes them.
type ExpenseForm struct {
	Description string `form:"description"`
	Amount      string `form:"amount"`
	Category    string `form:"category"`
	Date        string `form:"date"`
}

// ListPage is the view data for the paginated list view.
type ListPage struct {
	Expenses         []domain.Expense
	Total            int64 // filtered record count, independent of page
	TotalAmount      decimal.Decimal
	Page             int
	PageSize         int
	TotalPages       int
	SelectedCategory string // empty when unfiltered
}

// HasPrev reports whether a previous page exists.
func (p ListPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a further page exists.
func (p ListPage) HasNext() bool { return p.Page < p.TotalPages }

// DailyPage is the view data for the single-day view.
type DailyPage struct {
	Date             time.Time
	Expenses         []domain.Expense
	Total            decimal.Decimal
	ByCategory       []domain.CategoryBreakdown
	SelectedCategory string
}

// MonthlyPage is the view data for the month view and the CSV export.
type MonthlyPage struct {
	Month            time.Time // first day of the selected month
	Expenses         []domain.Expense
	Total            decimal.Decimal
	ByCategory       []domain.CategoryBreakdown
	ByDay            []domain.DayBreakdown
	SelectedCategory string
}
