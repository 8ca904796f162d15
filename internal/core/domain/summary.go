package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryBreakdown is one row of a per-category grouping: the group total,
// how many records fell into it, and its share of the filtered total.
type CategoryBreakdown struct {
	Category   Category
	Total      decimal.Decimal
	Count      int
	Percentage decimal.Decimal // 1 decimal place, 0 when the overall total is 0
}

// DayBreakdown is one row of a per-day grouping within a month.
type DayBreakdown struct {
	Date  time.Time
	Total decimal.Decimal
	Count int
}

var oneHundred = decimal.NewFromInt(100)

// SumAmounts returns the arithmetic sum of the amounts, zero for an empty
// sequence.
func SumAmounts(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// SummarizeByCategory groups expenses by category and computes totals,
// counts and percentages of the supplied overall total. The result is
// sparse: categories with no matching records are omitted. Percentages are
// computed against the already-filtered total, so a single-category filter
// yields 100% for that category. Rows are sorted by group total descending.
func SummarizeByCategory(expenses []Expense, overall decimal.Decimal) []CategoryBreakdown {
	groups := make(map[Category]*CategoryBreakdown)
	for _, e := range expenses {
		g, ok := groups[e.Category]
		if !ok {
			g = &CategoryBreakdown{Category: e.Category, Total: decimal.Zero}
			groups[e.Category] = g
		}
		g.Total = g.Total.Add(e.Amount)
		g.Count++
	}

	rows := make([]CategoryBreakdown, 0, len(groups))
	for _, g := range groups {
		if overall.IsPositive() {
			g.Percentage = g.Total.Mul(oneHundred).Div(overall).Round(1)
		} else {
			g.Percentage = decimal.Zero
		}
		rows = append(rows, *g)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	return rows
}

// SummarizeByDay groups expenses by calendar date, sorted by date
// descending. Only dates with at least one record appear.
func SummarizeByDay(expenses []Expense) []DayBreakdown {
	groups := make(map[time.Time]*DayBreakdown)
	for _, e := range expenses {
		day := DateOnly(e.Date)
		g, ok := groups[day]
		if !ok {
			g = &DayBreakdown{Date: day, Total: decimal.Zero}
			groups[day] = g
		}
		g.Total = g.Total.Add(e.Amount)
		g.Count++
	}

	rows := make([]DayBreakdown, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, *g)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	return rows
}
