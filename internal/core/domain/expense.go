package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an expense's purpose. The set of valid values is
// fixed; comparisons are case-sensitive exact matches.
type Category string

const (
	CategoryGroceries     Category = "Groceries"
	CategoryTransport     Category = "Transport"
	CategoryHousing       Category = "Housing and Utilities"
	CategoryRestaurants   Category = "Restaurants and Cafes"
	CategoryHealth        Category = "Health and Medicine"
	CategoryClothing      Category = "Clothing & Footwear"
	CategoryEntertainment Category = "Entertainment"
)

// Categories returns all valid expense categories in display order.
func Categories() []Category {
	return []Category{
		CategoryGroceries,
		CategoryTransport,
		CategoryHousing,
		CategoryRestaurants,
		CategoryHealth,
		CategoryClothing,
		CategoryEntertainment,
	}
}

// IsValidCategory reports whether s exactly matches one of the fixed labels.
func IsValidCategory(s string) bool {
	for _, c := range Categories() {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Amount bounds enforced at write time. The ceiling matches what a
// decimal(10,2) column can hold.
var (
	MinAmount = decimal.NewFromFloat(0.01)
	MaxAmount = decimal.NewFromFloat(999999.99)
)

// MaxDescriptionLength is the description ceiling in characters (runes).
const MaxDescriptionLength = 255

// Expense is the sole domain entity: a single recorded expenditure.
// Amounts carry exactly two fractional digits at rest. Date is a calendar
// date (midnight UTC, no time component). All mutation happens behind the
// repository boundary; the struct itself is plain data.
type Expense struct {
	ID          int64
	Description string
	Amount      decimal.Decimal
	Category    Category
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// IsDeleted reports whether the record is soft-deleted.
func (e Expense) IsDeleted() bool {
	return e.DeletedAt != nil
}

// DateOnly truncates t to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the first and last calendar day of t's month.
func MonthRange(t time.Time) (from, to time.Time) {
	from = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, -1)
	return from, to
}
