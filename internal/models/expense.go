package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the storage-layer representation of an expense row.
type Expense struct {
	ID          int64           `db:"id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	Date        time.Time       `db:"date"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	DeletedAt   *time.Time      `db:"deleted_at"`
}
