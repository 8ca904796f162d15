package seed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"expensetrack/internal/core/domain"
	"expensetrack/internal/seed"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRepo struct {
	loads      [][]domain.Expense
	replaceErr error
}

func (r *captureRepo) MarkExpenseDeleted(ctx context.Context, id int64, deletedAt time.Time) error {
	return nil
}

func (r *captureRepo) RestoreExpense(ctx context.Context, id int64) error {
	return nil
}

func (r *captureRepo) ReplaceAllExpenses(ctx context.Context, expenses []domain.Expense) error {
	r.loads = append(r.loads, expenses)
	return r.replaceErr
}

func TestRun_LoadsSampleDataInOneReplace(t *testing.T) {
	repo := &captureRepo{}

	count, err := seed.Run(context.Background(), repo)
	require.NoError(t, err)

	require.Len(t, repo.loads, 1, "seeding must be a single atomic load")
	expenses := repo.loads[0]
	assert.Equal(t, count, len(expenses))
	assert.Equal(t, 7*len(domain.Categories()), len(expenses))

	perCategory := map[domain.Category]int{}
	earliest := domain.DateOnly(time.Now().AddDate(0, 0, -91))
	today := domain.DateOnly(time.Now())
	for _, e := range expenses {
		perCategory[e.Category]++
		assert.NotEmpty(t, e.Description)
		assert.True(t, e.Amount.GreaterThanOrEqual(domain.MinAmount), "amount %s below floor", e.Amount)
		assert.True(t, e.Amount.Equal(e.Amount.Round(2)), "amount %s not 2dp", e.Amount)
		assert.Equal(t, domain.DateOnly(e.Date), e.Date, "date must be a bare calendar date")
		assert.False(t, e.Date.After(today), "seeded date %s in the future", e.Date)
		assert.False(t, e.Date.Before(earliest), "seeded date %s older than the window", e.Date)
	}
	for _, category := range domain.Categories() {
		assert.Equal(t, 7, perCategory[category], "category %s", category)
	}
}

func TestRun_PropagatesLoadError(t *testing.T) {
	repo := &captureRepo{replaceErr: errors.New("connection lost")}

	count, err := seed.Run(context.Background(), repo)

	require.Error(t, err)
	assert.Zero(t, count)
}

func TestRun_AmountsStayWithinCategoryCeilings(t *testing.T) {
	repo := &captureRepo{}
	_, err := seed.Run(context.Background(), repo)
	require.NoError(t, err)

	ceiling := decimal.RequireFromString("500.00")
	for _, e := range repo.loads[0] {
		assert.True(t, e.Amount.LessThanOrEqual(ceiling), "amount %s over the largest range", e.Amount)
	}
}
