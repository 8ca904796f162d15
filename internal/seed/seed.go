// Package seed populates the database with sample expenses for local
// development and demos.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"expensetrack/internal/core/domain"
	portsrepo "expensetrack/internal/core/ports/repositories"

	"github.com/shopspring/decimal"
)

// Sample descriptions organized by category.
var descriptions = map[domain.Category][]string{
	domain.CategoryGroceries: {
		"Weekly groceries", "Fruits and vegetables", "Milk and bread",
		"Organic produce", "Snacks and drinks", "Meat and fish",
		"Dairy products", "Bakery items",
	},
	domain.CategoryTransport: {
		"Gas station", "Bus ticket", "Uber ride", "Parking fee",
		"Metro pass", "Taxi fare", "Car wash", "Toll road fee",
	},
	domain.CategoryHousing: {
		"Electric bill", "Water bill", "Internet service", "Monthly rent",
		"Gas bill", "Home insurance", "Phone bill", "Maintenance fee",
	},
	domain.CategoryRestaurants: {
		"Lunch at cafe", "Dinner with friends", "Morning coffee",
		"Business lunch", "Weekend brunch", "Pizza delivery",
		"Fast food", "Ice cream shop",
	},
	domain.CategoryHealth: {
		"Pharmacy", "Doctor visit", "Vitamins and supplements",
		"Dental checkup", "Eye exam", "Prescription medicine",
		"First aid supplies", "Health insurance",
	},
	domain.CategoryClothing: {
		"New shoes", "Winter jacket", "T-shirts", "Jeans",
		"Sports wear", "Accessories", "Work clothes", "Socks and underwear",
	},
	domain.CategoryEntertainment: {
		"Movie tickets", "Netflix subscription", "Concert tickets",
		"Video game", "Books", "Spotify subscription", "Museum visit",
		"Sports event",
	},
}

// Realistic amount ranges in cents, per category.
var amountRanges = map[domain.Category][2]int64{
	domain.CategoryGroceries:     {1500, 15000},
	domain.CategoryTransport:     {200, 8000},
	domain.CategoryHousing:       {5000, 50000},
	domain.CategoryRestaurants:   {500, 10000},
	domain.CategoryHealth:        {1000, 20000},
	domain.CategoryClothing:      {2000, 25000},
	domain.CategoryEntertainment: {500, 15000},
}

const perCategory = 7

// Run replaces the expenses table contents with randomized sample expenses
// spread over the last three months. The swap is a single atomic load, so
// repeated seeding stays idempotent. It returns the number of records
// created.
func Run(ctx context.Context, repo portsrepo.ExpenseLifecycleManager) (int, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	var expenses []domain.Expense
	for _, category := range domain.Categories() {
		names := descriptions[category]
		bounds := amountRanges[category]
		for i := 0; i < perCategory; i++ {
			cents := bounds[0] + rng.Int63n(bounds[1]-bounds[0]+1)
			expenses = append(expenses, domain.Expense{
				Description: names[rng.Intn(len(names))],
				Amount:      decimal.New(cents, -2),
				Category:    category,
				Date:        domain.DateOnly(now.AddDate(0, 0, -rng.Intn(91))),
			})
		}
	}

	// Shuffle so insertion order mixes the categories.
	rng.Shuffle(len(expenses), func(i, j int) {
		expenses[i], expenses[j] = expenses[j], expenses[i]
	})

	if err := repo.ReplaceAllExpenses(ctx, expenses); err != nil {
		return 0, fmt.Errorf("failed to load sample expenses: %w", err)
	}
	return len(expenses), nil
}
