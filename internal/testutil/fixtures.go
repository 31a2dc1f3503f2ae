package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/dates"
	"pocketledger/internal/models"
	"pocketledger/internal/storage"
	"pocketledger/internal/uuid"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword satisfies the password strength policy.
const TestPassword = "Passw0rd!"

// NewTestProfile builds an unsaved profile with a fresh id and unique email.
func NewTestProfile(t *testing.T) *models.UserProfile {
	t.Helper()

	n := nextID()
	return &models.UserProfile{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("Test User %d", n),
		Email:    fmt.Sprintf("user%d@test.com", n),
		Language: "en",
		Currency: "$",
		Password: TestPassword,
	}
}

// NewTestExpense builds an unsaved expense dated today.
func NewTestExpense(t *testing.T) models.Expense {
	t.Helper()

	return models.Expense{
		ID:            uuid.New(),
		Amount:        decimal.NewFromFloat(12.50),
		Category:      models.ExpenseCategoryFood,
		Description:   fmt.Sprintf("Test Expense %d", nextID()),
		Date:          dates.Today(),
		PaymentMethod: models.PaymentMethodCash,
		CreatedAt:     time.Now(),
	}
}

// NewTestIncome builds an unsaved expected income with the given due date
// and recurrence.
func NewTestIncome(t *testing.T, due dates.Date, recurrence models.Recurrence) models.Income {
	t.Helper()

	return models.Income{
		ID:         uuid.New(),
		Amount:     decimal.NewFromInt(100),
		Category:   models.IncomeCategorySalary,
		Source:     fmt.Sprintf("Test Payer %d", nextID()),
		Date:       due,
		Recurrence: recurrence,
		Status:     models.IncomeStatusExpected,
		CreatedAt:  time.Now(),
	}
}

// SeedIncomes writes incomes directly into the incomes slot, bypassing the
// ledger, for tests that exercise load-time behavior.
func SeedIncomes(t *testing.T, slots storage.Store, incomes []models.Income) {
	t.Helper()

	raw, err := json.Marshal(incomes)
	if err != nil {
		t.Fatalf("failed to marshal incomes: %v", err)
	}
	if err := slots.Set(storage.KeyIncomes, string(raw)); err != nil {
		t.Fatalf("failed to seed incomes slot: %v", err)
	}
}
