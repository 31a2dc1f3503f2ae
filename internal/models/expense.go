package models

import (
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/dates"
)

// ExpenseCategory is the closed set of spending categories.
type ExpenseCategory string

const (
	ExpenseCategoryFood          ExpenseCategory = "Food"
	ExpenseCategoryTransport     ExpenseCategory = "Transport"
	ExpenseCategoryHousing       ExpenseCategory = "Housing"
	ExpenseCategoryUtilities     ExpenseCategory = "Utilities"
	ExpenseCategoryEntertainment ExpenseCategory = "Entertainment"
	ExpenseCategoryHealth        ExpenseCategory = "Health"
	ExpenseCategoryShopping      ExpenseCategory = "Shopping"
	ExpenseCategoryOther         ExpenseCategory = "Other"
)

// ExpenseCategories lists every valid category.
var ExpenseCategories = []ExpenseCategory{
	ExpenseCategoryFood,
	ExpenseCategoryTransport,
	ExpenseCategoryHousing,
	ExpenseCategoryUtilities,
	ExpenseCategoryEntertainment,
	ExpenseCategoryHealth,
	ExpenseCategoryShopping,
	ExpenseCategoryOther,
}

// Valid reports whether c is one of the closed category values.
func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories {
		if c == v {
			return true
		}
	}
	return false
}

// PaymentMethod is the closed set of payment methods.
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "Cash"
	PaymentMethodCard  PaymentMethod = "Card"
	PaymentMethodUPI   PaymentMethod = "UPI"
	PaymentMethodOther PaymentMethod = "Other"
)

// PaymentMethods lists every valid payment method.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCard,
	PaymentMethodUPI,
	PaymentMethodOther,
}

// Valid reports whether m is one of the closed payment method values.
func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// Expense is a single spending record. Immutable once created except by
// delete; CreatedAt drives recency ordering in consumers.
type Expense struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Category      ExpenseCategory `json:"category"`
	Description   string          `json:"description"`
	Date          dates.Date      `json:"date"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
}
