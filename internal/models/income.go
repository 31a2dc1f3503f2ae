package models

import (
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/dates"
)

// IncomeCategory is the closed set of income categories.
type IncomeCategory string

const (
	IncomeCategorySalary     IncomeCategory = "Salary"
	IncomeCategoryBusiness   IncomeCategory = "Business"
	IncomeCategoryRent       IncomeCategory = "Rent"
	IncomeCategoryInvestment IncomeCategory = "Investment"
	IncomeCategoryGift       IncomeCategory = "Gift"
	IncomeCategoryOther      IncomeCategory = "Other"
)

// IncomeCategories lists every valid income category.
var IncomeCategories = []IncomeCategory{
	IncomeCategorySalary,
	IncomeCategoryBusiness,
	IncomeCategoryRent,
	IncomeCategoryInvestment,
	IncomeCategoryGift,
	IncomeCategoryOther,
}

// Valid reports whether c is one of the closed category values.
func (c IncomeCategory) Valid() bool {
	for _, v := range IncomeCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Recurrence is the cadence attached to an income record.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "None"
	RecurrenceMonthly Recurrence = "Monthly"
	RecurrenceYearly  Recurrence = "Yearly"
)

// Valid reports whether r is one of the closed recurrence values.
func (r Recurrence) Valid() bool {
	return r == RecurrenceNone || r == RecurrenceMonthly || r == RecurrenceYearly
}

// IncomeStatus is the lifecycle state of an income record.
//
// Overdue is a cached derived value: it holds only while the due date has
// passed and the record has not been marked Received, and is reconciled once
// per store load rather than recomputed continuously.
type IncomeStatus string

const (
	IncomeStatusExpected IncomeStatus = "Expected"
	IncomeStatusReceived IncomeStatus = "Received"
	IncomeStatusOverdue  IncomeStatus = "Overdue"
)

// Income is a single expected or received payment. Recurring incomes
// regenerate their next occurrence as a new record when marked received, so
// each past occurrence survives as its own entity.
type Income struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Category      IncomeCategory  `json:"category"`
	Source        string          `json:"source"`
	Date          dates.Date      `json:"date"`
	Recurrence    Recurrence      `json:"recurrence"`
	Status        IncomeStatus    `json:"status"`
	TenantContact string          `json:"tenantContact,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}
